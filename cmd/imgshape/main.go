package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/imgshape/internal/pipeline"
	"github.com/ironsheep/imgshape/internal/render"
	"github.com/ironsheep/imgshape/internal/shape"
	"github.com/ironsheep/imgshape/internal/table"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if cfg.ShowVersion {
		fmt.Fprintf(stdout, "imgshape %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return exitOK
	}

	if err := cfg.loadEnv(getenv); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Debug {
		logger = log.New(stderr, "", log.Ldate|log.Ltime|log.Lshortfile)
		logger.Printf("imgshape v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if err := execute(cfg, logger, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

// Report is the --json output.
type Report struct {
	Entries []shape.Entry `json:"entries"`
	Summary shape.Summary `json:"summary"`
	Saved   string        `json:"saved,omitempty"`
	Plot    string        `json:"plot,omitempty"`
}

func execute(cfg *Config, logger *log.Logger, stdout io.Writer) error {
	req := cfg.Request()
	saveFile := req.OutputFile
	if cfg.PlotFile != "" {
		if err := req.Validate(); err != nil {
			return err
		}
		if err := pipeline.CheckInput(req); err != nil {
			return err
		}
		if _, err := imaging.FormatFromFilename(cfg.PlotFile); err != nil {
			return fmt.Errorf("plot file %q: %w", cfg.PlotFile, err)
		}
		if err := table.CheckOutput(cfg.PlotFile); err != nil {
			return err
		}
		if saveFile != "" {
			if err := table.CheckOutput(saveFile); err != nil {
				return err
			}
		}
		// The table is saved below, once the chart has rendered.
		req.OutputFile = ""
	}

	runner := &pipeline.Runner{Logger: logger}
	res, err := runner.Run(req)
	if err != nil {
		return err
	}

	report := Report{
		Entries: res.Distribution.Entries(),
		Summary: shape.Summarize(res.Distribution),
		Saved:   res.Saved,
	}

	if cfg.PlotFile != "" {
		img, err := render.Chart(res.Distribution, cfg.Chart)
		if err != nil {
			return fmt.Errorf("failed to render plot: %w", err)
		}
		if saveFile != "" {
			written, err := table.Save(saveFile, res.Distribution)
			if err != nil {
				return err
			}
			if written {
				report.Saved = saveFile
				logger.Printf("saved %d shapes to %s", res.Distribution.Len(), saveFile)
			}
		}
		if err := render.WriteChart(cfg.PlotFile, img); err != nil {
			if report.Saved != "" {
				return fmt.Errorf("failed to save plot, table was saved to %s: %w", report.Saved, err)
			}
			return fmt.Errorf("failed to save plot: %w", err)
		}
		report.Plot = cfg.PlotFile
		logger.Printf("wrote chart to %s", cfg.PlotFile)
	}

	if cfg.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(stdout, report)
	return nil
}

func printReport(w io.Writer, r Report) {
	s := r.Summary
	if s.Distinct == 0 {
		fmt.Fprintln(w, "No shapes.")
		return
	}

	fmt.Fprintf(w, "Images:       %d\n", s.Total)
	fmt.Fprintf(w, "Shapes:       %d\n", s.Distinct)
	fmt.Fprintf(w, "Max count:    %s x%d\n", s.MostCommon, s.MostCommonCount)
	fmt.Fprintf(w, "Width range:  %d - %d\n", s.MinWidth, s.MaxWidth)
	fmt.Fprintf(w, "Height range: %d - %d\n", s.MinHeight, s.MaxHeight)
	fmt.Fprintf(w, "Smallest:     %s\n", s.Smallest)
	fmt.Fprintf(w, "Largest:      %s\n", s.Largest)
	fmt.Fprintln(w)

	for _, e := range r.Entries {
		fmt.Fprintf(w, "%-16s %d\n", e.Shape, e.Count)
	}

	if r.Saved != "" {
		fmt.Fprintf(w, "\nSaved table to %s\n", r.Saved)
	}
	if r.Plot != "" {
		fmt.Fprintf(w, "Saved chart to %s\n", r.Plot)
	}
}
