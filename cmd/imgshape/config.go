package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/imgshape/internal/pipeline"
	"github.com/ironsheep/imgshape/internal/render"
)

// errUsage marks invalid command lines; they exit with status 2.
var errUsage = errors.New("usage error")

// Config is the parsed command line plus environment settings.
type Config struct {
	InputDir       string
	Recursive      bool
	FollowSymlinks bool
	ReadFile       string
	SaveFile       string
	PlotFile       string
	JSON           bool
	ShowVersion    bool

	// From the environment.
	Debug bool
	Chart render.Options
}

// Request converts the flags into a pipeline request.
func (c *Config) Request() pipeline.Request {
	return pipeline.Request{
		Directory:      c.InputDir,
		Recursive:      c.Recursive,
		FollowSymlinks: c.FollowSymlinks,
		TableFile:      c.ReadFile,
		OutputFile:     c.SaveFile,
	}
}

// parseArgs parses the command line. Help output goes to out; flag.ErrHelp
// is returned when it was requested.
func parseArgs(args []string, out io.Writer) (*Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("imgshape", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { usage(fs, out) }

	fs.StringVar(&cfg.InputDir, "i", "", "")
	fs.StringVar(&cfg.InputDir, "inputdir", "", "")
	fs.BoolVar(&cfg.Recursive, "R", false, "")
	fs.BoolVar(&cfg.Recursive, "recursive", false, "")
	fs.BoolVar(&cfg.FollowSymlinks, "S", false, "")
	fs.BoolVar(&cfg.FollowSymlinks, "followsymlinks", false, "")
	fs.StringVar(&cfg.ReadFile, "r", "", "")
	fs.StringVar(&cfg.ReadFile, "read", "", "")
	fs.StringVar(&cfg.SaveFile, "s", "", "")
	fs.StringVar(&cfg.SaveFile, "save", "", "")
	fs.StringVar(&cfg.PlotFile, "p", "", "")
	fs.StringVar(&cfg.PlotFile, "plot", "", "")
	fs.BoolVar(&cfg.JSON, "j", false, "")
	fs.BoolVar(&cfg.JSON, "json", false, "")
	fs.BoolVar(&cfg.ShowVersion, "V", false, "")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%v: %w", err, errUsage)
	}
	if fs.NArg() != 0 {
		return nil, fmt.Errorf("unexpected arguments: %q: %w", strings.Join(fs.Args(), " "), errUsage)
	}
	return &cfg, nil
}

func usage(fs *flag.FlagSet, out io.Writer) {
	fmt.Fprintf(out, "Usage: %s [options]\n", fs.Name())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Counts how many images in a directory share each (width, height).")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Options:")
	fmt.Fprintln(out, "  -i, --inputdir DIR      Directory to scan for images")
	fmt.Fprintln(out, "  -R, --recursive         Scan subdirectories too")
	fmt.Fprintln(out, "  -S, --followsymlinks    Enter symlinked directories when scanning recursively")
	fmt.Fprintln(out, "  -r, --read FILE         Load a saved shape table instead of scanning")
	fmt.Fprintln(out, "  -s, --save FILE         Save the shape table (the file must not exist)")
	fmt.Fprintln(out, "  -p, --plot FILE         Write a bubble chart (.png, .jpg, .gif, .tif, .bmp)")
	fmt.Fprintln(out, "  -j, --json              Print the result as JSON")
	fmt.Fprintln(out, "  -V, --version           Print version information")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Environment variables (also read from .env):")
	fmt.Fprintln(out, "  IMGSHAPE_LOG_LEVEL=debug       Log progress and skipped files to stderr")
	fmt.Fprintln(out, "  IMGSHAPE_CHART_WIDTH=800       Chart width in pixels")
	fmt.Fprintln(out, "  IMGSHAPE_CHART_HEIGHT=600      Chart height in pixels")
}

// loadEnv reads an optional .env file and then applies the environment.
func (c *Config) loadEnv(getenv func(string) string) error {
	// A missing .env is fine.
	_ = godotenv.Load()
	return c.applyEnv(getenv)
}

func (c *Config) applyEnv(getenv func(string) string) error {
	c.Debug = strings.EqualFold(strings.TrimSpace(getenv("IMGSHAPE_LOG_LEVEL")), "debug")

	var err error
	if c.Chart.Width, err = envInt(getenv, "IMGSHAPE_CHART_WIDTH"); err != nil {
		return err
	}
	if c.Chart.Height, err = envInt(getenv, "IMGSHAPE_CHART_HEIGHT"); err != nil {
		return err
	}
	return nil
}

// envInt reads a positive integer; unset means 0, the default.
func envInt(getenv func(string) string, key string) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s=%q is not a positive integer: %w", key, raw, errUsage)
	}
	return n, nil
}
