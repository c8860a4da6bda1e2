// Package pipeline wires discovery, extraction, aggregation and the table
// codec into one run that produces a shape distribution.
//
// A run either scans a directory or loads a previously saved table, never
// both. When an output file is requested the result is saved before it is
// returned; the output path is checked up front so an existing file fails
// the run before any scanning starts.
//
// Everything runs on the calling goroutine.
package pipeline

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/imgshape/internal/discovery"
	"github.com/ironsheep/imgshape/internal/imaging"
	"github.com/ironsheep/imgshape/internal/shape"
	"github.com/ironsheep/imgshape/internal/table"
)

// Request selects the input of a run and where to save the result.
type Request struct {
	// Directory to scan for images. Mutually exclusive with TableFile.
	Directory string `json:"directory,omitempty"`

	// Recursive scans subdirectories too.
	Recursive bool `json:"recursive,omitempty"`

	// FollowSymlinks enters symlinked directories during a recursive scan.
	FollowSymlinks bool `json:"follow_symlinks,omitempty"`

	// TableFile to load instead of scanning. Mutually exclusive with
	// Directory.
	TableFile string `json:"table_file,omitempty"`

	// OutputFile, if set, receives the resulting table. It must not exist.
	OutputFile string `json:"output_file,omitempty"`
}

// Validate checks that exactly one input is selected. It performs no I/O.
func (r Request) Validate() error {
	switch {
	case r.Directory == "" && r.TableFile == "":
		return fmt.Errorf("either an input directory or a table file must be specified: %w", shape.ErrConfiguration)
	case r.Directory != "" && r.TableFile != "":
		return fmt.Errorf("input directory %q and table file %q are mutually exclusive: %w", r.Directory, r.TableFile, shape.ErrConfiguration)
	}
	return nil
}

// Result is the outcome of a successful run.
type Result struct {
	Distribution *shape.Distribution

	// Saved is the path the table was written to, empty if nothing was
	// saved.
	Saved string
}

// Runner executes requests. The zero value is ready to use and logs
// nothing.
type Runner struct {
	// Logger receives progress and skipped-file messages.
	Logger *log.Logger
}

func (r *Runner) logger() *log.Logger {
	if r == nil || r.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return r.Logger
}

// Run validates req, produces the distribution and saves it if requested.
//
// # Errors
//
//   - shape.ErrConfiguration: neither or both inputs selected
//   - shape.ErrInputNotFound: directory or table file missing
//   - shape.ErrOutputAlreadyExists: OutputFile already exists
//   - shape.ErrNoImagesFound: scan found no readable images
//   - shape.ErrCorruptTable: table row does not parse
func (r *Runner) Run(req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := CheckInput(req); err != nil {
		return nil, err
	}
	if req.OutputFile != "" {
		if err := table.CheckOutput(req.OutputFile); err != nil {
			return nil, err
		}
	}

	var (
		d   *shape.Distribution
		err error
	)
	if req.TableFile != "" {
		d, err = r.Load(req.TableFile)
	} else {
		d, err = r.Scan(req.Directory, discovery.Options{
			Recursive:      req.Recursive,
			FollowSymlinks: req.FollowSymlinks,
		})
	}
	if err != nil {
		return nil, err
	}

	res := &Result{Distribution: d}
	if req.OutputFile != "" {
		written, err := table.Save(req.OutputFile, d)
		if err != nil {
			return nil, err
		}
		if written {
			res.Saved = req.OutputFile
			r.logger().Printf("saved %d shapes to %s", d.Len(), req.OutputFile)
		}
	}
	return res, nil
}

// Scan discovers images under dir, reads their shapes and counts them.
// Files that cannot be read are skipped.
//
// # Errors
//
//   - shape.ErrInputNotFound: dir missing or not a directory
//   - shape.ErrNoImagesFound: no file yielded a shape
func (r *Runner) Scan(dir string, opts discovery.Options) (*shape.Distribution, error) {
	logger := r.logger()

	paths, err := discovery.Discover(dir, opts)
	if err != nil {
		return nil, err
	}
	logger.Printf("found %d image candidates in %s", len(paths), dir)

	extractor := &imaging.Extractor{Logger: logger}
	d := shape.Aggregate(extractor.ExtractAll(paths))
	if d.Len() == 0 {
		return nil, fmt.Errorf("input directory %q does not contain any images: %w", dir, shape.ErrNoImagesFound)
	}

	logger.Printf("counted %d images with %d distinct shapes", d.Total(), d.Len())
	return d, nil
}

// Load reads a saved table.
func (r *Runner) Load(path string) (*shape.Distribution, error) {
	d, err := table.Load(path)
	if err != nil {
		return nil, err
	}
	r.logger().Printf("loaded %d shapes from %s", d.Len(), path)
	return d, nil
}

// CheckInput reports a missing input before any other work is done.
func CheckInput(req Request) error {
	if req.TableFile != "" {
		info, err := os.Stat(req.TableFile)
		if err != nil {
			return fmt.Errorf("input file %q does not exist: %w", req.TableFile, shape.ErrInputNotFound)
		}
		if info.IsDir() {
			return fmt.Errorf("input file %q is not a file: %w", req.TableFile, shape.ErrInputNotFound)
		}
		return nil
	}

	info, err := os.Stat(req.Directory)
	if err != nil {
		return fmt.Errorf("input directory %q does not exist: %w", req.Directory, shape.ErrInputNotFound)
	}
	if !info.IsDir() {
		return fmt.Errorf("input directory %q is not a directory: %w", req.Directory, shape.ErrInputNotFound)
	}
	return nil
}
