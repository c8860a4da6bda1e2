package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"log"
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WEBP format decoder

	"github.com/ironsheep/imgshape/internal/shape"
)

// ReadShape returns the pixel dimensions of the image at path.
//
// Only the image header is decoded; pixel data is never read. Supported
// formats are JPEG, PNG, GIF, BMP, TIFF and WEBP.
//
// # Errors
//
//   - Returns error if the file cannot be opened
//   - Returns error if the header is not a supported, well-formed image
//   - Returns error if either dimension is not positive
func ReadShape(path string) (shape.Shape, error) {
	f, err := os.Open(path)
	if err != nil {
		return shape.Shape{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return DecodeShape(f)
}

// DecodeShape reads an image header from r and returns its dimensions.
func DecodeShape(r io.Reader) (shape.Shape, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return shape.Shape{}, fmt.Errorf("failed to decode image header: %w", err)
	}

	s := shape.Shape{Width: cfg.Width, Height: cfg.Height}
	if !s.Valid() {
		return shape.Shape{}, fmt.Errorf("invalid %s dimensions %dx%d", format, cfg.Width, cfg.Height)
	}
	return s, nil
}

// Extractor reads shapes on a best-effort basis.
//
// A file that cannot be read is skipped rather than reported, so one bad
// file never aborts a scan. The zero value is ready to use.
type Extractor struct {
	// Logger, if set, receives one line per skipped file.
	Logger *log.Logger
}

// Extract returns the shape of the image at path. The boolean is false when
// the file could not be read as an image, in which case the file should not
// be counted.
func (e *Extractor) Extract(path string) (s shape.Shape, ok bool) {
	// Third-party decoders may panic on hostile headers.
	defer func() {
		if r := recover(); r != nil {
			e.skip(path, fmt.Errorf("decoder panic: %v", r))
			s, ok = shape.Shape{}, false
		}
	}()

	s, err := ReadShape(path)
	if err != nil {
		e.skip(path, err)
		return shape.Shape{}, false
	}
	return s, true
}

func (e *Extractor) skip(path string, err error) {
	if e != nil && e.Logger != nil {
		e.Logger.Printf("skipping %s: %v", path, err)
	}
}

// ExtractAll extracts the shape of every path, dropping the ones that fail.
// The result keeps the order of paths.
func (e *Extractor) ExtractAll(paths []string) []shape.Shape {
	shapes := make([]shape.Shape, 0, len(paths))
	for _, p := range paths {
		if s, ok := e.Extract(p); ok {
			shapes = append(shapes, s)
		}
	}
	return shapes
}

// Extract is a convenience wrapper around a zero Extractor.
func Extract(path string) (shape.Shape, bool) {
	var e Extractor
	return e.Extract(path)
}
