package table

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/imgshape/internal/shape"
)

const (
	delimiter = ','
	quote     = '"'
)

// Encode writes one row per entry of d, in iteration order.
func Encode(w io.Writer, d *shape.Distribution) error {
	bw := bufio.NewWriter(w)
	for _, e := range d.Entries() {
		if _, err := bw.WriteString(formatRow(e.Shape.String(), strconv.Itoa(e.Count))); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

// Marshal returns the table text for d.
func Marshal(d *shape.Distribution) []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer cannot fail.
	_ = Encode(&buf, d)
	return buf.Bytes()
}

func formatRow(key, value string) string {
	return quoteField(key) + string(delimiter) + quoteField(value) + "\n"
}

// quoteField wraps s in quotes when it contains the delimiter.
func quoteField(s string) string {
	if strings.ContainsRune(s, delimiter) {
		return string(quote) + s + string(quote)
	}
	return s
}

// CheckOutput verifies that nothing exists at path yet.
//
// # Errors
//
//   - Returns shape.ErrOutputAlreadyExists if path exists (file, directory or
//     dangling symlink)
func CheckOutput(path string) error {
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("output file %q already exists: %w", path, shape.ErrOutputAlreadyExists)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check output file %q: %w", path, err)
	}
	return nil
}

// Save writes d to a new file at path.
//
// An empty distribution writes nothing and creates no file; the boolean
// reports whether a file was written. An existing path is never
// overwritten.
//
// # Errors
//
//   - Returns shape.ErrOutputAlreadyExists if path already exists
//   - Returns error if the file cannot be created or written
func Save(path string, d *shape.Distribution) (bool, error) {
	if d == nil || d.Len() == 0 {
		return false, nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, fmt.Errorf("output file %q already exists: %w", path, shape.ErrOutputAlreadyExists)
		}
		return false, fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(f, d); err != nil {
		f.Close()
		return false, err
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to close output file: %w", err)
	}
	return true, nil
}
