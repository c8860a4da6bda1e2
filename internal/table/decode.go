package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/imgshape/internal/shape"
)

// Load reads the table stored at path.
//
// # Errors
//
//   - Returns shape.ErrInputNotFound if path is missing, unreadable or not a
//     regular file
//   - Returns shape.ErrCorruptTable if any row fails to parse
func Load(path string) (*shape.Distribution, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input file %q does not exist: %w", path, shape.ErrInputNotFound)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("input file %q is not a file: %w", path, shape.ErrInputNotFound)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input file %q cannot be opened: %v: %w", path, err, shape.ErrInputNotFound)
	}
	defer f.Close()

	return Decode(f, path)
}

// maxLine is the longest row Decode accepts.
const maxLine = 1024 * 1024

// Decode parses table rows from r. name identifies the source in error
// messages.
func Decode(r io.Reader, name string) (*shape.Distribution, error) {
	scanner := bufio.NewScanner(r)
	// Rows are short, but allow for long hand-edited lines.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLine)

	d := shape.NewDistribution()
	row := 0
	for scanner.Scan() {
		row++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, value := splitKeyValue(SplitRow(line))

		s, err := ParseShape(key)
		if err != nil {
			return nil, corrupt(name, row, line, err)
		}
		count, err := ParseCount(value)
		if err != nil {
			return nil, corrupt(name, row, line, err)
		}
		d.Set(s, count)
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("table %q row %d: line longer than %d bytes: %w", name, row+1, maxLine, shape.ErrCorruptTable)
		}
		return nil, fmt.Errorf("failed to read table %q: %w", name, err)
	}
	return d, nil
}

func corrupt(name string, row int, line string, err error) error {
	return fmt.Errorf("table %q row %d %q: %v: %w", name, row, line, err, shape.ErrCorruptTable)
}

// splitKeyValue applies the field-count policy: a lone field has an empty
// value, and any fields past the second are glued onto the value with no
// separator.
func splitKeyValue(fields []string) (key, value string) {
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	case 2:
		return fields[0], fields[1]
	default:
		return fields[0], strings.Join(fields[1:], "")
	}
}

// SplitRow splits one line into fields at delimiters that are outside
// double quotes.
//
// A quote at the start of a field opens a quoted span that may contain the
// delimiter; the surrounding quotes are dropped and a doubled quote inside
// the span stands for one literal quote. A quote anywhere else is kept as
// an ordinary character. An unterminated span runs to the end of the line.
func SplitRow(line string) []string {
	const (
		fieldStart = iota
		inField
		inQuoted
		quoteInQuoted
	)

	var (
		fields []string
		field  strings.Builder
		state  = fieldStart
	)

	emit := func() {
		fields = append(fields, field.String())
		field.Reset()
		state = fieldStart
	}

	for _, c := range line {
		switch state {
		case fieldStart:
			switch c {
			case quote:
				state = inQuoted
			case delimiter:
				emit()
			default:
				field.WriteRune(c)
				state = inField
			}
		case inField:
			if c == delimiter {
				emit()
			} else {
				field.WriteRune(c)
			}
		case inQuoted:
			if c == quote {
				state = quoteInQuoted
			} else {
				field.WriteRune(c)
			}
		case quoteInQuoted:
			switch c {
			case quote:
				field.WriteRune(c)
				state = inQuoted
			case delimiter:
				emit()
			default:
				field.WriteRune(c)
				state = inField
			}
		}
	}

	if line != "" {
		fields = append(fields, field.String())
	}
	return fields
}

// ParseShape parses a key such as "(800, 600)" into a Shape.
//
// Leading and trailing parentheses and spaces are stripped, the rest is
// split on commas and each piece must be an integer. Exactly two positive
// integers are required.
func ParseShape(key string) (shape.Shape, error) {
	inner := strings.Trim(key, "() ")
	parts := strings.Split(inner, ",")
	if len(parts) != 2 {
		return shape.Shape{}, fmt.Errorf("invalid shape %q: want 2 dimensions, got %d", key, len(parts))
	}

	dims := make([]int, 2)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return shape.Shape{}, fmt.Errorf("invalid shape %q: %q is not an integer", key, p)
		}
		dims[i] = n
	}

	s := shape.Shape{Width: dims[0], Height: dims[1]}
	if !s.Valid() {
		return shape.Shape{}, fmt.Errorf("invalid shape %q: dimensions must be positive", key)
	}
	return s, nil
}

// ParseCount parses a count value. Counts must be integers of at least 1.
func ParseCount(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: not an integer", value)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid count %q: must be at least 1", value)
	}
	return n, nil
}
