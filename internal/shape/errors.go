package shape

import "errors"

// Error kinds surfaced by the pipeline. Each is wrapped with context naming
// the directory or file involved.
var (
	// ErrConfiguration is returned when neither or both of a directory and
	// a table file are requested.
	ErrConfiguration = errors.New("configuration error")

	// ErrInputNotFound is returned when the input directory or table file
	// is missing, inaccessible, or of the wrong kind.
	ErrInputNotFound = errors.New("input not found")

	// ErrNoImagesFound is returned when a directory scan yields zero
	// readable images.
	ErrNoImagesFound = errors.New("no images found")

	// ErrCorruptTable is returned when a table row cannot be parsed.
	ErrCorruptTable = errors.New("corrupt table")

	// ErrOutputAlreadyExists is returned when a save path already exists.
	ErrOutputAlreadyExists = errors.New("output already exists")
)
