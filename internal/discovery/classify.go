package discovery

import (
	"errors"
	"os"

	filetype "gopkg.in/h2non/filetype.v1"
)

// errEmptyFile is returned by Classify for zero-length files.
var errEmptyFile = errors.New("empty file")

// MediaType is the result of sniffing a file's leading bytes.
type MediaType struct {
	// Type is the top-level MIME category, e.g. "image".
	Type string `json:"type"`

	// Subtype is the MIME subtype, e.g. "png".
	Subtype string `json:"subtype"`

	// Extension is the conventional extension for the detected format,
	// without the dot. It is informational only.
	Extension string `json:"extension"`
}

// MIME returns the full media type, e.g. "image/png". It is empty for an
// unknown type.
func (m MediaType) MIME() string {
	if m.Type == "" {
		return ""
	}
	return m.Type + "/" + m.Subtype
}

// IsImage reports whether the top-level category is "image".
func (m MediaType) IsImage() bool {
	return m.Type == "image"
}

// Classify sniffs the media type of the file at path from its magic bytes.
//
// Unrecognised content yields the zero MediaType and a nil error. Empty or
// unreadable files yield the zero MediaType and the read error.
func Classify(path string) (MediaType, error) {
	info, err := os.Stat(path)
	if err != nil {
		return MediaType{}, err
	}
	if info.Size() == 0 {
		return MediaType{}, errEmptyFile
	}

	kind, err := filetype.MatchFile(path)
	if err != nil {
		return MediaType{}, err
	}
	if kind == filetype.Unknown {
		return MediaType{}, nil
	}
	return MediaType{
		Type:      kind.MIME.Type,
		Subtype:   kind.MIME.Subtype,
		Extension: kind.Extension,
	}, nil
}

// IsImage reports whether the file at path sniffs as an image. Any error
// counts as "not an image".
func IsImage(path string) bool {
	m, err := Classify(path)
	if err != nil {
		return false
	}
	return m.IsImage()
}
