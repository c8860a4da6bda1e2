// Package imaging reads the pixel dimensions of image files.
//
// Only image headers are decoded through image.DecodeConfig, so reading
// the shape of a large photo costs a few hundred bytes of I/O. Decoders are
// registered for JPEG, PNG and GIF from the standard library and for BMP,
// TIFF and WEBP from golang.org/x/image.
//
// # Best-Effort Extraction
//
// ReadShape and DecodeShape return an error for anything that is not a
// readable image. Extract and Extractor.Extract wrap them for bulk scans:
// a failure yields (Shape{}, false) and the file simply does not count.
// They never panic on malformed input and never return an error.
//
// Because only the header is read, a file cut off after its header still
// yields a shape and is counted. A file cut off inside its header is not.
//
//	ex := &imaging.Extractor{Logger: logger}
//	shapes := ex.ExtractAll(paths)
//
// # Thread Safety
//
// All functions are stateless. An Extractor may be shared if its Logger
// is; *log.Logger is safe for concurrent use.
package imaging
