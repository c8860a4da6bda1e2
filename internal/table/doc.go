// Package table reads and writes shape distributions as a two-column text
// table.
//
// # Format
//
// Each row holds one shape and its count:
//
//	"(800, 600)",5
//	"(1920, 1080)",12
//
// The key is the shape's tuple display form and the value its decimal count.
// A field containing the delimiter is wrapped in double quotes. Nothing else
// is escaped, so a field that itself contains a double quote does not survive
// a round trip.
//
// # Reading Rules
//
// The reader accepts tables written by earlier versions of the tool, quirks
// included:
//   - Blank lines are skipped.
//   - A delimiter inside a double-quoted span does not split the field; the
//     quotes are removed.
//   - A row with one field has an empty value (and is therefore corrupt).
//   - A row with more than two fields uses every field after the first as the
//     value, joined with no delimiter. "(1, 2)",1,0 reads as count 10.
//   - A later row for an already seen shape replaces its count.
//
// Any key or value that does not parse is reported as shape.ErrCorruptTable
// with the file name and row number.
//
// This is not a general CSV implementation and is not meant to interoperate
// with other CSV tools.
package table
