// Package shape defines the value types shared by every stage of the
// shape-distribution pipeline.
//
// A Shape is the (width, height) pixel size of one image. A Distribution
// maps each distinct Shape to the number of images that have it.
//
// # Ordering
//
// Distribution remembers the order in which shapes were first inserted.
// Iteration, and therefore table rows and chart draw order, follows that
// order so output is reproducible for a fixed input. The order has no
// other meaning.
//
// # Error Kinds
//
// The pipeline reports failures through the sentinel errors declared in
// errors.go. They are always wrapped with the offending path, so callers
// should test with errors.Is:
//
//	if errors.Is(err, shape.ErrNoImagesFound) {
//	    // directory held no readable images
//	}
//
// # Thread Safety
//
// Distribution is not safe for concurrent mutation. It is built by a
// single goroutine and then handed read-only to consumers.
package shape
