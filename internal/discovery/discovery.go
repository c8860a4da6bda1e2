// Package discovery finds image files in a directory by sniffing their
// content. File extensions are never consulted.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ironsheep/imgshape/internal/shape"
)

// Options controls how Discover traverses a directory.
type Options struct {
	// Recursive walks the whole subtree instead of the top level only.
	Recursive bool

	// FollowSymlinks descends into directories reached through a symbolic
	// link. It has no effect unless Recursive is set.
	FollowSymlinks bool
}

// Discover returns the absolute paths of image files under directory.
//
// Without Recursive only the direct entries of directory are considered and
// subdirectories are never entered. With Recursive the full subtree is
// walked; directories reached through a symlink are entered only when
// FollowSymlinks is set. A directory is never re-entered from inside itself,
// which stops symlink cycles. A directory reachable under two names that do
// not nest, such as a link to a sibling, is walked once per name and its
// images are counted under each.
//
// A file is kept when Classify reports an image media type. Unrecognised,
// empty and unreadable files are dropped silently, as are subdirectories that
// cannot be listed.
//
// # Errors
//
//   - Returns shape.ErrInputNotFound if directory does not exist, cannot be
//     read, or is not a directory.
func Discover(directory string, opts Options) ([]string, error) {
	root, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("input directory %q: %w", directory, shape.ErrInputNotFound)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("input directory %q does not exist: %w", directory, shape.ErrInputNotFound)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input directory %q is not a directory: %w", directory, shape.ErrInputNotFound)
	}

	var candidates []string
	if opts.Recursive {
		w := &walker{follow: opts.FollowSymlinks, ancestors: make(map[string]bool)}
		w.walk(root)
		candidates = w.files
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("failed to read input directory %q: %w", directory, shape.ErrInputNotFound)
		}
		for _, e := range entries {
			path := filepath.Join(root, e.Name())
			if isRegularFile(path) {
				candidates = append(candidates, path)
			}
		}
	}

	images := make([]string, 0, len(candidates))
	for _, path := range candidates {
		if IsImage(path) {
			images = append(images, path)
		}
	}
	return images, nil
}

// walker accumulates regular files while walking a tree.
type walker struct {
	follow bool
	// ancestors holds the real paths of the directories on the current
	// descent path.
	ancestors map[string]bool
	files     []string
}

func (w *walker) walk(dir string) {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil || w.ancestors[resolved] {
		return
	}
	w.ancestors[resolved] = true
	defer delete(w.ancestors, resolved)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var subdirs []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())

		// Stat follows links, so a link to a file counts as a file and a
		// dangling link is skipped.
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		switch {
		case info.IsDir():
			if e.Type()&os.ModeSymlink != 0 && !w.follow {
				continue
			}
			subdirs = append(subdirs, path)
		case info.Mode().IsRegular():
			w.files = append(w.files, path)
		}
	}

	// Files of a directory come before the contents of its subdirectories.
	for _, sub := range subdirs {
		w.walk(sub)
	}
}

// isRegularFile reports whether path, after following symlinks, is a regular
// file.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
