package dedup

import (
	"github.com/sonemaro/dupescan/pkg/scanner"
)

// Options configure one duplicate search.
type Options struct {
	// Patterns are wildcard filters applied to base file names. Empty, or
	// containing the literal "*", matches everything.
	Patterns []string

	// CaseSensitive toggles case-sensitive pattern matching.
	CaseSensitive bool

	// ExcludeEmpty drops zero-length files during traversal.
	ExcludeEmpty bool

	// SizeOnly compares files by size alone, skipping content hashing.
	SizeOnly bool

	// Workers sets the hashing concurrency. Values <= 1 keep the whole
	// pipeline synchronous.
	Workers int

	// RateLimit caps hashing operations per second (0 for unlimited).
	// Only applies when Workers > 1.
	RateLimit int
}

// Group is a set of two or more files considered equivalent under the
// active comparison policy: same size, and same content checksum unless
// size-only mode is active. Groups are never mutated after construction.
type Group struct {
	Size  int64
	Files []scanner.FileRecord
}

// DuplicateFiles is the final result of one run. Group order follows the
// order buckets were discovered in, which depends on directory-listing
// order and is not guaranteed stable across platforms.
type DuplicateFiles struct {
	Groups []Group
}

// TotalFiles returns the number of files across all groups.
func (d *DuplicateFiles) TotalFiles() int {
	var n int
	for _, g := range d.Groups {
		n += len(g.Files)
	}
	return n
}

// ReclaimableBytes returns the space that deleting all but one member of
// every group would free.
func (d *DuplicateFiles) ReclaimableBytes() int64 {
	var n int64
	for _, g := range d.Groups {
		n += int64(len(g.Files)-1) * g.Size
	}
	return n
}
