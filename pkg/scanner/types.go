package scanner

// FileRecord identifies one regular file observed during a walk. Records are
// created once a directory entry has passed all filters and are never
// mutated afterwards.
type FileRecord struct {
	Path string
	Size int64
}

// FilterOptions control which files a Walker yields.
type FilterOptions struct {
	// Patterns are wildcard filters applied to base file names. An empty
	// list, or a list containing the literal "*", matches everything.
	Patterns []string

	// CaseSensitive toggles case-sensitive pattern matching.
	CaseSensitive bool

	// ExcludeEmpty drops zero-length files during traversal.
	ExcludeEmpty bool
}
