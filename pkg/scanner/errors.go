package scanner

import "fmt"

// InvalidRootError reports a scan root that does not exist or is not a
// directory. It is detected before traversal begins.
type InvalidRootError struct {
	Path string
	Err  error
}

func (e *InvalidRootError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid scan root %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid scan root %s: not a directory", e.Path)
}

func (e *InvalidRootError) Unwrap() error { return e.Err }

// DirectoryReadError reports a directory whose entries could not be listed.
// It terminates the walk that encountered it.
type DirectoryReadError struct {
	Path string
	Err  error
}

func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("failed to read directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryReadError) Unwrap() error { return e.Err }
