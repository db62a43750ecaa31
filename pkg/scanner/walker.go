/*
Package scanner provides lazy breadth-first directory traversal with
wildcard name filtering.

A Walker yields one FileRecord per regular file in the subtree that passes
the configured filters, without ever materializing the whole tree in memory.
Directories are visited in breadth-first order over an explicit queue, so
traversal depth is bounded by queue memory rather than call-stack size.

Basic usage:

	w, err := scanner.NewWalker(fs, "/data", scanner.FilterOptions{
		Patterns: []string{"*.txt"},
	}, log)
	if err != nil {
		return err
	}
	for {
		rec, err := w.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		// use rec
	}
*/
package scanner

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/sonemaro/dupescan/pkg/logger"
	"github.com/sonemaro/dupescan/pkg/wildcard"
)

// Walker lazily produces every regular file under a root that passes the
// name filter and the empty-file policy.
//
// Error policy: a directory that cannot be listed terminates the walk with a
// *DirectoryReadError; per-file problems do not. File sizes come from the
// directory listing itself, so there is no separate metadata read to race
// against, and entries that are not regular files (sockets, devices,
// symlinks as reported by the listing) are skipped. Symlinked directories
// are not followed and no cycle detection is performed.
type Walker struct {
	fs      afero.Fs
	log     logger.Logger
	options FilterOptions

	// queue holds directories pending a visit; entries holds the listing of
	// the directory currently being drained.
	queue   []string
	dir     string
	entries []os.FileInfo
	next    int
}

// NewWalker validates root and prepares a walk over fs. It returns an
// *InvalidRootError when root does not exist or is not a directory.
func NewWalker(fs afero.Fs, root string, options FilterOptions, log logger.Logger) (*Walker, error) {
	info, err := fs.Stat(root)
	if err != nil {
		return nil, &InvalidRootError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &InvalidRootError{Path: root}
	}

	return &Walker{
		fs:      fs,
		log:     log,
		options: options,
		queue:   []string{root},
	}, nil
}

// Next returns the next file that passes the filters, in breadth-first
// directory order. It returns io.EOF once the walk is exhausted. After a
// non-EOF error the walk is terminated and must not be resumed.
func (w *Walker) Next() (FileRecord, error) {
	for {
		for w.next < len(w.entries) {
			info := w.entries[w.next]
			w.next++

			path := filepath.Join(w.dir, info.Name())

			if info.IsDir() {
				w.queue = append(w.queue, path)
				continue
			}

			if !info.Mode().IsRegular() {
				w.log.WithFields(logger.Fields{
					"path": path,
					"mode": info.Mode().String(),
				}).Trace("Skipping non-regular file")
				continue
			}

			if !wildcard.MatchAny(info.Name(), w.options.Patterns, w.options.CaseSensitive) {
				continue
			}

			if w.options.ExcludeEmpty && info.Size() == 0 {
				continue
			}

			return FileRecord{Path: path, Size: info.Size()}, nil
		}

		if len(w.queue) == 0 {
			return FileRecord{}, io.EOF
		}

		dir := w.queue[0]
		w.queue = w.queue[1:]

		entries, err := afero.ReadDir(w.fs, dir)
		if err != nil {
			w.log.WithFields(logger.Fields{
				"error": err,
				"path":  dir,
			}).Error("Failed to read directory")
			return FileRecord{}, &DirectoryReadError{Path: dir, Err: err}
		}

		w.log.WithFields(logger.Fields{
			"path":    dir,
			"entries": len(entries),
			"pending": len(w.queue),
		}).Debug("Visiting directory")

		w.dir = dir
		w.entries = entries
		w.next = 0
	}
}
