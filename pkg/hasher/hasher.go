/*
Package hasher computes the streaming checksum used to separate same-size
files during duplicate detection.

The digest is a 64-bit multiplicative rolling checksum: every byte of the
file, in order, is folded into the accumulator as h = h*31 + b. Files are
read in fixed-size chunks and never buffered whole. The checksum is
deterministic but not collision-resistant; it is only meant to distinguish
files that already share a byte length, where an accidental collision
between unrelated content is astronomically unlikely. Callers needing
guarantees under adversarial input should swap in a cryptographic digest
behind the same contract.
*/
package hasher

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// ChunkSize is the read granularity for hashing.
const ChunkSize = 8192

// ReadError reports a file that could not be opened or read while hashing.
// It is fatal to the run that encountered it: a partially hashed candidate
// set would silently under-report duplicates.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to hash %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Sum returns the rolling checksum of the file's content. The file handle
// is closed on every exit path.
func Sum(fs afero.Fs, path string) (uint64, error) {
	f, err := fs.Open(path)
	if err != nil {
		return 0, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	var h uint64
	buf := make([]byte, ChunkSize)

	for {
		n, err := f.Read(buf)
		for _, b := range buf[:n] {
			h = h*31 + uint64(b)
		}
		if err == io.EOF {
			return h, nil
		}
		if err != nil {
			return 0, &ReadError{Path: path, Err: err}
		}
	}
}
