package dedup

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonemaro/dupescan/pkg/hasher"
	"github.com/sonemaro/dupescan/pkg/logger"
	"github.com/sonemaro/dupescan/pkg/scanner"
)

type mockLogger struct{}

func (m *mockLogger) Info(msg string)                               {}
func (m *mockLogger) Debug(msg string)                              {}
func (m *mockLogger) Error(msg string)                              {}
func (m *mockLogger) Warn(msg string)                               {}
func (m *mockLogger) Trace(msg string)                              {}
func (m *mockLogger) WithFields(fields logger.Fields) logger.Logger { return m }

func buildFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return fs
}

// groupPaths flattens a result into sorted path sets, one per group, for
// order-independent comparison.
func groupPaths(result *DuplicateFiles) [][]string {
	groups := make([][]string, 0, len(result.Groups))
	for _, g := range result.Groups {
		paths := make([]string, 0, len(g.Files))
		for _, f := range g.Files {
			paths = append(paths, f.Path)
		}
		sort.Strings(paths)
		groups = append(groups, paths)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i][0] < groups[j][0]
	})
	return groups
}

func TestFind(t *testing.T) {
	tests := []struct {
		name       string
		files      map[string]string
		opts       Options
		wantGroups [][]string
	}{
		{
			name: "identical content forms one group",
			files: map[string]string{
				"/data/file1.txt": "Hello, World!",
				"/data/file2.txt": "Hello, World!",
			},
			wantGroups: [][]string{
				{"/data/file1.txt", "/data/file2.txt"},
			},
		},
		{
			name: "different sizes form no group",
			files: map[string]string{
				"/data/file1.txt": "Hello, World!",
				"/data/file2.txt": "Hello, World!!",
			},
			wantGroups: [][]string{},
		},
		{
			name: "same size different content forms no group in hash mode",
			files: map[string]string{
				"/data/file1.txt": "Hello, World !",
				"/data/file2.txt": "Hello, World ?",
			},
			wantGroups: [][]string{},
		},
		{
			name: "same size different content groups in size-only mode",
			files: map[string]string{
				"/data/file1.txt": "Hello, World !",
				"/data/file2.txt": "Hello, World ?",
			},
			opts:       Options{SizeOnly: true},
			wantGroups: [][]string{{"/data/file1.txt", "/data/file2.txt"}},
		},
		{
			name: "duplicates found across subdirectories",
			files: map[string]string{
				"/data/a.txt":             "same content",
				"/data/sub/b.txt":         "same content",
				"/data/sub/deeper/c.txt":  "same content",
				"/data/sub/unrelated.txt": "something else entirely",
			},
			wantGroups: [][]string{
				{"/data/a.txt", "/data/sub/b.txt", "/data/sub/deeper/c.txt"},
			},
		},
		{
			name: "mixed buckets separated by content",
			files: map[string]string{
				"/data/a1": "aaaa",
				"/data/a2": "aaaa",
				"/data/b1": "bbbb",
				"/data/b2": "bbbb",
				"/data/c1": "cccc",
				"/data/d1": "dddd",
			},
			wantGroups: [][]string{
				{"/data/a1", "/data/a2"},
				{"/data/b1", "/data/b2"},
			},
		},
		{
			name: "pattern filter restricts candidates",
			files: map[string]string{
				"/data/a.txt": "payload",
				"/data/b.txt": "payload",
				"/data/c.log": "payload",
			},
			opts: Options{Patterns: []string{"*.txt"}, CaseSensitive: true},
			wantGroups: [][]string{
				{"/data/a.txt", "/data/b.txt"},
			},
		},
		{
			name: "empty files group when included",
			files: map[string]string{
				"/data/empty1.txt": "",
				"/data/empty2.txt": "",
				"/data/full.txt":   "content",
			},
			wantGroups: [][]string{
				{"/data/empty1.txt", "/data/empty2.txt"},
			},
		},
		{
			name: "empty files dropped when excluded",
			files: map[string]string{
				"/data/empty1.txt": "",
				"/data/empty2.txt": "",
				"/data/full.txt":   "content",
			},
			opts:       Options{ExcludeEmpty: true},
			wantGroups: [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := buildFS(t, tt.files)
			finder := NewFinder(tt.opts, fs, &mockLogger{})

			result, err := finder.Find(context.Background(), "/data")
			require.NoError(t, err)

			got := groupPaths(result)
			require.Len(t, got, len(tt.wantGroups))
			for i, want := range tt.wantGroups {
				assert.Equal(t, want, got[i])
			}
		})
	}
}

func TestFindGroupInvariants(t *testing.T) {
	fs := buildFS(t, map[string]string{
		"/data/a": "xx",
		"/data/b": "xx",
		"/data/c": "yy",
	})

	finder := NewFinder(Options{}, fs, &mockLogger{})
	result, err := finder.Find(context.Background(), "/data")
	require.NoError(t, err)

	for _, g := range result.Groups {
		assert.GreaterOrEqual(t, len(g.Files), 2)
		for _, f := range g.Files {
			assert.Equal(t, g.Size, f.Size)
		}
	}
	assert.Equal(t, 2, result.TotalFiles())
	assert.Equal(t, int64(2), result.ReclaimableBytes())
}

func TestFindIdempotent(t *testing.T) {
	fs := buildFS(t, map[string]string{
		"/data/a.txt":     "one",
		"/data/b.txt":     "one",
		"/data/sub/c.txt": "two",
		"/data/sub/d.txt": "two",
	})

	finder := NewFinder(Options{}, fs, &mockLogger{})

	first, err := finder.Find(context.Background(), "/data")
	require.NoError(t, err)
	second, err := finder.Find(context.Background(), "/data")
	require.NoError(t, err)

	assert.Equal(t, groupPaths(first), groupPaths(second))
}

func TestFindParallelMatchesSequential(t *testing.T) {
	files := map[string]string{
		"/data/a1": "alpha content",
		"/data/a2": "alpha content",
		"/data/b1": "beta content x",
		"/data/b2": "beta content x",
		"/data/b3": "beta content x",
		"/data/c1": "gamma content",
	}
	fs := buildFS(t, files)

	sequential := NewFinder(Options{Workers: 1}, fs, &mockLogger{})
	parallel := NewFinder(Options{Workers: 4}, fs, &mockLogger{})

	seqResult, err := sequential.Find(context.Background(), "/data")
	require.NoError(t, err)
	parResult, err := parallel.Find(context.Background(), "/data")
	require.NoError(t, err)

	assert.Equal(t, groupPaths(seqResult), groupPaths(parResult))
}

func TestFindInvalidRoot(t *testing.T) {
	fs := afero.NewMemMapFs()

	finder := NewFinder(Options{}, fs, &mockLogger{})
	_, err := finder.Find(context.Background(), "/missing")

	var rootErr *scanner.InvalidRootError
	assert.True(t, errors.As(err, &rootErr))
}

func TestFindCancelled(t *testing.T) {
	fs := buildFS(t, map[string]string{
		"/data/a": "x",
		"/data/b": "x",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	finder := NewFinder(Options{}, fs, &mockLogger{})
	_, err := finder.Find(ctx, "/data")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindHashFailureIsFatal(t *testing.T) {
	fs := buildFS(t, map[string]string{
		"/data/a": "same",
		"/data/b": "same",
	})
	wrapped := &unreadableFs{Fs: fs, path: "/data/b"}

	finder := NewFinder(Options{}, wrapped, &mockLogger{})
	_, err := finder.Find(context.Background(), "/data")

	var readErr *hasher.ReadError
	assert.True(t, errors.As(err, &readErr))
}

// unreadableFs fails Open for one path after listing succeeded, simulating
// a file that disappears between size grouping and hashing.
type unreadableFs struct {
	afero.Fs
	path string
}

func (u *unreadableFs) Open(name string) (afero.File, error) {
	if name == u.path {
		return nil, errors.New("read failure")
	}
	return u.Fs.Open(name)
}
