package hasher

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fs afero.Fs, path string, content []byte) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, content, 0644))
}

func TestSumKnownValues(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    uint64
	}{
		{
			name:    "empty file",
			content: nil,
			want:    0,
		},
		{
			name:    "single byte",
			content: []byte("a"),
			want:    97,
		},
		{
			name:    "two bytes",
			content: []byte("ab"),
			want:    97*31 + 98,
		},
		{
			name:    "three bytes",
			content: []byte("abc"),
			want:    (97*31+98)*31 + 99,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "/f", tt.content)

			got, err := Sum(fs, "/f")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSumIdenticalContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := []byte("Hello, World!")
	writeFile(t, fs, "/a", content)
	writeFile(t, fs, "/b", content)

	sumA, err := Sum(fs, "/a")
	require.NoError(t, err)
	sumB, err := Sum(fs, "/b")
	require.NoError(t, err)

	assert.Equal(t, sumA, sumB)
}

func TestSumDifferentContentSameSize(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/a", []byte("Hello, World !"))
	writeFile(t, fs, "/b", []byte("Hello, World ?"))

	sumA, err := Sum(fs, "/a")
	require.NoError(t, err)
	sumB, err := Sum(fs, "/b")
	require.NoError(t, err)

	assert.NotEqual(t, sumA, sumB)
}

func TestSumCrossesChunkBoundary(t *testing.T) {
	// Content larger than one read chunk must fold identically to a
	// byte-by-byte reference computation.
	content := bytes.Repeat([]byte("0123456789abcdef"), 2048) // 32 KiB
	content = append(content, 'x')

	var want uint64
	for _, b := range content {
		want = want*31 + uint64(b)
	}

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/big", content)

	got, err := Sum(fs, "/big")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSumMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Sum(fs, "/missing")
	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "/missing", readErr.Path)
}
