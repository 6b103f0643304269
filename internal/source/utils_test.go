package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(base, "src"), 0o755))

	cases := []struct {
		name   string
		target string
		want   string
	}{
		{"inside", filepath.Join(base, "src", "app.ts"), "src/app.ts"},
		{"base itself", base, "."},
		{"sibling falls back to absolute", filepath.Join(tmp, "other", "x.js"), normalizePath(filepath.Join(tmp, "other", "x.js"))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := RelativePath(c.target, base)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestToLineCol(t *testing.T) {
	content := []byte("ab\n\ncd\n")
	idx := buildLineIndex(content)
	require.Equal(t, []uint32{2, 3, 6}, idx)

	for off, want := range map[uint32]LineCol{
		0: {Line: 1, Col: 1},
		2: {Line: 1, Col: 3},
		3: {Line: 2, Col: 1},
		5: {Line: 3, Col: 2},
		7: {Line: 4, Col: 1},
	} {
		assert.Equal(t, want, toLineCol(idx, off), "offset %d", off)
	}
}

func TestRemoveBOMAndCRLF(t *testing.T) {
	body, had := removeBOM([]byte("\xEF\xBB\xBFconst a = 1\r\n"))
	assert.True(t, had)
	assert.Equal(t, "const a = 1\r\n", string(body))
	assert.True(t, hasCRLF(body))

	_, had = removeBOM([]byte("x"))
	assert.False(t, had)
	assert.False(t, hasCRLF([]byte("a\nb\n")))
}
