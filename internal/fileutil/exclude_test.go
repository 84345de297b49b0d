package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcluder_Filter(t *testing.T) {
	excluder, err := NewExcluder([]string{"*.bak", "**/tmp/**"})
	require.NoError(t, err)

	files := []string{
		"lists/a.txt",
		"lists/a.txt.bak",
		"work/tmp/b.txt",
		"c.txt",
	}
	kept, excluded := excluder.Filter(files)

	assert.Equal(t, []string{"lists/a.txt", "c.txt"}, kept)
	assert.Equal(t, []string{"lists/a.txt.bak", "work/tmp/b.txt"}, excluded)
}

func TestExcluder_MatchesBaseName(t *testing.T) {
	excluder, err := NewExcluder([]string{"merged*.txt"})
	require.NoError(t, err)

	assert.True(t, excluder.Excluded(filepath.Join("out", "merged-2024.txt")))
	assert.False(t, excluder.Excluded(filepath.Join("out", "source.txt")))
}

func TestExcluder_NilExcludesNothing(t *testing.T) {
	var excluder *Excluder
	kept, excluded := excluder.Filter([]string{"a", "b"})

	assert.Equal(t, []string{"a", "b"}, kept)
	assert.Empty(t, excluded)
}

func TestNewExcluder_InvalidPattern(t *testing.T) {
	_, err := NewExcluder([]string{"[unclosed"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidExclude)
}

func TestWithoutPath(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "a.txt", "merged.txt")
	t.Chdir(tmpDir)

	files := []string{"a.txt", "merged.txt", filepath.Join(tmpDir, "merged.txt")}
	kept, removed := WithoutPath(files, "merged.txt")

	assert.Equal(t, []string{"a.txt"}, kept)
	assert.Len(t, removed, 2)
}

func TestWithoutPath_TargetMissing(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "a.txt")
	target := filepath.Join(tmpDir, "out.txt")

	_, err := os.Stat(target)
	require.True(t, os.IsNotExist(err))

	kept, removed := WithoutPath([]string{filepath.Join(tmpDir, "a.txt")}, target)

	assert.Equal(t, []string{filepath.Join(tmpDir, "a.txt")}, kept)
	assert.Empty(t, removed)
}
