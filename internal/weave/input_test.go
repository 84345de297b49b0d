package weave

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenInputs(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.txt", "abc\n")
	b := writeInput(t, dir, "b.txt", "de\n")
	missing := filepath.Join(dir, "missing.txt")

	set, failures := OpenInputs([]string{a, missing, b}, nil, 0)
	defer set.Close()

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 2, set.Alive())
	assert.Equal(t, int64(7), set.TotalBytes())
	assert.Equal(t, a, set.cursors[0].path)
	assert.Equal(t, b, set.cursors[1].path)

	require.Len(t, failures, 1)
	var openErr *OpenError
	require.True(t, errors.As(failures[0], &openErr))
	assert.Equal(t, missing, openErr.Path)
	assert.ErrorIs(t, failures[0], os.ErrNotExist)
}

func TestInputSet_ReleaseOnExhaustion(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.txt", "only\n")

	set, failures := OpenInputs([]string{a}, nil, 0)
	require.Empty(t, failures)

	c := set.cursors[0]
	line, err := c.next()
	require.NoError(t, err)
	assert.Equal(t, "only", string(line))

	_, err = c.next()
	assert.ErrorIs(t, err, io.EOF)

	require.NoError(t, set.release(c))
	assert.Equal(t, 0, set.Alive())
	assert.Equal(t, int64(5), set.BytesRead())

	// Released cursors are not closed a second time
	assert.NoError(t, set.Close())
	assert.NoError(t, set.Close())
}

type errCloser struct{ io.Reader }

func (errCloser) Close() error { return errors.New("close failed") }

func TestInputSet_CloseJoinsErrors(t *testing.T) {
	opener := func(path string) (io.ReadCloser, error) {
		return errCloser{Reader: eofReader{}}, nil
	}

	set, _ := OpenInputs([]string{"x", "y"}, opener, 0)
	err := set.Close()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "close x")
	assert.Contains(t, err.Error(), "close y")
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
