package weave

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// DefaultReadBufferSize is the per-input read buffer size.
const DefaultReadBufferSize = 128 * 1024

// Opener opens one input for reading.
type Opener func(path string) (io.ReadCloser, error)

// OpenFile is the default Opener.
func OpenFile(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// OpenError reports an input that could not be opened for reading.
type OpenError struct {
	Path string
	Err  error
}

// Error implements the error interface for OpenError.
func (e *OpenError) Error() string {
	return fmt.Sprintf("could not open file: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *OpenError) Unwrap() error {
	return e.Err
}

// cursor is one open input and its read position.
type cursor struct {
	path      string
	file      io.ReadCloser
	reader    *bufio.Reader
	line      []byte
	size      int64
	bytesRead int64
	alive     bool
}

// next returns the next line without its '\n' terminator.
// A final line without a terminator is returned as a line; io.EOF follows it.
// The returned slice is only valid until the following call.
func (c *cursor) next() ([]byte, error) {
	chunk, err := c.reader.ReadSlice('\n')
	c.bytesRead += int64(len(chunk))
	if err == nil {
		return chunk[:len(chunk)-1], nil
	}

	// Long line or unterminated tail: collect into the cursor's own buffer
	c.line = append(c.line[:0], chunk...)
	for err == bufio.ErrBufferFull {
		chunk, err = c.reader.ReadSlice('\n')
		c.bytesRead += int64(len(chunk))
		c.line = append(c.line, chunk...)
	}

	switch {
	case err == nil:
		return c.line[:len(c.line)-1], nil
	case errors.Is(err, io.EOF) && len(c.line) > 0:
		return c.line, nil
	default:
		return nil, err
	}
}

// InputSet owns one read cursor per successfully opened input.
// Cursors keep the order their paths were given in.
// Each file is closed when its cursor is released or when the set is closed.
type InputSet struct {
	cursors    []*cursor
	totalBytes int64
}

// OpenInputs opens every path with opener and returns the set of those that
// opened, plus one *OpenError per path that did not.
// A zero or negative bufferSize selects DefaultReadBufferSize.
func OpenInputs(paths []string, opener Opener, bufferSize int) (*InputSet, []error) {
	if opener == nil {
		opener = OpenFile
	}
	if bufferSize <= 0 {
		bufferSize = DefaultReadBufferSize
	}

	set := &InputSet{cursors: make([]*cursor, 0, len(paths))}
	var failures []error

	for _, path := range paths {
		file, err := opener(path)
		if err != nil {
			failures = append(failures, &OpenError{Path: path, Err: err})
			continue
		}

		c := &cursor{
			path:   path,
			file:   file,
			reader: bufio.NewReaderSize(file, bufferSize),
			alive:  true,
		}
		if st, ok := file.(interface{ Stat() (fs.FileInfo, error) }); ok {
			if info, err := st.Stat(); err == nil {
				c.size = info.Size()
			}
		}
		set.totalBytes += c.size
		set.cursors = append(set.cursors, c)
	}

	return set, failures
}

// Len returns the number of opened inputs.
func (s *InputSet) Len() int {
	return len(s.cursors)
}

// Alive returns the number of inputs that have not reached end of stream.
func (s *InputSet) Alive() int {
	n := 0
	for _, c := range s.cursors {
		if c.alive {
			n++
		}
	}
	return n
}

// TotalBytes returns the combined size of the opened inputs, when known.
func (s *InputSet) TotalBytes() int64 {
	return s.totalBytes
}

// BytesRead returns the bytes consumed so far across all inputs.
func (s *InputSet) BytesRead() int64 {
	var n int64
	for _, c := range s.cursors {
		n += c.bytesRead
	}
	return n
}

// release marks c as exhausted and closes its file.
func (s *InputSet) release(c *cursor) error {
	if !c.alive {
		return nil
	}
	c.alive = false
	c.reader = nil
	c.line = nil
	if err := c.file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", c.path, err)
	}
	return nil
}

// Close releases every cursor still open. It is safe to call more than once.
func (s *InputSet) Close() error {
	var errs []error
	for _, c := range s.cursors {
		if err := s.release(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
