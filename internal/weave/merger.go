package weave

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrNoReadableInputs is returned when none of the inputs could be opened.
var ErrNoReadableInputs = errors.New("no files could be opened for weave-merge")

const (
	// DefaultReserveLines is the seen-set capacity reserved before merging.
	DefaultReserveLines = 10_000_000
	// DefaultProgressInterval is the number of rounds between progress reports.
	DefaultProgressInterval = 10_000
	// DefaultWriteBufferSize is the output buffer size.
	DefaultWriteBufferSize = 1024 * 1024
)

// Options configures a Merger.
type Options struct {
	// Exact confirms hash hits against line content (VerifiedSet)
	Exact bool
	// ReserveLines is the seen-set capacity hint (0 = no reservation)
	ReserveLines int
	// ProgressInterval is the number of rounds between LogProgress calls (0 = never)
	ProgressInterval int
	// ReadBufferSize is the per-input buffer size (0 = DefaultReadBufferSize)
	ReadBufferSize int
	// WriteBufferSize is the output buffer size (0 = DefaultWriteBufferSize)
	WriteBufferSize int
	// Opener opens inputs (nil = OpenFile)
	Opener Opener
}

// DefaultOptions returns the options used by the command line tool.
func DefaultOptions() Options {
	return Options{
		ReserveLines:     DefaultReserveLines,
		ProgressInterval: DefaultProgressInterval,
		ReadBufferSize:   DefaultReadBufferSize,
		WriteBufferSize:  DefaultWriteBufferSize,
	}
}

// Progress is a snapshot of a running merge.
type Progress struct {
	Rounds       int64
	LinesRead    int64
	UniqueLines  int64
	BytesRead    int64
	TotalBytes   int64
	ActiveInputs int
}

// Logger receives diagnostics from a merge. Output content never goes here.
type Logger interface {
	LogInfo(message string)
	LogWarn(message string)
	LogProgress(p Progress)
}

type discardLogger struct{}

func (discardLogger) LogInfo(string)       {}
func (discardLogger) LogWarn(string)       {}
func (discardLogger) LogProgress(Progress) {}

// Result summarizes a completed merge.
type Result struct {
	FilesOpened    int
	FilesSkipped   int
	Rounds         int64
	LinesRead      int64
	UniqueLines    int64
	DuplicateLines int64
	BytesRead      int64
	SeenBytes      int64
	Duration       time.Duration
}

// Merger performs weave-merges with deduplication.
type Merger struct {
	opts   Options
	logger Logger
}

// NewMerger creates a Merger. A nil logger discards diagnostics.
func NewMerger(opts Options, logger Logger) *Merger {
	if logger == nil {
		logger = discardLogger{}
	}
	if opts.WriteBufferSize <= 0 {
		opts.WriteBufferSize = DefaultWriteBufferSize
	}
	return &Merger{opts: opts, logger: logger}
}

func (m *Merger) newSeenSet() SeenSet {
	if m.opts.Exact {
		return NewVerifiedSet(m.opts.ReserveLines)
	}
	return NewHashSet(m.opts.ReserveLines)
}

// Merge weaves the lines of paths into sink, skipping lines already written.
//
// Paths that cannot be opened are logged and left out. If none open,
// ErrNoReadableInputs is returned and sink is not written. Each round reads
// one line from every live input in path order; an input leaves the rotation
// at end of stream, and the merge ends after a round that read nothing.
// Every written line is followed by a single '\n'. Errors writing to sink
// abort the merge. All inputs are closed before Merge returns.
func (m *Merger) Merge(paths []string, sink io.Writer) (*Result, error) {
	start := time.Now()

	inputs, failures := OpenInputs(paths, m.opts.Opener, m.opts.ReadBufferSize)
	defer inputs.Close()

	for _, err := range failures {
		m.logger.LogWarn(err.Error())
	}
	if inputs.Len() == 0 {
		return nil, ErrNoReadableInputs
	}

	m.logger.LogInfo(fmt.Sprintf("Weave-merging %d files...", inputs.Len()))

	seen := m.newSeenSet()
	out := bufio.NewWriterSize(sink, m.opts.WriteBufferSize)
	result := &Result{
		FilesOpened:  inputs.Len(),
		FilesSkipped: len(failures),
	}

	for {
		progressed := false

		for _, c := range inputs.cursors {
			if !c.alive {
				continue
			}

			line, err := c.next()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					m.logger.LogWarn(fmt.Sprintf("read %s: %v (input dropped)", c.path, err))
				}
				if cerr := inputs.release(c); cerr != nil {
					m.logger.LogWarn(cerr.Error())
				}
				continue
			}

			progressed = true
			result.LinesRead++

			if !seen.Insert(line) {
				result.DuplicateLines++
				continue
			}
			if _, err := out.Write(line); err != nil {
				return nil, fmt.Errorf("write output: %w", err)
			}
			if err := out.WriteByte('\n'); err != nil {
				return nil, fmt.Errorf("write output: %w", err)
			}
			result.UniqueLines++
		}

		if !progressed {
			break
		}

		result.Rounds++
		if m.opts.ProgressInterval > 0 && result.Rounds%int64(m.opts.ProgressInterval) == 0 {
			m.logger.LogProgress(Progress{
				Rounds:       result.Rounds,
				LinesRead:    result.LinesRead,
				UniqueLines:  result.UniqueLines,
				BytesRead:    inputs.BytesRead(),
				TotalBytes:   inputs.TotalBytes(),
				ActiveInputs: inputs.Alive(),
			})
		}
	}

	if err := out.Flush(); err != nil {
		return nil, fmt.Errorf("flush output: %w", err)
	}

	result.BytesRead = inputs.BytesRead()
	result.SeenBytes = seen.ApproxBytes()
	result.Duration = time.Since(start)

	m.logger.LogInfo(fmt.Sprintf("Merge complete: %d unique lines written", result.UniqueLines))
	m.logger.LogInfo(fmt.Sprintf("Memory usage: ~%d MB", result.SeenBytes/1024/1024))

	return result, nil
}
