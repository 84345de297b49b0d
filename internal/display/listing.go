package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harrison/wlmerge/internal/logger"
)

// FileListing prints the resolved input files in merge order.
// It is used by dry runs to show what a merge would read.
type FileListing struct {
	writer  io.Writer
	total   int
	current int
	colored bool
}

// NewFileListing creates a listing for total files.
// Color is used when w is a terminal.
func NewFileListing(w io.Writer, total int) *FileListing {
	return &FileListing{
		writer:  w,
		total:   total,
		colored: logger.IsTerminal(w),
	}
}

func (l *FileListing) paint(attr color.Attribute, s string) string {
	if !l.colored {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

// Start displays the header message
func (l *FileListing) Start() {
	fmt.Fprintf(l.writer, "Resolved input files:\n")
}

// Step displays one entry: [N/Total] path (cyan)
func (l *FileListing) Step(path string) {
	l.current++
	fmt.Fprintln(l.writer, l.paint(color.FgCyan, fmt.Sprintf("  [%d/%d] %s", l.current, l.total, path)))
}

// Complete displays the closing line with a green checkmark.
func (l *FileListing) Complete(output string) {
	fmt.Fprintf(l.writer, "%s %d files would be merged into %s\n", l.paint(color.FgGreen, "✓"), l.total, output)
}

// ListFiles writes a complete listing of files.
func ListFiles(w io.Writer, files []string, output string) {
	l := NewFileListing(w, len(files))
	l.Start()
	for _, f := range files {
		l.Step(f)
	}
	l.Complete(output)
}
