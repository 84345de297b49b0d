// Package logger provides logging implementations for wlmerge runs.
//
// Loggers write diagnostics only: warnings, progress and the final summary.
// Merged output never passes through this package. Console and file
// implementations share the same level names and message formats.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/harrison/wlmerge/internal/weave"
	"github.com/mattn/go-isatty"
)

// ConsoleLogger logs merge progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// It supports log level filtering to control message verbosity.
// Color output and in-place progress redraw are enabled when the writer is a terminal.
type ConsoleLogger struct {
	writer       io.Writer
	logLevel     string
	mutex        sync.Mutex
	colorOutput  bool
	inPlace      bool
	progressOpen bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	tty := IsTerminal(writer)
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: tty && os.Getenv("NO_COLOR") == "",
		inPlace:     tty,
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// paint applies attributes when color output is on.
func (cl *ConsoleLogger) paint(s string, attrs ...color.Attribute) string {
	if !cl.colorOutput {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// LogTrace logs a trace-level message (most verbose).
// Format: "[HH:MM:SS] [TRACE] <message>"
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel is a helper that logs a message at the specified level if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !cl.shouldLog(level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	var coloredLevel string
	switch level {
	case "TRACE":
		coloredLevel = cl.paint(level, color.FgHiBlack)
	case "DEBUG":
		coloredLevel = cl.paint(level, color.FgCyan)
	case "INFO":
		coloredLevel = cl.paint(level, color.FgBlue)
	case "WARN":
		coloredLevel = cl.paint(level, color.FgYellow)
	case "ERROR":
		coloredLevel = cl.paint(level, color.FgRed)
	default:
		coloredLevel = level
	}

	cl.write(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), coloredLevel, message))
}

// write emits s, first terminating any open in-place progress line.
// Callers hold the mutex.
func (cl *ConsoleLogger) write(s string) {
	if cl.progressOpen {
		io.WriteString(cl.writer, "\n")
		cl.progressOpen = false
	}
	io.WriteString(cl.writer, s)
}

// LogProgress logs merge progress at INFO level.
// Format: "[HH:MM:SS] Progress: [===       ] 3.0 MiB/10.0 MiB (30%) - 1200 unique lines, 3 active inputs"
// On a terminal the line is redrawn in place.
func (cl *ConsoleLogger) LogProgress(p weave.Progress) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	pb := NewProgressBar(p.TotalBytes, 10, cl.colorOutput)
	pb.Update(p.BytesRead)
	msg := fmt.Sprintf("[%s] Progress: %s - %d unique lines, %d active inputs",
		timestamp(), pb.Render(), p.UniqueLines, p.ActiveInputs)

	if cl.inPlace {
		// \x1b[K clears what a longer previous line left behind
		io.WriteString(cl.writer, "\r"+msg+"\x1b[K")
		cl.progressOpen = true
		return
	}
	cl.write(msg + "\n")
}

// LogSummary logs the merge summary at INFO level.
func (cl *ConsoleLogger) LogSummary(result *weave.Result) {
	if cl.writer == nil || result == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s\n", ts, cl.paint("=== Merge Summary ===", color.Bold))
	fmt.Fprintf(&b, "[%s] Files merged: %d\n", ts, result.FilesOpened)
	if result.FilesSkipped > 0 {
		fmt.Fprintf(&b, "[%s] %s\n", ts, cl.paint(fmt.Sprintf("Files skipped: %d", result.FilesSkipped), color.FgRed))
	}
	fmt.Fprintf(&b, "[%s] Lines read: %d\n", ts, result.LinesRead)
	fmt.Fprintf(&b, "[%s] %s\n", ts, cl.paint(fmt.Sprintf("Unique lines written: %d", result.UniqueLines), color.FgGreen))
	fmt.Fprintf(&b, "[%s] %s\n", ts, cl.paint(fmt.Sprintf("Duplicates removed: %d", result.DuplicateLines), color.FgYellow))
	fmt.Fprintf(&b, "[%s] Input read: %s\n", ts, formatBytes(result.BytesRead))
	fmt.Fprintf(&b, "[%s] Dedup memory: ~%s\n", ts, formatBytes(result.SeenBytes))
	fmt.Fprintf(&b, "[%s] Duration: %s\n", ts, formatDuration(result.Duration))

	cl.write(b.String())
}

// Flush terminates an open in-place progress line.
func (cl *ConsoleLogger) Flush() {
	if cl.writer == nil {
		return
	}
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.write("")
}
