package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/wlmerge/internal/weave"
)

// FileLogger logs merge events to a per-run file in a log directory.
// It creates one timestamped log file per run and maintains a latest.log
// symlink pointing to the most recent run.
// It is thread-safe and implements the weave.Logger interface.
// Progress is recorded at DEBUG level only, to keep run logs short.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	runID    string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger in logDir with the given level.
// It creates the log directory if it doesn't exist, opens a timestamped
// run log file, and creates/updates the latest.log symlink.
// An empty runID is replaced with a fresh UUID.
func NewFileLogger(logDir, logLevel, runID string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if runID == "" {
		runID = uuid.NewString()
	}

	// Generate timestamped filename: run-YYYYMMDD-HHMMSS.log
	// Runs started within the same second append to the same file; the
	// run ID in each header tells them apart.
	stamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", stamp))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		runID:    runID,
		logLevel: normalizeLogLevel(logLevel),
	}

	logger.writeRunLog("=== wlmerge Run Log ===\n")
	logger.writeRunLog(fmt.Sprintf("Run ID: %s\n", runID))
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// RunFile returns the path of the current run log.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

// RunID returns the identifier written in the run log header.
func (fl *FileLogger) RunID() string {
	return fl.runID
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(level) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogProgress records a progress snapshot at DEBUG level.
// Format: "[HH:MM:SS] [DEBUG] Progress: N% round=N lines=N unique=N bytes=N/N active=N"
func (fl *FileLogger) LogProgress(p weave.Progress) {
	bar := NewProgressBar(p.TotalBytes, 10, false)
	bar.Update(p.BytesRead)
	fl.logWithLevel("DEBUG", fmt.Sprintf("Progress: %d%% round=%d lines=%d unique=%d bytes=%d/%d active=%d",
		bar.Percentage(), p.Rounds, p.LinesRead, p.UniqueLines, p.BytesRead, p.TotalBytes, p.ActiveInputs))
}

// LogSummary writes the merge summary. It is written at every level but error.
func (fl *FileLogger) LogSummary(result *weave.Result) {
	if result == nil || !fl.shouldLog("warn") {
		return
	}

	var b strings.Builder
	b.WriteString("\n=== Merge Summary ===\n")
	fmt.Fprintf(&b, "Files merged: %d\n", result.FilesOpened)
	fmt.Fprintf(&b, "Files skipped: %d\n", result.FilesSkipped)
	fmt.Fprintf(&b, "Rounds: %d\n", result.Rounds)
	fmt.Fprintf(&b, "Lines read: %d\n", result.LinesRead)
	fmt.Fprintf(&b, "Unique lines written: %d\n", result.UniqueLines)
	fmt.Fprintf(&b, "Duplicates removed: %d\n", result.DuplicateLines)
	fmt.Fprintf(&b, "Input read: %s\n", formatBytes(result.BytesRead))
	fmt.Fprintf(&b, "Dedup memory: ~%s\n", formatBytes(result.SeenBytes))
	fmt.Fprintf(&b, "Duration: %s\n", formatDuration(result.Duration))
	fmt.Fprintf(&b, "Completed at: %s\n", time.Now().Format(time.RFC3339))

	fl.writeRunLog(b.String())
}

// writeRunLog writes a message to the run log file (thread-safe).
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
	}
}

// Close closes the run log file. It is safe to call more than once.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return nil
	}
	err := fl.runLog.Close()
	fl.runLog = nil
	return err
}
