package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger handles application logging. Log lines go to the run file when one
// is open; Print lines also go to the console.
type Logger struct {
	file    *os.File
	console io.Writer
	runID   string
	mu      sync.Mutex
}

// NewLogger creates a new Logger instance printing progress to console
func NewLogger(console io.Writer) *Logger {
	if console == nil {
		console = io.Discard
	}
	return &Logger{console: console, runID: uuid.New().String()[:8]}
}

// RunID identifies this process's log lines.
func (l *Logger) RunID() string { return l.runID }

// Init initializes the logging to a file in the specified directory
func (l *Logger) Init(logDir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %v", err)
	}

	dateStr := time.Now().Format("2006-01-02")
	pattern := filepath.Join(logDir, fmt.Sprintf("slidecomposer_%s_*.log", dateStr))
	matches, _ := filepath.Glob(pattern)
	runCount := len(matches) + 1
	filename := filepath.Join(logDir, fmt.Sprintf("slidecomposer_%s_%d.log", dateStr, runCount))

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	l.file = f
	l.logInternal("Run started " + l.runID)
	return nil
}

// Path returns the open log file, or "" when logging to file is off.
func (l *Logger) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Log writes a message to the log file
func (l *Logger) Log(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logInternal(message)
}

// Logf writes a formatted message to the log file
func (l *Logger) Logf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logInternal(fmt.Sprintf(format, args...))
}

// Print writes a progress line to the console and the log file
func (l *Logger) Print(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, message)
	l.logInternal(message)
}

// Printf is Print with formatting
func (l *Logger) Printf(format string, args ...interface{}) {
	l.Print(fmt.Sprintf(format, args...))
}

func (l *Logger) logInternal(message string) {
	if l.file == nil {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(l.file, "[%s] [%s] %s\n", timestamp, l.runID, message)
}

// Close closes the log file
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.logInternal("Run finished.")
		l.file.Close()
		l.file = nil
	}
}
