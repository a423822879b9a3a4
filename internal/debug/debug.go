// Package debug provides the --debug trace output shared by all packages.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
)

// logger writes timestamped debug lines when enabled.
type logger struct {
	mu      sync.RWMutex
	enabled bool
	noColor bool
	out     io.Writer
}

var std = &logger{out: os.Stderr}

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.enabled = enable
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	std.mu.RLock()
	defer std.mu.RUnlock()
	return std.enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.noColor = disable
}

// SetOutput redirects debug output; nil restores stderr.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	std.out = w
}

func (l *logger) printf(body string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.enabled {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	if l.noColor {
		fmt.Fprintf(l.out, "[DEBUG] %s %s\n", timestamp, body)
		return
	}
	fmt.Fprintf(l.out, "%s[DEBUG]%s %s%s%s %s\n",
		colorCyan, colorReset, colorGray, timestamp, colorReset, body)
}

func (l *logger) highlight(s string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.noColor {
		return s
	}
	return colorCyan + s + colorReset
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	std.printf(fmt.Sprintf(format, args...))
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}
	std.printf(std.highlight("=== " + section + " ==="))
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	std.printf(fmt.Sprintf("%s = %v", std.highlight(key), value))
}
