// Package debuglog writes timestamped diagnostics to a file when MDPAGE_DEBUG=1.
// The target file defaults to mdpage-debug.log and can be changed with
// MDPAGE_DEBUG_FILE.
package debuglog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const defaultFile = "mdpage-debug.log"

var (
	mu      sync.Mutex
	enabled = os.Getenv("MDPAGE_DEBUG") == "1"
	file    = envOr("MDPAGE_DEBUG_FILE", defaultFile)
	out     io.Writer
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Enabled reports whether debug output is switched on.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Enable turns logging on and appends to path. An empty path keeps the
// current file.
func Enable(path string) {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
	if path != "" {
		file = path
	}
	out = nil
}

// SetOutput redirects log lines to w instead of the log file. Passing nil
// restores file output and disables logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	enabled = w != nil
}

// Debugf appends one line prefixed with an RFC 3339 timestamp.
func Debugf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return
	}
	line := fmt.Sprintf("%s "+format+"\n", append([]any{time.Now().Format(time.RFC3339Nano)}, args...)...)
	if out != nil {
		_, _ = io.WriteString(out, line)
		return
	}

	f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	_, _ = io.WriteString(f, line)
	_ = f.Close()
}
