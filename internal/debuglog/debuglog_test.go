package debuglog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDebugfWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	Debugf("parsed %d blocks from %s", 3, "a.md")
	line := buf.String()
	if !strings.HasSuffix(line, " parsed 3 blocks from a.md\n") {
		t.Fatalf("unexpected log line %q", line)
	}
	if !Enabled() {
		t.Fatalf("expected logging to be enabled after SetOutput")
	}
}

func TestDebugfDisabledIsSilent(t *testing.T) {
	SetOutput(nil)
	if Enabled() {
		t.Fatalf("expected logging disabled")
	}
	Debugf("nothing %s", "here")
}

func TestEnableAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	Enable(path)
	t.Cleanup(func() { SetOutput(nil) })

	Debugf("first")
	Debugf("second")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[1], " second") {
		t.Fatalf("unexpected log contents %q", data)
	}
}
