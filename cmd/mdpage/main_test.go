package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kk-code-lab/mdpage/internal/debuglog"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseStdinJSON(t *testing.T) {
	code, out, errOut := runCLI(t, "# Hi\n\nbody", "parse")
	if code != 0 {
		t.Fatalf("exit=%d stderr=%q", code, errOut)
	}
	var elements []map[string]any
	if err := json.Unmarshal([]byte(out), &elements); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, out)
	}
	if len(elements) != 2 || elements[0]["type"] != "heading" || elements[1]["type"] != "paragraph" {
		t.Fatalf("unexpected elements %v", elements)
	}
}

func TestParseKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, body := range []string{"# one", "---", "- a\n- b", "> quote", "plain"} {
		paths = append(paths, writeFile(t, dir, string(rune('a'+i))+".md", body))
	}
	args := append([]string{"parse", "--jobs", "3"}, paths...)
	code, out, errOut := runCLI(t, "", args...)
	if code != 0 {
		t.Fatalf("exit=%d stderr=%q", code, errOut)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(paths) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(paths), len(lines), out)
	}
	wantTypes := []string{"heading", "horizontalRule", "list", "blockquote", "paragraph"}
	for i, line := range lines {
		var got struct {
			Path     string           `json:"path"`
			Elements []map[string]any `json:"elements"`
		}
		if err := json.Unmarshal([]byte(line), &got); err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		if got.Path != paths[i] || len(got.Elements) != 1 || got.Elements[0]["type"] != wantTypes[i] {
			t.Fatalf("line %d = %s, want %s with %s", i, line, paths[i], wantTypes[i])
		}
	}
}

func TestParseDumpFormat(t *testing.T) {
	code, out, _ := runCLI(t, "## Sub", "parse", "--format", "dump")
	if code != 0 || !strings.Contains(out, "Heading{") || !strings.Contains(out, `"Sub"`) {
		t.Fatalf("exit=%d dump=%s", code, out)
	}
}

func TestParseResolvesImagesAgainstDocumentDir(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.md", "![x](img/a.png)")
	code, out, errOut := runCLI(t, "", "parse", path)
	if code != 0 {
		t.Fatalf("exit=%d stderr=%q", code, errOut)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		t.Fatal(err)
	}
	var elements []map[string]any
	if err := json.Unmarshal([]byte(out), &elements); err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(abs, "img", "a.png"); elements[0]["src"] != want {
		t.Fatalf("src=%v want %s", elements[0]["src"], want)
	}

	code, out, _ = runCLI(t, "", "parse", "--base-path", "/assets", path)
	if code != 0 || !strings.Contains(out, filepath.Join("/assets", "img", "a.png")) {
		t.Fatalf("--base-path not applied: exit=%d out=%s", code, out)
	}
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing file", []string{"parse", filepath.Join(t.TempDir(), "nope.md")}, exitIO},
		{"bad format", []string{"parse", "--format", "xml"}, exitUsage},
		{"bad indent step", []string{"parse", "--indent-step", "0"}, exitUsage},
		{"unknown flag", []string{"preview", "--bogus"}, exitUsage},
		{"too many args", []string{"preview", "a.md", "b.md"}, exitUsage},
		{"bad color", []string{"preview", "--color", "sometimes"}, exitUsage},
		{"unknown command", []string{"render"}, exitUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, "text", tt.args...)
			if code != tt.want {
				t.Fatalf("run(%q)=%d want %d (stderr %q)", tt.args, code, tt.want, errOut)
			}
			if !strings.HasPrefix(errOut, "mdpage: ") {
				t.Fatalf("stderr=%q lacks prefix", errOut)
			}
		})
	}
}

func TestPreviewCommand(t *testing.T) {
	code, out, errOut := runCLI(t, "# Title\n\nHello 😀", "preview", "--color", "never", "--width", "30", "--emoji-placeholder", "[e]")
	if code != 0 {
		t.Fatalf("exit=%d stderr=%q", code, errOut)
	}
	if want := "# Title\n\nHello [e]\n"; out != want {
		t.Fatalf("preview=%q want %q", out, want)
	}
}

func TestSegmentsCommand(t *testing.T) {
	code, out, _ := runCLI(t, "", "segments", "Hi", "😀")
	if code != 0 {
		t.Fatalf("exit=%d", code)
	}
	for _, want := range []string{"0-3\ttext\tHi \n", "3-7\temoji\t😀\n", "clusters: 4\n", "hasEmoji: true\n", "countEmojis: 1\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("segments output %q missing %q", out, want)
		}
	}

	_, out, _ = runCLI(t, "x\u200By\n", "segments")
	if !strings.Contains(out, "x⟪ZWSP⟫y") || !strings.Contains(out, "hasEmoji: false") {
		t.Fatalf("stdin segments output %q", out)
	}
}

func TestPagesCommand(t *testing.T) {
	doc := "a\n\n---PAGE_BREAK---\n\n# H\n\nb\n\nc\n\n---PAGE_BREAK---"
	code, out, _ := runCLI(t, doc, "pages")
	if code != 0 {
		t.Fatalf("exit=%d", code)
	}
	want := "pages: 3\npage 1: paragraph\npage 2: heading, paragraph x2\npage 3: (empty)\n"
	if out != want {
		t.Fatalf("pages=%q want %q", out, want)
	}
}

func TestWorkerCount(t *testing.T) {
	if got := workerCount(4, 2); got != 2 {
		t.Fatalf("workerCount(4, 2)=%d", got)
	}
	if got := workerCount(0, 100); got < 1 || got > maxParseWorkers {
		t.Fatalf("workerCount(0, 100)=%d", got)
	}
	if got := workerCount(0, 0); got != 1 {
		t.Fatalf("workerCount(0, 0)=%d", got)
	}
}

func TestSegmentsInlineSpans(t *testing.T) {
	code, out, _ := runCLI(t, "", "segments", "--inline", "a", "***b***", "[c](d)")
	if code != 0 {
		t.Fatalf("exit=%d", code)
	}
	want := `[{"type":"text","content":"a "},{"type":"bold","content":"b"},{"type":"text","content":" "},{"type":"link","content":"c","href":"d"}]` + "\n"
	if out != want {
		t.Fatalf("spans=%q want %q", out, want)
	}
}

func TestDebugLogFlag(t *testing.T) {
	t.Cleanup(func() { debuglog.SetOutput(nil) })
	logPath := filepath.Join(t.TempDir(), "debug.log")
	if code, _, errOut := runCLI(t, "", "--debug-log", logPath, "segments", "x"); code != 0 {
		t.Fatalf("exit=%d stderr=%q", code, errOut)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read debug log: %v", err)
	}
	if !strings.Contains(string(data), `segments ["x"]`) {
		t.Fatalf("debug log missing command line: %q", data)
	}
}
