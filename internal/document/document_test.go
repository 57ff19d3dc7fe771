package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kk-code-lab/mdpage/internal/markdown"
)

func TestParseFileResolvesImagesAgainstFileDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# Title\r\n\r\n![Logo](img/logo.png)\r\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	elements, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elements))
	}
	img, ok := elements[1].(markdown.Image)
	if !ok {
		t.Fatalf("expected image, got %T", elements[1])
	}
	abs, _ := filepath.Abs(dir)
	if want := filepath.Join(abs, "img", "logo.png"); img.Src != want {
		t.Fatalf("image src=%q want %q", img.Src, want)
	}
}

func TestParseOptionsOverrideBasePath(t *testing.T) {
	doc := Document{Dir: "/docs", Text: "![a](b.png)"}
	elements := doc.Parse(markdown.WithBasePath(""))
	if img := elements[0].(markdown.Image); img.Src != "b.png" {
		t.Fatalf("expected caller option to win, got %q", img.Src)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.md"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestReadRejectsBinary(t *testing.T) {
	_, err := Read(strings.NewReader("a\x00b"), "")
	if !errors.Is(err, ErrNotText) {
		t.Fatalf("expected ErrNotText, got %v", err)
	}
	if !strings.Contains(err.Error(), "<stdin>") {
		t.Fatalf("expected stdin name in error, got %v", err)
	}
}

func TestReadRejectsOversizedInput(t *testing.T) {
	_, err := Read(strings.NewReader(strings.Repeat("a", MaxSize+1)), "big.md")
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}
