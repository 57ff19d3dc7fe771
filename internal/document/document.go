// Package document loads Markdown sources from disk or a reader and hands
// them to the parser with their directory as the image base path.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kk-code-lab/mdpage/internal/debuglog"
	"github.com/kk-code-lab/mdpage/internal/markdown"
)

// MaxSize caps how much of a single source is read.
const MaxSize = 16 << 20

var (
	ErrNotText  = errors.New("document: content is not text")
	ErrTooLarge = errors.New("document: content exceeds size limit")
)

// Document is a decoded Markdown source.
type Document struct {
	// Path is empty for documents read from a stream.
	Path     string
	Dir      string
	Encoding Encoding
	Text     string
}

// Load reads and decodes the file at path.
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	doc, err := Read(f, path)
	if err != nil {
		return Document{}, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	doc.Path = path
	doc.Dir = filepath.Dir(abs)
	return doc, nil
}

// Read decodes a document from r. name is only used for extension sniffing
// and error messages.
func Read(r io.Reader, name string) (Document, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", displayName(name), err)
	}
	if len(content) > MaxSize {
		return Document{}, fmt.Errorf("%s: %w", displayName(name), ErrTooLarge)
	}
	if !IsText(name, content) {
		return Document{}, fmt.Errorf("%s: %w", displayName(name), ErrNotText)
	}

	text, enc := Decode(content)
	debuglog.Debugf("document %s: %d bytes, encoding %s", displayName(name), len(content), enc)
	return Document{Encoding: enc, Text: text}, nil
}

// Parse runs the block parser with the document directory as image base.
// Options given by the caller are applied afterwards and may override it.
func (d Document) Parse(opts ...markdown.Option) []markdown.Element {
	all := make([]markdown.Option, 0, len(opts)+1)
	if d.Dir != "" {
		all = append(all, markdown.WithBasePath(d.Dir))
	}
	all = append(all, opts...)
	elements := markdown.Parse(d.Text, all...)
	debuglog.Debugf("document %s: %d elements", displayName(d.Path), len(elements))
	return elements
}

// ParseFile loads path and parses it.
func ParseFile(path string, opts ...markdown.Option) ([]markdown.Element, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Parse(opts...), nil
}

func displayName(name string) string {
	if name == "" {
		return "<stdin>"
	}
	return name
}
