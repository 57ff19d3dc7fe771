package preview

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kk-code-lab/mdpage/internal/markdown"
	"github.com/kk-code-lab/mdpage/internal/textutil"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// WriteOptions controls how lines are laid out on a terminal.
type WriteOptions struct {
	// Width is the wrap column. Zero disables wrapping and truncation.
	Width int
	// Color enables ANSI styling.
	Color bool
}

const (
	unboundedRuleWidth = 40
	minWrapWidth       = 10
)

// Write prints lines to w, wrapping text lines at opts.Width.
func Write(w io.Writer, lines []Line, opts WriteOptions) error {
	var b strings.Builder
	for _, line := range lines {
		switch line.Kind {
		case LineRule:
			b.WriteString(styled(strings.Repeat("─", ruleWidth(opts.Width)), StyleRule, opts.Color))
		case LinePageBreak:
			b.WriteString(styled(pageRule(line.Page, ruleWidth(opts.Width)), StyleRule, opts.Color))
		default:
			b.WriteString(layoutText(line, opts))
		}
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}

func ruleWidth(width int) int {
	if width <= 0 {
		return unboundedRuleWidth
	}
	return width
}

// pageRule centers a "page N" label inside a horizontal rule.
func pageRule(page, width int) string {
	label := " page " + strconv.Itoa(page) + " "
	fill := width - textutil.DisplayWidth(label)
	if fill < 2 {
		return strings.TrimSpace(label)
	}
	left := fill / 2
	return strings.Repeat("─", left) + label + strings.Repeat("─", fill-left)
}

func layoutText(line Line, opts WriteOptions) string {
	var body strings.Builder
	for _, run := range line.Runs {
		body.WriteString(styled(textutil.SanitizeTerminalText(run.Text), run.Style, opts.Color))
	}
	text := body.String()
	prefix := line.Prefix
	if prefix != "" {
		prefix = styled(prefix, StyleQuote, opts.Color)
	}
	avail := opts.Width - ansi.PrintableRuneWidth(prefix)

	if opts.Width <= 0 || avail <= 0 {
		return prefix + text
	}
	if line.Verbatim {
		if ansi.PrintableRuneWidth(text) > avail {
			text = truncate.StringWithTail(text, uint(avail), "…")
		}
		return prefix + text
	}

	limit := avail - line.Indent
	if limit < minWrapWidth {
		limit = avail
	}
	wrapped := strings.Split(wordwrap.String(text, limit), "\n")
	if line.Indent > 0 && len(wrapped) > 1 {
		rest := indent.String(strings.Join(wrapped[1:], "\n"), uint(line.Indent))
		wrapped = append(wrapped[:1], strings.Split(rest, "\n")...)
	}
	for i, l := range wrapped {
		wrapped[i] = prefix + align(strings.TrimRight(l, " "), line.Align, avail)
	}
	return strings.Join(wrapped, "\n")
}

func align(text string, a markdown.TextAlign, width int) string {
	gap := width - ansi.PrintableRuneWidth(text)
	if gap <= 0 {
		return text
	}
	switch a {
	case markdown.AlignCenter:
		return strings.Repeat(" ", gap/2) + text
	case markdown.AlignRight:
		return strings.Repeat(" ", gap) + text
	}
	return text
}

func styled(text string, style Style, color bool) string {
	if !color || text == "" {
		return text
	}
	prefix, ok := ansiPrefixes[style]
	if !ok {
		return text
	}
	return prefix + text + ansiReset
}
