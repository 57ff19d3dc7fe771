package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kk-code-lab/mdpage/internal/markdown"
	"github.com/muesli/reflow/ansi"
	"github.com/sanity-io/litter"
)

func writeString(t *testing.T, lines []Line, opts WriteOptions) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, lines, opts); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return buf.String()
}

func TestRenderSplitsEmojiRuns(t *testing.T) {
	lines := Render(markdown.Parse("# Title\n\nHello 😀 world"), Options{})
	if len(lines) != 3 {
		t.Fatalf("expected heading, blank, paragraph; got %s", litter.Sdump(lines))
	}
	runs := lines[2].Runs
	if len(runs) != 3 || !runs[1].Emoji || runs[1].Text != "😀" || runs[0].Emoji || runs[2].Emoji {
		t.Fatalf("unexpected paragraph runs %s", litter.Sdump(runs))
	}
}

func TestRenderEmojiPlaceholder(t *testing.T) {
	lines := Render(markdown.Parse("Hi 😀😀 and **bold 🎉**"), Options{EmojiPlaceholder: "[e]"})
	if got := joinRunsText(lines[0].Runs); got != "Hi [e][e] and bold [e]" {
		t.Fatalf("placeholder text=%q", got)
	}
}

func TestWriteDocument(t *testing.T) {
	doc := "# Title\n\n- a\n  - b\n\n---PAGE_BREAK---\n\n> q"
	got := writeString(t, Render(markdown.Parse(doc), Options{}), WriteOptions{})
	rule := strings.Repeat("─", 16) + " page 2 " + strings.Repeat("─", 16)
	want := "# Title\n\n• a\n  ◦ b\n\n" + rule + "\n\n│ q\n"
	if got != want {
		t.Fatalf("Write=\n%q\nwant\n%q", got, want)
	}
}

func TestRenderOrderedNumbering(t *testing.T) {
	list := markdown.List{
		Ordered:      true,
		Start:        3,
		Items:        []string{"a", "b", "c"},
		IndentLevels: []int{0, 1, 0},
	}
	got := writeString(t, Render([]markdown.Element{list}, Options{}), WriteOptions{})
	if want := "3. a\n  1. b\n4. c\n"; got != want {
		t.Fatalf("ordered list=%q want %q", got, want)
	}
}

func TestRenderTable(t *testing.T) {
	elements := markdown.Parse("| A | Long |\n|:-:|--:|\n| 1 | 2 |")
	got := writeString(t, Render(elements, Options{}), WriteOptions{})
	want := strings.Join([]string{
		"┌───┬──────┐",
		"│ A │ Long │",
		"├───┼──────┤",
		"│ 1 │    2 │",
		"└───┴──────┘",
	}, "\n") + "\n"
	if got != want {
		t.Fatalf("table=\n%s\nwant\n%s", got, want)
	}
}

func TestRenderTableTruncatesWideCells(t *testing.T) {
	elements := markdown.Parse("| H |\n|---|\n| abcdefgh |")
	got := writeString(t, Render(elements, Options{MaxCellWidth: 5}), WriteOptions{})
	if !strings.Contains(got, "│ abcd… │") {
		t.Fatalf("expected truncated cell, got\n%s", got)
	}
}

func TestWriteWrapsParagraphs(t *testing.T) {
	lines := Render(markdown.Parse("alpha beta gamma delta epsilon"), Options{})
	got := writeString(t, lines, WriteOptions{Width: 20})
	if want := "alpha beta gamma\ndelta epsilon\n"; got != want {
		t.Fatalf("wrapped=%q want %q", got, want)
	}
}

func TestWriteHangingIndentForListItems(t *testing.T) {
	lines := Render(markdown.Parse("- alpha beta gamma delta epsilon zeta eta theta"), Options{})
	got := strings.Split(strings.TrimSuffix(writeString(t, lines, WriteOptions{Width: 20}), "\n"), "\n")
	if len(got) < 2 {
		t.Fatalf("expected wrapped list item, got %q", got)
	}
	for i, line := range got {
		if w := ansi.PrintableRuneWidth(line); w > 20 {
			t.Fatalf("line %d %q exceeds width: %d", i, line, w)
		}
		if i > 0 && !strings.HasPrefix(line, "  ") {
			t.Fatalf("continuation line %q lacks hanging indent", line)
		}
	}
}

func TestWriteColorAndSanitizing(t *testing.T) {
	colored := writeString(t, Render(markdown.Parse("**b**"), Options{}), WriteOptions{Color: true})
	if !strings.Contains(colored, "\x1b[1mb\x1b[0m") {
		t.Fatalf("expected bold escape, got %q", colored)
	}

	plain := writeString(t, Render(markdown.Parse("bad \x1b[31m text"), Options{}), WriteOptions{})
	if plain != "bad ?[31m text\n" {
		t.Fatalf("expected control escape to be neutralized, got %q", plain)
	}
}

func TestRenderChecklistAndImage(t *testing.T) {
	doc := "- [x] done\n- [ ] todo\n\n![Logo](logo.png)\n\n```mermaid caption=\"Flow\"\ngraph TD\n```"
	got := writeString(t, Render(markdown.Parse(doc), Options{}), WriteOptions{})
	want := "☑ done\n☐ todo\n\n[image: Logo] (logo.png)\n\n[diagram] Flow\n    graph TD\n"
	if got != want {
		t.Fatalf("Write=%q want %q", got, want)
	}
}

func TestPageRuleNarrowWidth(t *testing.T) {
	if got := pageRule(3, 5); got != "page 3" {
		t.Fatalf("pageRule=%q", got)
	}
}

func TestSafeHref(t *testing.T) {
	tests := []struct {
		href string
		want bool
	}{
		{"http://example.com/path", true},
		{"mailto:test@example.com", true},
		{"docs/guide.md#intro", true},
		{"javascript:alert(1)", false},
		{"//example.com", false},
		{"http://example.com/\u202E", false},
	}
	for _, tt := range tests {
		if got := safeHref(tt.href); got != tt.want {
			t.Fatalf("safeHref(%q)=%v want %v", tt.href, got, tt.want)
		}
	}

	lines := Render(markdown.Parse("[run](javascript:alert(1)) and [docs](https://x.dev)"), Options{})
	if got := joinRunsText(lines[0].Runs); got != "run and docs (https://x.dev)" {
		t.Fatalf("link text=%q", got)
	}
}
