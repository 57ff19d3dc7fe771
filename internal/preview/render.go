// Package preview renders parsed Markdown elements as styled terminal text.
package preview

import (
	"strconv"
	"strings"

	"github.com/kk-code-lab/mdpage/internal/markdown"
	"github.com/kk-code-lab/mdpage/internal/textseg"
	"github.com/kk-code-lab/mdpage/internal/textutil"
)

// LineKind distinguishes text lines from rules drawn at write time.
type LineKind int

const (
	LineText LineKind = iota
	LineRule
	LinePageBreak
)

// Line is one logical output line. Text lines are word wrapped when written
// unless Verbatim is set, in which case they are truncated instead.
type Line struct {
	Kind LineKind
	Runs []Run
	// Prefix is repeated on every wrapped line, Indent only on continuations.
	Prefix   string
	Indent   int
	Verbatim bool
	Align    markdown.TextAlign
	// Page is the number of the page that starts after a page break.
	Page int
}

// Options tunes Render.
type Options struct {
	// EmojiPlaceholder replaces every emoji cluster when non-empty.
	EmojiPlaceholder string
	// MaxCellWidth caps table column width. Zero uses the default.
	MaxCellWidth int
}

const defaultMaxCellWidth = 40

// Render lays out elements as preview lines. Item text, table cells and
// captions are passed through the inline parser here, and every text run is
// split into emoji and plain segments.
func Render(elements []markdown.Element, opts Options) []Line {
	if opts.MaxCellWidth <= 0 {
		opts.MaxCellWidth = defaultMaxCellWidth
	}
	r := renderer{opts: opts, page: 1}
	var lines []Line
	for idx, el := range elements {
		rendered := r.block(el)
		if idx > 0 && len(rendered) > 0 && len(lines) > 0 && !isBlank(lines[len(lines)-1]) {
			lines = append(lines, Line{})
		}
		lines = append(lines, rendered...)
	}
	return lines
}

func isBlank(l Line) bool {
	return l.Kind == LineText && len(l.Runs) == 0 && l.Prefix == ""
}

type renderer struct {
	opts Options
	page int
}

func (r *renderer) block(el markdown.Element) []Line {
	switch b := el.(type) {
	case markdown.Heading:
		runs := []Run{{Text: strings.Repeat("#", b.Level) + " ", Style: StyleMarker}}
		runs = append(runs, r.inlineRuns(b.Inline, StyleHeading)...)
		return []Line{{Runs: runs, Align: b.TextAlign}}
	case markdown.Paragraph:
		return r.paragraph(b.Inline, "", StylePlain)
	case markdown.Blockquote:
		return r.paragraph(b.Inline, "│ ", StyleQuote)
	case markdown.List:
		return r.list(b)
	case markdown.Checklist:
		return r.checklist(b)
	case markdown.CodeBlock:
		return codeLines(b.Content, b.Language)
	case markdown.MermaidDiagram:
		return r.mermaid(b)
	case markdown.Table:
		return r.table(b)
	case markdown.Image:
		return []Line{{Runs: r.image(b)}}
	case markdown.HorizontalRule:
		return []Line{{Kind: LineRule}}
	case markdown.PageBreak:
		r.page++
		return []Line{{Kind: LinePageBreak, Page: r.page}}
	default:
		return nil
	}
}

func (r *renderer) paragraph(inlines []markdown.Inline, prefix string, base Style) []Line {
	var lines []Line
	var current []Run
	for _, in := range inlines {
		if in.Kind == markdown.InlineLineBreak {
			lines = append(lines, Line{Runs: current, Prefix: prefix})
			current = nil
			continue
		}
		current = append(current, r.inlineRuns([]markdown.Inline{in}, base)...)
	}
	return append(lines, Line{Runs: current, Prefix: prefix})
}

func (r *renderer) list(list markdown.List) []Line {
	lines := make([]Line, 0, len(list.Items))
	// Ordinals count per nesting level and restart when a level is reopened.
	counters := map[int]int{}
	for idx, item := range list.Items {
		depth := 0
		if idx < len(list.IndentLevels) {
			depth = list.IndentLevels[idx]
		}
		for d := range counters {
			if d > depth {
				delete(counters, d)
			}
		}
		counters[depth]++
		number := counters[depth]
		if depth == 0 && list.Start > 0 {
			number += list.Start - 1
		}
		pad := strings.Repeat("  ", depth)
		bullet := bulletSymbol(depth, list.Ordered, number)
		runs := []Run{{Text: pad + bullet + " ", Style: StyleMarker}}
		runs = append(runs, r.inlineRuns(markdown.ParseInline(item), StylePlain)...)
		lines = append(lines, Line{
			Runs:   runs,
			Indent: textutil.DisplayWidth(pad+bullet) + 1,
		})
	}
	return lines
}

func (r *renderer) checklist(list markdown.Checklist) []Line {
	lines := make([]Line, 0, len(list.Items))
	for idx, item := range list.Items {
		box := "☐"
		if idx < len(list.Checked) && list.Checked[idx] {
			box = "☑"
		}
		runs := []Run{{Text: box + " ", Style: StyleMarker}}
		runs = append(runs, r.inlineRuns(markdown.ParseInline(item), StylePlain)...)
		lines = append(lines, Line{Runs: runs, Indent: textutil.DisplayWidth(box) + 1})
	}
	return lines
}

func codeLines(content, language string) []Line {
	const prefix = "    "
	lines := make([]Line, 0, strings.Count(content, "\n")+2)
	if language != "" {
		lines = append(lines, Line{Runs: []Run{{Text: prefix + "[" + language + "]", Style: StyleCaption}}, Verbatim: true})
	}
	for _, line := range strings.Split(content, "\n") {
		text := textutil.ExpandTabs(line, textutil.DefaultTabWidth)
		lines = append(lines, Line{Runs: []Run{{Text: prefix + text, Style: StyleCodeBlock}}, Verbatim: true})
	}
	return lines
}

func (r *renderer) mermaid(d markdown.MermaidDiagram) []Line {
	label := []Run{{Text: "[diagram]", Style: StyleCaption}}
	if d.Caption != "" {
		label = append(label, Run{Text: " ", Style: StyleCaption})
		label = append(label, r.inlineRuns(markdown.ParseInline(d.Caption), StyleCaption)...)
	}
	lines := []Line{{Runs: label}}
	return append(lines, codeLines(d.Diagram, "")...)
}

func (r *renderer) image(img markdown.Image) []Run {
	runs := []Run{{Text: "[image", Style: StyleCaption}}
	if img.Alt != "" {
		runs = append(runs, Run{Text: ": ", Style: StyleCaption})
		runs = append(runs, r.textRuns(img.Alt, StyleCaption)...)
	}
	runs = append(runs, Run{Text: "]", Style: StyleCaption})
	if img.Src != "" {
		runs = append(runs, Run{Text: " (", Style: StylePlain}, Run{Text: img.Src, Style: StyleLink}, Run{Text: ")", Style: StylePlain})
	}
	return runs
}

// inlineRuns maps flat spans to styled runs. base applies to plain text.
func (r *renderer) inlineRuns(inlines []markdown.Inline, base Style) []Run {
	var runs []Run
	for _, in := range inlines {
		switch in.Kind {
		case markdown.InlineText:
			runs = append(runs, r.textRuns(in.Content, base)...)
		case markdown.InlineBold:
			runs = append(runs, r.textRuns(in.Content, StyleStrong)...)
		case markdown.InlineItalic:
			runs = append(runs, r.textRuns(in.Content, StyleEmphasis)...)
		case markdown.InlineStrike:
			runs = append(runs, r.textRuns(in.Content, StyleStrike)...)
		case markdown.InlineCode:
			runs = append(runs, Run{Text: in.Content, Style: StyleCode})
		case markdown.InlineLink:
			runs = append(runs, r.textRuns(in.Content, StyleLink)...)
			if in.Href != "" && in.Href != in.Content && safeHref(in.Href) {
				runs = append(runs, Run{Text: " (", Style: StylePlain}, Run{Text: in.Href, Style: StyleLink}, Run{Text: ")", Style: StylePlain})
			}
		case markdown.InlineLineBreak:
			runs = append(runs, Run{Text: " ", Style: base})
		}
	}
	return runs
}

// textRuns splits text into emoji and plain runs, substituting the emoji
// placeholder when one is configured.
func (r *renderer) textRuns(text string, style Style) []Run {
	if text == "" {
		return nil
	}
	segments := textseg.Split(text)
	runs := make([]Run, 0, len(segments))
	for _, seg := range segments {
		content := seg.Text
		if seg.IsEmoji && r.opts.EmojiPlaceholder != "" {
			content = strings.Repeat(r.opts.EmojiPlaceholder, textseg.CountEmojis(seg.Text))
		}
		runs = append(runs, Run{Text: content, Style: style, Emoji: seg.IsEmoji})
	}
	return runs
}

// safeHref rejects link targets that should not be shown as clickable text:
// script schemes, protocol-relative URLs and targets hiding formatting runes.
func safeHref(href string) bool {
	if strings.HasPrefix(href, "//") {
		return false
	}
	if _, changed := textutil.ReplaceFormattingRunes(href); changed {
		return false
	}
	if idx := strings.IndexByte(href, ':'); idx > 0 && !strings.ContainsAny(href[:idx], "/?#") {
		switch strings.ToLower(href[:idx]) {
		case "http", "https", "mailto", "ftp", "file":
		default:
			return false
		}
	}
	return true
}

func bulletSymbol(depth int, ordered bool, number int) string {
	if ordered {
		return strconv.Itoa(number) + "."
	}
	switch depth {
	case 0:
		return "•"
	case 1:
		return "◦"
	default:
		return "▪"
	}
}
