package markdown

import (
	"strings"
)

const (
	pageBreakMarker   = "---PAGE_BREAK---"
	defaultIndentStep = 2
)

// Option configures Parse.
type Option func(*parseConfig)

type parseConfig struct {
	basePath   string
	indentStep int
}

// WithBasePath resolves relative image sources against dir.
func WithBasePath(dir string) Option {
	return func(cfg *parseConfig) {
		cfg.basePath = dir
	}
}

// WithIndentStep sets how many leading spaces make one list nesting level.
// A tab always counts as one level. Values below one are ignored.
func WithIndentStep(n int) Option {
	return func(cfg *parseConfig) {
		if n > 0 {
			cfg.indentStep = n
		}
	}
}

// Parse converts a document into an ordered sequence of block elements.
// It never fails: unrecognised or broken syntax degrades to the nearest
// plain interpretation, and an unterminated fence runs to the end of input.
func Parse(document string, opts ...Option) []Element {
	cfg := parseConfig{indentStep: defaultIndentStep}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if document == "" {
		return nil
	}
	return parseBlocks(splitLines(document), cfg)
}

func splitLines(document string) []string {
	document = strings.ReplaceAll(document, "\r\n", "\n")
	document = strings.ReplaceAll(document, "\r", "\n")
	return strings.Split(document, "\n")
}

func parseBlocks(lines []string, cfg parseConfig) []Element {
	var blocks []Element
	i := 0
	for i < len(lines) {
		line := lines[i]
		if isBlankLine(line) {
			i++
			continue
		}
		trimmed := strings.TrimSpace(line)

		if trimmed == pageBreakMarker {
			blocks = append(blocks, PageBreak{})
			i++
			continue
		}

		if fence, ok := detectFence(trimmed); ok {
			block, next := parseFencedBlock(lines, i, fence)
			blocks = append(blocks, block)
			i = next
			continue
		}

		if level, text, ok := parseHeading(trimmed); ok {
			content, align := splitHeadingAlign(text)
			blocks = append(blocks, Heading{
				Level:     level,
				Content:   content,
				Inline:    ParseInline(content),
				TextAlign: align,
			})
			i++
			continue
		}

		if isHorizontalRule(trimmed) {
			blocks = append(blocks, HorizontalRule{})
			i++
			continue
		}

		if tbl, next, ok := parseTable(lines, i); ok {
			blocks = append(blocks, tbl)
			i = next
			continue
		}

		if img, ok := parseImageLine(trimmed, cfg.basePath); ok {
			blocks = append(blocks, img)
			i++
			continue
		}

		if _, _, ok := parseChecklistItem(line); ok {
			checklist, next := parseChecklist(lines, i, cfg.indentStep)
			blocks = append(blocks, checklist)
			i = next
			continue
		}

		if _, ok := parseListMarker(line, cfg.indentStep); ok {
			list, next := parseList(lines, i, cfg)
			blocks = append(blocks, list)
			i = next
			continue
		}

		if isQuoteLine(trimmed) {
			quote, next := parseBlockquote(lines, i)
			blocks = append(blocks, quote)
			i = next
			continue
		}

		paragraph, next := parseParagraph(lines, i, cfg.indentStep)
		blocks = append(blocks, paragraph)
		i = next
	}
	return blocks
}

func parseParagraph(lines []string, start, indentStep int) (Paragraph, int) {
	var parts []string
	i := start
	for i < len(lines) {
		if isBlankLine(lines[i]) {
			break
		}
		if i > start && startsBlock(lines, i, indentStep) {
			break
		}
		parts = append(parts, strings.TrimLeft(lines[i], " \t"))
		i++
	}

	text := joinParagraphLines(parts)
	return Paragraph{Content: text, Inline: ParseInline(text)}, i
}

func parseBlockquote(lines []string, start int) (Blockquote, int) {
	var quoteLines []string
	i := start
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if !isQuoteLine(trimmed) {
			break
		}
		stripped := strings.TrimPrefix(trimmed, ">")
		stripped = strings.TrimPrefix(stripped, " ")
		quoteLines = append(quoteLines, strings.TrimRight(stripped, " \t"))
		i++
	}

	text := strings.Join(quoteLines, "\n")
	return Blockquote{Content: text, Inline: ParseInline(text)}, i
}

func isQuoteLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, ">")
}

func parseHeading(trimmed string) (int, string, bool) {
	if !strings.HasPrefix(trimmed, "#") {
		return 0, "", false
	}
	level := countRepeatByte(trimmed, '#')
	if level > 6 {
		return 0, "", false
	}
	rest := trimmed[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, "", false
	}
	text := strings.TrimSpace(rest)
	if text == "" {
		return 0, "", false
	}
	return level, text, true
}

// splitHeadingAlign strips a trailing `{align=center}` attribute.
func splitHeadingAlign(text string) (string, TextAlign) {
	if !strings.HasSuffix(text, "}") {
		return text, AlignNone
	}
	open := strings.LastIndex(text, "{")
	if open < 0 {
		return text, AlignNone
	}
	attr := strings.TrimSpace(text[open+1 : len(text)-1])
	key, value, ok := strings.Cut(attr, "=")
	if !ok || strings.TrimSpace(key) != "align" {
		return text, AlignNone
	}
	value = strings.Trim(strings.TrimSpace(value), `"'`)
	align := TextAlign(strings.ToLower(value))
	switch align {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return strings.TrimSpace(text[:open]), align
	}
	return text, AlignNone
}

func isHorizontalRule(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	first := trimmed[0]
	if first != '-' && first != '*' && first != '_' {
		return false
	}
	return countRepeatByte(trimmed, first) == len(trimmed)
}

func startsBlock(lines []string, index, indentStep int) bool {
	line := lines[index]
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	switch {
	case trimmed == pageBreakMarker, isHorizontalRule(trimmed), isQuoteLine(trimmed):
		return true
	}
	if _, _, ok := parseHeading(trimmed); ok {
		return true
	}
	if _, ok := detectFence(trimmed); ok {
		return true
	}
	if _, ok := parseImageLine(trimmed, ""); ok {
		return true
	}
	if _, _, ok := parseChecklistItem(line); ok {
		return true
	}
	if _, ok := parseListMarker(line, indentStep); ok {
		return true
	}
	return looksLikeTableStart(lines, index)
}

// joinParagraphLines joins soft-wrapped lines with a space and hard breaks
// (two trailing spaces or a trailing backslash) with a newline.
func joinParagraphLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	hardPrev := false
	for idx, line := range lines {
		content, hard := normalizeParagraphLine(line)
		if idx > 0 {
			if hardPrev {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(content)
		hardPrev = hard
	}
	return b.String()
}

func normalizeParagraphLine(line string) (string, bool) {
	raw := strings.TrimRight(line, "\t")
	trimmed := strings.TrimRight(raw, " ")
	hardBreak := len(raw)-len(trimmed) >= 2
	content := trimmed

	if strings.HasSuffix(content, "\\") && trailingBackslashes(content)%2 == 1 {
		hardBreak = true
		content = strings.TrimRight(content[:len(content)-1], " ")
	}
	return content, hardBreak
}

func trailingBackslashes(s string) int {
	count := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		count++
	}
	return count
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

func countRepeatByte(s string, target byte) int {
	n := 0
	for n < len(s) && s[n] == target {
		n++
	}
	return n
}
