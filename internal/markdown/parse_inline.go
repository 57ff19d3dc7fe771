package markdown

import (
	"strings"
	"unicode"
)

// ParseInline splits a single block's text into flat formatting spans.
// Delimiter pairs only match within one line, and content between matched
// delimiters is kept literally. Unmatched markers stay in the surrounding
// text span.
func ParseInline(text string) []Inline {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	var nodes []Inline
	var buf []rune

	flushText := func() {
		if len(buf) == 0 {
			return
		}
		nodes = append(nodes, Inline{Kind: InlineText, Content: string(buf)})
		buf = buf[:0]
	}
	emit := func(kind InlineKind, content, href string) {
		flushText()
		nodes = append(nodes, Inline{Kind: kind, Content: content, Href: href})
	}

	i := 0
	lineEnd := nextLineEnd(runes, 0)
	for i < len(runes) {
		if i > lineEnd {
			lineEnd = nextLineEnd(runes, i)
		}
		r := runes[i]
		switch r {
		case '\\':
			if i+1 < lineEnd && isEscapable(runes[i+1]) {
				buf = append(buf, runes[i+1])
				i += 2
				continue
			}
			buf = append(buf, r)
			i++
		case '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
				continue
			}
			emit(InlineLineBreak, "", "")
			i++
		case '\n':
			emit(InlineLineBreak, "", "")
			i++
		case '`':
			count := countRepeat(runes[i:lineEnd], '`')
			end := findClosingBackticks(runes[i+count:lineEnd], count)
			if end <= 0 {
				buf = append(buf, runes[i:i+count]...)
				i += count
				continue
			}
			emit(InlineCode, string(runes[i+count:i+count+end]), "")
			i += count + end + count
		case '*', '_':
			run := countRepeat(runes[i:lineEnd], r)
			width, kind := 1, InlineItalic
			if run >= 2 {
				width, kind = 2, InlineBold
			}
			intraword := r == '_'
			if intraword && isAlnum(runes, i-1) {
				buf = append(buf, runes[i:i+run]...)
				i += run
				continue
			}
			// A run of three closed by three is bold with every marker removed.
			if run == 3 {
				from := i + 3
				if from < lineEnd && !unicode.IsSpace(runes[from]) {
					if end := findCloser(runes, from, lineEnd, r, 3, intraword); end >= 0 {
						emit(InlineBold, string(runes[from:end]), "")
						i = end + 3
						continue
					}
				}
			}
			from := i + width
			if from < lineEnd && !unicode.IsSpace(runes[from]) {
				if end := findCloser(runes, from, lineEnd, r, width, intraword); end >= 0 {
					emit(kind, string(runes[from:end]), "")
					i = end + width
					continue
				}
			}
			buf = append(buf, runes[i:i+width]...)
			i += width
		case '~':
			if countRepeat(runes[i:lineEnd], '~') < 2 {
				buf = append(buf, r)
				i++
				continue
			}
			from := i + 2
			if from < lineEnd && !unicode.IsSpace(runes[from]) {
				if end := findCloser(runes, from, lineEnd, '~', 2, false); end >= 0 {
					emit(InlineStrike, string(runes[from:end]), "")
					i = end + 2
					continue
				}
			}
			buf = append(buf, runes[i:i+2]...)
			i += 2
		case '!':
			// Images are block-level; inline image syntax stays literal.
			if i+1 < lineEnd && runes[i+1] == '[' {
				if _, _, consumed, ok := parseLinkRunes(runes[i+1 : lineEnd]); ok {
					buf = append(buf, runes[i:i+1+consumed]...)
					i += 1 + consumed
					continue
				}
			}
			buf = append(buf, r)
			i++
		case '[':
			label, href, consumed, ok := parseLinkRunes(runes[i:lineEnd])
			if ok && label != "" {
				emit(InlineLink, label, href)
				i += consumed
				continue
			}
			buf = append(buf, r)
			i++
		case '<':
			if n := detectBreakTag(runes[i:lineEnd]); n > 0 {
				emit(InlineLineBreak, "", "")
				i += n
				continue
			}
			if end := findAutolinkEnd(runes[i+1 : lineEnd]); end > 0 {
				candidate := string(runes[i+1 : i+1+end])
				if href, ok := autolinkHref(candidate); ok {
					emit(InlineLink, strings.TrimPrefix(candidate, "mailto:"), href)
					i += end + 2
					continue
				}
			}
			buf = append(buf, r)
			i++
		default:
			buf = append(buf, r)
			i++
		}
	}

	flushText()
	return nodes
}

func nextLineEnd(runes []rune, from int) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == '\n' {
			return i
		}
	}
	return len(runes)
}

func isEscapable(r rune) bool {
	return strings.ContainsRune("\\*_`~[]<>!#|", r)
}

// findCloser returns the index of the closing delimiter run for content that
// starts at from, or -1. Single-width delimiters only close on a run of
// exactly one marker so that `*a **b** c*` stays one italic span.
func findCloser(runes []rune, from, limit int, delim rune, width int, intraword bool) int {
	for j := from; j < limit; {
		if runes[j] != delim {
			j++
			continue
		}
		if runes[j-1] == '\\' {
			j++
			continue
		}
		n := countRepeat(runes[j:limit], delim)
		matches := n == width || (width == 2 && n > 2)
		if matches && j > from && !unicode.IsSpace(runes[j-1]) && !(intraword && isAlnum(runes, j+width)) {
			return j
		}
		j += n
	}
	return -1
}

func findClosingBackticks(runes []rune, count int) int {
	for i := 0; i < len(runes); {
		if runes[i] != '`' {
			i++
			continue
		}
		n := countRepeat(runes[i:], '`')
		if n == count {
			return i
		}
		i += n
	}
	return -1
}

// parseLinkRunes matches `[label](href)` at the start of runes.
func parseLinkRunes(runes []rune) (label, href string, consumed int, ok bool) {
	if len(runes) < 4 || runes[0] != '[' {
		return "", "", 0, false
	}
	endText := findMatchingBracket(runes[1:])
	if endText < 0 {
		return "", "", 0, false
	}
	open := 1 + endText + 1
	if open >= len(runes) || runes[open] != '(' {
		return "", "", 0, false
	}
	closeParen, found := findMatchingParen(runes[open+1:])
	if !found {
		return "", "", 0, false
	}
	label = string(runes[1 : 1+endText])
	href = cleanDestination(string(runes[open+1 : open+1+closeParen]))
	return label, href, open + 1 + closeParen + 1, true
}

// cleanDestination drops a trailing link title and angle brackets.
func cleanDestination(dest string) string {
	dest = strings.TrimSpace(dest)
	if strings.HasSuffix(dest, `"`) {
		if idx := strings.Index(dest, ` "`); idx > 0 {
			dest = strings.TrimSpace(dest[:idx])
		}
	}
	if strings.HasPrefix(dest, "<") && strings.HasSuffix(dest, ">") {
		dest = dest[1 : len(dest)-1]
	}
	return dest
}

func findMatchingBracket(runes []rune) int {
	depth := 0
	for i := 0; i < len(runes); {
		switch r := runes[i]; r {
		case '\\':
			i += 2
			continue
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return i
			}
			depth--
		}
		i++
	}
	return -1
}

func findMatchingParen(runes []rune) (int, bool) {
	depth := 0
	for i := 0; i < len(runes); {
		switch r := runes[i]; r {
		case '\\':
			i += 2
			continue
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return i, true
			}
			depth--
		}
		i++
	}
	return -1, false
}

func isAlnum(runes []rune, idx int) bool {
	if idx < 0 || idx >= len(runes) {
		return false
	}
	return unicode.IsLetter(runes[idx]) || unicode.IsDigit(runes[idx])
}

func countRepeat(runes []rune, target rune) int {
	n := 0
	for n < len(runes) && runes[n] == target {
		n++
	}
	return n
}

func findAutolinkEnd(runes []rune) int {
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '>':
			return i
		case ' ', '\t', '<':
			return -1
		}
	}
	return -1
}

func autolinkHref(candidate string) (string, bool) {
	lower := strings.ToLower(candidate)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "mailto:"):
		return candidate, true
	case strings.Contains(candidate, "@") && strings.Contains(candidate, "."):
		return "mailto:" + candidate, true
	}
	return "", false
}

func detectBreakTag(runes []rune) int {
	head := runes
	if len(head) > 6 {
		head = head[:6]
	}
	lower := strings.ToLower(string(head))
	switch {
	case strings.HasPrefix(lower, "<br>"):
		return len("<br>")
	case strings.HasPrefix(lower, "<br/>"):
		return len("<br/>")
	case strings.HasPrefix(lower, "<br />"):
		return len("<br />")
	default:
		return 0
	}
}
