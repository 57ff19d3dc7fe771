package markdown

import "strings"

// parseTable accepts a `|`-delimited header row only when the following line
// is a separator row; prose that merely contains pipes stays a paragraph.
func parseTable(lines []string, start int) (Table, int, bool) {
	if !looksLikeTableStart(lines, start) {
		return Table{}, start, false
	}
	headers := splitTableRow(strings.TrimSpace(lines[start]))
	separators := splitTableRow(strings.TrimSpace(lines[start+1]))

	tbl := Table{
		Headers: headers,
		Rows:    [][]string{},
		Align:   parseTableAlignment(separators, len(headers)),
	}

	i := start + 2
	for i < len(lines) {
		row := strings.TrimSpace(lines[i])
		if !isTableRow(row) {
			break
		}
		tbl.Rows = append(tbl.Rows, fitRow(splitTableRow(row), len(headers)))
		i++
	}
	return tbl, i, true
}

func looksLikeTableStart(lines []string, index int) bool {
	if index+1 >= len(lines) {
		return false
	}
	return isTableRow(strings.TrimSpace(lines[index])) && isTableSeparator(strings.TrimSpace(lines[index+1]))
}

func isTableRow(trimmed string) bool {
	return len(trimmed) >= 2 && trimmed[0] == '|' && trimmed[len(trimmed)-1] == '|'
}

func isTableSeparator(trimmed string) bool {
	if !strings.Contains(trimmed, "|") || !strings.Contains(trimmed, "-") {
		return false
	}
	for _, r := range trimmed {
		switch r {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}

// fitRow pads or truncates cells so every row matches the header width.
func fitRow(cells []string, width int) []string {
	if len(cells) == width {
		return cells
	}
	out := make([]string, width)
	copy(out, cells)
	return out
}

func parseTableAlignment(parts []string, width int) []ColumnAlign {
	align := make([]ColumnAlign, width)
	for i := 0; i < width && i < len(parts); i++ {
		part := strings.TrimSpace(parts[i])
		left := strings.HasPrefix(part, ":")
		right := strings.HasSuffix(part, ":")
		switch {
		case left && right:
			align[i] = ColumnCenter
		case right:
			align[i] = ColumnRight
		case left:
			align[i] = ColumnLeft
		}
	}
	return align
}

func splitTableRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = line[:len(line)-1]
	}
	parts := splitPipes(line)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// splitPipes splits on `|` outside backtick spans. Escaped pipes are kept as
// literal pipes; other escapes are left for the inline parser.
func splitPipes(line string) []string {
	var parts []string
	var buf []rune
	inCode := false
	backticks := 0
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '\\':
			if i+1 < len(runes) && runes[i+1] == '|' {
				buf = append(buf, '|')
				i++
				continue
			}
		case '`':
			n := countRepeat(runes[i:], '`')
			if !inCode {
				inCode = true
				backticks = n
			} else if n == backticks {
				inCode = false
				backticks = 0
			}
			buf = append(buf, runes[i:i+n]...)
			i += n - 1
			continue
		case '|':
			if !inCode {
				parts = append(parts, string(buf))
				buf = buf[:0]
				continue
			}
		}
		buf = append(buf, r)
	}
	parts = append(parts, string(buf))
	return parts
}
