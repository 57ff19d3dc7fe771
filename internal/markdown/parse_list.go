package markdown

import (
	"strconv"
	"strings"
)

type listMarker struct {
	ordered bool
	// number is the ordinal of an ordered item and zero for bullets.
	number  int
	indent  int
	content string
}

// parseList collects consecutive list items. Indentation is recorded per
// item, so nesting may go up and down freely within one list.
func parseList(lines []string, start int, cfg parseConfig) (List, int) {
	first, _ := parseListMarker(lines[start], cfg.indentStep)
	list := List{Ordered: first.ordered}
	if first.ordered {
		list.Start = first.number
	}

	i := start
	for i < len(lines) {
		line := lines[i]
		if isBlankLine(line) {
			break
		}
		if _, _, ok := parseChecklistItem(line); ok {
			break
		}
		if m, ok := parseListMarker(line, cfg.indentStep); ok {
			if m.indent <= first.indent && m.ordered != list.Ordered && len(list.Items) > 0 {
				break
			}
			list.Items = append(list.Items, m.content)
			list.IndentLevels = append(list.IndentLevels, m.indent/cfg.indentStep)
			i++
			continue
		}
		if isContinuationLine(lines, i, cfg.indentStep) {
			last := len(list.Items) - 1
			list.Items[last] = appendContinuation(list.Items[last], line)
			i++
			continue
		}
		break
	}
	return list, i
}

func parseChecklist(lines []string, start, indentStep int) (Checklist, int) {
	var checklist Checklist
	i := start
	for i < len(lines) {
		line := lines[i]
		if isBlankLine(line) {
			break
		}
		if text, checked, ok := parseChecklistItem(line); ok {
			checklist.Items = append(checklist.Items, text)
			checklist.Checked = append(checklist.Checked, checked)
			i++
			continue
		}
		if len(checklist.Items) > 0 && isContinuationLine(lines, i, indentStep) {
			last := len(checklist.Items) - 1
			checklist.Items[last] = appendContinuation(checklist.Items[last], line)
			i++
			continue
		}
		break
	}
	return checklist, i
}

// isContinuationLine reports whether an indented, non-marker line continues
// the previous list item.
func isContinuationLine(lines []string, index, indentStep int) bool {
	line := lines[index]
	if line == "" || (line[0] != ' ' && line[0] != '\t') {
		return false
	}
	return !startsBlock(lines, index, indentStep)
}

func appendContinuation(item, line string) string {
	text := strings.TrimSpace(line)
	if item == "" {
		return text
	}
	return item + " " + text
}

func parseListMarker(line string, indentStep int) (listMarker, bool) {
	if isBlankLine(line) {
		return listMarker{}, false
	}
	indent, offset := indentColumns(line, indentStep)
	trimmed := line[offset:]

	if isBullet(trimmed[0]) {
		if len(trimmed) < 2 || !isSpaceOrTab(trimmed[1]) {
			return listMarker{}, false
		}
		return listMarker{
			indent:  indent,
			content: strings.TrimSpace(trimmed[2:]),
		}, true
	}

	j := 0
	for j < len(trimmed) && trimmed[j] >= '0' && trimmed[j] <= '9' {
		j++
	}
	if j == 0 || j >= len(trimmed) || trimmed[j] != '.' {
		return listMarker{}, false
	}
	if j+1 >= len(trimmed) || !isSpaceOrTab(trimmed[j+1]) {
		return listMarker{}, false
	}
	num, err := strconv.Atoi(trimmed[:j])
	if err != nil {
		num = 1
	}
	return listMarker{
		ordered: true,
		number:  num,
		indent:  indent,
		content: strings.TrimSpace(trimmed[j+2:]),
	}, true
}

// parseChecklistItem matches `- [ ] text` and `- [x] text` with any bullet.
func parseChecklistItem(line string) (string, bool, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) < 5 || !isBullet(trimmed[0]) || !isSpaceOrTab(trimmed[1]) {
		return "", false, false
	}
	box := strings.TrimLeft(trimmed[2:], " \t")
	if len(box) < 3 || box[0] != '[' || box[2] != ']' {
		return "", false, false
	}
	var checked bool
	switch box[1] {
	case ' ':
		checked = false
	case 'x', 'X':
		checked = true
	default:
		return "", false, false
	}
	rest := box[3:]
	if rest != "" && !isSpaceOrTab(rest[0]) {
		return "", false, false
	}
	return strings.TrimSpace(rest), checked, true
}

// indentColumns returns the indentation width in columns (a tab counts as a
// full indent step) and the byte offset of the first non-blank character.
func indentColumns(line string, indentStep int) (int, int) {
	cols := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			cols++
		case '\t':
			cols += indentStep
		default:
			return cols, i
		}
	}
	return cols, len(line)
}

func isBullet(ch byte) bool {
	return ch == '-' || ch == '+' || ch == '*'
}

func isSpaceOrTab(ch byte) bool {
	return ch == ' ' || ch == '\t'
}
