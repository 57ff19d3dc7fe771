package markdown

import (
	"strings"

	sq "github.com/kballard/go-shellquote"
)

type fenceOpener struct {
	delimiter byte
	length    int
	language  string
	caption   string
}

// detectFence recognises ``` and ~~~ openers of three or more characters.
// The info string is split with shell quoting so captions may contain spaces:
//
//	```mermaid caption="Login flow"
func detectFence(trimmed string) (fenceOpener, bool) {
	if len(trimmed) < 3 {
		return fenceOpener{}, false
	}
	ch := trimmed[0]
	if ch != '`' && ch != '~' {
		return fenceOpener{}, false
	}
	n := countRepeatByte(trimmed, ch)
	if n < 3 {
		return fenceOpener{}, false
	}
	info := strings.TrimSpace(trimmed[n:])
	if ch == '`' && strings.Contains(info, "`") {
		return fenceOpener{}, false
	}

	opener := fenceOpener{delimiter: ch, length: n}
	words, err := sq.Split(info)
	if err != nil {
		words = strings.Fields(info)
	}
	for idx, word := range words {
		if key, value, ok := strings.Cut(word, "="); ok && idx > 0 {
			if strings.EqualFold(key, "caption") {
				opener.caption = value
			}
			continue
		}
		if idx == 0 {
			opener.language = word
		}
	}
	return opener, true
}

func isClosingFence(trimmed string, fence fenceOpener) bool {
	n := countRepeatByte(trimmed, fence.delimiter)
	return n >= fence.length && strings.TrimSpace(trimmed[n:]) == ""
}

// parseFencedBlock collects raw lines up to the matching closing fence. An
// unterminated fence swallows the rest of the document.
func parseFencedBlock(lines []string, start int, fence fenceOpener) (Element, int) {
	var body []string
	i := start + 1
	for i < len(lines) {
		if isClosingFence(strings.TrimSpace(lines[i]), fence) {
			i++
			break
		}
		body = append(body, lines[i])
		i++
	}
	content := strings.Join(body, "\n")

	if strings.EqualFold(fence.language, "mermaid") {
		return MermaidDiagram{Diagram: content, Caption: fence.caption}, i
	}
	return CodeBlock{Content: content, Language: fence.language}, i
}
