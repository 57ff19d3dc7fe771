package textutil

import (
	"strings"

	"github.com/kk-code-lab/mdpage/internal/textseg"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const DefaultTabWidth = 4

// ClusterWidth reports the terminal columns taken by one grapheme cluster.
// Emoji clusters always take two columns; anything else is measured with
// runewidth and never reported narrower than one column.
func ClusterWidth(cluster string) int {
	if textseg.IsEmoji(cluster) {
		return 2
	}
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = 1
	}
	return w
}

// DisplayWidth reports the printable width of text, measured per grapheme
// cluster so ZWJ sequences and flags count once.
func DisplayWidth(text string) int {
	width := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		width += ClusterWidth(cluster)
	}
	return width
}

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	column := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		switch cluster {
		case "\t":
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
		case "\n":
			builder.WriteByte('\n')
			column = 0
		default:
			builder.WriteString(cluster)
			column += ClusterWidth(cluster)
		}
	}
	return builder.String()
}

// PadRight appends spaces until text fills width columns. Text that is
// already wider is returned unchanged.
func PadRight(text string, width int) string {
	gap := width - DisplayWidth(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

// PadCenter splits the padding around text, putting the odd column on the
// right.
func PadCenter(text string, width int) string {
	gap := width - DisplayWidth(text)
	if gap <= 0 {
		return text
	}
	left := gap / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
}

// PadLeft right-aligns text within width columns.
func PadLeft(text string, width int) string {
	gap := width - DisplayWidth(text)
	if gap <= 0 {
		return text
	}
	return strings.Repeat(" ", gap) + text
}
