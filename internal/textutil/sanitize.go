package textutil

import (
	"strings"
	"unicode/utf8"

	"github.com/kk-code-lab/mdpage/internal/textseg"
	"github.com/rivo/uniseg"
)

var formattingRuneLabels = map[rune]string{
	0x061C: "⟪ALM⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x00AD: "⟪SHY⟫",
	0x180E: "⟪MVS⟫",
	0x2060: "⟪WJ⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0x206A: "⟪ISS⟫",
	0x206B: "⟪ASS⟫",
	0x206C: "⟪IAFS⟫",
	0x206D: "⟪AAFS⟫",
	0x206E: "⟪NADS⟫",
	0x206F: "⟪NODS⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeTerminalText replaces control characters so document text cannot
// inject terminal escape sequences when previewed. Joiners and selectors that
// belong to an emoji cluster are kept so the emoji still renders.
func SanitizeTerminalText(text string) string {
	for _, r := range text {
		if requiresSanitization(r) {
			return sanitize(text)
		}
	}
	return text
}

func requiresSanitization(r rune) bool {
	if r == '\t' {
		return false
	}
	if r == '\n' || r == '\r' {
		return true
	}
	if isFormattingRune(r) {
		return true
	}
	return (r >= 0 && r < 0x20) || r == 0x7f
}

func sanitize(text string) string {
	var b strings.Builder
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if isEmojiCluster(cluster) {
			b.WriteString(cluster)
			continue
		}
		for _, r := range cluster {
			switch {
			case isFormattingRune(r):
				b.WriteString(formattingRuneLabels[r])
			case r == '\t', r == '\n', r == '\r':
				b.WriteByte(' ')
			case r < 0x20 || r == 0x7f:
				b.WriteByte('?')
			default:
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// isEmojiCluster rejects clusters led by ASCII or a formatting rune, so a
// joiner glued onto plain text is still labeled.
func isEmojiCluster(cluster string) bool {
	first, _ := utf8.DecodeRuneInString(cluster)
	if first < utf8.RuneSelf || isFormattingRune(first) {
		return false
	}
	return textseg.IsEmoji(cluster)
}

// ReplaceFormattingRunes makes bidi/zero-width formatting characters visible.
// It returns the rewritten string and whether any replacement occurred.
func ReplaceFormattingRunes(text string) (string, bool) {
	var b strings.Builder
	changed := false
	for _, r := range text {
		if label, ok := formattingRuneLabels[r]; ok {
			changed = true
			b.WriteString(label)
			continue
		}
		b.WriteRune(r)
	}
	if !changed {
		return text, false
	}
	return b.String(), true
}

func isFormattingRune(r rune) bool {
	_, ok := formattingRuneLabels[r]
	return ok
}
