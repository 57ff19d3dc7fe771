package textseg

import (
	"unicode"
	"unicode/utf8"
)

const (
	zeroWidthJoiner   = '\u200D'
	variationSelector = '\uFE0F'
	enclosingKeycap   = '\u20E3'
)

// IsEmoji reports whether a single grapheme cluster should be drawn as an
// emoji glyph. Checks run in order and the first match wins: keycap
// sequences, flag pairs, a leading emoji code point, then any joiner,
// skin tone, VS16 or keycap mark anywhere in the cluster.
func IsEmoji(cluster string) bool {
	if cluster == "" {
		return false
	}
	runes := []rune(cluster)
	if isKeycapSequence(runes) || isFlagSequence(runes) || hasEmojiStart(runes) {
		return true
	}
	for _, r := range runes {
		if isSkinTone(r) || r == zeroWidthJoiner || r == variationSelector || r == enclosingKeycap {
			return true
		}
	}
	return false
}

// isKeycapSequence matches [0-9#*] U+FE0F? U+20E3.
func isKeycapSequence(runes []rune) bool {
	switch len(runes) {
	case 2:
		return isKeycapBase(runes[0]) && runes[1] == enclosingKeycap
	case 3:
		return isKeycapBase(runes[0]) && runes[1] == variationSelector && runes[2] == enclosingKeycap
	}
	return false
}

func isFlagSequence(runes []rune) bool {
	return len(runes) == 2 && isRegionalIndicator(runes[0]) && isRegionalIndicator(runes[1])
}

// hasEmojiStart matches the cluster's leading code point against the emoji
// presentation, VS16 and modifier base patterns.
func hasEmojiStart(runes []rune) bool {
	first := runes[0]
	switch {
	case first == utf8.RuneError:
		return false
	case unicode.Is(emojiPresentation, first):
		return true
	case unicode.Is(emojiModifierBase, first):
		return true
	case len(runes) > 1 && runes[1] == variationSelector && unicode.Is(emojiAny(), first):
		return true
	case len(runes) > 1 && isRegionalIndicator(first) && isRegionalIndicator(runes[1]):
		return true
	}
	return false
}

func isKeycapBase(r rune) bool {
	return (r >= '0' && r <= '9') || r == '#' || r == '*'
}

func isRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}

func isSkinTone(r rune) bool {
	return r >= 0x1F3FB && r <= 0x1F3FF
}
