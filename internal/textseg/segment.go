// Package textseg splits text into grapheme-cluster runs classified as emoji
// or plain text, so renderers can switch fonts without breaking sequences
// such as ZWJ families, flags or skin tone variants.
package textseg

import "github.com/rivo/uniseg"

// Segment is a maximal run of clusters sharing one classification. Start and
// End are byte offsets into the segmented string.
type Segment struct {
	Text    string
	IsEmoji bool
	Start   int
	End     int
}

// Split partitions text into segments. Concatenating the Text fields yields
// text exactly, and adjacent segments always differ in IsEmoji. Empty input
// yields no segments.
func Split(text string) []Segment {
	if text == "" {
		return nil
	}
	var segments []Segment
	offset := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		end := offset + len(cluster)
		emoji := IsEmoji(cluster)

		if n := len(segments); n > 0 && segments[n-1].IsEmoji == emoji {
			segments[n-1].End = end
			segments[n-1].Text = text[segments[n-1].Start:end]
		} else {
			segments = append(segments, Segment{Text: cluster, IsEmoji: emoji, Start: offset, End: end})
		}
		offset = end
	}
	return segments
}

// HasEmoji reports whether any cluster in text is an emoji. It stops at the
// first match.
func HasEmoji(text string) bool {
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if IsEmoji(cluster) {
			return true
		}
	}
	return false
}

// CountEmojis counts emoji clusters, not segments: a run of three emoji
// counts as three.
func CountEmojis(text string) int {
	count := 0
	for _, seg := range Split(text) {
		if seg.IsEmoji {
			count += uniseg.GraphemeClusterCount(seg.Text)
		}
	}
	return count
}

// Clusters returns the grapheme clusters of text in order.
func Clusters(text string) []string {
	var out []string
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		out = append(out, cluster)
	}
	return out
}
