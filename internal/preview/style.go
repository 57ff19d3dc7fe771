package preview

// Style describes a semantic style for a run of preview text.
type Style int

const (
	StylePlain Style = iota
	StyleEmphasis
	StyleStrong
	StyleStrike
	StyleCode
	StyleCodeBlock
	StyleLink
	StyleHeading
	StyleRule
	StyleQuote
	StyleMarker
	StyleCaption
)

const ansiReset = "\x1b[0m"

var ansiPrefixes = map[Style]string{
	StyleEmphasis:  "\x1b[3m",
	StyleStrong:    "\x1b[1m",
	StyleStrike:    "\x1b[9m",
	StyleCode:      "\x1b[36m",
	StyleCodeBlock: "\x1b[36m",
	StyleLink:      "\x1b[4;34m",
	StyleHeading:   "\x1b[1;35m",
	StyleRule:      "\x1b[2m",
	StyleQuote:     "\x1b[2;3m",
	StyleMarker:    "\x1b[33m",
	StyleCaption:   "\x1b[2m",
}

// Run is a chunk of text with one style. Emoji marks a run made only of
// emoji clusters.
type Run struct {
	Text  string
	Style Style
	Emoji bool
}

func joinRunsText(runs []Run) string {
	total := 0
	for _, r := range runs {
		total += len(r.Text)
	}
	buf := make([]byte, 0, total)
	for _, r := range runs {
		buf = append(buf, r.Text...)
	}
	return string(buf)
}
