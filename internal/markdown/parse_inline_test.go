package markdown

import (
	"reflect"
	"testing"

	"github.com/sanity-io/litter"
)

func text(s string) Inline { return Inline{Kind: InlineText, Content: s} }

func TestParseInline(t *testing.T) {
	lineBreak := Inline{Kind: InlineLineBreak}
	tests := []struct {
		name string
		in   string
		want []Inline
	}{
		{"empty", "", nil},
		{"plain", "plain text", []Inline{text("plain text")}},
		{"bold", "Body **bold** text.", []Inline{
			text("Body "),
			{Kind: InlineBold, Content: "bold"},
			text(" text."),
		}},
		{"underscore bold", "__strong__", []Inline{{Kind: InlineBold, Content: "strong"}}},
		{"italic and code", "*it* and `code`", []Inline{
			{Kind: InlineItalic, Content: "it"},
			text(" and "),
			{Kind: InlineCode, Content: "code"},
		}},
		{"strike", "a ~~gone~~ b", []Inline{
			text("a "),
			{Kind: InlineStrike, Content: "gone"},
			text(" b"),
		}},
		{"link", "see [docs](https://x.io) now", []Inline{
			text("see "),
			{Kind: InlineLink, Content: "docs", Href: "https://x.io"},
			text(" now"),
		}},
		{"link with title", `[docs](https://x.io "Docs")`, []Inline{
			{Kind: InlineLink, Content: "docs", Href: "https://x.io"},
		}},
		{"empty href", "[empty]()", []Inline{{Kind: InlineLink, Content: "empty"}}},
		{"empty label", "[](x)", []Inline{text("[](x)")}},
		{"adjacent markers", "****", []Inline{text("****")}},
		{"intraword underscore", "snake_case_name", []Inline{text("snake_case_name")}},
		{"unclosed bold", "unclosed **bold", []Inline{text("unclosed **bold")}},
		{"opener before space", "* not italic*", []Inline{text("* not italic*")}},
		{"escapes", `\*not italic\*`, []Inline{text("*not italic*")}},
		{"newline", "line one\nline two", []Inline{text("line one"), lineBreak, text("line two")}},
		{"br tag", "a<br>b<BR />c", []Inline{text("a"), lineBreak, text("b"), lineBreak, text("c")}},
		{"autolink", "<https://go.dev>", []Inline{{Kind: InlineLink, Content: "https://go.dev", Href: "https://go.dev"}}},
		{"email autolink", "<me@example.com>", []Inline{{Kind: InlineLink, Content: "me@example.com", Href: "mailto:me@example.com"}}},
		{"double backtick code", "``a`b``", []Inline{{Kind: InlineCode, Content: "a`b"}}},
		{"markers in code", "`**x**`", []Inline{{Kind: InlineCode, Content: "**x**"}}},
		{"triple markers", "a ***b*** c", []Inline{text("a "), {Kind: InlineBold, Content: "b"}, text(" c")}},
		{"triple underscores", "___b___", []Inline{{Kind: InlineBold, Content: "b"}}},
		{"no nesting", "**a *b* c**", []Inline{{Kind: InlineBold, Content: "a *b* c"}}},
		{"inline image literal", "see ![x](y.png)", []Inline{text("see ![x](y.png)")}},
		{"bold across lines", "**a\nb**", []Inline{text("**a"), lineBreak, text("b**")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseInline(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseInline(%q)=%s want %s", tt.in, litter.Sdump(got), litter.Sdump(tt.want))
			}
		})
	}
}

func TestParseInlinePlainTextRoundTrip(t *testing.T) {
	inputs := []string{"hello", "a b c", "1 + 2 = 3", "émoji 😀 ok", "pipes | and (parens)"}
	for _, in := range inputs {
		got := ParseInline(in)
		if len(got) != 1 || got[0].Kind != InlineText || got[0].Content != in {
			t.Fatalf("ParseInline(%q)=%s want single text span", in, litter.Sdump(got))
		}
	}
}

func TestPlainTextReconstructsStrippedText(t *testing.T) {
	in := "a **b** `c`\n[d](e) ~~f~~"
	if got, want := PlainText(ParseInline(in)), "a b c\nd f"; got != want {
		t.Fatalf("PlainText=%q want %q", got, want)
	}
}
