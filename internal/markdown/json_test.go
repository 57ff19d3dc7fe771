package markdown

import "testing"

func TestMarshalElements(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "heading and paragraph",
			in:   "# Title\n\nBody **bold** text.",
			want: `[{"type":"heading","level":1,"content":"Title","inline":[{"type":"text","content":"Title"}]},` +
				`{"type":"paragraph","content":"Body **bold** text.","inline":[{"type":"text","content":"Body "},{"type":"bold","content":"bold"},{"type":"text","content":" text."}]}]`,
		},
		{
			name: "page break",
			in:   "---PAGE_BREAK---",
			want: `[{"type":"pageBreak"}]`,
		},
		{
			name: "table",
			in:   "| A | B |\n|---|---|\n| 1 | 2 |",
			want: `[{"type":"table","headers":["A","B"],"rows":[["1","2"]]}]`,
		},
		{
			name: "empty table body",
			in:   "| A |\n|:-:|",
			want: `[{"type":"table","headers":["A"],"rows":[],"align":["center"]}]`,
		},
		{
			name: "bullet list",
			in:   "- a\n  - b",
			want: `[{"type":"list","ordered":false,"items":["a","b"],"indentLevels":[0,1]}]`,
		},
		{
			name: "empty code block",
			in:   "```\n```",
			want: `[{"type":"codeBlock","content":""}]`,
		},
		{
			name: "mermaid",
			in:   "```mermaid\ngraph TD\n```",
			want: `[{"type":"mermaidDiagram","diagram":"graph TD"}]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalElements(Parse(tt.in))
			if err != nil {
				t.Fatalf("MarshalElements error: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("MarshalElements(%q)=\n%s\nwant\n%s", tt.in, got, tt.want)
			}
		})
	}
}

func TestMarshalInlinesKeepsEmptyHref(t *testing.T) {
	got, err := MarshalInlines([]Inline{{Kind: InlineLink, Content: "x"}, {Kind: InlineLineBreak}})
	if err != nil {
		t.Fatalf("MarshalInlines error: %v", err)
	}
	want := `[{"type":"link","content":"x","href":""},{"type":"lineBreak"}]`
	if string(got) != want {
		t.Fatalf("MarshalInlines=%s want %s", got, want)
	}
}

func TestMarshalElementsEmpty(t *testing.T) {
	got, err := MarshalElements(nil)
	if err != nil || string(got) != "[]" {
		t.Fatalf("MarshalElements(nil)=%s, %v want []", got, err)
	}
}
