package markdown

// Element is a parsed block. The set of variants is closed; consumers are
// expected to switch over the concrete types.
type Element interface {
	Type() ElementType
	element()
}

// ElementType identifies a block variant.
type ElementType int

const (
	TypeHeading ElementType = iota
	TypeParagraph
	TypeList
	TypeChecklist
	TypeCodeBlock
	TypeBlockquote
	TypeTable
	TypeImage
	TypeHorizontalRule
	TypePageBreak
	TypeMermaidDiagram
)

var elementTypeNames = [...]string{
	TypeHeading:        "heading",
	TypeParagraph:      "paragraph",
	TypeList:           "list",
	TypeChecklist:      "checklist",
	TypeCodeBlock:      "codeBlock",
	TypeBlockquote:     "blockquote",
	TypeTable:          "table",
	TypeImage:          "image",
	TypeHorizontalRule: "horizontalRule",
	TypePageBreak:      "pageBreak",
	TypeMermaidDiagram: "mermaidDiagram",
}

func (t ElementType) String() string {
	if t < 0 || int(t) >= len(elementTypeNames) {
		return "unknown"
	}
	return elementTypeNames[t]
}

// InlineKind identifies an inline span variant.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineBold
	InlineItalic
	InlineCode
	InlineLink
	InlineStrike
	InlineLineBreak
)

var inlineKindNames = [...]string{
	InlineText:      "text",
	InlineBold:      "bold",
	InlineItalic:    "italic",
	InlineCode:      "code",
	InlineLink:      "link",
	InlineStrike:    "strike",
	InlineLineBreak: "lineBreak",
}

func (k InlineKind) String() string {
	if k < 0 || int(k) >= len(inlineKindNames) {
		return "unknown"
	}
	return inlineKindNames[k]
}

// Inline is a flat formatting span. Content holds the span text with markers
// stripped; Href is only set for links. Line breaks carry no content.
type Inline struct {
	Kind    InlineKind
	Content string
	Href    string
}

// TextAlign is an optional heading alignment.
type TextAlign string

const (
	AlignNone    TextAlign = ""
	AlignLeft    TextAlign = "left"
	AlignCenter  TextAlign = "center"
	AlignRight   TextAlign = "right"
	AlignJustify TextAlign = "justify"
)

// ColumnAlign is the per-column alignment declared by a table separator row.
type ColumnAlign string

const (
	ColumnDefault ColumnAlign = ""
	ColumnLeft    ColumnAlign = "left"
	ColumnCenter  ColumnAlign = "center"
	ColumnRight   ColumnAlign = "right"
)

type Heading struct {
	Level     int
	Content   string
	Inline    []Inline
	TextAlign TextAlign
}

func (Heading) Type() ElementType { return TypeHeading }
func (Heading) element()          {}

type Paragraph struct {
	Content string
	Inline  []Inline
}

func (Paragraph) Type() ElementType { return TypeParagraph }
func (Paragraph) element()          {}

// List holds raw item text; IndentLevels runs parallel to Items. Start is the
// first ordinal of an ordered list and zero for bullet lists.
type List struct {
	Ordered      bool
	Start        int
	Items        []string
	IndentLevels []int
}

func (List) Type() ElementType { return TypeList }
func (List) element()          {}

// Checklist holds raw item text; Checked runs parallel to Items.
type Checklist struct {
	Items   []string
	Checked []bool
}

func (Checklist) Type() ElementType { return TypeChecklist }
func (Checklist) element()          {}

type CodeBlock struct {
	Content  string
	Language string
}

func (CodeBlock) Type() ElementType { return TypeCodeBlock }
func (CodeBlock) element()          {}

type Blockquote struct {
	Content string
	Inline  []Inline
}

func (Blockquote) Type() ElementType { return TypeBlockquote }
func (Blockquote) element()          {}

// Table is rectangular: every row has len(Headers) cells. Cell text is raw.
type Table struct {
	Headers []string
	Rows    [][]string
	Align   []ColumnAlign
}

func (Table) Type() ElementType { return TypeTable }
func (Table) element()          {}

type Image struct {
	Src string
	Alt string
}

func (Image) Type() ElementType { return TypeImage }
func (Image) element()          {}

type HorizontalRule struct{}

func (HorizontalRule) Type() ElementType { return TypeHorizontalRule }
func (HorizontalRule) element()          {}

// PageBreak forces a page boundary in paginated output.
type PageBreak struct{}

func (PageBreak) Type() ElementType { return TypePageBreak }
func (PageBreak) element()          {}

type MermaidDiagram struct {
	Diagram string
	Caption string
}

func (MermaidDiagram) Type() ElementType { return TypeMermaidDiagram }
func (MermaidDiagram) element()          {}

// PlainText concatenates span contents, turning line breaks into newlines.
func PlainText(inlines []Inline) string {
	total := 0
	for _, in := range inlines {
		total += len(in.Content) + 1
	}
	buf := make([]byte, 0, total)
	for _, in := range inlines {
		if in.Kind == InlineLineBreak {
			buf = append(buf, '\n')
			continue
		}
		buf = append(buf, in.Content...)
	}
	return string(buf)
}

// Paginate splits elements into pages at each PageBreak. The breaks
// themselves are dropped, so n breaks yield n+1 (possibly empty) pages.
func Paginate(elements []Element) [][]Element {
	if len(elements) == 0 {
		return nil
	}
	pages := [][]Element{nil}
	for _, el := range elements {
		if el.Type() == TypePageBreak {
			pages = append(pages, nil)
			continue
		}
		last := len(pages) - 1
		pages[last] = append(pages[last], el)
	}
	return pages
}
