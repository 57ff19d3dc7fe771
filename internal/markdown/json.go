package markdown

import (
	"encoding/json"
	"fmt"
)

type wireInline struct {
	Type    string  `json:"type"`
	Content string  `json:"content,omitempty"`
	Href    *string `json:"href,omitempty"`
}

type wireElement struct {
	Type         string        `json:"type"`
	Level        int           `json:"level,omitempty"`
	Content      *string       `json:"content,omitempty"`
	Inline       []wireInline  `json:"inline,omitempty"`
	TextAlign    string        `json:"textAlign,omitempty"`
	Ordered      *bool         `json:"ordered,omitempty"`
	Start        int           `json:"start,omitempty"`
	Items        []string      `json:"items,omitempty"`
	IndentLevels []int         `json:"indentLevels,omitempty"`
	Checked      []bool        `json:"checked,omitempty"`
	Language     string        `json:"language,omitempty"`
	Headers      []string      `json:"headers,omitempty"`
	Rows         *[][]string   `json:"rows,omitempty"`
	Align        []ColumnAlign `json:"align,omitempty"`
	Src          *string       `json:"src,omitempty"`
	Alt          string        `json:"alt,omitempty"`
	Diagram      *string       `json:"diagram,omitempty"`
	Caption      string        `json:"caption,omitempty"`
}

// MarshalElements encodes elements as a JSON array of tagged objects.
func MarshalElements(elements []Element) ([]byte, error) {
	out := make([]wireElement, 0, len(elements))
	for _, el := range elements {
		w, err := toWire(el)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return json.Marshal(out)
}

// MarshalInlines encodes inline spans as a JSON array.
func MarshalInlines(inlines []Inline) ([]byte, error) {
	return json.Marshal(toWireInlines(inlines))
}

func toWireInlines(inlines []Inline) []wireInline {
	out := make([]wireInline, 0, len(inlines))
	for _, in := range inlines {
		w := wireInline{Type: in.Kind.String(), Content: in.Content}
		if in.Kind == InlineLink {
			href := in.Href
			w.Href = &href
		}
		out = append(out, w)
	}
	return out
}

func toWire(el Element) (wireElement, error) {
	w := wireElement{Type: el.Type().String()}
	switch v := el.(type) {
	case Heading:
		w.Level = v.Level
		w.Content = &v.Content
		w.Inline = toWireInlines(v.Inline)
		w.TextAlign = string(v.TextAlign)
	case Paragraph:
		w.Content = &v.Content
		w.Inline = toWireInlines(v.Inline)
	case Blockquote:
		w.Content = &v.Content
		w.Inline = toWireInlines(v.Inline)
	case List:
		w.Ordered = &v.Ordered
		w.Start = v.Start
		w.Items = v.Items
		w.IndentLevels = v.IndentLevels
	case Checklist:
		w.Items = v.Items
		w.Checked = v.Checked
	case CodeBlock:
		w.Content = &v.Content
		w.Language = v.Language
	case Table:
		rows := v.Rows
		if rows == nil {
			rows = [][]string{}
		}
		w.Headers = v.Headers
		w.Rows = &rows
		if hasAlignment(v.Align) {
			w.Align = v.Align
		}
	case Image:
		w.Src = &v.Src
		w.Alt = v.Alt
	case MermaidDiagram:
		w.Diagram = &v.Diagram
		w.Caption = v.Caption
	case HorizontalRule, PageBreak:
	default:
		return wireElement{}, fmt.Errorf("markdown: cannot encode element %T", el)
	}
	return w, nil
}

func hasAlignment(align []ColumnAlign) bool {
	for _, a := range align {
		if a != ColumnDefault {
			return true
		}
	}
	return false
}
