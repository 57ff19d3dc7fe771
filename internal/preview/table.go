package preview

import (
	"strings"

	"github.com/kk-code-lab/mdpage/internal/markdown"
	"github.com/kk-code-lab/mdpage/internal/textutil"
	"github.com/muesli/reflow/truncate"
)

type tableBorders struct {
	topLeft, topSep, topRight          string
	midLeft, midSep, midRight          string
	bottomLeft, bottomSep, bottomRight string
	vertical                           string
}

var boxBorders = tableBorders{
	topLeft:     "┌",
	topSep:      "┬",
	topRight:    "┐",
	midLeft:     "├",
	midSep:      "┼",
	midRight:    "┤",
	bottomLeft:  "└",
	bottomSep:   "┴",
	bottomRight: "┘",
	vertical:    "│",
}

type tableCell struct {
	runs  []Run
	width int
}

func (r *renderer) table(tbl markdown.Table) []Line {
	if len(tbl.Headers) == 0 {
		return nil
	}
	header := make([]tableCell, len(tbl.Headers))
	for i, h := range tbl.Headers {
		header[i] = r.makeCell(h, StyleStrong)
	}
	rows := make([][]tableCell, len(tbl.Rows))
	for i, row := range tbl.Rows {
		rows[i] = make([]tableCell, len(tbl.Headers))
		for j := range tbl.Headers {
			text := ""
			if j < len(row) {
				text = row[j]
			}
			rows[i][j] = r.makeCell(text, StylePlain)
		}
	}

	widths := columnWidths(header, rows, r.opts.MaxCellWidth)
	for i := range header {
		header[i] = fitCell(header[i], widths[i])
	}
	for _, row := range rows {
		for j := range row {
			row[j] = fitCell(row[j], widths[j])
		}
	}

	spans := make([]string, len(widths))
	for i, w := range widths {
		spans[i] = strings.Repeat("─", w+2)
	}
	border := func(left, sep, right string) Line {
		text := left + strings.Join(spans, sep) + right
		return Line{Runs: []Run{{Text: text, Style: StyleRule}}, Verbatim: true}
	}

	lines := make([]Line, 0, len(rows)+4)
	lines = append(lines, border(boxBorders.topLeft, boxBorders.topSep, boxBorders.topRight))
	lines = append(lines, tableRow(header, widths, tbl.Align))
	lines = append(lines, border(boxBorders.midLeft, boxBorders.midSep, boxBorders.midRight))
	for _, row := range rows {
		lines = append(lines, tableRow(row, widths, tbl.Align))
	}
	lines = append(lines, border(boxBorders.bottomLeft, boxBorders.bottomSep, boxBorders.bottomRight))
	return lines
}

func (r *renderer) makeCell(text string, base Style) tableCell {
	runs := r.inlineRuns(markdown.ParseInline(text), base)
	return tableCell{runs: runs, width: textutil.DisplayWidth(joinRunsText(runs))}
}

func columnWidths(header []tableCell, rows [][]tableCell, maxWidth int) []int {
	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = cell.width
	}
	for _, row := range rows {
		for i, cell := range row {
			if cell.width > widths[i] {
				widths[i] = cell.width
			}
		}
	}
	for i := range widths {
		if widths[i] > maxWidth {
			widths[i] = maxWidth
		}
		if widths[i] < 1 {
			widths[i] = 1
		}
	}
	return widths
}

// fitCell truncates a cell's runs so the cell fits width columns, ending the
// cut run with an ellipsis.
func fitCell(cell tableCell, width int) tableCell {
	if cell.width <= width {
		return cell
	}
	remaining := width
	var runs []Run
	for _, run := range cell.runs {
		w := textutil.DisplayWidth(run.Text)
		if w < remaining {
			runs = append(runs, run)
			remaining -= w
			continue
		}
		run.Text = truncate.String(run.Text, uint(remaining-1)) + "…"
		runs = append(runs, run)
		break
	}
	return tableCell{runs: runs, width: textutil.DisplayWidth(joinRunsText(runs))}
}

func tableRow(cells []tableCell, widths []int, align []markdown.ColumnAlign) Line {
	runs := []Run{{Text: boxBorders.vertical, Style: StyleRule}}
	for i, cell := range cells {
		gap := widths[i] - cell.width
		if gap < 0 {
			gap = 0
		}
		left, right := 0, gap
		switch alignAt(i, align) {
		case markdown.ColumnRight:
			left, right = gap, 0
		case markdown.ColumnCenter:
			left = gap / 2
			right = gap - left
		}
		runs = append(runs, Run{Text: " " + strings.Repeat(" ", left)})
		runs = append(runs, cell.runs...)
		runs = append(runs, Run{Text: strings.Repeat(" ", right) + " "})
		runs = append(runs, Run{Text: boxBorders.vertical, Style: StyleRule})
	}
	return Line{Runs: runs, Verbatim: true}
}

func alignAt(idx int, align []markdown.ColumnAlign) markdown.ColumnAlign {
	if idx < len(align) {
		return align[idx]
	}
	return markdown.ColumnDefault
}
