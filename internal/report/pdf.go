package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const pdfTitle = "Time Report"

// PDF renders the rows as a paginated table document. Running entries are
// measured against now for the duration column.
func PDF(rows []Row, now time.Time) ([]byte, error) {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetTextColor(0, 0, 0)

	// Font metrics for the layout pass. The planner only measures cell
	// text, which is always regular Helvetica at cell size.
	doc.SetFont("Helvetica", "", cellSize)
	measure := func(s string) float64 {
		return doc.GetStringWidth(s)
	}

	l, err := newLayout(measure, now)
	if err != nil {
		return nil, err
	}
	p := l.planDocument(rows)

	for i, pageRows := range p.pages {
		doc.AddPage()
		y := float64(pageMargin)

		if i == 0 {
			doc.SetFont("Helvetica", "B", titleSize)
			doc.Text(pageMargin, y+titleSize, pdfTitle)
			y += titleSize + titleGap
		}

		y = drawHeader(doc, p.cols, y)
		for _, pr := range pageRows {
			y = drawRow(doc, p.cols, pr, y)
		}
	}

	if doc.Err() {
		return nil, fmt.Errorf("render pdf: %w", doc.Error())
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawHeader(doc *fpdf.Fpdf, cols []column, y float64) float64 {
	doc.SetFont("Helvetica", "B", headerSize)
	doc.SetFillColor(242, 242, 247)
	doc.SetDrawColor(179, 179, 179)
	doc.SetLineWidth(borderWidth)

	x := float64(pageMargin)
	for _, c := range cols {
		doc.Rect(x, y, c.width, headerHeight, "FD")
		doc.Text(x+cellPadX, y+cellPadY+headerSize, c.title)
		x += c.width
	}
	return y + headerHeight
}

func drawRow(doc *fpdf.Fpdf, cols []column, pr plannedRow, y float64) float64 {
	doc.SetFont("Helvetica", "", cellSize)
	doc.SetDrawColor(217, 217, 217)
	doc.SetLineWidth(borderWidth)

	x := float64(pageMargin)
	for i, c := range cols {
		doc.Rect(x, y, c.width, pr.height, "D")

		textY := y + cellPadY + cellSize
		for _, line := range pr.lines[i] {
			doc.Text(x+cellPadX, textY, line)
			textY += lineHeight
		}
		x += c.width
	}
	return y + pr.height
}
