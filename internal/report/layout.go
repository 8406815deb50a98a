package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/halver/timesheet/internal/timefmt"
)

// Page geometry and table metrics, in points. A4 portrait with half-inch
// margins; four fixed columns and a note column absorbing the rest of the
// content width.
const (
	pageWidth  = 595.28
	pageHeight = 841.89
	pageMargin = 36

	titleSize   = 16
	titleGap    = 12
	headerSize  = 11
	cellSize    = 10
	lineGap     = 3
	cellPadX    = 6
	cellPadY    = 6
	borderWidth = 0.5

	noteMinWidth = 120

	headerHeight = cellSize + 2*cellPadY
	lineHeight   = cellSize + lineGap
)

// Measure returns the rendered width of text at the cell font size.
type Measure func(text string) float64

type column struct {
	title string
	width float64
}

type layout struct {
	cols    []column
	measure Measure
	now     time.Time
}

// plannedRow holds the wrapped lines per column and the shared row height.
type plannedRow struct {
	lines  [][]string
	height float64
}

// plan is a fully laid out document: rows assigned to pages, heights fixed.
// The renderer only has to draw it.
type plan struct {
	cols  []column
	pages [][]plannedRow
}

func newLayout(measure Measure, now time.Time) (*layout, error) {
	contentWidth := float64(pageWidth - 2*pageMargin)

	cols := []column{
		{"User", 110},
		{"Start", 120},
		{"Stop", 120},
		{"Duration", 80},
	}
	fixed := 0.0
	for _, c := range cols {
		fixed += c.width
	}
	noteWidth := contentWidth - fixed
	if noteWidth < noteMinWidth {
		noteWidth = noteMinWidth
	}
	cols = append(cols, column{"Note", noteWidth})

	// A misconfigured page or column set must fail here, not render
	// zero-width cells.
	for _, c := range cols {
		if c.width-2*cellPadX <= 0 {
			return nil, fmt.Errorf("column %q has non-positive interior width", c.title)
		}
	}

	return &layout{cols: cols, measure: measure, now: now}, nil
}

// wrap breaks text greedily into lines no wider than maxWidth. A single word
// wider than the column is hard-broken rune by rune. Always returns at least
// one (possibly empty) line.
func (l *layout) wrap(text string, maxWidth float64) []string {
	words := strings.Fields(strings.ReplaceAll(text, "\r", ""))

	var lines []string
	current := ""
	for _, word := range words {
		tentative := word
		if current != "" {
			tentative = current + " " + word
		}
		if l.measure(tentative) <= maxWidth {
			current = tentative
			continue
		}
		if current == "" {
			buf := ""
			for _, r := range word {
				if l.measure(buf+string(r)) <= maxWidth {
					buf += string(r)
					continue
				}
				if buf != "" {
					lines = append(lines, buf)
				}
				buf = string(r)
			}
			current = buf
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func (l *layout) planRow(r Row) plannedRow {
	stampOrDash := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format(displayStamp)
	}
	userName := ""
	if r.UserName != nil {
		userName = *r.UserName
	}

	cells := []string{
		userName,
		r.StartedAt.Format(displayStamp),
		stampOrDash(r.StoppedAt),
		timefmt.Phrase(r.elapsed(l.now)),
		r.note(),
	}

	lines := make([][]string, len(l.cols))
	maxLines := 1
	for i, text := range cells {
		lines[i] = l.wrap(text, l.cols[i].width-2*cellPadX)
		if n := len(lines[i]); n > maxLines {
			maxLines = n
		}
	}

	// All cells in a row share one height, floored at a single line.
	height := float64(maxLines)*lineHeight + 2*cellPadY - lineGap
	if min := float64(cellSize + 2*cellPadY); height < min {
		height = min
	}

	return plannedRow{lines: lines, height: height}
}

// planDocument assigns rows to pages. The first page carries the title; every
// page carries the header row. A row that no longer fits above the bottom
// margin moves to a fresh page.
func (l *layout) planDocument(rows []Row) *plan {
	p := &plan{cols: l.cols}

	var current []plannedRow
	y := float64(pageHeight - pageMargin)
	y -= titleSize + titleGap
	y -= headerHeight

	for _, r := range rows {
		pr := l.planRow(r)
		if y-pr.height < pageMargin {
			p.pages = append(p.pages, current)
			current = nil
			y = float64(pageHeight-pageMargin) - headerHeight
		}
		current = append(current, pr)
		y -= pr.height
	}

	p.pages = append(p.pages, current)
	return p
}
