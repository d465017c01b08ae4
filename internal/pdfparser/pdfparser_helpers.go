package pdfparser

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// gapFactor is the horizontal gap, relative to font size, above which two
// glyph runs are treated as separate words.
const gapFactor = 0.15

// sortRows orders rows top to bottom (PDF Y grows upwards) and each row's
// runs left to right.
func sortRows(rows pdf.Rows) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Position > rows[j].Position
	})
	for _, row := range rows {
		content := row.Content
		sort.SliceStable(content, func(i, j int) bool {
			return content[i].X < content[j].X
		})
	}
}

// joinRuns concatenates glyph runs, inserting one space wherever a run
// starts visibly after the previous one ends.
func joinRuns(runs pdf.TextHorizontal) string {
	var sb strings.Builder
	var prev *pdf.Text
	for i := range runs {
		run := &runs[i]
		if run.S == "" {
			continue
		}
		if prev != nil && needsSpace(prev, run, sb.String()) {
			sb.WriteByte(' ')
		}
		sb.WriteString(run.S)
		prev = run
	}
	return sb.String()
}

func needsSpace(prev, next *pdf.Text, written string) bool {
	if strings.HasSuffix(written, " ") || strings.HasPrefix(next.S, " ") {
		return false
	}
	// Runs without a measured width are always separated.
	if prev.W <= 0 {
		return true
	}
	size := prev.FontSize
	if size <= 0 {
		size = 1
	}
	gap := next.X - (prev.X + prev.W)
	return gap > gapFactor*size
}
