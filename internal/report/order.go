package report

import (
	"sort"

	"fjacquet/paystub-csv/internal/models"
	"fjacquet/paystub-csv/internal/textutils"
)

// ColumnOrder returns the field rows of the transposed table for records.
// Fields named by priority come first, glob entries expanding to their
// matches in alphabetical order; then the YTD counterparts of the same
// priority list; then every remaining field alphabetically. Source File and
// Pay Date are never included.
func ColumnOrder(records []models.Record, priority []string) []string {
	remaining := models.FieldSet(records)
	delete(remaining, models.FieldSourceFile)
	delete(remaining, models.FieldPayDate)

	var ordered []string
	take := func(pattern string, ytd bool) {
		if !textutils.IsGlob(pattern) {
			if _, ok := remaining[pattern]; ok {
				ordered = append(ordered, pattern)
				delete(remaining, pattern)
			}
			return
		}
		glob := textutils.CompileGlob(pattern)
		var matched []string
		for field := range remaining {
			// the current-period pass must not swallow YTD columns
			if models.IsYTD(field) != ytd {
				continue
			}
			if glob.Match(field) {
				matched = append(matched, field)
			}
		}
		sort.Strings(matched)
		for _, field := range matched {
			ordered = append(ordered, field)
			delete(remaining, field)
		}
	}

	for _, pattern := range priority {
		take(pattern, false)
	}
	for _, pattern := range priority {
		take(models.YTDName(pattern), true)
	}

	rest := make([]string, 0, len(remaining))
	for field := range remaining {
		rest = append(rest, field)
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}
