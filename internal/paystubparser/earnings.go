package paystubparser

import (
	"strings"

	"fjacquet/paystub-csv/internal/amount"
	"fjacquet/paystub-csv/internal/models"
	"fjacquet/paystub-csv/internal/textutils"
)

var (
	earningsEntryMarkers = []string{"rate", "hours", "this period"}
	earningsExitMarkers  = []string{"Gross Pay", "Federal Income Tax", "Deductions", "Net Check"}
	earningsIgnored      = map[string]bool{"Net Pay": true, "Net Check": true}
)

// EarningsParser reads the earnings table that precedes the deductions.
type EarningsParser struct{}

// Name implements parser.SectionParser.
func (EarningsParser) Name() string { return "earnings" }

// Parse scans from the "rate / hours / this period" header to the first exit
// marker and emits current-period and YTD earnings per leading label.
func (EarningsParser) Parse(text string) map[string]string {
	fields := make(map[string]string)
	inSection := false

	for _, line := range textutils.Lines(text) {
		if textutils.ContainsAllFold(line, earningsEntryMarkers...) {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if textutils.ContainsAny(line, earningsExitMarkers...) {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		label := textutils.LeadingLabel(line)
		if label == "" || earningsIgnored[label] {
			continue
		}
		amounts := amount.LexAll(strings.Fields(textutils.TextAfter(line, label)))
		assignEarnings(fields, label, amounts)
	}
	return fields
}

// assignEarnings maps the collected amounts to fields by count:
// rate/hours/period/ytd, hours/period/ytd, period/ytd, or ytd alone.
func assignEarnings(fields map[string]string, label string, amounts []string) {
	name := models.FieldName(models.CategoryEarnings, label)
	var current, ytd string
	switch n := len(amounts); {
	case n >= 4:
		current, ytd = amounts[2], amounts[3]
	case n == 3:
		current, ytd = amounts[1], amounts[2]
	case n == 2:
		current, ytd = amounts[0], amounts[1]
	case n == 1:
		ytd = amounts[0]
	default:
		return
	}
	if current != "" {
		fields[name] = current
	}
	fields[models.YTDName(name)] = ytd
}
