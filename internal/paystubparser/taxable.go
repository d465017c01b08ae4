package paystubparser

import (
	"strings"

	"fjacquet/paystub-csv/internal/amount"
	"fjacquet/paystub-csv/internal/models"
	"fjacquet/paystub-csv/internal/textutils"
)

const (
	taxableWagesPhrase = "federal taxable wages this period"
	// taxableWagesLookahead is how many following lines may carry the "$" amount.
	taxableWagesLookahead = 3
)

// TaxableWagesProbe finds the federal taxable wages for the period.
type TaxableWagesProbe struct{}

// Name implements parser.SectionParser.
func (TaxableWagesProbe) Name() string { return "taxable_wages" }

// Parse looks at every line mentioning the phrase. On such a line the amount
// is taken after " are ", else after the last "$", else after the last "$" of
// one of the next three lines. The first success wins.
func (TaxableWagesProbe) Parse(text string) map[string]string {
	lines := textutils.Lines(text)
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, taxableWagesPhrase) {
			continue
		}

		if value, ok := afterAre(lower); ok {
			return map[string]string{models.FieldTaxableWages: value}
		}
		if value, ok := afterDollar(line); ok {
			return map[string]string{models.FieldTaxableWages: value}
		}
		end := i + 1 + taxableWagesLookahead
		if end > len(lines) {
			end = len(lines)
		}
		for _, next := range lines[i+1 : end] {
			if value, ok := afterDollar(next); ok {
				return map[string]string{models.FieldTaxableWages: value}
			}
		}
	}
	return map[string]string{}
}

// afterAre reads the amount between the first " are " and the next one.
func afterAre(lower string) (string, bool) {
	parts := strings.Split(lower, " are ")
	if len(parts) < 2 {
		return "", false
	}
	part := strings.TrimSpace(strings.ReplaceAll(parts[1], "$", ""))
	if part == "" {
		return "", false
	}
	return amount.Leading(part)
}

// afterDollar reads the amount following the last "$" of line.
func afterDollar(line string) (string, bool) {
	idx := strings.LastIndex(line, "$")
	if idx < 0 {
		return "", false
	}
	return amount.Leading(line[idx+1:])
}
