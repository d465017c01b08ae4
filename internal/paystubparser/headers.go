package paystubparser

import (
	"fjacquet/paystub-csv/internal/dateutils"
	"fjacquet/paystub-csv/internal/models"
)

// headerLabels maps the printed label to the record field it fills.
var headerLabels = []struct {
	label string
	field string
}{
	{label: "Period Beginning", field: models.FieldPayPeriodBeginning},
	{label: "Period Ending", field: models.FieldPayPeriodEnding},
	{label: "Pay Date", field: models.FieldPayDate},
}

// HeaderParser extracts the pay-period dates.
type HeaderParser struct{}

// Name implements parser.SectionParser.
func (HeaderParser) Name() string { return "headers" }

// Parse returns up to three date fields, copied verbatim. Labels that are
// absent produce no field.
func (HeaderParser) Parse(text string) map[string]string {
	fields := make(map[string]string, len(headerLabels))
	for _, h := range headerLabels {
		if date, ok := dateutils.FindLabeledDate(text, h.label); ok {
			fields[h.field] = date
		}
	}
	return fields
}
