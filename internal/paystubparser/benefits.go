package paystubparser

import (
	"regexp"
	"strings"

	"fjacquet/paystub-csv/internal/amount"
	"fjacquet/paystub-csv/internal/models"
	"fjacquet/paystub-csv/internal/textutils"
)

// maxBenefitTokens bounds the length of a glob-matched benefit name.
const maxBenefitTokens = 4

var negativeNumberToken = regexp.MustCompile(`^-+\d+$`)

// benefitLabel is one catalog entry, literal or token glob.
type benefitLabel struct {
	raw  string
	glob textutils.TokenGlob
}

// BenefitsParser reads the "Other Benefits and Information" entries. Benefit
// lines carry a single year-to-date amount.
type BenefitsParser struct {
	labels []benefitLabel
}

// NewBenefitsParser builds a parser over the layout's benefit catalog.
func NewBenefitsParser(layout models.Layout) *BenefitsParser {
	labels := make([]benefitLabel, 0, len(layout.BenefitLabels))
	for _, l := range layout.BenefitLabels {
		labels = append(labels, benefitLabel{raw: l, glob: textutils.CompileGlob(l)})
	}
	return &BenefitsParser{labels: labels}
}

// Name implements parser.SectionParser.
func (p *BenefitsParser) Name() string { return "other_benefits" }

// Parse emits at most one benefit per line: the first catalog entry that
// matches decides the line, whether or not an amount follows it.
func (p *BenefitsParser) Parse(text string) map[string]string {
	fields := make(map[string]string)
	for _, line := range textutils.Lines(text) {
		for _, label := range p.labels {
			name, ok := label.match(line)
			if !ok {
				continue
			}
			if value, ok := amount.Leading(textutils.TextAfter(line, name)); ok {
				fields[models.FieldName(models.CategoryOtherBenefits, name)] = value
			}
			break
		}
	}
	return fields
}

// match returns the benefit name as printed on line.
func (b benefitLabel) match(line string) (string, bool) {
	if !b.glob.HasWildcard() {
		if strings.Contains(line, b.raw) {
			return b.raw, true
		}
		return "", false
	}

	words := strings.Fields(line)
	for i := range words {
		limit := i + maxBenefitTokens
		if limit > len(words) {
			limit = len(words)
		}
		for j := i + 1; j <= limit; j++ {
			candidate := words[i:j]
			joined := strings.Join(candidate, " ")
			captured, ok := b.glob.Capture(joined)
			if !ok || hasNegativeNumber(candidate) || numericWildcard(captured) {
				continue
			}
			return joined, true
		}
	}
	return "", false
}

// hasNegativeNumber reports a "-123" style token, which marks a deduction context.
func hasNegativeNumber(words []string) bool {
	for _, w := range words {
		if negativeNumberToken.MatchString(w) {
			return true
		}
	}
	return false
}

// numericWildcard reports a wildcard capture that is only a number, such as
// the summary amount of "Espp 1 234 56".
func numericWildcard(captured string) bool {
	if captured == "" || strings.ContainsAny(captured, "/-") {
		return false
	}
	digits := strings.ReplaceAll(captured, " ", "")
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
