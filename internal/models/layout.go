package models

// Layout holds the employer-specific label catalogs that drive the section
// parsers and the CSV row order. Empty lists in an override keep the defaults.
type Layout struct {
	// DeductionLabels in priority order: longer labels before their prefixes.
	DeductionLabels []string `yaml:"deduction_labels"`
	// BenefitStyleDeductions may report a single year-to-date amount.
	BenefitStyleDeductions []string `yaml:"benefit_style_deductions"`
	// YTDWhenSingle labels always treat a lone amount as year-to-date.
	YTDWhenSingle []string `yaml:"ytd_when_single"`
	// BenefitLabels for the Other Benefits region; "*" is a token wildcard.
	BenefitLabels []string `yaml:"benefit_labels"`
	// FieldOrder is the CSV priority list of current-period fields.
	FieldOrder []string `yaml:"field_order"`
}

// DefaultLayout returns the built-in layout.
func DefaultLayout() Layout {
	return Layout{
		DeductionLabels: []string{
			"Federal Income Tax",
			"Social Security Tax",
			"Medicare Tax",
			"Medicare Surtax",
			"GA State Income Tax",
			"Rsu Net Value",
			"Basic Life Inc",
			"Accident",
			"Ad&D Spouse",
			"Ad&D",
			"After-Tax Ded",
			"Crit Ill Spouse",
			"Critical Illnes",
			"Dental Pretax",
			"Ee Life",
			"Espp",
			"Hsa",
			"Legal",
			"Medical Pretax",
			"Non Ca Std",
			"Roth 401K",
			"Spouse Life",
			"Vision Pretax",
		},
		BenefitStyleDeductions: []string{
			"Basic Life Inc",
			"Accident",
			"Ad&D",
			"Ad&D Spouse",
			"After-Tax Ded",
			"Crit Ill Spouse",
			"Critical Illnes",
			"Dental Pretax",
			"Ee Life",
			"Hsa",
			"Legal",
			"Medical Pretax",
			"Non Ca Std",
			"Roth 401K",
			"Spouse Life",
			"Vision Pretax",
		},
		YTDWhenSingle: []string{
			"Rsu Net Value",
		},
		BenefitLabels: []string{
			"Current Match",
			"Espp *",
			"Ytd 401K Match",
			"Sick Earned Bal",
		},
		FieldOrder: []string{
			"Pay Date",
			"Earnings Regular",
			"Earnings Rsu",
			"Taxable Wages This Period",
			"Deductions Federal Income Tax",
			"Deductions Social Security Tax",
			"Deductions Medicare Tax",
			"Deductions Medicare Surtax",
			"Deductions GA State Income Tax",
			"Deductions Rsu Net Value",
			"Deductions Accident",
			"Deductions Ad&D",
			"Deductions Ad&D Spouse",
			"Deductions After-Tax Ded",
			"Deductions Crit Ill Spouse",
			"Deductions Critical Illnes",
			"Deductions Dental Pretax",
			"Deductions Ee Life",
			"Deductions Espp",
			"Deductions Hsa",
			"Deductions Legal",
			"Deductions Medical Pretax",
			"Deductions Non Ca Std",
			"Deductions Roth 401K",
			"Deductions Spouse Life",
			"Deductions Vision Pretax",
			"Deductions Basic Life Inc",
			"Other Benefits Current Match",
			"Other Benefits Espp *",
			"Other Benefits Ytd 401K Match",
			"Pay Period Beginning",
			"Pay Period Ending",
		},
	}
}

// WithOverrides returns l with every non-empty list of o replacing its counterpart.
func (l Layout) WithOverrides(o Layout) Layout {
	if len(o.DeductionLabels) > 0 {
		l.DeductionLabels = o.DeductionLabels
	}
	if len(o.BenefitStyleDeductions) > 0 {
		l.BenefitStyleDeductions = o.BenefitStyleDeductions
	}
	if len(o.YTDWhenSingle) > 0 {
		l.YTDWhenSingle = o.YTDWhenSingle
	}
	if len(o.BenefitLabels) > 0 {
		l.BenefitLabels = o.BenefitLabels
	}
	if len(o.FieldOrder) > 0 {
		l.FieldOrder = o.FieldOrder
	}
	return l
}

// Set builds a lookup set from labels.
func Set(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[l] = true
	}
	return set
}
