package models

// Unprefixed field names.
const (
	FieldSourceFile         = "Source File"
	FieldPayDate            = "Pay Date"
	FieldPayPeriodBeginning = "Pay Period Beginning"
	FieldPayPeriodEnding    = "Pay Period Ending"
	FieldTaxableWages       = "Taxable Wages This Period"
)

// Field categories.
const (
	CategoryEarnings      = "Earnings"
	CategoryDeductions    = "Deductions"
	CategoryOtherBenefits = "Other Benefits"
)

// YTDSuffix distinguishes the year-to-date column from the current-period one.
const YTDSuffix = " YTD"
