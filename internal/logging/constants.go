package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldParser     = "parser"
	FieldSection    = "section"
	FieldField      = "field"
	FieldLabel      = "label"
	FieldLine       = "line"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldCount      = "count"
	FieldTotal      = "total"
	FieldSkipped    = "skipped"
	FieldPrevious   = "previous"
	FieldCurrent    = "current"
	FieldFormat     = "format"
	FieldDelimiter  = "delimiter"
	FieldExtractor  = "extractor"
	FieldInputPath  = "input_path"
	FieldOutputFile = "output_file"
	FieldDatabase   = "database"
)
