package models

import (
	"sort"
	"strings"
)

// Record is one paystub: canonical field name to value. Missing fields are absent.
type Record map[string]string

// NewRecord returns a record carrying only the source file name.
func NewRecord(sourceFile string) Record {
	return Record{FieldSourceFile: sourceFile}
}

// FieldName builds "<category> <label>".
func FieldName(category, label string) string {
	return category + " " + label
}

// YTDName returns the year-to-date counterpart of field.
func YTDName(field string) string {
	return field + YTDSuffix
}

// IsYTD reports whether field names a year-to-date column.
func IsYTD(field string) bool {
	return strings.HasSuffix(field, YTDSuffix)
}

// SourceFile returns the record's source file name.
func (r Record) SourceFile() string {
	return r[FieldSourceFile]
}

// PayDate returns the record's pay date, or "".
func (r Record) PayDate() string {
	return r[FieldPayDate]
}

// Merge copies every entry of fields into r, overwriting existing keys.
func (r Record) Merge(fields map[string]string) {
	for k, v := range fields {
		r[k] = v
	}
}

// Fields returns the field names of r sorted alphabetically.
func (r Record) Fields() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FieldSet returns the union of field names across records.
func FieldSet(records []Record) map[string]struct{} {
	set := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			set[k] = struct{}{}
		}
	}
	return set
}
