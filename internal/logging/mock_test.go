package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_ChildLoggersShareSink(t *testing.T) {
	mock := NewMockLogger()
	child := mock.WithField(FieldFile, "stub.pdf")
	child.WithError(errors.New("bad")).Error("parse failed", Field{Key: FieldSection, Value: "deductions"})
	mock.Info("done")

	entries := mock.GetEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, "ERROR", entries[0].Level)
	assert.EqualError(t, entries[0].Error, "bad")
	v, ok := entries[0].FieldValue(FieldFile)
	require.True(t, ok)
	assert.Equal(t, "stub.pdf", v)
	v, ok = entries[0].FieldValue(FieldSection)
	require.True(t, ok)
	assert.Equal(t, "deductions", v)

	assert.True(t, mock.HasEntry("INFO", "done"))
	assert.Len(t, mock.GetEntriesByLevel("ERROR"), 1)

	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var mock MockLogger
	mock.Warn("zero value")
	assert.True(t, mock.HasEntry("WARN", "zero value"))
}
