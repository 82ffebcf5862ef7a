package record_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uelog/uelog-go/pkg/uelog/record"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		sev  record.Severity
		want string
	}{
		{record.SeverityLog, "Log"},
		{record.SeverityWarning, "Warning"},
		{record.SeverityError, "Error"},
		{record.SeverityDisplay, "Display"},
		{record.Severity(42), "Severity(42)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.sev.String())
	}
}

func TestParseSeverity(t *testing.T) {
	for _, sev := range []record.Severity{
		record.SeverityLog,
		record.SeverityWarning,
		record.SeverityError,
		record.SeverityDisplay,
	} {
		got, err := record.ParseSeverity(sev.String())
		require.NoError(t, err)
		assert.Equal(t, sev, got)
	}

	_, err := record.ParseSeverity("Verbose")
	assert.Error(t, err)
	_, err = record.ParseSeverity("")
	assert.Error(t, err)
	_, err = record.ParseSeverity("warning") // names are case-sensitive
	assert.Error(t, err)
}

func TestSeverityTextRoundTrip(t *testing.T) {
	text, err := record.SeverityWarning.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Warning", string(text))

	var sev record.Severity
	require.NoError(t, sev.UnmarshalText([]byte("Display")))
	assert.Equal(t, record.SeverityDisplay, sev)

	assert.Error(t, sev.UnmarshalText([]byte("nope")))
}

func TestRecordJSON(t *testing.T) {
	tz := time.FixedZone("UTC+09:00", 9*3600)
	rec := record.Record{
		Timestamp: time.Date(2020, 12, 14, 13, 46, 3, 809e6, tz),
		Severity:  record.SeverityError,
		Category:  "LogTemp",
		RawText:   "LogTemp: Error: boom",
		Body:      "boom",
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"severity":"Error"`)
	assert.Contains(t, string(data), `"category":"LogTemp"`)
	assert.Contains(t, string(data), `"2020-12-14T13:46:03.809+09:00"`)

	var back record.Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, record.SeverityError, back.Severity)
	assert.True(t, rec.Timestamp.Equal(back.Timestamp))
}
