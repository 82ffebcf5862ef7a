package uelog_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uelog/uelog-go/pkg/uelog"
	"github.com/uelog/uelog-go/pkg/uelog/record"
)

const tzLine = "LogICUInternationalization: ICU TimeZone Detection - Raw Offset: +9:00, Platform Override: ''"

// logText joins lines into a log stream with a leading timezone
// announcement, the way the engine writes one.
func logText(lines ...string) string {
	all := append([]string{"Log file open, 12/14/20 13:45:58", tzLine}, lines...)
	return strings.Join(all, "\n") + "\n"
}

func mustParser(t *testing.T, input string, opts ...uelog.ParserOption) *uelog.Parser {
	t.Helper()
	p, err := uelog.NewParser(strings.NewReader(input), opts...)
	require.NoError(t, err)
	return p
}

func TestNewParserResolvesTimezone(t *testing.T) {
	p := mustParser(t, logText())

	_, offset := time.Now().In(p.Location()).Zone()
	assert.Equal(t, 9*3600, offset)
}

func TestNewParserNegativeOffset(t *testing.T) {
	input := "LogICUInternationalization: ICU TimeZone Detection - Raw Offset: -9:30, Platform Override: ''\n"
	p, err := uelog.NewParser(strings.NewReader(input))
	require.NoError(t, err)

	_, offset := time.Now().In(p.Location()).Zone()
	assert.Equal(t, -(9*3600 + 30*60), offset)
}

func TestNewParserNoTimezone(t *testing.T) {
	input := "just some text\nthat is not an engine log\n"
	p, err := uelog.NewParser(strings.NewReader(input))
	require.Error(t, err)
	assert.Nil(t, p)

	var initErr *uelog.InitError
	require.ErrorAs(t, err, &initErr)
	assert.ErrorIs(t, err, uelog.ErrTimezoneNotFound)
}

func TestNewParserEmptyStream(t *testing.T) {
	_, err := uelog.NewParser(strings.NewReader(""))
	assert.ErrorIs(t, err, uelog.ErrTimezoneNotFound)
}

func TestNewParserMalformedOffset(t *testing.T) {
	input := "LogICUInternationalization: ICU TimeZone Detection - Raw Offset: soon, Platform Override: ''\n"
	_, err := uelog.NewParser(strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, uelog.ErrMalformedOffset)
}

func TestNewParserScanLimit(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		sb.WriteString("filler line\n")
	}
	sb.WriteString(tzLine + "\n")

	// Limit below the announcement position fails construction.
	_, err := uelog.NewParser(strings.NewReader(sb.String()), uelog.WithScanLimit(10))
	assert.ErrorIs(t, err, uelog.ErrTimezoneNotFound)

	// A generous limit succeeds.
	_, err = uelog.NewParser(strings.NewReader(sb.String()), uelog.WithScanLimit(1000))
	assert.NoError(t, err)
}

func TestReadCountAndOrder(t *testing.T) {
	p := mustParser(t, logText(
		"[2020.12.14-13.46.03:809][  1]LogTemp: first",
		"[2020.12.14-13.46.04:819][  2]LogTemp: second",
		"[2020.12.14-13.46.05:829][  3]LogTemp: third",
	))

	var bodies []string
	for {
		rec, err := p.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		bodies = append(bodies, rec.Body)
	}
	assert.Equal(t, []string{"first", "second", "third"}, bodies)
}

func TestReadMultilineFold(t *testing.T) {
	p := mustParser(t, logText(
		"[2020.12.14-13.46.03:809][  1]LogTemp: Script Stack:",
		"    UObject::ProcessEvent",
		"    AActor::Tick",
		"[2020.12.14-13.46.04:819][  2]LogTemp: next",
	))

	rec, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, "Script Stack:\n    UObject::ProcessEvent\n    AActor::Tick", rec.Body)
	assert.Equal(t, "LogTemp: Script Stack:\n    UObject::ProcessEvent\n    AActor::Tick", rec.RawText)

	// The header that terminated the fold starts the next record.
	rec, err = p.Read()
	require.NoError(t, err)
	assert.Equal(t, "next", rec.Body)

	_, err = p.Read()
	assert.Equal(t, io.EOF, err)
}

func TestReadFoldAtEndOfStream(t *testing.T) {
	p := mustParser(t, logText(
		"[2020.12.14-13.46.03:809][  1]LogTemp: tail record",
		"still going",
	))

	rec, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, "tail record\nstill going", rec.Body)

	_, err = p.Read()
	assert.Equal(t, io.EOF, err)
}

func TestReadSkipsUnstructuredHeaders(t *testing.T) {
	// Header-shaped but no category separator: skipped, not returned,
	// and later valid headers are still found.
	p := mustParser(t, logText(
		"[2020.12.14-13.46.03:809][  1]NoneCategory,VerbosityTest",
		"[2020.12.14-13.46.04:819][  2]LogTemp: survivor",
	))

	rec, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, "LogTemp", rec.Category)
	assert.Equal(t, "survivor", rec.Body)

	_, err = p.Read()
	assert.Equal(t, io.EOF, err)
}

func TestReadSkippedHeaderTerminatesFold(t *testing.T) {
	p := mustParser(t, logText(
		"[2020.12.14-13.46.03:809][  1]LogTemp: first",
		"continuation of first",
		"[2020.12.14-22.46.12:859][  2]Log file closed, 12/14/20 22:46:12",
	))

	rec, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, "first\ncontinuation of first", rec.Body)

	_, err = p.Read()
	assert.Equal(t, io.EOF, err)
}

func TestReadDefaultSeverity(t *testing.T) {
	p := mustParser(t, logText(
		"[2020.12.14-13.46.03:809][  1]LogTemp: Verbose: not a known keyword",
	))

	rec, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, uelog.SeverityLog, rec.Severity)
	assert.Equal(t, "Verbose: not a known keyword", rec.Body)
}

func TestReadSeverities(t *testing.T) {
	tests := []struct {
		name string
		line string
		sev  record.Severity
		body string
	}{
		{"warning", "[2020.12.14-13.46.04:819][  2]SampleCategory: Warning: WarningVerbosityTest", uelog.SeverityWarning, "WarningVerbosityTest"},
		{"error", "[2020.12.14-13.46.05:829][  3]LogTemp: Error: ErrorVerbosityTest", uelog.SeverityError, "ErrorVerbosityTest"},
		{"display", "[2020.12.14-13.46.06:839][  4]LogTemp: Display: DisplayVerbosityTest", uelog.SeverityDisplay, "DisplayVerbosityTest"},
		{"log", "[2020.12.14-13.46.07:849][  5]LogTemp: LogVerbosityTest", uelog.SeverityLog, "LogVerbosityTest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustParser(t, logText(tt.line))
			rec, err := p.Read()
			require.NoError(t, err)
			assert.Equal(t, tt.sev, rec.Severity)
			assert.Equal(t, tt.body, rec.Body)
		})
	}
}

func TestReadSentinelIdempotent(t *testing.T) {
	p := mustParser(t, logText(
		"[2020.12.14-13.46.03:809][  1]LogTemp: only",
	))

	_, err := p.Read()
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		rec, err := p.Read()
		assert.Nil(t, rec)
		assert.Equal(t, io.EOF, err)
	}
}

func TestReadBodyIsSuffixOfRawText(t *testing.T) {
	p := mustParser(t, logText(
		"[2020.12.14-13.46.03:809][  1]LogTemp: Warning: first line",
		"second line",
		"[2020.12.14-13.46.04:819][  2]LogCore: plain",
	))

	for {
		rec, err := p.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(rec.RawText, rec.Body),
			"Body %q must be a suffix of RawText %q", rec.Body, rec.RawText)
		assert.NotEmpty(t, rec.RawText)
	}
}

// TestReadSample mirrors the behavior on a complete small session log,
// including BOM, CRLF line endings and a trailing system notice.
func TestReadSample(t *testing.T) {
	tz := time.FixedZone("UTC+09:00", 9*3600)
	input := "\ufeff" + strings.Join([]string{
		"Log file open, 12/14/20 13:45:58",
		tzLine,
		"[2020.12.14-13.46.03:809][  1]LogTemp: MultilineTest line1",
		"MultilineTest line2",
		"[2020.12.14-13.46.04:819][  2]SampleCategory: Warning: WarningVerbosityTest",
		"[2020.12.14-13.46.05:829][  3]LogTemp: Error: ErrorVerbosityTest",
		"[2020.12.14-13.46.06:839][  4]LogTemp: Display: DisplayVerbosityTest",
		"[2020.12.14-13.46.07:849][  5]LogTemp: LogVerbosityTest",
		"[2020.12.14-13.46.08:859][  6]NoneCategory,VerbosityTest",
		"[2020.12.14-22.46.12:869][  7]Log file closed, 12/14/20 22:46:12",
	}, "\r\n") + "\r\n"

	want := []record.Record{
		{
			Timestamp: time.Date(2020, 12, 14, 13, 46, 3, 809e6, tz),
			Severity:  uelog.SeverityLog,
			Category:  "LogTemp",
			RawText:   "LogTemp: MultilineTest line1\nMultilineTest line2",
			Body:      "MultilineTest line1\nMultilineTest line2",
		},
		{
			Timestamp: time.Date(2020, 12, 14, 13, 46, 4, 819e6, tz),
			Severity:  uelog.SeverityWarning,
			Category:  "SampleCategory",
			RawText:   "SampleCategory: Warning: WarningVerbosityTest",
			Body:      "WarningVerbosityTest",
		},
		{
			Timestamp: time.Date(2020, 12, 14, 13, 46, 5, 829e6, tz),
			Severity:  uelog.SeverityError,
			Category:  "LogTemp",
			RawText:   "LogTemp: Error: ErrorVerbosityTest",
			Body:      "ErrorVerbosityTest",
		},
		{
			Timestamp: time.Date(2020, 12, 14, 13, 46, 6, 839e6, tz),
			Severity:  uelog.SeverityDisplay,
			Category:  "LogTemp",
			RawText:   "LogTemp: Display: DisplayVerbosityTest",
			Body:      "DisplayVerbosityTest",
		},
		{
			Timestamp: time.Date(2020, 12, 14, 13, 46, 7, 849e6, tz),
			Severity:  uelog.SeverityLog,
			Category:  "LogTemp",
			RawText:   "LogTemp: LogVerbosityTest",
			Body:      "LogVerbosityTest",
		},
	}

	p := mustParser(t, input)
	for i, w := range want {
		rec, err := p.Read()
		require.NoError(t, err, "record %d", i)
		assert.True(t, w.Timestamp.Equal(rec.Timestamp),
			"record %d timestamp = %v, want %v", i, rec.Timestamp, w.Timestamp)
		assert.Equal(t, w.Severity, rec.Severity, "record %d", i)
		assert.Equal(t, w.Category, rec.Category, "record %d", i)
		assert.Equal(t, w.RawText, rec.RawText, "record %d", i)
		assert.Equal(t, w.Body, rec.Body, "record %d", i)
	}

	_, err := p.Read()
	assert.Equal(t, io.EOF, err)
}

func TestReadRecordsAreIndependent(t *testing.T) {
	p := mustParser(t, logText(
		"[2020.12.14-13.46.03:809][  1]LogTemp: one",
		"[2020.12.14-13.46.04:819][  2]LogTemp: two",
	))

	first, err := p.Read()
	require.NoError(t, err)
	first.Body = "mutated"
	first.Category = "Mutated"

	second, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, "two", second.Body)
	assert.Equal(t, "LogTemp", second.Category)
}

func TestReadPropagatesReaderError(t *testing.T) {
	readErr := errors.New("disk on fire")
	r := io.MultiReader(
		strings.NewReader(logText()),
		&failingReader{err: readErr},
	)

	p, err := uelog.NewParser(r)
	require.NoError(t, err)

	_, err = p.Read()
	assert.ErrorIs(t, err, readErr)
}

type failingReader struct{ err error }

func (r *failingReader) Read([]byte) (int, error) { return 0, r.err }
