// Package record defines the structured log record produced by parsing
// Unreal Engine log files.
package record

import (
	"fmt"
	"time"
)

// Severity is the verbosity level of a log record.
//
// Unreal Engine writes an explicit "Warning:", "Error:" or "Display:" token
// after the category for those levels only. Plain Log output carries no
// token, so SeverityLog is the fallback whenever no keyword is present.
type Severity int

const (
	// SeverityLog is the default level; it never appears literally in logs.
	SeverityLog Severity = iota
	// SeverityWarning corresponds to the "Warning:" token.
	SeverityWarning
	// SeverityError corresponds to the "Error:" token.
	SeverityError
	// SeverityDisplay corresponds to the "Display:" token.
	SeverityDisplay
)

// String returns the canonical name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityLog:
		return "Log"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	case SeverityDisplay:
		return "Display"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler so severities serialize as
// their names in JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// ParseSeverity converts a severity name into a Severity value.
func ParseSeverity(name string) (Severity, error) {
	switch name {
	case "Log":
		return SeverityLog, nil
	case "Warning":
		return SeverityWarning, nil
	case "Error":
		return SeverityError, nil
	case "Display":
		return SeverityDisplay, nil
	}
	return SeverityLog, fmt.Errorf("unknown severity %q", name)
}

// Record is one fully decoded log entry.
//
// Body is always a suffix of RawText: both share the folded continuation
// lines, and Body additionally has the category and severity tokens
// stripped. Timestamp always carries the fixed UTC offset announced once
// near the start of the stream.
//
// Records are plain values. The parser never retains a reference to a
// returned Record, so callers may keep or mutate them freely.
type Record struct {
	// Timestamp is when the entry was written, in the stream's fixed zone.
	Timestamp time.Time `json:"timestamp"`

	// Severity is the verbosity level; SeverityLog when no token was present.
	Severity Severity `json:"severity"`

	// Category is the emitting subsystem tag, e.g. "LogTemp".
	Category string `json:"category"`

	// RawText is the header tail plus folded continuation lines, with the
	// leading timestamp and thread-id brackets removed.
	RawText string `json:"raw_text"`

	// Body is RawText with the category and severity tokens also stripped.
	Body string `json:"body"`
}
