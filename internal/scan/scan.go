// Package scan provides line-level decoding of Unreal Engine log text:
// recognizing header lines, splitting a header tail into category, severity
// and body, and extracting the timezone announcement.
//
// Header fields have fixed positions and widths, so the package uses a
// hand-written cursor over the line bytes instead of regular expressions.
package scan

import (
	"strconv"
	"strings"

	"github.com/uelog/uelog-go/pkg/uelog/record"
)

// Header holds the numeric timestamp fields and the trailing text of one
// header line:
//
//	[2020.12.14-13.46.03:809][  1]LogTemp: MultilineTest line1
//
// The first bracket is the timestamp (year 4+ digits, the other fields
// zero-padded to 2 digits, milliseconds to 3). The second bracket is a
// thread/frame identifier of digits and spaces; it is validated and
// discarded. Rest is everything after the second bracket.
type Header struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Millisecond          int
	Rest                 string
}

// offsetMarker introduces the timezone announcement, e.g.
//
//	LogICUInternationalization: ICU TimeZone Detection - Raw Offset: +9:00, Platform Override: ''
const offsetMarker = "Raw Offset:"

// cursor is a byte-position scanner over a single line.
type cursor struct {
	s string
	i int
}

func (c *cursor) byte(b byte) bool {
	if c.i < len(c.s) && c.s[c.i] == b {
		c.i++
		return true
	}
	return false
}

// digits consumes between min and max digits (max < 0 means unbounded) and
// returns their numeric value.
func (c *cursor) digits(min, max int) (int, bool) {
	start := c.i
	for c.i < len(c.s) && c.s[c.i] >= '0' && c.s[c.i] <= '9' {
		c.i++
		if max >= 0 && c.i-start == max {
			break
		}
	}
	if c.i-start < min {
		return 0, false
	}
	n, err := strconv.Atoi(c.s[start:c.i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseHeader decodes the fixed positional header prefix of line. It returns
// ok=false for any line that is not header-shaped; such lines are either
// continuations or noise, never record starts.
func ParseHeader(line string) (Header, bool) {
	var h Header
	c := cursor{s: line}
	ok := false

	if !c.byte('[') {
		return h, false
	}
	if h.Year, ok = c.digits(4, -1); !ok {
		return h, false
	}
	if !c.byte('.') {
		return h, false
	}
	if h.Month, ok = c.digits(2, 2); !ok {
		return h, false
	}
	if !c.byte('.') {
		return h, false
	}
	if h.Day, ok = c.digits(2, 2); !ok {
		return h, false
	}
	if !c.byte('-') {
		return h, false
	}
	if h.Hour, ok = c.digits(2, 2); !ok {
		return h, false
	}
	if !c.byte('.') {
		return h, false
	}
	if h.Minute, ok = c.digits(2, 2); !ok {
		return h, false
	}
	if !c.byte('.') {
		return h, false
	}
	if h.Second, ok = c.digits(2, 2); !ok {
		return h, false
	}
	if !c.byte(':') {
		return h, false
	}
	if h.Millisecond, ok = c.digits(3, 3); !ok {
		return h, false
	}
	if !c.byte(']') {
		return h, false
	}

	// Thread/frame bracket: one or more digits or spaces.
	if !c.byte('[') {
		return h, false
	}
	n := 0
	for c.i < len(c.s) {
		b := c.s[c.i]
		if b == ']' {
			break
		}
		if b != ' ' && (b < '0' || b > '9') {
			return h, false
		}
		c.i++
		n++
	}
	if n == 0 || !c.byte(']') {
		return h, false
	}

	h.Rest = c.s[c.i:]
	if h.Rest == "" {
		return h, false
	}
	return h, true
}

// IsHeader reports whether line starts a new record.
func IsHeader(line string) bool {
	_, ok := ParseHeader(line)
	return ok
}

// SplitTail splits a header's trailing text into category, severity and
// body. ok=false means the line has the header timestamp shape but not the
// category layout of real log output (engine notices such as file-close
// lines); callers skip those lines.
func SplitTail(rest string) (category string, sev record.Severity, body string, ok bool) {
	// Category runs to the first colon and must be followed by whitespace
	// and a non-empty remainder.
	i := strings.IndexByte(rest, ':')
	if i <= 0 {
		return "", 0, "", false
	}
	category = rest[:i]
	remainder, ok := skipSpace(rest[i+1:])
	if !ok {
		return "", 0, "", false
	}

	sev = record.SeverityLog
	body = remainder
	for _, kw := range [...]struct {
		name string
		sev  record.Severity
	}{
		{"Warning", record.SeverityWarning},
		{"Error", record.SeverityError},
		{"Display", record.SeverityDisplay},
	} {
		after, found := cutKeyword(remainder, kw.name)
		if found {
			sev = kw.sev
			body = after
			break
		}
	}
	return category, sev, body, true
}

// cutKeyword matches `<kw>:<whitespace><non-empty body>` at the start of s
// and returns the body. Tokens like "Errors:" must not match "Error".
func cutKeyword(s, kw string) (string, bool) {
	if !strings.HasPrefix(s, kw) || len(s) <= len(kw) || s[len(kw)] != ':' {
		return "", false
	}
	return skipSpace(s[len(kw)+1:])
}

// skipSpace consumes one or more leading whitespace bytes and requires a
// non-empty remainder.
func skipSpace(s string) (string, bool) {
	n := 0
	for n < len(s) && isSpace(s[n]) {
		n++
	}
	if n == 0 || n == len(s) {
		return "", false
	}
	return s[n:], true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// RawOffset extracts the UTC offset from a timezone announcement line.
//
// found reports whether line contains the announcement marker at all. When
// found is true but ok is false, the line carries the marker with numerals
// that do not parse; construction must fail rather than keep scanning.
//
// The hour token carries the sign; minutes are combined with the hour's
// sign, so "-9:30" resolves to -(9h30m).
func RawOffset(line string) (seconds int, found, ok bool) {
	i := strings.Index(line, offsetMarker)
	if i < 0 {
		return 0, false, false
	}
	s := line[i+len(offsetMarker):]
	j := 0
	for j < len(s) && isSpace(s[j]) {
		j++
	}
	s = s[j:]

	colon := strings.IndexByte(s, ':')
	if colon <= 0 {
		return 0, true, false
	}
	hourTok := s[:colon]
	hours, err := strconv.Atoi(hourTok)
	if err != nil {
		return 0, true, false
	}

	s = s[colon+1:]
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 {
		return 0, true, false
	}
	minutes, err := strconv.Atoi(s[:n])
	if err != nil {
		return 0, true, false
	}

	seconds = hours*3600 + minutes*60
	if hours < 0 || strings.HasPrefix(hourTok, "-") {
		seconds = hours*3600 - minutes*60
	}
	return seconds, true, true
}
