package uelog

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/uelog/uelog-go/internal/scan"
	"github.com/uelog/uelog-go/pkg/uelog/record"
)

// Record and Severity re-export the record package types for convenience.
type (
	Record   = record.Record
	Severity = record.Severity
)

// Severity values.
const (
	SeverityLog     = record.SeverityLog
	SeverityWarning = record.SeverityWarning
	SeverityError   = record.SeverityError
	SeverityDisplay = record.SeverityDisplay
)

// maxLineBytes is the largest single line the parser accepts. Engine logs
// occasionally carry very long lines (serialized blobs, shader dumps).
const maxLineBytes = 1024 * 1024

// discardLogger is used when no logger is configured.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Parser reads an Unreal Engine log stream and returns one structured
// Record per logical entry, folding continuation lines into the record
// they belong to.
//
// A Parser is not safe for concurrent use; Read calls must be sequential.
// The Parser does not own the underlying reader and never closes it.
type Parser struct {
	s   *bufio.Scanner
	loc *time.Location
	log *slog.Logger

	// One-line pushback buffer. A header line that terminates the current
	// record is parked here so the next Read sees it as fresh input.
	pending    string
	hasPending bool

	first bool // next physical line is the first of the stream (BOM strip)
}

// NewParser wraps r and eagerly scans for the timezone announcement the
// engine writes once near the start of every log:
//
//	LogICUInternationalization: ICU TimeZone Detection - Raw Offset: +9:00, Platform Override: ''
//
// All timestamps of the stream are resolved against that fixed offset. If
// the stream ends without an announcement, NewParser fails with an
// *InitError and the input should be treated as not being an Unreal Engine
// log. The stream must be positioned at its logical start.
func NewParser(r io.Reader, opts ...ParserOption) (*Parser, error) {
	cfg := applyParserOptions(opts)

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	p := &Parser{s: s, log: cfg.logger, first: true}
	if p.log == nil {
		p.log = discardLogger
	}

	scanned := 0
	for {
		line, err := p.next()
		if err == io.EOF {
			return nil, &InitError{Err: ErrTimezoneNotFound}
		}
		if err != nil {
			return nil, &InitError{Err: err}
		}

		seconds, found, ok := scan.RawOffset(line)
		if found {
			if !ok {
				return nil, &InitError{Err: ErrMalformedOffset}
			}
			p.loc = time.FixedZone(offsetName(seconds), seconds)
			p.log.Debug("resolved log timezone", "offset", offsetName(seconds))
			return p, nil
		}

		scanned++
		if cfg.scanLimit > 0 && scanned >= cfg.scanLimit {
			return nil, &InitError{Err: fmt.Errorf("%w in first %d lines", ErrTimezoneNotFound, cfg.scanLimit)}
		}
	}
}

// Location returns the fixed zone resolved from the stream's announcement.
func (p *Parser) Location() *time.Location {
	return p.loc
}

// Read returns the next record, or io.EOF when the stream is exhausted.
//
// io.EOF is the normal end-of-stream sentinel, not a failure; once
// returned, every subsequent call returns io.EOF again. Any other error
// comes from the underlying reader.
//
// Header-shaped lines whose tail lacks the category layout (engine notices
// such as "Log file closed, ...") are skipped silently; they terminate the
// preceding record but never appear as records themselves.
func (p *Parser) Read() (*Record, error) {
	for {
		line, err := p.next()
		if err != nil {
			return nil, err
		}

		hdr, ok := scan.ParseHeader(line)
		if !ok {
			continue
		}
		category, sev, body, ok := scan.SplitTail(hdr.Rest)
		if !ok {
			p.log.Debug("skipping header line without category", "line", line)
			continue
		}

		rec := &Record{
			Timestamp: headerTime(hdr, p.loc),
			Severity:  sev,
			Category:  category,
			RawText:   hdr.Rest,
			Body:      body,
		}

		// Fold continuation lines until the next header or end of stream.
		for {
			line, err := p.next()
			if err != nil {
				return rec, nil
			}
			if scan.IsHeader(line) {
				p.unread(line)
				return rec, nil
			}
			rec.RawText += "\n" + line
			rec.Body += "\n" + line
		}
	}
}

// next returns the following logical line with the terminator and any
// trailing CR stripped. The pushback buffer, when occupied, is drained
// before the underlying stream.
func (p *Parser) next() (string, error) {
	if p.hasPending {
		p.hasPending = false
		return p.pending, nil
	}
	if !p.s.Scan() {
		if err := p.s.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := strings.TrimRight(p.s.Text(), "\r")
	if p.first {
		p.first = false
		line = strings.TrimPrefix(line, "\ufeff")
	}
	return line, nil
}

func (p *Parser) unread(line string) {
	p.pending = line
	p.hasPending = true
}

// headerTime builds the record timestamp in the stream's resolved zone.
// The 3-digit millisecond field is the finest precision the engine writes.
func headerTime(h scan.Header, loc *time.Location) time.Time {
	return time.Date(
		h.Year, time.Month(h.Month), h.Day,
		h.Hour, h.Minute, h.Second,
		h.Millisecond*int(time.Millisecond),
		loc,
	)
}

// offsetName formats a fixed offset as a zone name, e.g. "UTC+09:00".
func offsetName(seconds int) string {
	if seconds == 0 {
		return "UTC"
	}
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, seconds/3600, seconds%3600/60)
}
