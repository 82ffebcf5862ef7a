package uelog

import (
	"fmt"
	"io"

	"github.com/uelog/uelog-go/internal/safefile"
	"github.com/uelog/uelog-go/pkg/uelog/record"
)

// ParseReader reads every record from r.
//
// For very large inputs, or when records should be handled one at a time,
// construct a Parser with NewParser and call Read in a loop instead.
func ParseReader(r io.Reader, opts ...ParseOption) ([]record.Record, error) {
	cfg := applyParseOptions(opts)

	var popts []ParserOption
	if cfg.scanLimit > 0 {
		popts = append(popts, WithScanLimit(cfg.scanLimit))
	}
	if cfg.logger != nil {
		popts = append(popts, WithLogger(cfg.logger))
	}

	p, err := NewParser(r, popts...)
	if err != nil {
		return nil, err
	}

	var records []record.Record
	for {
		rec, err := p.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		if !cfg.since.IsZero() && rec.Timestamp.Before(cfg.since) {
			continue
		}
		if !cfg.until.IsZero() && !rec.Timestamp.Before(cfg.until) {
			// Timestamps are monotonic within one session, so nothing
			// later in the stream can fall inside the range.
			return records, nil
		}
		records = append(records, *rec)
	}
}

// ParseFile reads every record from the log file at path.
func ParseFile(path string, opts ...ParseOption) ([]record.Record, error) {
	f, _, err := safefile.OpenRegular(path)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	return ParseReader(f, opts...)
}
