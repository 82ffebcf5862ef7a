package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/uelog/uelog-go/pkg/uelog/record"
	"github.com/uelog/uelog-go/pkg/uelog/rules"
)

// ValidFormats lists all valid output formats.
var ValidFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
	"table":  true,
}

// outputRecord is the JSON shape written by the jsonl format. Matches is
// present only when a rule file was given and at least one rule matched.
type outputRecord struct {
	record.Record
	Matches []rules.Match `json:"matches,omitempty"`
}

// Printer writes records in one output format. The line formats (jsonl,
// pretty) write immediately; table output is buffered until Flush.
type Printer struct {
	format string
	out    io.Writer
	table  *tablewriter.Table
}

// NewPrinter returns a printer for the given format.
func NewPrinter(format string, out io.Writer) (*Printer, error) {
	if !ValidFormats[format] {
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	p := &Printer{format: format, out: out}
	if format == "table" {
		p.table = tablewriter.NewTable(out)
		p.table.Header("Time", "Category", "Severity", "Body")
	}
	return p, nil
}

// Print writes one record.
func (p *Printer) Print(rec record.Record, matches []rules.Match) error {
	switch p.format {
	case "jsonl":
		data, err := json.Marshal(outputRecord{Record: rec, Matches: matches})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(p.out, string(data))
		return err

	case "pretty":
		ts := rec.Timestamp.Format("15:04:05.000")
		line := fmt.Sprintf("[%s] %s %s: %s", ts, rec.Category, rec.Severity, rec.Body)
		if len(matches) > 0 {
			line += "  <" + matchLabels(matches) + ">"
		}
		_, err := fmt.Fprintln(p.out, line)
		return err

	case "table":
		return p.table.Append([]string{
			rec.Timestamp.Format("15:04:05.000"),
			rec.Category,
			rec.Severity.String(),
			rec.Body,
		})
	}
	return nil
}

// Flush renders buffered output. A no-op for line formats.
func (p *Printer) Flush() error {
	if p.table != nil {
		return p.table.Render()
	}
	return nil
}

// matchLabels joins the labels of matches for pretty output.
func matchLabels(matches []rules.Match) string {
	labels := make([]string, len(matches))
	for i, m := range matches {
		labels[i] = m.Label
	}
	return strings.Join(labels, " ")
}
