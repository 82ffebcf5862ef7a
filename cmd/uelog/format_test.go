package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/uelog/uelog-go/pkg/uelog/record"
	"github.com/uelog/uelog-go/pkg/uelog/rules"
)

func sampleRecord() record.Record {
	return record.Record{
		Timestamp: time.Date(2020, 12, 14, 13, 2, 35, 809e6, time.FixedZone("UTC+09:00", 9*3600)),
		Severity:  record.SeverityWarning,
		Category:  "LogNet",
		RawText:   "LogNet: Warning: connection timed out",
		Body:      "connection timed out",
	}
}

func TestPrinterJSONL(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewPrinter("jsonl", &buf)
	if err != nil {
		t.Fatalf("NewPrinter() error = %v", err)
	}
	if err := p.Print(sampleRecord(), nil); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if err := p.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Print() produced invalid JSON: %v", err)
	}
	if decoded["category"] != "LogNet" {
		t.Errorf("category = %v, want %q", decoded["category"], "LogNet")
	}
	if decoded["severity"] != "Warning" {
		t.Errorf("severity = %v, want %q", decoded["severity"], "Warning")
	}
	if _, present := decoded["matches"]; present {
		t.Error("matches should be omitted when no rules matched")
	}
}

func TestPrinterJSONLWithMatches(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewPrinter("jsonl", &buf)
	if err != nil {
		t.Fatalf("NewPrinter() error = %v", err)
	}

	matches := []rules.Match{{RuleID: "net_timeout", Label: "net_timeout"}}
	if err := p.Print(sampleRecord(), matches); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	if !strings.Contains(buf.String(), `"matches":[{"rule_id":"net_timeout"`) {
		t.Errorf("output missing matches: %q", buf.String())
	}
}

func TestPrinterPretty(t *testing.T) {
	tests := []struct {
		name     string
		matches  []rules.Match
		contains string
	}{
		{
			name:     "no_matches",
			contains: "[13:02:35.809] LogNet Warning: connection timed out",
		},
		{
			name:     "with_matches",
			matches:  []rules.Match{{RuleID: "net_timeout", Label: "net_timeout"}},
			contains: "<net_timeout>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p, err := NewPrinter("pretty", &buf)
			if err != nil {
				t.Fatalf("NewPrinter() error = %v", err)
			}
			if err := p.Print(sampleRecord(), tt.matches); err != nil {
				t.Fatalf("Print() error = %v", err)
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("Print() = %q, want to contain %q", buf.String(), tt.contains)
			}
		})
	}
}

func TestPrinterTable(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewPrinter("table", &buf)
	if err != nil {
		t.Fatalf("NewPrinter() error = %v", err)
	}
	if err := p.Print(sampleRecord(), nil); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	// Table output is buffered until Flush.
	if buf.Len() != 0 {
		t.Errorf("table output before Flush = %q, want empty", buf.String())
	}
	if err := p.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	for _, want := range []string{"LogNet", "Warning", "connection timed out"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("rendered table missing %q:\n%s", want, buf.String())
		}
	}
}

func TestNewPrinterUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewPrinter("xml", &buf); err == nil {
		t.Error("NewPrinter(xml) should fail")
	}
}

func TestMatchLabels(t *testing.T) {
	got := matchLabels([]rules.Match{
		{Label: "gpu_crash"},
		{Label: "device_removed"},
	})
	if got != "gpu_crash device_removed" {
		t.Errorf("matchLabels() = %q", got)
	}
}
