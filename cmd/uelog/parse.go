package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/uelog/uelog-go/pkg/uelog"
	"github.com/uelog/uelog-go/pkg/uelog/rules"
)

var (
	// parse flags
	parseFormat string
	parseRules  string
	parseSince  string
	parseUntil  string
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse Unreal Engine log files and output records",
	Long: `Parse one or more finished Unreal Engine log files and output one
structured record per logical entry. Multi-line entries (callstacks,
script dumps) come out as a single record.

Examples:
  # One file, JSON Lines to stdout
  uelog parse MyProject.log

  # Human-readable output for several files
  uelog parse --format pretty Saved/Logs/*.log

  # Restrict to a time window
  uelog parse --since 2020-12-14T13:00:00+09:00 MyProject.log

  # Tag records with a custom rule file
  uelog parse --rules rules.yaml MyProject.log`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty, table")
	parseCmd.Flags().StringVar(&parseRules, "rules", "",
		"YAML rule file to match against records")
	parseCmd.Flags().StringVar(&parseSince, "since", "",
		"Only output records at or after this time (RFC3339)")
	parseCmd.Flags().StringVar(&parseUntil, "until", "",
		"Only output records before this time (RFC3339)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	var opts []uelog.ParseOption
	if parseSince != "" {
		t, err := time.Parse(time.RFC3339, parseSince)
		if err != nil {
			return fmt.Errorf("invalid --since format: %w", err)
		}
		opts = append(opts, uelog.WithParseSince(t))
	}
	if parseUntil != "" {
		t, err := time.Parse(time.RFC3339, parseUntil)
		if err != nil {
			return fmt.Errorf("invalid --until format: %w", err)
		}
		opts = append(opts, uelog.WithParseUntil(t))
	}

	matcher, err := buildMatcher(stringSetting(cmd, "rules", keyRules))
	if err != nil {
		return err
	}

	printer, err := NewPrinter(stringSetting(cmd, "format", keyFormat), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	for _, path := range args {
		records, err := uelog.ParseFile(path, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, rec := range records {
			var matches []rules.Match
			if matcher != nil {
				matches = matcher.Match(rec)
			}
			if err := printer.Print(rec, matches); err != nil {
				return err
			}
		}
	}
	return printer.Flush()
}

// buildMatcher compiles the rule file at path, or returns nil when no rule
// file is configured.
func buildMatcher(path string) (*rules.Matcher, error) {
	if path == "" {
		return nil, nil
	}
	m, err := rules.NewMatcherFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("rule file: %w", err)
	}
	return m, nil
}
