// Command uelog parses Unreal Engine log files into structured records.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "uelog",
	Short: "Parse and monitor Unreal Engine log files",
	Long: `uelog converts raw Unreal Engine log text into structured records with
timestamp, category, severity and message body.

Records are output as JSON Lines by default (one JSON object per line),
which makes it easy to process with tools like jq.

Examples:
  # Parse a finished log
  uelog parse MyProject/Saved/Logs/MyProject.log

  # Follow the newest log of a running session
  uelog tail --log-dir MyProject/Saved/Logs

  # Pipe to jq
  uelog parse MyProject.log | jq 'select(.category == "LogNet")'`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
