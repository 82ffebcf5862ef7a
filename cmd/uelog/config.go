package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config file keys. The file is optional and lives at
// ~/.config/uelog/config.yaml; UELOG_* environment variables override it.
const (
	keyFormat        = "format"
	keyLogDir        = "log_dir"
	keyRules         = "rules"
	keyFlushInterval = "flush_interval"
)

// initConfig loads CLI defaults. Flags set on the command line always win
// over the config file, see stringSetting.
func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "uelog"))
	}
	viper.SetEnvPrefix("UELOG")
	viper.AutomaticEnv()

	viper.SetDefault(keyFormat, "jsonl")
	viper.SetDefault(keyLogDir, "")
	viper.SetDefault(keyRules, "")
	viper.SetDefault(keyFlushInterval, "2s")

	// A missing config file is fine; defaults apply.
	_ = viper.ReadInConfig()
}

// stringSetting resolves a string option: the flag when explicitly set,
// otherwise the config file / environment / default via viper.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	return viper.GetString(key)
}
