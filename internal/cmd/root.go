// Package cmd wires the command line interface: flag parsing, config
// loading, and launching the dashboard.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/watchdeck/watchdeck/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "watchdeck",
	Short: "Terminal dashboard for long-running development processes",
	Long: `Watchdeck runs a set of configured processes, each in its own
pseudo-terminal, and shows them side by side: a sidebar with live
statuses derived from their output, and the focused process's screen.
Processes can depend on each other and restart when their upstream
succeeds.`,
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initEnv)

	rootCmd.PersistentFlags().StringP("config", "c", "watchdeck.toml", "path to the process manifest")
	rootCmd.PersistentFlags().String("log-level", logging.LevelInfo,
		"log level ("+strings.Join(logging.ValidLevels(), ", ")+")")
	rootCmd.PersistentFlags().String("log-dir", "", "directory for debug.log (default is the state dir)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
}

func initEnv() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("WATCHDECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}
