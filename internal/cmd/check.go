package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/watchdeck/watchdeck/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the process manifest without starting anything",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := viper.GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d processes ok\n", path, len(cfg.Processes))
	return nil
}
