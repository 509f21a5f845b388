package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/watchdeck/watchdeck/internal/config"
	"github.com/watchdeck/watchdeck/internal/logging"
	"github.com/watchdeck/watchdeck/internal/supervise"
	"github.com/watchdeck/watchdeck/internal/tui"
)

func runRoot(cmd *cobra.Command, args []string) error {
	cfgPath := viper.GetString("config")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger, err := logging.Open(viper.GetString("log_dir"), viper.GetString("log_level"))
	if err != nil {
		return err
	}
	defer logger.Close()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	sup, err := supervise.New(cfg, supervise.Options{
		BaseDir: cwd,
		Logger:  logger.Logger,
	})
	if err != nil {
		return err
	}

	logger.Info("starting", "config", cfgPath, "processes", len(cfg.Processes))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.NewApp(sup).Run(ctx)
}
