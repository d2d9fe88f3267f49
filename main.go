package main

import (
	"fmt"
	"os"
	_ "time/tzdata" // store timezones resolve on hosts without zoneinfo

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/config"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/logging"
)

var (
	// Shared across subcommands, populated in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger

	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "orderbot",
	Short: "WhatsApp order-taking assistant for a hardware store",
	Long: `orderbot answers customers on WhatsApp: it greets them, lists the
catalog by category, searches products, keeps a cart and places orders.

Run "serve" for the Twilio webhook server or "chat" to talk to the bot
from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile := config.LoadEnvFiles()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if logLevelFlag != "" {
			cfg.LogLevel = logLevelFlag
		}

		logger, err = logging.New(cfg.LogLevel, cfg.IsDevelopment())
		if err != nil {
			return err
		}
		if envFile != "" {
			logger.Debug("Loaded environment file", zap.String("path", envFile))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd, chatCmd, catalogCmd, qrCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
