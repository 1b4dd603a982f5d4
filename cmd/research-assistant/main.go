// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-assistant CLI. The root
// command runs one interactive literature-review session; subcommands list
// past runs and re-export the last review.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/console"
	"github.com/pdiddy/research-assistant/internal/logging"
	"github.com/pdiddy/research-assistant/internal/secrets"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const interruptMessage = "Process interrupted by user. Goodbye!"

// Process-wide state prepared by PersistentPreRunE.
var (
	appConfig types.Config
	logger    = zap.NewNop()
)

// rootCmd is the base command for the research-assistant CLI.
var rootCmd = &cobra.Command{
	Use:   "research-assistant",
	Short: "Generate a structured literature review for a research topic",
	Long: `research-assistant retrieves academic papers for a topic, asks a language
model for a structured literature review, renders it as Markdown, and keeps a
history of past topics.

Run without a subcommand to start an interactive session. The session shows
the review overview and offers to export the full review as Markdown or JSON.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepare,
	RunE:              runSession,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-assistant.yaml or ~/.config/research-assistant/research-assistant.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "diagnostic log level: debug, info, warn, error")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	setDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-assistant")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-assistant"))
		}
	}

	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// prepare decodes the configuration, builds the logger, and fills API keys
// from the secrets directory and the environment.
func prepare(cmd *cobra.Command, args []string) error {
	cfg, err := decodeConfig(viper.GetViper())
	if err != nil {
		return err
	}

	l, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = l

	s, err := secrets.Load(secrets.DefaultDir, logger)
	if err != nil {
		return err
	}
	if len(s) > 0 {
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		logger.Debug("loaded secrets", zap.Strings("keys", keys))
	}

	applySecrets(&cfg, s)
	appConfig = cfg
	return nil
}

// newPrinter returns a Printer over the command's output streams.
func newPrinter(cmd *cobra.Command) *console.Printer {
	return console.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), console.ColorsEnabled())
}

func main() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stdout, "\n"+interruptMessage)
		_ = logger.Sync()
		os.Exit(0)
	}()

	err := rootCmd.Execute()
	if err != nil {
		console.NewPrinter(os.Stdout, os.Stderr, console.ColorsEnabled()).Error("%v", err)
	}
	_ = logger.Sync()
	// Errors are reported above; the process always exits cleanly.
	os.Exit(0)
}
