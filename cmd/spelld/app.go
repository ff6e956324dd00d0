package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/amarbel-llc/spelld/internal/config"
	"github.com/amarbel-llc/spelld/internal/server"
	"github.com/amarbel-llc/spelld/internal/warmup"
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		logFile    string
	)

	root := &cobra.Command{
		Use:           "spelld",
		Short:         "spelld: spell-checking language server",
		Long:          "spelld offers spelling quick fixes and dictionary management over the language server protocol.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to spelld.toml (default: XDG config dir)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "log to this file instead of stderr")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the language server on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogging(logLevel, logFile); err != nil {
				return err
			}

			base, err := config.LoadUser(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			go warmup.Preload(cmd.Context(), base)

			srv := server.New("spelld", version, base)
			slog.Info("starting", "version", version)
			return srv.Run(cmd.Context())
		},
	}

	checkConfig := &cobra.Command{
		Use:   "check-config",
		Short: "Print the effective user-level settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := config.LoadUser(configPath)
			if err != nil {
				return err
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(base)
		},
	}

	root.AddCommand(serve, checkConfig)
	return root
}

func initLogging(levelStr, filename string) error {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", levelStr)
	}

	// stdout carries the LSP stream; logs must never touch it.
	var handler slog.Handler
	if filename != "" {
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		handler = slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{Level: level})
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
