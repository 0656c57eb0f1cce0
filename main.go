// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/un-design/auth"
	"github.com/danielhkuo/un-design/cliparse"
	"github.com/danielhkuo/un-design/db"
	"github.com/danielhkuo/un-design/router"
	"github.com/danielhkuo/un-design/store"
)

const shutdownTimeout = 10 * time.Second

var cfg cliparse.Config

var rootCmd = &cobra.Command{
	Use:           "undesign",
	Short:         "UN-DESIGN pavilion voting server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server (default)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	cliparse.Bind(rootCmd.PersistentFlags(), &cfg)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := cliparse.Resolve(cmd.Flags(), &cfg); err != nil {
			return err
		}
		slog.SetDefault(newLogger(cfg.LogLevel))
		return nil
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snapshotsCmd)
}

func main() {
	// A missing .env file is fine
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openDatabase() (*sql.DB, error) {
	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	slog.Info("database ready", "type", cfg.DatabaseType)
	return conn, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	seed, err := store.LoadSeed(cfg.SeedPath)
	if err != nil {
		return err
	}
	st := store.New(seed)
	slog.Info("store loaded", "proposals", st.Proposals.Len(), "reports", len(st.Reports.List()))

	dbConn, err := openDatabase()
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if cfg.SessionSalt == "" {
		key, err := auth.GenerateKey(16)
		if err != nil {
			return err
		}
		cfg.SessionSalt = hex.EncodeToString(key)
		slog.Warn("SESSION_SALT not set, using a random salt")
	}
	if cfg.CSRFKey == "" {
		slog.Warn("CSRF_KEY not set, forms will not survive a restart")
	}

	sessions := auth.NewSessionStore(cfg.SessionTTL)
	mux, err := router.NewRouter(st, sessions, dbConn, cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Handler:           mux,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown initiated")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
