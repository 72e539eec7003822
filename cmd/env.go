package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// dotEnvPaths lists the .env files read at startup, in priority order.
// Variables already set in the environment are never overridden.
func dotEnvPaths() []string {
	paths := []string{".env"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "parley", ".env"))
	}
	return paths
}

func loadDotEnv() error {
	for _, p := range dotEnvPaths() {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat %s: %w", p, err)
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// logLevel parses PARLEY_LOG_LEVEL, defaulting to fallback.
func logLevel(fallback slog.Level) slog.Level {
	switch strings.ToLower(os.Getenv("PARLEY_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return fallback
}

// setupConsoleLogging sends warnings to stderr for the non-interactive
// commands.
func setupConsoleLogging() {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(slog.LevelWarn)})
	slog.SetDefault(slog.New(h))
}

// logPath returns PARLEY_LOG or $XDG_STATE_HOME/parley/parley.log.
func logPath() (string, error) {
	if p := os.Getenv("PARLEY_LOG"); p != "" {
		return p, nil
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "parley", "parley.log"), nil
}

// setupFileLogging redirects the default logger to the log file while the
// TUI owns the terminal.
func setupFileLogging() (func(), error) {
	p, err := logPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel(slog.LevelInfo)})
	slog.SetDefault(slog.New(h))
	slog.Info("parley starting", "version", version, "log", p)

	return func() {
		slog.Info("parley exiting")
		setupConsoleLogging()
		f.Close()
	}, nil
}
