package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"hargaemas/internal/app"
	"hargaemas/internal/config"
	"hargaemas/internal/logger"
)

const defaultConfigPath = "configs/config.yaml"

var rootCmd = &cobra.Command{
	Use:           "hargaemas",
	Short:         "hargaemas records Indonesian gold prices from pawnshop and bullion sources.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var configPath *string

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "", "Path to the YAML config file.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration, points logging at the configured file and
// assembles the application. The cleanup closes the log file.
func setup() (*app.App, func(), error) {
	path := resolveConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	logFile, err := setupLogOutput(cfg.App.LogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	cleanup := func() {
		if logFile != nil {
			logFile.Close()
		}
	}

	a, err := app.NewApp(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if path != "" {
		logger.Infof("config loaded from %s", path)
	} else {
		logger.Infof("no config file found, using built-in defaults")
	}
	return a, cleanup, nil
}

// resolveConfigPath prefers the flag, then the environment, then the
// conventional file if it exists. No config at all is fine; the built-in
// defaults describe the real sources.
func resolveConfigPath() string {
	if *configPath != "" {
		return *configPath
	}
	if env := os.Getenv("HARGAEMAS_CONFIG"); env != "" {
		return env
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}
	return ""
}

func setupLogOutput(path string) (*os.File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	dir := filepath.Dir(trimmed)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	mw := io.MultiWriter(os.Stdout, file)
	log.SetOutput(mw)
	logger.SetOutput(mw)
	return file, nil
}
