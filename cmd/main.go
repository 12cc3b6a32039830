package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/moodtune/internal/shared"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

const envConfigPath = "MOODTUNE_CONFIG"

func main() {
	logger := shared.NewLogger(nil)

	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	configPath := os.Getenv(envConfigPath)
	if configPath == "" {
		configPath = "config.toml"
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		loadedConfig, err := shared.LoadConfig(configPath)
		if err != nil {
			logger.Fatal("invalid configuration", "path", configPath, "error", err)
		}
		config = loadedConfig
	}
	if err := config.ApplyEnv(); err != nil {
		logger.Fatal("invalid environment", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Logger:     logger,
	})
	defer runner.Close()

	app := &cli.Command{
		Name:           "moodtune",
		Usage:          "Music recommendations for how you feel, with previews",
		Version:        "0.1.0",
		DefaultCommand: "tui",
		Commands:       runner.register(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		runner.Close()
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		logger.Fatalf("application error: %v", err)
	}
}
