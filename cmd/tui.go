package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodtune/internal/session"
	"github.com/desertthunder/moodtune/internal/shared"
	"github.com/desertthunder/moodtune/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	var history session.HistoryRecorder
	if !cmd.Bool("no-history") {
		if repo, err := r.historyRepo(); err != nil {
			r.logger.Warn("history disabled", "error", err)
		} else {
			history = repo
		}
	}

	controller := r.newController()
	defer controller.Shutdown()

	model := ui.NewModel(ctx, ui.Opts{
		Recommender:  r.recommender,
		Controller:   controller,
		History:      history,
		Presets:      r.presets(),
		DefaultImage: r.config.Display.DefaultImage,
		Timeout:      r.config.Server.Timeout(),
		Logger:       shared.WithLogger(r.logger, "component", "tui"),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err = p.Run()
	model.Session().Wait()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
