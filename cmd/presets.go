package main

import (
	"context"

	"github.com/desertthunder/moodtune/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Presets lists the configured preset moods.
func (r *Runner) Presets(ctx context.Context, cmd *cli.Command) error {
	presets := r.presets()
	if cmd.Bool("json") {
		return r.writeJSON(presets, true)
	}

	formatter.WritePresetsTable(r.output, presets)
	return nil
}
