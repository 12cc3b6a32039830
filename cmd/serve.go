package main

import (
	"context"

	"github.com/desertthunder/moodtune/internal/server"
	"github.com/desertthunder/moodtune/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve answers recommendation requests from the history database until ctx is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.historyRepo()
	if err != nil {
		return err
	}

	logger := shared.WithLogger(r.logger, "component", "server")
	router := server.NewReplayRouter(repo, logger, cmd.String("origin"))
	return server.Serve(ctx, cmd.String("addr"), router, logger)
}
