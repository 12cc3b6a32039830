package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/moodtune/internal/playback"
	"github.com/desertthunder/moodtune/internal/shared"
	"github.com/urfave/cli/v3"
)

// Preview plays a single clip and returns when it ends, fails, or ctx is cancelled.
func (r *Runner) Preview(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: preview url", shared.ErrMissingArgument)
	}

	controller := r.newController()
	defer controller.Shutdown()

	control := controller.Register(url)
	control.Toggle()
	r.writePlain("%s %s\n", control.Affordance().Label(), url)

	for {
		switch control.Affordance() {
		case playback.Errored:
			return fmt.Errorf("%w: %s", shared.ErrPlaybackFailed, url)
		case playback.Playable:
			r.writePlain("✓ Finished\n")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-controller.Changes():
		}
	}
}
