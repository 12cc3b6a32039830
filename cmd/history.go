package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/moodtune/internal/formatter"
	"github.com/desertthunder/moodtune/internal/models"
	"github.com/desertthunder/moodtune/internal/shared"
	"github.com/urfave/cli/v3"
)

// HistoryList prints the most recent recommendations.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.historyRepo()
	if err != nil {
		return err
	}

	entries, err := repo.List(int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	if len(entries) == 0 {
		return r.writePlain("No recommendations yet. Try 'moodtune recommend happy'.\n")
	}
	formatter.WriteHistoryTable(r.output, entries)
	return nil
}

// HistoryShow prints the songs of one recommendation, looked up by ID or sequence number.
func (r *Runner) HistoryShow(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimPrefix(cmd.StringArg("id"), "#")
	if id == "" {
		return fmt.Errorf("%w: history entry id", shared.ErrMissingArgument)
	}

	repo, err := r.historyRepo()
	if err != nil {
		return err
	}

	entry, err := repo.Get(id)
	if err != nil {
		return err
	}

	result := &models.RecommendationResult{Mood: entry.Mood, Songs: entry.Songs}
	format := formatter.FormatTable
	switch {
	case cmd.Bool("json"):
		format = formatter.FormatJSON
	case cmd.Bool("markdown"):
		format = formatter.FormatMarkdown
	default:
		r.writePlainHeader(fmt.Sprintf("#%d %s (%s)", entry.Sequence, entry.Mood, entry.CreatedAt.Local().Format("2006-01-02 15:04")))
	}
	return formatter.Export(r.output, result, format)
}

// HistoryClear deletes every saved recommendation.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.historyRepo()
	if err != nil {
		return err
	}

	n, err := repo.Clear()
	if err != nil {
		return err
	}

	r.logger.Info("history cleared", "deleted", n)
	return r.writePlain("✓ Deleted %d recommendations\n", n)
}
