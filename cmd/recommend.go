package main

import (
	"context"
	"fmt"
	"io"

	"github.com/desertthunder/moodtune/internal/formatter"
	"github.com/desertthunder/moodtune/internal/models"
	"github.com/desertthunder/moodtune/internal/render"
	"github.com/desertthunder/moodtune/internal/session"
	"github.com/desertthunder/moodtune/internal/shared"
	"github.com/desertthunder/moodtune/internal/tasks"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

// consoleSurface prints session state changes to a writer.
type consoleSurface struct {
	w      io.Writer
	format formatter.Format
	mood   string
	cards  []render.Card
	err    error
}

// ShowLoading prints a status line, except for machine-readable formats.
func (s *consoleSurface) ShowLoading() {
	if s.format == formatter.FormatTable {
		fmt.Fprintln(s.w, color.HiBlackString("Finding songs that match your mood..."))
	}
}

func (s *consoleSurface) HideLoading() {}
func (s *consoleSurface) HideError()   {}
func (s *consoleSurface) HideResults() {}

func (s *consoleSurface) ShowError() {
	color.New(color.FgRed).Fprintln(s.w, "Sorry, we couldn't find songs for that mood right now. Please try again.")
}

func (s *consoleSurface) RenderCards(mood string, cards []render.Card) {
	s.mood = mood
	s.cards = cards
}

func (s *consoleSurface) ShowResults() {
	s.err = formatter.Export(s.w, resultFromCards(s.mood, s.cards), s.format)
}

func resultFromCards(mood string, cards []render.Card) *models.RecommendationResult {
	result := &models.RecommendationResult{Mood: mood, Songs: make([]models.Song, len(cards))}
	for i, c := range cards {
		result.Songs[i] = c.Song
	}
	return result
}

func outputFormat(cmd *cli.Command) formatter.Format {
	switch {
	case cmd.Bool("json"):
		return formatter.FormatJSON
	case cmd.Bool("markdown"):
		return formatter.FormatMarkdown
	case cmd.Bool("text"):
		return formatter.FormatText
	default:
		return formatter.FormatTable
	}
}

// Recommend requests songs for each mood argument.
//
// A single mood runs one session and can export its cards as HTML; several moods run as a throttled batch.
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	moods := cmd.Args().Slice()
	if len(moods) == 0 {
		return fmt.Errorf("%w: at least one mood is required", shared.ErrMissingArgument)
	}

	var history session.HistoryRecorder
	if !cmd.Bool("no-history") {
		if repo, err := r.historyRepo(); err != nil {
			r.logger.Warn("history disabled", "error", err)
		} else {
			history = repo
		}
	}

	if len(moods) == 1 {
		return r.recommendOne(ctx, cmd, moods[0], history)
	}

	if cmd.String("html") != "" {
		return fmt.Errorf("%w: --html requires a single mood", shared.ErrInvalidFlag)
	}
	return r.recommendMany(ctx, cmd, moods, history)
}

func (r *Runner) recommendOne(ctx context.Context, cmd *cli.Command, mood string, history session.HistoryRecorder) error {
	if shared.NormalizeMood(mood) == "" {
		return shared.ErrEmptyMood
	}

	controller := r.newController()
	defer controller.Shutdown()

	surface := &consoleSurface{w: r.output, format: outputFormat(cmd)}
	s := session.New(session.Opts{
		Recommender: r.recommender,
		Surface:     surface,
		Renderer:    render.NewRenderer(controller, r.config.Display.DefaultImage),
		History:     history,
		Logger:      shared.WithLogger(r.logger, "component", "session"),
		Timeout:     r.config.Server.Timeout(),
	})

	s.Submit(ctx, mood)

	if s.State() != session.Results {
		return fmt.Errorf("recommendation failed: %w", s.Err())
	}
	if surface.err != nil {
		return surface.err
	}

	if path := cmd.String("html"); path != "" {
		if err := formatter.WriteHTMLExport(path, surface.mood, surface.cards); err != nil {
			return err
		}
		r.logger.Info("wrote song cards", "path", path)
	}
	return nil
}

func (r *Runner) recommendMany(ctx context.Context, cmd *cli.Command, moods []string, history tasks.HistoryRecorder) error {
	rate := cmd.Float("rate")
	if rate <= 0 {
		rate = r.config.Batch.RateLimit
	}

	progress := make(chan tasks.ProgressUpdate, len(moods)+2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		}
	}()

	result, err := tasks.NewBatchEngine(r.recommender, history).Run(ctx, progress, moods, tasks.BatchOpts{RateLimit: rate})
	close(progress)
	<-done
	if err != nil && result == nil {
		return err
	}

	format := outputFormat(cmd)
	if format == formatter.FormatJSON {
		type moodJSON struct {
			Mood  string        `json:"mood"`
			Songs []models.Song `json:"songs,omitempty"`
			Error string        `json:"error,omitempty"`
		}
		out := make([]moodJSON, len(result.Results))
		for i, res := range result.Results {
			out[i].Mood = res.Mood
			if res.Err != nil {
				out[i].Error = res.Err.Error()
			} else {
				out[i].Songs = res.Result.Songs
			}
		}
		if werr := r.writeJSON(out, true); werr != nil {
			return werr
		}
	} else {
		for _, res := range result.Results {
			if res.Err != nil {
				r.writePlainln("%s %s: %v", color.RedString("✗"), res.Mood, res.Err)
				continue
			}
			r.writePlainHeader(fmt.Sprintf("Songs for %s", res.Result.Mood))
			if werr := formatter.Export(r.output, res.Result, format); werr != nil {
				return werr
			}
		}
	}

	if err != nil {
		return err
	}
	if result.Failed > 0 {
		return fmt.Errorf("%w: %d of %d moods failed", shared.ErrNoSongs, result.Failed, result.Total)
	}
	return nil
}
