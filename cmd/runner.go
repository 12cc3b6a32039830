package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtune/internal/models"
	"github.com/desertthunder/moodtune/internal/playback"
	"github.com/desertthunder/moodtune/internal/repositories"
	"github.com/desertthunder/moodtune/internal/services"
	"github.com/desertthunder/moodtune/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	recommender services.Recommender
	engine      playback.Engine
	history     *repositories.HistoryRepository
	historyDB   *sql.DB
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	ConfigPath  string
	Recommender services.Recommender
	Engine      playback.Engine
	History     *repositories.HistoryRepository // opened from Config.Database on first use when nil
	HTTPClient  *http.Client
	Logger      *log.Logger
	Output      io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.Server.Timeout()}
	}
	if opts.Recommender == nil {
		opts.Recommender = services.NewRecommendService(
			opts.Config.Server.BaseURL,
			opts.Config.Server.RecommendPath,
			opts.HTTPClient,
		)
	}
	if opts.Engine == nil {
		opts.Engine = playback.NewOtoEngine(nil, opts.Config.Playback.PollInterval())
	}

	return &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		recommender: opts.Recommender,
		engine:      opts.Engine,
		history:     opts.History,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		tuiCommand, recommendCommand, presetsCommand, historyCommand, previewCommand, serveCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by commands.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// Close releases the history database if it was opened by the runner.
func (r *Runner) Close() error {
	if r.historyDB == nil {
		return nil
	}
	err := r.historyDB.Close()
	r.historyDB = nil
	r.history = nil
	return err
}

// historyRepo opens the history database on first use.
func (r *Runner) historyRepo() (*repositories.HistoryRepository, error) {
	if r.history != nil {
		return r.history, nil
	}

	db, err := shared.OpenHistoryDatabase(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	r.historyDB = db
	r.history = repositories.NewHistoryRepository(db)
	return r.history, nil
}

// newController creates a playback controller on the runner's engine.
func (r *Runner) newController() *playback.Controller {
	return playback.NewController(r.engine, playback.Opts{
		Volume: r.config.Playback.Volume,
		Logger: shared.WithLogger(r.logger, "component", "playback"),
	})
}

func (r *Runner) presets() []models.Preset {
	presets := make([]models.Preset, 0, len(r.config.Presets))
	for _, p := range r.config.Presets {
		presets = append(presets, models.Preset{ID: p.ID, Label: p.Label, Emoji: p.Emoji, Description: p.Description})
	}
	return presets
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
