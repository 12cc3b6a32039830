package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/moodtune/internal/models"
	"github.com/desertthunder/moodtune/internal/services"
	"github.com/desertthunder/moodtune/internal/shared"
	"golang.org/x/time/rate"
)

// HistoryRecorder persists a successful result.
type HistoryRecorder interface {
	Record(result *models.RecommendationResult) (*models.HistoryEntry, error)
}

// BatchOpts contains configuration for batch recommendations.
type BatchOpts struct {
	NumWorkers int     // Concurrent workers (default: 3, max: 8)
	RateLimit  float64 // Requests per second (default: 2)
}

// MoodResult is the outcome for a single mood.
type MoodResult struct {
	Mood   string
	Result *models.RecommendationResult // nil on failure
	Entry  *models.HistoryEntry         // nil when history is disabled or recording failed
	Err    error
}

// BatchResult summarizes a batch run. Results are in input order.
type BatchResult struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []MoodResult
}

// BatchEngine requests recommendations for many moods with a shared rate limit.
type BatchEngine struct {
	recommender services.Recommender
	history     HistoryRecorder
}

// NewBatchEngine creates a new BatchEngine. history may be nil.
func NewBatchEngine(recommender services.Recommender, history HistoryRecorder) *BatchEngine {
	return &BatchEngine{recommender: recommender, history: history}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *BatchEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

type job struct {
	index int
	mood  string
}

// Run requests each mood once. Empty moods are dropped after normalization.
//
// Per-mood failures are reported in the result; an error is returned only when there is nothing to do
// or ctx ends before every mood was attempted.
func (e *BatchEngine) Run(ctx context.Context, prog chan<- ProgressUpdate, moods []string, opts BatchOpts) (*BatchResult, error) {
	if e.recommender == nil {
		return nil, fmt.Errorf("%w: recommender not initialized", shared.ErrServiceUnavailable)
	}

	normalized := make([]string, 0, len(moods))
	for _, m := range moods {
		if m = shared.NormalizeMood(m); m != "" {
			normalized = append(normalized, m)
		}
	}
	if len(normalized) == 0 {
		return nil, shared.ErrEmptyMood
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	total := len(normalized)
	result := &BatchResult{Total: total, Results: make([]MoodResult, total)}
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan job, total)
	results := make(chan job, total)

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.worker(ctx, &wg, limiter, jobs, results, result.Results)
	}

	e.sendProgress(prog, batchStartedUpdate(total))
	for i, mood := range normalized {
		result.Results[i] = MoodResult{Mood: mood, Err: context.Canceled}
		jobs <- job{index: i, mood: mood}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for j := range results {
		completed++
		res := result.Results[j.index]
		if res.Err == nil {
			result.Succeeded++
			e.sendProgress(prog, moodCompletedUpdate(completed, total, res.Mood, len(res.Result.Songs)))
		} else {
			result.Failed++
			e.sendProgress(prog, moodFailedUpdate(completed, total, res.Mood, res.Err))
		}
	}

	if completed < total {
		result.Failed += total - completed
		return result, fmt.Errorf("batch interrupted after %d of %d moods: %w", completed, total, ctx.Err())
	}

	e.sendProgress(prog, batchCompletedUpdate(total, result.Succeeded))
	return result, nil
}

// worker writes into its own slot of out, so no locking is needed.
func (e *BatchEngine) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan job,
	results chan<- job,
	out []MoodResult,
) {
	defer wg.Done()

	for j := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		out[j.index] = e.recommend(ctx, j.mood)
		results <- j
	}
}

func (e *BatchEngine) recommend(ctx context.Context, mood string) MoodResult {
	res := MoodResult{Mood: mood}

	result, err := e.recommender.Recommend(ctx, mood)
	if err != nil {
		res.Err = err
		return res
	}
	if result.Empty() {
		res.Err = fmt.Errorf("%w: %q", shared.ErrNoSongs, mood)
		return res
	}
	if result.Mood == "" {
		result.Mood = mood
	}
	res.Result = result

	if e.history != nil {
		// History is best-effort; the result is still returned.
		if entry, err := e.history.Record(result); err == nil {
			res.Entry = entry
		}
	}
	return res
}
