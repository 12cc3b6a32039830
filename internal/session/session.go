// Package session drives one mood → recommendation → rendered cards lifecycle over a [Surface].
//
// A submission is split in three steps so event-loop UIs never block:
//
//  1. [Session.Dispatch] (UI loop) hides error and results, shows loading, and tags the request with a sequence number.
//  2. [Session.Fetch] (any goroutine) issues exactly one request.
//  3. [Session.Settle] (UI loop) hides loading, then shows either results or the error surface.
//
// [Session.Submit] runs all three in order for callers without an event loop.
//
// Requests are not serialized. A settlement whose sequence number is not the latest issued is dropped,
// so a slow stale response can never overwrite a newer one.
package session

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtune/internal/models"
	"github.com/desertthunder/moodtune/internal/render"
	"github.com/desertthunder/moodtune/internal/services"
	"github.com/desertthunder/moodtune/internal/shared"
)

// State is the visible UI state. Exactly one applies at a time.
type State int

const (
	Idle State = iota
	Loading
	Results
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Results:
		return "results"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Surface is the presentation layer toggled by a session.
//
// All methods are called from the goroutine that calls Dispatch and Settle.
type Surface interface {
	ShowLoading()
	HideLoading()
	ShowError()
	HideError()
	ShowResults()
	HideResults()
	RenderCards(mood string, cards []render.Card)
}

// CardRenderer builds cards for a result and releases cards that are replaced.
type CardRenderer interface {
	Render(result *models.RecommendationResult) ([]render.Card, error)
	Discard(cards []render.Card)
}

// HistoryRecorder persists successful results.
type HistoryRecorder interface {
	Record(result *models.RecommendationResult) (*models.HistoryEntry, error)
}

// Request is a dispatched submission.
type Request struct {
	Seq  uint64
	ID   string
	Mood string
}

// Settlement is the outcome of a request.
type Settlement struct {
	Request Request
	Result  *models.RecommendationResult
	Err     error
}

// Opts configures a [Session].
type Opts struct {
	Recommender services.Recommender
	Surface     Surface
	Renderer    CardRenderer
	History     HistoryRecorder // optional
	Logger      *log.Logger     // nil discards logs
	Timeout     time.Duration   // per-request; 0 means none
}

// Session owns the request lifecycle and the current result.
type Session struct {
	recommender services.Recommender
	surface     Surface
	renderer    CardRenderer
	history     HistoryRecorder
	logger      *log.Logger
	timeout     time.Duration

	pending sync.WaitGroup // history writes in flight

	mu     sync.Mutex
	seq    uint64
	state  State
	result *models.RecommendationResult
	cards  []render.Card
	err    error
}

// New creates a session. Recommender, Surface and Renderer are required.
func New(opts Opts) *Session {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Session{
		recommender: opts.Recommender,
		surface:     opts.Surface,
		renderer:    opts.Renderer,
		history:     opts.History,
		logger:      opts.Logger,
		timeout:     opts.Timeout,
	}
}

// Submit runs the full lifecycle for moodText and blocks until it settles.
// Empty input is ignored. Failures end on the error surface and are never returned.
func (s *Session) Submit(ctx context.Context, moodText string) {
	req, ok := s.Dispatch(moodText)
	if !ok {
		return
	}
	s.Settle(s.Fetch(ctx, req))
	s.Wait()
}

// Wait blocks until history writes started by Settle have finished.
func (s *Session) Wait() {
	s.pending.Wait()
}

// Dispatch prepares the surface for a new request.
//
// It reports false, without touching the surface, when moodText is empty after trimming.
func (s *Session) Dispatch(moodText string) (Request, bool) {
	query, ok := models.NewMoodQuery(moodText)
	if !ok {
		return Request{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.surface.HideError()
	s.surface.HideResults()
	s.surface.ShowLoading()
	s.state = Loading
	s.err = nil

	s.seq++
	req := Request{Seq: s.seq, ID: shared.GenerateID(), Mood: query.Mood}
	s.logger.Debug("recommendation requested", "mood", req.Mood, "seq", req.Seq, "request_id", req.ID)
	return req, true
}

// Fetch issues the request. It does not touch the surface and is safe to call off the UI loop.
func (s *Session) Fetch(ctx context.Context, req Request) Settlement {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.recommender.Recommend(ctx, req.Mood)
	return Settlement{Request: req, Result: result, Err: err}
}

// Settle applies st to the surface. It returns false when st belongs to a superseded request.
//
// A successful result is recorded to history on its own goroutine; use [Session.Wait] to wait for it.
func (s *Session) Settle(st Settlement) bool {
	s.mu.Lock()
	applied, recorded := s.settleLocked(st)
	s.mu.Unlock()

	if recorded != nil && s.history != nil {
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			if _, err := s.history.Record(recorded); err != nil {
				s.logger.Warn("failed to record history", "mood", recorded.Mood, "error", err)
			}
		}()
	}
	return applied
}

// settleLocked updates state and surface for st and returns the result to record, if any. Must hold s.mu.
func (s *Session) settleLocked(st Settlement) (bool, *models.RecommendationResult) {
	if st.Request.Seq != s.seq {
		s.logger.Debug("discarding stale recommendation", "mood", st.Request.Mood, "seq", st.Request.Seq, "latest", s.seq)
		return false, nil
	}

	s.surface.HideLoading()

	err := st.Err
	if err == nil && st.Result.Empty() {
		err = fmt.Errorf("%w: %q", shared.ErrNoSongs, st.Request.Mood)
	}

	var cards []render.Card
	if err == nil {
		cards, err = s.renderer.Render(st.Result)
	}

	if err != nil {
		s.logger.Error("recommendation unavailable", "mood", st.Request.Mood, "request_id", st.Request.ID, "error", err)
		s.state = Error
		s.err = err
		s.surface.ShowError()
		return true, nil
	}

	s.renderer.Discard(s.cards)
	s.cards = cards
	s.result = st.Result
	s.state = Results

	mood := st.Result.Mood
	if mood == "" {
		mood = st.Request.Mood
	}
	s.surface.RenderCards(mood, cards)
	s.surface.ShowResults()
	s.logger.Info("recommendations received", "mood", mood, "songs", len(cards), "request_id", st.Request.ID)

	recorded := st.Result
	if recorded.Mood != mood {
		cp := *recorded
		cp.Mood = mood
		recorded = &cp
	}
	return true, recorded
}

// State returns the current UI state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the last successful result. It is kept through later loading and error states.
func (s *Session) Result() *models.RecommendationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Cards returns the cards of the last successful result. They stay registered until replaced.
func (s *Session) Cards() []render.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards
}

// Err returns the cause of the last failure, for diagnostics. It is cleared by Dispatch.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
