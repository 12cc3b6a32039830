// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/moodtune/internal/models"
	"github.com/desertthunder/moodtune/internal/playback"
)

// StubRecommender is a test double for services.Recommender.
//
// Calls are counted; the response is returned as-is.
type StubRecommender struct {
	mu     sync.Mutex
	Result *models.RecommendationResult
	Err    error
	Moods  []string
}

func (s *StubRecommender) Recommend(ctx context.Context, mood string) (*models.RecommendationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Moods = append(s.Moods, mood)
	return s.Result, s.Err
}

// Calls returns how many requests were issued.
func (s *StubRecommender) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Moods)
}

// ScenarioResult is the two-song response used across packages:
// the first song has a preview, the second does not.
func ScenarioResult() *models.RecommendationResult {
	return &models.RecommendationResult{
		Mood: "happy",
		Songs: []models.Song{
			{Name: "A", Artist: "B", Album: "C", SpotifyURL: "u1", PreviewURL: "p1"},
			{Name: "D", Artist: "E", Album: "F", SpotifyURL: "u2"},
		},
	}
}

// FakeEngine is a [playback.Engine] whose handles are driven by the test.
type FakeEngine struct {
	mu      sync.Mutex
	Handles []*FakeHandle
	OpenErr error
	PlayErr error
}

func (e *FakeEngine) Open(url string) (playback.Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.OpenErr != nil {
		return nil, e.OpenErr
	}
	h := &FakeHandle{URL: url, playErr: e.PlayErr, events: make(chan playback.Event, 1), done: make(chan struct{})}
	e.Handles = append(e.Handles, h)
	return h, nil
}

// Last returns the most recently opened handle.
func (e *FakeEngine) Last() *FakeHandle {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Handles) == 0 {
		return nil
	}
	return e.Handles[len(e.Handles)-1]
}

// FakeHandle records calls and lets tests emit engine notifications.
type FakeHandle struct {
	URL string

	mu      sync.Mutex
	Volume  float64
	Playing bool
	Closed  bool
	Rewound bool
	playErr error

	events    chan playback.Event
	done      chan struct{}
	closeOnce sync.Once
	emitMu    sync.Mutex
}

func (h *FakeHandle) SetVolume(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Volume = v
}

func (h *FakeHandle) Play() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.playErr != nil {
		return h.playErr
	}
	h.Playing = true
	return nil
}

func (h *FakeHandle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Playing = false
}

func (h *FakeHandle) Rewind() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Rewound = true
}

func (h *FakeHandle) Close() error {
	h.closeOnce.Do(func() {
		h.mu.Lock()
		h.Closed = true
		h.mu.Unlock()
		close(h.done)
		go func() {
			h.emitMu.Lock()
			defer h.emitMu.Unlock()
			close(h.events)
		}()
	})
	return nil
}

func (h *FakeHandle) Events() <-chan playback.Event { return h.events }

// Emit delivers ev as if the engine raised it. It returns false once the handle is closed.
func (h *FakeHandle) Emit(ev playback.Event) bool {
	h.emitMu.Lock()
	defer h.emitMu.Unlock()

	select {
	case <-h.done:
		return false
	default:
	}

	select {
	case <-h.done:
		return false
	case h.events <- ev:
		return true
	}
}

// IsClosed reports whether Close was called.
func (h *FakeHandle) IsClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Closed
}

// IsPlaying reports whether the handle is currently producing sound.
func (h *FakeHandle) IsPlaying() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Playing
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// LimitedWriter forwards the first n writes to w and fails every write after that.
type LimitedWriter struct {
	n      int
	writes int
	w      io.Writer
}

func NewLimitedWriter(n int, w io.Writer) *LimitedWriter {
	return &LimitedWriter{n: n, w: w}
}

func (l *LimitedWriter) Write(p []byte) (int, error) {
	l.writes++
	if l.writes > l.n {
		return 0, errors.New("write limit reached")
	}
	return l.w.Write(p)
}
