package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodtune/internal/playback"
	"github.com/desertthunder/moodtune/internal/session"
	tu "github.com/desertthunder/moodtune/internal/testing"
)

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

// run executes cmd (flattening batches) and returns the resulting messages.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliver feeds every [Msg] produced by cmd back into m.
func deliver(m *Model, cmd tea.Cmd) {
	for _, msg := range run(cmd) {
		if msg, ok := msg.(Msg); ok {
			m.Update(msg)
		}
	}
}

type fixture struct {
	model  *Model
	rec    *tu.StubRecommender
	ctrl   *playback.Controller
	engine *tu.FakeEngine
	opened []string
}

func newFixture() *fixture {
	f := &fixture{
		rec:    &tu.StubRecommender{Result: tu.ScenarioResult()},
		engine: &tu.FakeEngine{},
	}
	f.ctrl = playback.NewController(f.engine, playback.Opts{})
	f.model = NewModel(context.Background(), Opts{
		Recommender: f.rec,
		Controller:  f.ctrl,
		OpenURL: func(url string) error {
			f.opened = append(f.opened, url)
			return nil
		},
	})
	return f
}

func (f *fixture) press(msg tea.KeyMsg) tea.Cmd {
	_, cmd := f.model.Update(msg)
	return cmd
}

func TestModel(t *testing.T) {
	t.Run("Preset submits and shows results", func(t *testing.T) {
		f := newFixture()

		cmd := f.press(keyEnter)
		if f.model.Session().State() != session.Loading {
			t.Fatalf("expected loading, got %s", f.model.Session().State())
		}
		if !strings.Contains(f.model.View(), "Finding songs") {
			t.Error("expected loading indicator in view")
		}

		deliver(f.model, cmd)

		if f.rec.Calls() != 1 || f.rec.Moods[0] != "happy" {
			t.Errorf("expected one request for happy, got %v", f.rec.Moods)
		}
		if f.model.Session().State() != session.Results {
			t.Fatalf("expected results, got %s", f.model.Session().State())
		}
		if f.model.Focus() != FocusResults {
			t.Error("expected focus on results")
		}
		if len(f.model.cards.Items()) != 2 {
			t.Errorf("expected 2 cards, got %d", len(f.model.cards.Items()))
		}

		view := f.model.View()
		if !strings.Contains(view, "A") || !strings.Contains(view, "No Preview") {
			t.Errorf("expected cards in view, got:\n%s", view)
		}
	})

	t.Run("Preview toggles on selected card", func(t *testing.T) {
		f := newFixture()
		deliver(f.model, f.press(keyEnter))

		f.press(keyRunes("p"))
		if !f.ctrl.State().Playing || f.ctrl.State().URL != "p1" {
			t.Fatalf("expected p1 playing, got %+v", f.ctrl.State())
		}

		f.press(keyRunes("p"))
		if f.ctrl.State().Playing {
			t.Error("expected second press to stop")
		}
	})

	t.Run("Card without preview ignores toggle", func(t *testing.T) {
		f := newFixture()
		deliver(f.model, f.press(keyEnter))

		f.press(keyDown)
		f.press(keyRunes(" "))

		if f.ctrl.State().Playing || f.engine.Last() != nil {
			t.Error("disabled control must not start playback")
		}
	})

	t.Run("Open Spotify link", func(t *testing.T) {
		f := newFixture()
		deliver(f.model, f.press(keyEnter))

		deliver(f.model, f.press(keyRunes("o")))

		if len(f.opened) != 1 || f.opened[0] != "u1" {
			t.Errorf("expected u1 opened, got %v", f.opened)
		}
		if !strings.Contains(f.model.status, "u1") {
			t.Errorf("expected status to mention link, got %q", f.model.status)
		}
	})

	t.Run("Failure shows error message", func(t *testing.T) {
		f := newFixture()
		f.rec.Result = nil
		f.rec.Err = errors.New("boom")

		deliver(f.model, f.press(keyEnter))

		if f.model.Session().State() != session.Error {
			t.Fatalf("expected error state, got %s", f.model.Session().State())
		}
		if !strings.Contains(f.model.View(), errorMessage) {
			t.Error("expected error message in view")
		}
		if f.model.Focus() == FocusResults {
			t.Error("focus should not move to hidden results")
		}
	})

	t.Run("Free text input", func(t *testing.T) {
		f := newFixture()

		f.press(keyTab)
		if f.model.Focus() != FocusInput {
			t.Fatal("expected input focus")
		}

		if cmd := f.press(keyEnter); cmd != nil {
			t.Error("empty input should not submit")
		}
		if f.rec.Calls() != 0 {
			t.Error("empty input must not issue a request")
		}

		for _, r := range "quiet rain" {
			f.press(keyRunes(string(r)))
		}
		if f.model.quitting {
			t.Fatal("typing q in the input must not quit")
		}

		deliver(f.model, f.press(keyEnter))
		if f.rec.Calls() != 1 || f.rec.Moods[0] != "quiet rain" {
			t.Errorf("expected request for typed mood, got %v", f.rec.Moods)
		}
	})

	t.Run("Focus cycles and esc returns to presets", func(t *testing.T) {
		f := newFixture()

		f.press(keyTab)
		f.press(keyTab)
		if f.model.Focus() != FocusPresets {
			t.Error("results pane should be skipped while hidden")
		}

		deliver(f.model, f.press(keyEnter))
		f.press(keyEsc)
		if f.model.Focus() != FocusPresets {
			t.Error("esc should focus presets")
		}
	})

	t.Run("Quit stops playback", func(t *testing.T) {
		f := newFixture()
		deliver(f.model, f.press(keyEnter))
		f.press(keyRunes("p"))

		cmd := f.press(keyCtrlC)
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected quit command")
		}
		if f.ctrl.State().Playing {
			t.Error("quitting should stop the preview")
		}
		if f.model.View() != "" {
			t.Error("expected empty view after quit")
		}
	})

	t.Run("Playback changes are observed", func(t *testing.T) {
		f := newFixture()
		deliver(f.model, f.press(keyEnter))
		f.press(keyRunes("p"))

		msg := f.model.waitForPlayback()()
		if m, ok := msg.(Msg); !ok || m.kind != MsgPlaybackChanged {
			t.Errorf("expected playback changed message, got %#v", msg)
		}
	})
}
