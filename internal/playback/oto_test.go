package playback

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/desertthunder/moodtune/internal/shared"
)

func waitEvent(t *testing.T, h Handle) Event {
	t.Helper()
	select {
	case ev, ok := <-h.Events():
		if !ok {
			t.Fatal("events channel closed without an event")
		}
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestOtoEngine(t *testing.T) {
	t.Run("Open without url", func(t *testing.T) {
		_, err := NewOtoEngine(nil, 0).Open("")
		if !errors.Is(err, shared.ErrNoPreview) {
			t.Errorf("expected ErrNoPreview, got %v", err)
		}
	})

	t.Run("Close before Play closes events", func(t *testing.T) {
		h, err := NewOtoEngine(nil, 0).Open("http://example.com/p.mp3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := h.Close(); err != nil {
			t.Fatalf("unexpected close error: %v", err)
		}
		if _, ok := <-h.Events(); ok {
			t.Error("expected closed events channel")
		}
		if err := h.Play(); err == nil {
			t.Error("expected Play after Close to fail")
		}
		if err := h.Close(); err != nil {
			t.Error("Close should be idempotent")
		}
	})

	t.Run("Fetch failure is reported as error event", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		h, _ := NewOtoEngine(server.Client(), 10*time.Millisecond).Open(server.URL + "/missing.mp3")
		defer h.Close()
		if err := h.Play(); err != nil {
			t.Fatalf("Play should not fail synchronously: %v", err)
		}

		ev := waitEvent(t, h)
		if ev.Kind != EventError || !errors.Is(ev.Err, shared.ErrPlaybackFailed) {
			t.Errorf("expected playback error event, got %v %v", ev.Kind, ev.Err)
		}
	})

	t.Run("Undecodable clip is reported as error event", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "audio/mpeg")
			w.Write([]byte("definitely not an mp3"))
		}))
		defer server.Close()

		h, _ := NewOtoEngine(server.Client(), 10*time.Millisecond).Open(server.URL + "/bad.mp3")
		defer h.Close()
		h.Play()

		ev := waitEvent(t, h)
		if ev.Kind != EventError || !errors.Is(ev.Err, shared.ErrUnsupportedAudio) {
			t.Errorf("expected unsupported audio event, got %v %v", ev.Kind, ev.Err)
		}
	})

	t.Run("Pause and Rewind before load are safe", func(t *testing.T) {
		h, _ := NewOtoEngine(nil, 0).Open("http://example.com/p.mp3")
		h.SetVolume(0.2)
		h.Pause()
		h.Rewind()
		if err := h.Close(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestEventKindString(t *testing.T) {
	if EventEnded.String() != "ended" || EventError.String() != "error" {
		t.Error("unexpected event kind names")
	}
}

func TestCheckSampleRate(t *testing.T) {
	if err := checkSampleRate(44100); err != nil {
		t.Errorf("expected 44.1 kHz to be accepted, got %v", err)
	}
	for _, rate := range []int{22050, 32000, 48000} {
		err := checkSampleRate(rate)
		if !errors.Is(err, shared.ErrUnsupportedAudio) {
			t.Errorf("rate %d: expected ErrUnsupportedAudio, got %v", rate, err)
		}
	}
}
