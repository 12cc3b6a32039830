package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/desertthunder/moodtune/internal/models"
	"github.com/desertthunder/moodtune/internal/playback"
	tu "github.com/desertthunder/moodtune/internal/testing"
)

func newRenderer() (*Renderer, *playback.Controller) {
	ctrl := playback.NewController(&tu.FakeEngine{}, playback.Opts{})
	return NewRenderer(ctrl, ""), ctrl
}

func TestRenderer(t *testing.T) {
	t.Run("Scenario cards", func(t *testing.T) {
		r, ctrl := newRenderer()

		cards, err := r.Render(tu.ScenarioResult())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(cards) != 2 {
			t.Fatalf("expected 2 cards, got %d", len(cards))
		}
		if cards[0].Song.Name != "A" || cards[1].Song.Name != "D" {
			t.Error("cards must keep server order")
		}
		if !cards[0].Control.Enabled() || cards[0].Control.Affordance() != playback.Playable {
			t.Error("first card preview should be enabled")
		}
		if cards[1].Control.Enabled() || cards[1].Control.Affordance() != playback.Disabled {
			t.Error("second card preview should be disabled")
		}
		if !strings.Contains(string(cards[1].HTML), "disabled>No Preview</button>") {
			t.Errorf("expected disabled button markup, got %s", cards[1].HTML)
		}
		if !strings.Contains(string(cards[0].HTML), `data-preview-url="p1"`) {
			t.Errorf("expected preview url on enabled button, got %s", cards[0].HTML)
		}
		if len(ctrl.Controls()) != 2 {
			t.Errorf("expected 2 registered controls, got %d", len(ctrl.Controls()))
		}
	})

	t.Run("Escapes metadata", func(t *testing.T) {
		r, _ := newRenderer()
		result := &models.RecommendationResult{Songs: []models.Song{{
			Name:       `<script>alert("x")</script>`,
			Artist:     `Tom & Jerry's`,
			Album:      `"quoted" <b>album</b>`,
			SpotifyURL: "https://open.spotify.com/track/1",
		}}}

		cards, err := r.Render(result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		html := string(cards[0].HTML)

		for _, raw := range []string{"<script>", "<b>", `"quoted"`, "Jerry's"} {
			if strings.Contains(html, raw) {
				t.Errorf("markup must not contain raw %q: %s", raw, html)
			}
		}
		for _, escaped := range []string{"&lt;script&gt;", "Tom &amp; Jerry&#39;s", "&#34;quoted&#34; &lt;b&gt;album&lt;/b&gt;"} {
			if !strings.Contains(html, escaped) {
				t.Errorf("expected %q in markup: %s", escaped, html)
			}
		}
	})

	t.Run("Default image", func(t *testing.T) {
		r, _ := newRenderer()
		cards, _ := r.Render(&models.RecommendationResult{Songs: []models.Song{
			{Name: "no art", SpotifyURL: "u"},
			{Name: "art", SpotifyURL: "u", ImageURL: "https://i.scdn.co/image/abc"},
		}})

		if cards[0].ImageURL != DefaultImage {
			t.Errorf("expected default image, got %s", cards[0].ImageURL)
		}
		if !strings.Contains(string(cards[0].HTML), `src="/static/default-album.jpg"`) {
			t.Errorf("expected default image src, got %s", cards[0].HTML)
		}
		if cards[1].ImageURL != "https://i.scdn.co/image/abc" {
			t.Errorf("expected song image, got %s", cards[1].ImageURL)
		}
		for _, c := range cards {
			if !strings.Contains(string(c.HTML), "onerror=") {
				t.Error("every image needs a load-failure fallback")
			}
		}
	})

	t.Run("Custom default image", func(t *testing.T) {
		ctrl := playback.NewController(&tu.FakeEngine{}, playback.Opts{})
		r := NewRenderer(ctrl, "/img/none.png")
		cards, _ := r.Render(&models.RecommendationResult{Songs: []models.Song{{Name: "x"}}})

		if r.DefaultImage() != "/img/none.png" || cards[0].ImageURL != "/img/none.png" {
			t.Errorf("expected custom default image, got %s", cards[0].ImageURL)
		}
	})

	t.Run("Spotify link opens in a new context", func(t *testing.T) {
		r, _ := newRenderer()
		cards, _ := r.Render(tu.ScenarioResult())

		if !strings.Contains(string(cards[0].HTML), `href="u1" target="_blank"`) {
			t.Errorf("expected new-tab link, got %s", cards[0].HTML)
		}
	})

	t.Run("Nil result", func(t *testing.T) {
		r, _ := newRenderer()
		cards, err := r.Render(nil)
		if err != nil || cards != nil {
			t.Errorf("expected no cards and no error, got %v %v", cards, err)
		}
	})

	t.Run("Discard unregisters controls", func(t *testing.T) {
		r, ctrl := newRenderer()
		cards, _ := r.Render(tu.ScenarioResult())

		r.Discard(cards)

		if len(ctrl.Controls()) != 0 {
			t.Errorf("expected no controls, got %d", len(ctrl.Controls()))
		}
	})
}

func TestPage(t *testing.T) {
	r, _ := newRenderer()
	cards, _ := r.Render(tu.ScenarioResult())

	var buf bytes.Buffer
	if err := Page(&buf, "<happy>", cards); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	page := buf.String()

	if strings.Count(page, `class="song-card"`) != 2 {
		t.Errorf("expected 2 cards in page, got %s", page)
	}
	if !strings.Contains(page, "&lt;happy&gt;") || strings.Contains(page, "<happy>") {
		t.Error("expected mood to be escaped in page")
	}
}

func TestEscape(t *testing.T) {
	got := Escape(`& < > " '`)
	want := "&amp; &lt; &gt; &#34; &#39;"
	if got != want {
		t.Errorf("Escape() = %q, want %q", got, want)
	}
}
