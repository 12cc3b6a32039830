// Package render builds song cards from a recommendation result.
//
// Each card is built on its own and owns one preview [playback.Control] registered with the injected
// [playback.Controller]. Card markup goes through html/template, so song metadata is always escaped.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/desertthunder/moodtune/internal/models"
	"github.com/desertthunder/moodtune/internal/playback"
)

// DefaultImage is the fallback album art used when a song has no image or it fails to load.
const DefaultImage = "/static/default-album.jpg"

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Card is one rendered song.
type Card struct {
	Song     models.Song
	ImageURL string // Song.ImageURL or the default image
	Control  *playback.Control
	HTML     template.HTML
}

// Registrar hands out preview controls. [playback.Controller] implements it.
type Registrar interface {
	Register(previewURL string) *playback.Control
	Unregister(controls ...*playback.Control)
}

// Renderer turns results into cards wired to a playback controller.
type Renderer struct {
	controls     Registrar
	defaultImage string
}

// NewRenderer creates a renderer registering preview controls with controls.
// An empty defaultImage uses [DefaultImage].
func NewRenderer(controls Registrar, defaultImage string) *Renderer {
	if defaultImage == "" {
		defaultImage = DefaultImage
	}
	return &Renderer{controls: controls, defaultImage: defaultImage}
}

// DefaultImage returns the fallback image reference.
func (r *Renderer) DefaultImage() string { return r.defaultImage }

// Render builds one card per song in server order.
func (r *Renderer) Render(result *models.RecommendationResult) ([]Card, error) {
	if result == nil {
		return nil, nil
	}

	cards := make([]Card, 0, len(result.Songs))
	for _, song := range result.Songs {
		card, err := r.card(song)
		if err != nil {
			r.Discard(cards)
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (r *Renderer) card(song models.Song) (Card, error) {
	card := Card{
		Song:     song,
		ImageURL: song.ImageURL,
		Control:  r.controls.Register(song.PreviewURL),
	}
	if card.ImageURL == "" {
		card.ImageURL = r.defaultImage
	}

	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "card", map[string]any{
		"Song":         song,
		"ImageURL":     card.ImageURL,
		"DefaultImage": r.defaultImage,
		"ControlID":    card.Control.ID(),
		"Label":        card.Control.Affordance().Label(),
	})
	if err != nil {
		r.controls.Unregister(card.Control)
		return Card{}, fmt.Errorf("failed to render card for %q: %w", song.Name, err)
	}

	card.HTML = template.HTML(buf.String())
	return card, nil
}

// Discard unregisters the preview controls of cards that are no longer displayed.
func (r *Renderer) Discard(cards []Card) {
	controls := make([]*playback.Control, 0, len(cards))
	for _, c := range cards {
		if c.Control != nil {
			controls = append(controls, c.Control)
		}
	}
	r.controls.Unregister(controls...)
}

// Page writes a standalone HTML document listing cards under mood.
func Page(w io.Writer, mood string, cards []Card) error {
	return templates.ExecuteTemplate(w, "page", map[string]any{
		"Mood":  mood,
		"Cards": cards,
	})
}

// Escape replaces the HTML-special characters & < > " ' in s with entities.
func Escape(s string) string {
	return template.HTMLEscapeString(s)
}
