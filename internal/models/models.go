package models

import (
	"strings"
	"time"
)

// MoodQuery is the body of a recommendation request.
type MoodQuery struct {
	Mood string `json:"mood"`
}

// NewMoodQuery trims text, collapses inner whitespace and reports false when nothing is left.
//
// The result is the key under which history stores and replays the mood.
func NewMoodQuery(text string) (MoodQuery, bool) {
	mood := strings.Join(strings.Fields(text), " ")
	if mood == "" {
		return MoodQuery{}, false
	}
	return MoodQuery{Mood: mood}, true
}

// RecommendationResult is a ranked list of songs for a mood.
type RecommendationResult struct {
	Mood  string `json:"mood"`
	Songs []Song `json:"songs"`
}

// Empty reports whether the result carries no songs.
func (r *RecommendationResult) Empty() bool {
	return r == nil || len(r.Songs) == 0
}

// Song is a single recommended track.
//
// ImageURL and PreviewURL are optional; a JSON null decodes to "".
type Song struct {
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	ImageURL   string `json:"image_url,omitempty"`
	SpotifyURL string `json:"spotify_url"`
	PreviewURL string `json:"preview_url,omitempty"`
}

func (s Song) HasPreview() bool { return s.PreviewURL != "" }
func (s Song) HasImage() bool   { return s.ImageURL != "" }

// Preset is a predefined mood trigger.
type Preset struct {
	ID          string
	Label       string
	Emoji       string
	Description string
}

// Title returns the label prefixed with the emoji, if any.
func (p Preset) Title() string {
	label := p.Label
	if label == "" {
		label = p.ID
	}
	if p.Emoji == "" {
		return label
	}
	return p.Emoji + " " + label
}

// DefaultPresets returns the moods understood by the reference backend.
func DefaultPresets() []Preset {
	return []Preset{
		{ID: "happy", Label: "Happy", Emoji: "😊", Description: "Bright, upbeat and danceable"},
		{ID: "sad", Label: "Sad", Emoji: "😢", Description: "Low energy, reflective and melancholy"},
		{ID: "energetic", Label: "Energetic", Emoji: "⚡", Description: "Fast tempo, high energy"},
		{ID: "chill", Label: "Chill", Emoji: "😌", Description: "Relaxed and mellow"},
		{ID: "romantic", Label: "Romantic", Emoji: "💕", Description: "Warm, acoustic and intimate"},
		{ID: "angry", Label: "Angry", Emoji: "😠", Description: "Loud, intense and dark"},
	}
}

// HistoryEntry is a recommendation result saved to the local database.
type HistoryEntry struct {
	ID        string
	Sequence  int
	Mood      string
	SongCount int
	CreatedAt time.Time
	Songs     []Song // populated only when a single entry is fetched
}
