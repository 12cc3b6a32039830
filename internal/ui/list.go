package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/moodtune/internal/models"
	"github.com/desertthunder/moodtune/internal/render"
)

var (
	_ list.Item = presetItem{}
	_ list.Item = cardItem{}
)

// presetItem wraps [models.Preset] to implement [list.Item].
type presetItem struct {
	preset models.Preset
}

func (i presetItem) FilterValue() string { return i.preset.ID }
func (i presetItem) Title() string       { return i.preset.Title() }
func (i presetItem) Description() string { return i.preset.Description }

// cardItem wraps [render.Card] to implement [list.Item].
//
// The description reads the control's affordance on every render.
type cardItem struct {
	card render.Card
}

func (i cardItem) FilterValue() string { return i.card.Song.Name }
func (i cardItem) Title() string       { return i.card.Song.Name }
func (i cardItem) Description() string {
	desc := i.card.Song.Artist
	if i.card.Song.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.card.Song.Album)
	}
	if i.card.Control != nil {
		desc = fmt.Sprintf("%s  %s", desc, styles.affordance(i.card.Control.Affordance()))
	}
	return desc
}
