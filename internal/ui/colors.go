package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/moodtune/internal/playback"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF5F87", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title   lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	help    lipgloss.Style
	focused lipgloss.Style
	blurred lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:   NewBold(t).MarginBottom(1),
		ok:      NewBold(s),
		err:     NewBold(e),
		warn:    NewStyle(w),
		help:    NewEm(h),
		focused: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(t)).Padding(0, 1),
		blurred: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(h)).Padding(0, 1),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// affordance colors a preview control label by its state.
func (p *Palette) affordance(a playback.Affordance) string {
	switch a {
	case playback.Stoppable:
		return p.ok.Render(a.Label())
	case playback.Errored:
		return p.err.Render(a.Label())
	case playback.Disabled:
		return p.help.Render(a.Label())
	default:
		return p.warn.Render(a.Label())
	}
}

// pane frames content, highlighting the focused one.
func (p *Palette) pane(content string, focused bool) string {
	if focused {
		return p.focused.Render(content)
	}
	return p.blurred.Render(content)
}
