package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodtune/internal/session"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgRecommendationSettled MsgKind = iota
	MsgPlaybackChanged
	MsgBrowserOpened
)

// settledMsg is the constructor for [MsgRecommendationSettled]
func settledMsg(st session.Settlement) Msg {
	return Msg{kind: MsgRecommendationSettled, data: st}
}

// playbackChangedMsg is the constructor for [MsgPlaybackChanged]
func playbackChangedMsg() Msg {
	return Msg{kind: MsgPlaybackChanged}
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(url string, err error) Msg {
	return Msg{
		kind: MsgBrowserOpened,
		data: struct {
			url string
			err error
		}{url, err},
	}
}
