// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The screen has three panes, cycled with tab:
//  1. Presets : one-keystroke moods
//  2. Input : free-text mood
//  3. Results : song cards with a preview control each
//
// The (view) [Model] is the [session.Surface] for a recommendation session, so loading, error and results are
// toggled by the session from inside Update. Requests run as [tea.Cmd]s and come back as settlement messages;
// playback state changes arrive through [playback.Controller.Changes].
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
