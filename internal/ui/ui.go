package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtune/internal/models"
	"github.com/desertthunder/moodtune/internal/playback"
	"github.com/desertthunder/moodtune/internal/render"
	"github.com/desertthunder/moodtune/internal/services"
	"github.com/desertthunder/moodtune/internal/session"
	"github.com/desertthunder/moodtune/internal/shared"
)

// Focus identifies the pane receiving key input.
type Focus int

const (
	FocusPresets Focus = iota
	FocusInput
	FocusResults
)

const errorMessage = "Sorry, we couldn't find songs for that mood right now. Please try again."

// Opts contains the dependencies of a [Model].
type Opts struct {
	Recommender  services.Recommender
	Controller   *playback.Controller
	History      session.HistoryRecorder // optional
	Presets      []models.Preset         // empty uses [models.DefaultPresets]
	DefaultImage string
	Timeout      time.Duration
	Logger       *log.Logger
	OpenURL      func(url string) error // nil uses [shared.OpenBrowser]
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	session    *session.Session
	controller *playback.Controller
	openURL    func(string) error
	logger     *log.Logger

	focus    Focus
	width    int
	height   int
	presets  list.Model
	input    textinput.Model
	spinner  spinner.Model
	cards    list.Model
	help     help.Model
	keys     keyMap
	status   string
	quitting bool

	// surface visibility, driven by the session
	loading      bool
	errorShown   bool
	resultsShown bool
	mood         string
}

var _ session.Surface = (*Model)(nil)

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Opts) *Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}
	if len(opts.Presets) == 0 {
		opts.Presets = models.DefaultPresets()
	}

	items := make([]list.Item, len(opts.Presets))
	for i, p := range opts.Presets {
		items[i] = presetItem{preset: p}
	}

	input := textinput.New()
	input.Placeholder = "How are you feeling?"
	input.CharLimit = 200
	input.Width = 40

	m := &Model{
		ctx:        ctx,
		controller: opts.Controller,
		openURL:    opts.OpenURL,
		logger:     opts.Logger,
		focus:      FocusPresets,
		presets:    newList(items, "Pick a mood"),
		input:      input,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.warn)),
		cards:      newList(nil, "Songs"),
		help:       help.New(),
		keys:       newKeyMap(),
	}

	m.session = session.New(session.Opts{
		Recommender: opts.Recommender,
		Surface:     m,
		Renderer:    render.NewRenderer(opts.Controller, opts.DefaultImage),
		History:     opts.History,
		Logger:      opts.Logger,
		Timeout:     opts.Timeout,
	})
	return m
}

func newList(items []list.Item, title string) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 40, 14)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	return l
}

// Session exposes the underlying recommendation session.
func (m *Model) Session() *session.Session { return m.session }

// Focus returns the focused pane.
func (m *Model) Focus() Focus { return m.focus }

// Init starts listening for playback changes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForPlayback())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.presets.SetSize(msg.Width/3, msg.Height-10)
		m.cards.SetSize(msg.Width-msg.Width/3-6, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateFocused(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgRecommendationSettled:
		st := msg.data.(session.Settlement)
		if m.session.Settle(st) && m.session.State() == session.Results {
			m.setFocus(FocusResults)
		}
		return m, nil

	case MsgPlaybackChanged:
		return m, m.waitForPlayback()

	case MsgBrowserOpened:
		data := msg.data.(struct {
			url string
			err error
		})
		if data.err != nil {
			m.logger.Warn("failed to open link", "url", data.url, "error", data.err)
			m.status = styles.err.Render("Couldn't open Spotify link")
		} else {
			m.status = styles.help.Render("Opened " + data.url)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, m.quit()
	}

	if m.focus == FocusInput {
		switch msg.String() {
		case "tab", "esc", "enter":
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.next):
		m.setFocus(m.nextFocus())
		return m, nil
	case key.Matches(msg, m.keys.back):
		m.setFocus(FocusPresets)
		return m, nil
	case key.Matches(msg, m.keys.enter):
		return m, m.submitFocused()
	}

	if m.focus == FocusResults {
		switch {
		case key.Matches(msg, m.keys.preview):
			if card, ok := m.selectedCard(); ok {
				card.Control.Toggle()
			}
			return m, nil
		case key.Matches(msg, m.keys.open):
			if card, ok := m.selectedCard(); ok {
				return m, m.open(card.Song.SpotifyURL)
			}
			return m, nil
		}
	}

	return m.updateFocused(msg)
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FocusPresets:
		m.presets, cmd = m.presets.Update(msg)
	case FocusInput:
		m.input, cmd = m.input.Update(msg)
	case FocusResults:
		m.cards, cmd = m.cards.Update(msg)
	}
	return m, cmd
}

func (m *Model) nextFocus() Focus {
	switch m.focus {
	case FocusPresets:
		return FocusInput
	case FocusInput:
		if m.resultsShown {
			return FocusResults
		}
		return FocusPresets
	default:
		return FocusPresets
	}
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == FocusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) submitFocused() tea.Cmd {
	switch m.focus {
	case FocusPresets:
		if item, ok := m.presets.SelectedItem().(presetItem); ok {
			return m.submit(item.preset.ID)
		}
	case FocusInput:
		return m.submit(m.input.Value())
	case FocusResults:
		if card, ok := m.selectedCard(); ok {
			card.Control.Toggle()
		}
	}
	return nil
}

// submit dispatches a request for text and fetches it off the event loop.
func (m *Model) submit(text string) tea.Cmd {
	req, ok := m.session.Dispatch(text)
	if !ok {
		return nil
	}
	m.status = ""
	return tea.Batch(m.spinner.Tick, m.fetch(req))
}

func (m *Model) fetch(req session.Request) tea.Cmd {
	return func() tea.Msg {
		return settledMsg(m.session.Fetch(m.ctx, req))
	}
}

func (m *Model) waitForPlayback() tea.Cmd {
	if m.controller == nil {
		return nil
	}
	changes := m.controller.Changes()
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return playbackChangedMsg()
	}
}

func (m *Model) open(url string) tea.Cmd {
	return func() tea.Msg {
		return browserOpenedMsg(url, m.openURL(url))
	}
}

// quit pauses any preview before exiting.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	if m.controller != nil {
		m.controller.Shutdown()
	}
	return tea.Quit
}

func (m *Model) selectedCard() (render.Card, bool) {
	if !m.resultsShown {
		return render.Card{}, false
	}
	item, ok := m.cards.SelectedItem().(cardItem)
	if !ok {
		return render.Card{}, false
	}
	return item.card, true
}

func (m *Model) ShowLoading() { m.loading = true }
func (m *Model) HideLoading() { m.loading = false }
func (m *Model) ShowError()   { m.errorShown = true }
func (m *Model) HideError()   { m.errorShown = false }
func (m *Model) ShowResults() { m.resultsShown = true }

// HideResults hides the cards pane, moving focus off it.
func (m *Model) HideResults() {
	m.resultsShown = false
	if m.focus == FocusResults {
		m.setFocus(FocusPresets)
	}
}

// RenderCards replaces the card list.
func (m *Model) RenderCards(mood string, cards []render.Card) {
	items := make([]list.Item, len(cards))
	for i, c := range cards {
		items[i] = cardItem{card: c}
	}
	m.mood = mood
	m.cards.SetItems(items)
	m.cards.Title = fmt.Sprintf("Songs for %q", mood)
	m.cards.Select(0)
}

// View renders the UI based on the current focus and surface state.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPane(m.presets.View(), m.focus == FocusPresets),
		m.renderPane(m.input.View(), m.focus == FocusInput),
	)

	var right string
	switch {
	case m.loading:
		right = fmt.Sprintf("%s Finding songs that match your mood...", m.spinner.View())
	case m.errorShown:
		right = styles.err.Render(errorMessage)
	case m.resultsShown:
		right = m.renderPane(m.cards.View(), m.focus == FocusResults)
	}

	helpView := m.help.ShortHelpView(m.helpKeys())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	var b strings.Builder
	b.WriteString(styles.title.Render("🎵 moodtune"))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(helpView)
	return b.String()
}

func (m *Model) renderPane(content string, focused bool) string {
	return styles.pane(content, focused)
}

func (m *Model) helpKeys() []key.Binding {
	switch m.focus {
	case FocusResults:
		return []key.Binding{m.keys.preview, m.keys.open, m.keys.back, m.keys.next, m.keys.quit}
	case FocusInput:
		return []key.Binding{m.keys.enter, m.keys.next, m.keys.back}
	default:
		return []key.Binding{m.keys.up, m.keys.down, m.keys.enter, m.keys.next, m.keys.quit}
	}
}
