package playback

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/desertthunder/moodtune/internal/shared"
	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
)

const (
	// go-mp3 always decodes to 16-bit little endian stereo.
	otoSampleRate   = 44100
	otoChannelCount = 2

	defaultPollInterval = 100 * time.Millisecond
	maxPreviewBytes     = 8 << 20
)

// Only one oto context may exist per process.
var (
	otoOnce    sync.Once
	otoContext *oto.Context
	otoErr     error
)

func sharedOtoContext() (*oto.Context, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   otoSampleRate,
			ChannelCount: otoChannelCount,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			otoErr = fmt.Errorf("%w: audio device unavailable: %v", shared.ErrPlaybackFailed, err)
			return
		}
		<-ready
		otoContext = ctx
	})
	return otoContext, otoErr
}

// OtoEngine plays MP3 preview clips fetched over HTTP through the system audio device.
//
// All clips share one 44.1 kHz output context, the rate Spotify previews use. Clips at any other
// sample rate are not resampled: they fail with [shared.ErrUnsupportedAudio] and the control shows Errored.
type OtoEngine struct {
	client       *http.Client
	pollInterval time.Duration
}

// NewOtoEngine creates an engine using client for downloads. A nil client gets a 15 second timeout.
func NewOtoEngine(client *http.Client, pollInterval time.Duration) *OtoEngine {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &OtoEngine{client: client, pollInterval: pollInterval}
}

// Open returns a handle for url. Nothing is fetched until Play.
func (e *OtoEngine) Open(url string) (Handle, error) {
	if url == "" {
		return nil, shared.ErrNoPreview
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &otoHandle{
		engine: e,
		url:    url,
		volume: DefaultVolume,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 1),
	}, nil
}

// otoHandle loads and plays one clip on its own goroutine.
type otoHandle struct {
	engine *OtoEngine
	url    string

	mu      sync.Mutex
	volume  float64
	player  *oto.Player
	paused  bool
	started bool
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	events chan Event
}

func (h *otoHandle) Events() <-chan Event { return h.events }

func (h *otoHandle) SetVolume(volume float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.volume = volume
	if h.player != nil {
		h.player.SetVolume(volume)
	}
}

// Play starts loading on first call and resumes a paused clip afterwards.
func (h *otoHandle) Play() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return fmt.Errorf("%w: handle closed", shared.ErrPlaybackFailed)
	}

	h.paused = false
	if h.player != nil {
		h.player.Play()
		return nil
	}
	if !h.started {
		h.started = true
		go h.run()
	}
	return nil
}

func (h *otoHandle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.paused = true
	if h.player != nil {
		h.player.Pause()
	}
}

func (h *otoHandle) Rewind() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.player != nil {
		h.player.Seek(0, io.SeekStart)
	}
}

// Close stops loading or playback. The run goroutine closes the events channel.
func (h *otoHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true
	h.cancel()

	if !h.started {
		close(h.events)
	}
	if h.player != nil {
		h.player.Pause()
		return h.player.Close()
	}
	return nil
}

func (h *otoHandle) run() {
	defer close(h.events)

	player, err := h.load()
	if err != nil {
		h.send(Event{Kind: EventError, Err: err})
		return
	}

	ticker := time.NewTicker(h.engine.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
		}

		h.mu.Lock()
		if h.closed {
			h.mu.Unlock()
			return
		}
		finished := !h.paused && !player.IsPlaying() && player.BufferedSize() == 0
		playErr := player.Err()
		h.mu.Unlock()

		if playErr != nil {
			h.send(Event{Kind: EventError, Err: fmt.Errorf("%w: %v", shared.ErrPlaybackFailed, playErr)})
			return
		}
		if finished {
			h.send(Event{Kind: EventEnded})
			return
		}
	}
}

// checkSampleRate rejects clips the shared output context cannot play as-is.
func checkSampleRate(rate int) error {
	if rate != otoSampleRate {
		return fmt.Errorf("%w: sample rate %d Hz, want %d Hz", shared.ErrUnsupportedAudio, rate, otoSampleRate)
	}
	return nil
}

// load fetches and decodes the clip, then attaches a player unless the handle was closed meanwhile.
func (h *otoHandle) load() (*oto.Player, error) {
	data, err := h.fetch()
	if err != nil {
		return nil, err
	}

	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnsupportedAudio, err)
	}
	if err := checkSampleRate(decoder.SampleRate()); err != nil {
		return nil, err
	}

	otoCtx, err := sharedOtoContext()
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, context.Canceled
	}

	player := otoCtx.NewPlayer(decoder)
	player.SetVolume(h.volume)
	if !h.paused {
		player.Play()
	}
	h.player = player
	return player, nil
}

func (h *otoHandle) fetch() ([]byte, error) {
	req, err := http.NewRequestWithContext(h.ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrPlaybackFailed, err)
	}

	resp, err := h.engine.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: preview fetch failed: %v", shared.ErrPlaybackFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: preview fetch status %d", shared.ErrPlaybackFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPreviewBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: preview read failed: %v", shared.ErrPlaybackFailed, err)
	}
	return data, nil
}

// send delivers ev unless the handle has been closed.
func (h *otoHandle) send(ev Event) {
	select {
	case h.events <- ev:
	case <-h.ctx.Done():
	}
}

var _ Engine = (*OtoEngine)(nil)
