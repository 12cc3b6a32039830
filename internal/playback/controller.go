package playback

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultVolume is the preview volume used when none is configured.
const DefaultVolume = 0.5

// State is a snapshot of the controller's playback state.
type State struct {
	Playing bool
	URL     string
	Control *Control
}

// Opts configures a [Controller].
type Opts struct {
	Volume float64     // 0 uses [DefaultVolume]
	Logger *log.Logger // nil discards logs
}

// active is the single playing handle.
type active struct {
	gen     uint64
	url     string
	handle  Handle
	control *Control
}

// Controller owns at most one audio handle across all registered controls.
type Controller struct {
	mu       sync.Mutex
	engine   Engine
	volume   float64
	logger   *log.Logger
	controls []*Control
	nextID   int
	gen      uint64
	current  *active
	changes  chan struct{}
}

// NewController creates a controller that opens handles through engine.
func NewController(engine Engine, opts Opts) *Controller {
	if opts.Volume <= 0 || opts.Volume > 1 {
		opts.Volume = DefaultVolume
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Controller{
		engine:  engine,
		volume:  opts.Volume,
		logger:  opts.Logger,
		changes: make(chan struct{}, 1),
	}
}

// Register creates a control for previewURL. An empty URL yields a permanently disabled control.
func (c *Controller) Register(previewURL string) *Control {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	ctrl := &Control{id: c.nextID, previewURL: previewURL, owner: c}
	if previewURL == "" {
		ctrl.affordance = Disabled
	}
	c.controls = append(c.controls, ctrl)
	return ctrl
}

// Unregister forgets controls, typically because their cards were replaced.
// Removing the control that is currently playing stops its playback.
func (c *Controller) Unregister(controls ...*Control) {
	if len(controls) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	drop := make(map[*Control]bool, len(controls))
	for _, ctrl := range controls {
		drop[ctrl] = true
	}

	if c.current != nil && drop[c.current.control] {
		c.logger.Debug("stopping preview of removed card", "url", c.current.url)
		c.releaseLocked()
		c.notify()
	}

	kept := c.controls[:0]
	for _, ctrl := range c.controls {
		if !drop[ctrl] {
			kept = append(kept, ctrl)
		}
	}
	for i := len(kept); i < len(c.controls); i++ {
		c.controls[i] = nil
	}
	c.controls = kept
}

// Toggle starts the preview at url for control, or stops it when control is already playing.
//
// Disabled controls are ignored. Any other active preview is stopped before a new handle is opened.
func (c *Controller) Toggle(url string, control *Control) {
	if control == nil || url == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if control.affordance == Disabled {
		return
	}
	defer c.notify()

	if prev := c.current; prev != nil {
		c.releaseLocked()
		c.resetLocked()
		if prev.control == control {
			c.logger.Debug("preview stopped", "url", url)
			return
		}
	}

	c.startLocked(url, control)
}

// startLocked opens and plays a new handle for control. Must hold c.mu.
func (c *Controller) startLocked(url string, control *Control) {
	handle, err := c.engine.Open(url)
	if err != nil {
		c.logger.Error("failed to open preview", "url", url, "error", err)
		control.affordance = Errored
		return
	}

	handle.SetVolume(c.volume)
	c.gen++
	c.current = &active{gen: c.gen, url: url, handle: handle, control: control}
	control.affordance = Stoppable
	go c.watch(c.gen, handle)

	if err := handle.Play(); err != nil {
		c.logger.Error("failed to play preview", "url", url, "error", err)
		c.releaseLocked()
		control.affordance = Errored
		return
	}
	c.logger.Debug("preview started", "url", url, "control", control.id)
}

// watch forwards engine notifications for the handle of generation gen.
func (c *Controller) watch(gen uint64, handle Handle) {
	for ev := range handle.Events() {
		c.handleEvent(gen, ev)
	}
}

func (c *Controller) handleEvent(gen uint64, ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || c.current.gen != gen {
		return
	}

	switch ev.Kind {
	case EventEnded:
		c.logger.Debug("preview ended", "url", c.current.url)
		c.releaseLocked()
		c.resetLocked()
	case EventError:
		c.logger.Error("preview playback failed", "url", c.current.url, "error", ev.Err)
		control := c.current.control
		c.releaseLocked()
		control.affordance = Errored
	}
	c.notify()
}

// releaseLocked pauses, rewinds and closes the active handle. Must hold c.mu.
func (c *Controller) releaseLocked() {
	cur := c.current
	if cur == nil {
		return
	}
	c.current = nil

	cur.handle.Pause()
	cur.handle.Rewind()
	if err := cur.handle.Close(); err != nil {
		c.logger.Warn("failed to release preview", "url", cur.url, "error", err)
	}
	if cur.control.affordance == Stoppable {
		cur.control.affordance = Playable
	}
}

// resetLocked returns every enabled control to Playable. Must hold c.mu.
func (c *Controller) resetLocked() {
	for _, ctrl := range c.controls {
		if ctrl.affordance != Disabled {
			ctrl.affordance = Playable
		}
	}
}

// notify signals a state change without blocking; pending signals coalesce.
func (c *Controller) notify() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}

// Changes returns a channel that receives a value after state changes.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return State{}
	}
	return State{Playing: true, URL: c.current.url, Control: c.current.control}
}

// Controls returns the registered controls in registration order.
func (c *Controller) Controls() []*Control {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Control, len(c.controls))
	copy(out, c.controls)
	return out
}

// Shutdown pauses and releases any active preview. It is safe to call more than once.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return
	}
	c.releaseLocked()
	c.resetLocked()
	c.notify()
}
