package playback

// Affordance is the visible/interactive state of a preview control.
type Affordance int

const (
	Playable Affordance = iota
	Stoppable
	Disabled
	Errored
)

// Label returns the button text for a.
func (a Affordance) Label() string {
	switch a {
	case Playable:
		return "▶ Preview"
	case Stoppable:
		return "⏸ Stop"
	case Disabled:
		return "No Preview"
	case Errored:
		return "✗ Error"
	default:
		return ""
	}
}

func (a Affordance) String() string {
	switch a {
	case Playable:
		return "playable"
	case Stoppable:
		return "stoppable"
	case Disabled:
		return "disabled"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// Control is the preview toggle of one song card.
//
// Its affordance is owned by the [Controller]; reads go through the controller's lock.
type Control struct {
	id         int
	previewURL string
	affordance Affordance
	owner      *Controller
}

func (c *Control) ID() int            { return c.id }
func (c *Control) PreviewURL() string { return c.previewURL }

// Enabled reports whether the control can ever start playback.
func (c *Control) Enabled() bool { return c.previewURL != "" }

// Affordance returns the control's current state.
func (c *Control) Affordance() Affordance {
	c.owner.mu.Lock()
	defer c.owner.mu.Unlock()
	return c.affordance
}

// Toggle starts or stops this control's preview.
func (c *Control) Toggle() {
	c.owner.Toggle(c.previewURL, c)
}
