package playback

import "fmt"

// EventKind enumerates playback engine notifications.
type EventKind int

const (
	EventEnded EventKind = iota
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a notification from an audio [Handle].
type Event struct {
	Kind EventKind
	Err  error // set for EventError
}

// Engine creates audio handles bound to a source URL.
type Engine interface {
	// Open returns a handle for url without blocking on network or device work.
	// Loading failures after Open are reported as [EventError].
	Open(url string) (Handle, error)
}

// Handle is a single audio resource.
//
// The engine closes the Events channel once the handle is closed or has finished reporting.
// Implementations must never block forever sending on Events.
type Handle interface {
	SetVolume(volume float64)
	Play() error
	Pause()
	Rewind()
	Close() error
	Events() <-chan Event
}
