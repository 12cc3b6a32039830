// Package playback guarantees that at most one preview clip plays at a time.
//
// [Controller] is the sole owner of the active audio [Handle]. Song cards never hold a handle; they hold a
// [Control] obtained from [Controller.Register] and route every play/stop through [Controller.Toggle].
//
// State machine (cycles indefinitely):
//
//	Idle             --toggle(c)--> Playing(c)   open, set volume, play; c becomes Stoppable
//	Playing(c)       --toggle(c)--> Idle         pause, rewind, release; broadcast reset
//	Playing(a)       --toggle(b)--> Playing(b)   release a, broadcast reset, then start b
//	Playing(c)       --ended-->     Idle         broadcast reset
//	Playing(c)       --error-->     Idle         only c becomes Errored
//
// A broadcast reset returns every registered, non-disabled control to Playable. Controls registered
// without a preview URL are Disabled forever and never change.
//
// Engine notifications arrive on [Handle.Events] from the engine's own goroutine; the controller ignores
// notifications from handles it has already released. UI layers learn about state changes through
// [Controller.Changes], a coalescing signal channel suited to a single event loop.
package playback
