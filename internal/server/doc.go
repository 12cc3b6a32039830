// Package server hosts a local stand-in for the recommendation backend.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Replay Handler
//
// [ReplayHandler] answers POST /recommend with the same JSON contract as the real backend,
// using the newest saved history entry for the requested mood. Moods without history get a 404,
// which clients surface as a failed request.
//
// Point server.base_url (or MOODTUNE_SERVER_URL) at 'moodtune serve' to work offline.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
