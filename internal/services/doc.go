// Package services talks to the recommendation backend.
//
// # Recommendation Endpoint
//
// [RecommendService] POSTs {"mood": "..."} as JSON to the configured path (default /recommend) and decodes
//
//	{"mood": "...", "songs": [{"name", "artist", "album", "image_url"?, "spotify_url", "preview_url"?}, ...]}
//
// Any non-2xx status is a failure and the body is not inspected.
//
// # Error Handling
//
// Errors wrap sentinels from the shared package:
//   - [shared.ErrAPIRequest] : request could not be built or sent, or returned a non-2xx status
//   - [shared.ErrInvalidResponse] : body could not be read or decoded
//
// Callers that present results (internal/session) collapse all of these into one error surface.
package services
