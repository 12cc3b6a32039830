// Package models defines the data types exchanged with the recommendation backend and persisted in history.
//
//   - [MoodQuery] : the request body, one trimmed mood label
//   - [RecommendationResult] : the response body, songs in server order
//   - [Song] : display metadata plus the Spotify deep link and optional preview clip
//   - [Preset] : a predefined mood trigger shown before free-text input
//   - [HistoryEntry] : a persisted result, see internal/repositories
package models
