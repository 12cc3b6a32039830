package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Recommendation errors
	ErrEmptyMood          = fmt.Errorf("mood is empty")
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrInvalidResponse    = fmt.Errorf("invalid recommendation response")
	ErrNoSongs            = fmt.Errorf("no songs found for this mood")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Playback errors
	ErrPlaybackFailed   = fmt.Errorf("preview playback failed")
	ErrUnsupportedAudio = fmt.Errorf("unsupported audio format")
	ErrNoPreview        = fmt.Errorf("no preview available")

	// Persistence errors
	ErrHistoryNotFound = fmt.Errorf("history entry not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
