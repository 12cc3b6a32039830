package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	BatchStarted Phase = iota
	MoodCompleted
	MoodFailed
	BatchCompleted
)

func (p Phase) String() string {
	switch p {
	case BatchStarted:
		return "batch_started"
	case MoodCompleted:
		return "mood_completed"
	case MoodFailed:
		return "mood_failed"
	case BatchCompleted:
		return "batch_completed"
	default:
		return ""
	}
}

func batchStartedUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BatchStarted,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Requesting recommendations for %d moods...", total),
	}
}

func moodCompletedUpdate(step, total int, mood string, songs int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MoodCompleted,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d songs)", step, total, mood, songs),
		Data:    mood,
	}
}

func moodFailedUpdate(step, total int, mood string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MoodFailed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, mood, err),
		Data:    mood,
	}
}

func batchCompletedUpdate(total, succeeded int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BatchCompleted,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Done: %d of %d moods succeeded", succeeded, total),
	}
}
