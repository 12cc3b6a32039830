// package services defines HTTP clients for the recommendation backend
package services

import (
	"context"

	"github.com/desertthunder/moodtune/internal/models"
)

// Recommender fetches a ranked list of songs for a mood.
type Recommender interface {
	// Recommend issues exactly one request for mood.
	// Any transport failure, non-2xx status or malformed body is returned as an error.
	Recommend(ctx context.Context, mood string) (*models.RecommendationResult, error)
}

var _ Recommender = (*RecommendService)(nil)
