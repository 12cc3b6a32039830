package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/desertthunder/moodtune/internal/models"
	"github.com/desertthunder/moodtune/internal/shared"
)

const (
	defaultBaseURL       = "http://127.0.0.1:5000"
	defaultRecommendPath = "/recommend"

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 4 << 20
)

// RecommendService implements [Recommender] over HTTP.
type RecommendService struct {
	baseURL    string
	path       string
	httpClient *http.Client
}

// NewRecommendService creates a client for the backend at baseURL.
//
// An empty path defaults to /recommend and a nil client to [http.DefaultClient].
func NewRecommendService(baseURL, path string, client *http.Client) *RecommendService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if path == "" {
		path = defaultRecommendPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &RecommendService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		path:       path,
		httpClient: client,
	}
}

// Endpoint returns the full URL requests are sent to.
func (s *RecommendService) Endpoint() string {
	return s.baseURL + s.path
}

// Recommend POSTs mood to the backend and decodes the result.
func (s *RecommendService) Recommend(ctx context.Context, mood string) (*models.RecommendationResult, error) {
	body, err := json.Marshal(models.MoodQuery{Mood: mood})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", shared.ErrAPIRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", shared.ErrAPIRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrInvalidResponse, err)
	}

	var result models.RecommendationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidResponse, err)
	}

	return &result, nil
}
