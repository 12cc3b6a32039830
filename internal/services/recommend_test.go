package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/moodtune/internal/models"
	"github.com/desertthunder/moodtune/internal/shared"
	tu "github.com/desertthunder/moodtune/internal/testing"
)

func TestNewRecommendService(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s := NewRecommendService("", "", nil)
		if s.Endpoint() != "http://127.0.0.1:5000/recommend" {
			t.Errorf("unexpected endpoint %s", s.Endpoint())
		}
		if s.httpClient != http.DefaultClient {
			t.Error("expected default http client")
		}
	})

	t.Run("Normalizes base URL and path", func(t *testing.T) {
		s := NewRecommendService("http://localhost:8080/", "api/recommend", nil)
		if s.Endpoint() != "http://localhost:8080/api/recommend" {
			t.Errorf("unexpected endpoint %s", s.Endpoint())
		}
	})
}

func TestRecommend(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotMethod, gotPath, gotType string
		var gotBody models.MoodQuery

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path
			gotType = r.Header.Get("Content-Type")
			json.NewDecoder(r.Body).Decode(&gotBody)

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"mood":"happy","songs":[
				{"name":"A","artist":"B","album":"C","image_url":null,"spotify_url":"u1","preview_url":"p1"},
				{"name":"D","artist":"E","album":"F","image_url":"i2","spotify_url":"u2","preview_url":null}
			]}`))
		}))
		defer server.Close()

		s := NewRecommendService(server.URL, "", server.Client())
		result, err := s.Recommend(context.Background(), "happy")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotMethod != http.MethodPost || gotPath != "/recommend" {
			t.Errorf("expected POST /recommend, got %s %s", gotMethod, gotPath)
		}
		if gotType != "application/json" {
			t.Errorf("expected JSON content type, got %s", gotType)
		}
		if gotBody.Mood != "happy" {
			t.Errorf("expected mood happy in body, got %q", gotBody.Mood)
		}

		if result.Mood != "happy" || len(result.Songs) != 2 {
			t.Fatalf("unexpected result %+v", result)
		}
		if !result.Songs[0].HasPreview() || result.Songs[0].HasImage() {
			t.Error("first song should have a preview and no image")
		}
		if result.Songs[1].HasPreview() || result.Songs[1].ImageURL != "i2" {
			t.Error("second song should have an image and no preview")
		}
	})

	t.Run("Empty songs is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"mood":"meh","songs":[]}`))
		}))
		defer server.Close()

		result, err := NewRecommendService(server.URL, "", server.Client()).Recommend(context.Background(), "meh")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Empty() {
			t.Error("expected empty result")
		}
	})

	t.Run("Non-success status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"Internal server error"}`, http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewRecommendService(server.URL, "", server.Client()).Recommend(context.Background(), "happy")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
		if !strings.Contains(err.Error(), "500") {
			t.Errorf("expected status in error, got %v", err)
		}
	})

	t.Run("Malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>not json</html>`))
		}))
		defer server.Close()

		_, err := NewRecommendService(server.URL, "", server.Client()).Recommend(context.Background(), "happy")
		if !errors.Is(err, shared.ErrInvalidResponse) {
			t.Errorf("expected ErrInvalidResponse, got %v", err)
		}
	})

	t.Run("Transport failure", func(t *testing.T) {
		client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}

		_, err := NewRecommendService("http://backend", "", client).Recommend(context.Background(), "happy")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("Body read failure", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusOK, Body: &tu.FCloser{}, Header: make(http.Header)}
		client := &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)}

		_, err := NewRecommendService("http://backend", "", client).Recommend(context.Background(), "happy")
		if !errors.Is(err, shared.ErrInvalidResponse) {
			t.Errorf("expected ErrInvalidResponse, got %v", err)
		}
	})

	t.Run("Cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.Copy(io.Discard, r.Body)
			w.Write([]byte(`{"mood":"happy","songs":[]}`))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewRecommendService(server.URL, "", server.Client()).Recommend(ctx, "happy")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
