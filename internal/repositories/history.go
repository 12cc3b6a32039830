package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/moodtune/internal/models"
	"github.com/desertthunder/moodtune/internal/shared"
)

// HistoryRepository persists recommendation results and their songs.
type HistoryRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewHistoryRepository creates a new HistoryRepository with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db, now: time.Now}
}

// Record stores result with a generated ID and sequence, keeping song order.
// The mood is stored normalized so lookups by typed text find it.
func (r *HistoryRepository) Record(result *models.RecommendationResult) (*models.HistoryEntry, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: result requires a mood", shared.ErrInvalidInput)
	}
	mood := shared.NormalizeMood(result.Mood)
	if mood == "" {
		return nil, fmt.Errorf("%w: result requires a mood", shared.ErrInvalidInput)
	}

	sequence, err := NextSequence(r.db, "recommendations")
	if err != nil {
		return nil, fmt.Errorf("failed to generate sequence: %w", err)
	}

	entry := &models.HistoryEntry{
		ID:        shared.GenerateID(),
		Sequence:  sequence,
		Mood:      mood,
		SongCount: len(result.Songs),
		CreatedAt: r.now().UTC(),
		Songs:     result.Songs,
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO recommendations (id, sequence, mood, song_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.ID, entry.Sequence, entry.Mood, entry.SongCount, entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert recommendation: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO recommendation_songs (recommendation_id, position, name, artist, album, image_url, spotify_url, preview_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare song insert: %w", err)
	}
	defer stmt.Close()

	for i, song := range result.Songs {
		_, err := stmt.Exec(entry.ID, i, song.Name, song.Artist, song.Album,
			nullString(song.ImageURL), song.SpotifyURL, nullString(song.PreviewURL))
		if err != nil {
			return nil, fmt.Errorf("failed to insert song %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit recommendation: %w", err)
	}
	return entry, nil
}

// Get retrieves an entry and its songs. id may be the entry ID or its sequence number.
func (r *HistoryRepository) Get(id string) (*models.HistoryEntry, error) {
	row := r.db.QueryRow(`
		SELECT id, sequence, mood, song_count, created_at
		FROM recommendations
		WHERE id = ? OR CAST(sequence AS TEXT) = ?
	`, id, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrHistoryNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(`
		SELECT name, artist, album, image_url, spotify_url, preview_url
		FROM recommendation_songs
		WHERE recommendation_id = ?
		ORDER BY position
	`, entry.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var song models.Song
		var image, preview sql.NullString
		if err := rows.Scan(&song.Name, &song.Artist, &song.Album, &image, &song.SpotifyURL, &preview); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		song.ImageURL = image.String
		song.PreviewURL = preview.String
		entry.Songs = append(entry.Songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating songs: %w", err)
	}

	return entry, nil
}

// LatestForMood returns the most recent entry recorded for mood, with its songs.
func (r *HistoryRepository) LatestForMood(mood string) (*models.HistoryEntry, error) {
	mood = shared.NormalizeMood(mood)
	var id string
	err := r.db.QueryRow(`
		SELECT id FROM recommendations
		WHERE mood = ?
		ORDER BY sequence DESC
		LIMIT 1
	`, mood).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no recommendations for %q", shared.ErrHistoryNotFound, mood)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recommendation: %w", err)
	}
	return r.Get(id)
}

// List returns the most recent entries first, without songs. A limit of 0 or less returns all.
func (r *HistoryRepository) List(limit int) ([]*models.HistoryEntry, error) {
	query := `
		SELECT id, sequence, mood, song_count, created_at
		FROM recommendations
		ORDER BY sequence DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer rows.Close()

	var entries []*models.HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recommendations: %w", err)
	}

	return entries, nil
}

// Clear removes every entry and returns how many were deleted.
func (r *HistoryRepository) Clear() (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM recommendation_songs"); err != nil {
		return 0, fmt.Errorf("failed to delete songs: %w", err)
	}

	result, err := tx.Exec("DELETE FROM recommendations")
	if err != nil {
		return 0, fmt.Errorf("failed to delete recommendations: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit clear: %w", err)
	}
	return rows, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*models.HistoryEntry, error) {
	var entry models.HistoryEntry
	err := s.Scan(&entry.ID, &entry.Sequence, &entry.Mood, &entry.SongCount, &entry.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan recommendation: %w", err)
	}
	return &entry, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
