// package formatter renders recommendation results and history as terminal tables and exports them
// to JSON, Markdown, plain text and standalone HTML.
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/moodtune/internal/models"
	"github.com/desertthunder/moodtune/internal/render"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Format selects an export format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

func previewStatus(s models.Song) string {
	if s.HasPreview() {
		return color.GreenString("▶ preview")
	}
	return color.HiBlackString("no preview")
}

// WriteSongsTable writes result as a rounded table with one row per song, in server order.
func WriteSongsTable(w io.Writer, result *models.RecommendationResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Song", "Artist", "Album", "Preview", "Spotify"})

	for i, song := range result.Songs {
		t.AppendRow(table.Row{
			i + 1,
			color.New(color.Bold).Sprint(song.Name),
			song.Artist,
			song.Album,
			previewStatus(song),
			color.HiBlackString(song.SpotifyURL),
		})
	}

	t.AppendFooter(table.Row{"", "", "", "", "Songs", len(result.Songs)})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// WriteHistoryTable writes history entries, newest first as given.
func WriteHistoryTable(w io.Writer, entries []*models.HistoryEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Mood", "Songs", "When", "ID"})

	for _, e := range entries {
		t.AppendRow(table.Row{
			e.Sequence,
			color.New(color.Bold).Sprint(e.Mood),
			e.SongCount,
			e.CreatedAt.Local().Format(time.DateTime),
			color.HiBlackString(e.ID),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

// WritePresetsTable writes the preset moods.
func WritePresetsTable(w io.Writer, presets []models.Preset) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Mood", "Preset", "Description"})

	for _, p := range presets {
		t.AppendRow(table.Row{color.CyanString(p.ID), p.Title(), p.Description})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

// ExportToJSON converts a result to indented JSON.
func ExportToJSON(result *models.RecommendationResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToMarkdown converts a result to Markdown with one numbered entry per song.
//
// Song metadata is HTML-escaped since most Markdown renderers pass inline HTML through.
func ExportToMarkdown(result *models.RecommendationResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Songs for %s\n\n", render.Escape(result.Mood)))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(result.Songs)))

	for i, song := range result.Songs {
		buf.WriteString(fmt.Sprintf("%d. **%s** - %s", i+1, render.Escape(song.Name), render.Escape(song.Artist)))
		if song.Album != "" {
			buf.WriteString(fmt.Sprintf(" (%s)", render.Escape(song.Album)))
		}
		if song.SpotifyURL != "" {
			buf.WriteString(fmt.Sprintf(" [Open in Spotify](%s)", song.SpotifyURL))
		}
		if song.HasPreview() {
			buf.WriteString(fmt.Sprintf(" [Preview](%s)", song.PreviewURL))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a result to plain text format
func ExportToText(result *models.RecommendationResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Mood: %s\n", result.Mood))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(result.Songs)))

	for i, song := range result.Songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, song.Artist, song.Name))
	}

	return buf.Bytes(), nil
}

// Export writes result to w in format. [FormatTable] renders [WriteSongsTable].
func Export(w io.Writer, result *models.RecommendationResult, format Format) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatTable, "":
		WriteSongsTable(w, result)
		return nil
	case FormatJSON:
		data, err = ExportToJSON(result)
	case FormatMarkdown:
		data, err = ExportToMarkdown(result)
	case FormatText:
		data, err = ExportToText(result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// WriteHTMLExport writes cards as a standalone HTML page at path, creating parent directories.
func WriteHTMLExport(path, mood string, cards []render.Card) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := render.Page(&buf, mood, cards); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}
	return nil
}
