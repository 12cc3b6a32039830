package formatter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/moodtune/internal/models"
	"github.com/desertthunder/moodtune/internal/playback"
	"github.com/desertthunder/moodtune/internal/render"
	th "github.com/desertthunder/moodtune/internal/testing"
	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func TestTables(t *testing.T) {
	t.Run("WriteSongsTable", func(t *testing.T) {
		var buf bytes.Buffer
		WriteSongsTable(&buf, th.ScenarioResult())
		output := buf.String()

		for _, want := range []string{"A", "B", "C", "u1", "D", "E", "F", "u2", "▶ preview", "no preview"} {
			if !strings.Contains(output, want) {
				t.Errorf("table missing %q, got:\n%s", want, output)
			}
		}
		if strings.Index(output, "u1") > strings.Index(output, "u2") {
			t.Error("songs should keep server order")
		}
	})

	t.Run("WriteHistoryTable", func(t *testing.T) {
		var buf bytes.Buffer
		WriteHistoryTable(&buf, []*models.HistoryEntry{
			{ID: "id-2", Sequence: 2, Mood: "sad", SongCount: 5, CreatedAt: time.Now()},
			{ID: "id-1", Sequence: 1, Mood: "happy", SongCount: 10, CreatedAt: time.Now()},
		})
		output := buf.String()

		if !strings.Contains(output, "sad") || !strings.Contains(output, "id-1") {
			t.Errorf("history table missing rows, got:\n%s", output)
		}
	})

	t.Run("WritePresetsTable", func(t *testing.T) {
		var buf bytes.Buffer
		WritePresetsTable(&buf, models.DefaultPresets())

		for _, p := range models.DefaultPresets() {
			if !strings.Contains(buf.String(), p.ID) {
				t.Errorf("presets table missing %s", p.ID)
			}
		}
	})
}

func TestExporters(t *testing.T) {
	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(th.ScenarioResult())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var decoded models.RecommendationResult
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Mood != "happy" || len(decoded.Songs) != 2 {
			t.Errorf("unexpected decoded result %+v", decoded)
		}
		if strings.Contains(string(data), `"preview_url": ""`) {
			t.Error("missing previews should be omitted")
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		result := th.ScenarioResult()
		result.Songs[1].Artist = "Tom & Jerry"

		data, err := ExportToMarkdown(result)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		output := string(data)

		if !strings.Contains(output, "# Songs for happy") {
			t.Errorf("Markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "1. **A** - B (C) [Open in Spotify](u1) [Preview](p1)") {
			t.Errorf("Markdown missing first song, got: %s", output)
		}
		if !strings.Contains(output, "2. **D** - Tom &amp; Jerry (F) [Open in Spotify](u2)\n") {
			t.Errorf("Markdown should escape metadata and omit missing preview, got: %s", output)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(th.ScenarioResult())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}
		output := string(data)

		if !strings.Contains(output, "Mood: happy") || !strings.Contains(output, "Songs: 2") {
			t.Errorf("text missing header, got: %s", output)
		}
		if !strings.Contains(output, "1. B - A\n2. E - D\n") {
			t.Errorf("text missing songs, got: %s", output)
		}
	})
}

func TestExport(t *testing.T) {
	t.Run("Formats", func(t *testing.T) {
		for _, format := range []Format{FormatTable, FormatJSON, FormatMarkdown, FormatText} {
			var buf bytes.Buffer
			if err := Export(&buf, th.ScenarioResult(), format); err != nil {
				t.Errorf("%s: unexpected error: %v", format, err)
			}
			if buf.Len() == 0 {
				t.Errorf("%s: expected output", format)
			}
		}
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		if err := Export(&bytes.Buffer{}, th.ScenarioResult(), "yaml"); err == nil {
			t.Error("expected error for unsupported format")
		}
	})

	t.Run("WriteFailure", func(t *testing.T) {
		if err := Export(&th.FWriter{}, th.ScenarioResult(), FormatJSON); err == nil {
			t.Error("expected write error")
		}
	})
}

func TestWriteHTMLExport(t *testing.T) {
	ctrl := playback.NewController(&th.FakeEngine{}, playback.Opts{})
	cards, err := render.NewRenderer(ctrl, "").Render(th.ScenarioResult())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out", "happy.html")
	if err := WriteHTMLExport(path, "happy", cards); err != nil {
		t.Fatalf("WriteHTMLExport failed: %v", err)
	}

	content := th.MustReadFile(t, path)
	if strings.Count(content, `class="song-card"`) != 2 {
		t.Errorf("expected two cards in page, got: %s", content)
	}

	t.Run("UnwritablePath", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		os.WriteFile(blocker, []byte("x"), 0644)

		if err := WriteHTMLExport(filepath.Join(blocker, "page.html"), "happy", cards); err == nil {
			t.Error("expected error when parent is a file")
		}
	})
}
