package shared

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalizeMood(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already clean", input: "happy", want: "happy"},
		{name: "surrounding whitespace", input: "  sad \t", want: "sad"},
		{name: "inner whitespace", input: "rainy   sunday\nmorning", want: "rainy sunday morning"},
		{name: "only whitespace", input: " \t\n ", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeMood(tt.input); got != tt.want {
				t.Errorf("NormalizeMood(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoggers(t *testing.T) {
	t.Run("NewLogger writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello", "mood", "happy")

		if !strings.Contains(buf.String(), "mood=happy") {
			t.Errorf("expected structured key in output, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "tui.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		logger.Info("started")

		content := MustRead(t, path)
		if !strings.Contains(content, "started") {
			t.Errorf("expected log line in file, got %q", content)
		}
	})

	t.Run("WithLogger adds fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "session")
		logger.Info("x")

		if !strings.Contains(buf.String(), "component=session") {
			t.Errorf("expected child field in output, got %q", buf.String())
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == "" || a == b {
		t.Errorf("expected unique non-empty ids, got %q and %q", a, b)
	}
}

func TestOpenCommand(t *testing.T) {
	original := getRuntime
	defer func() { getRuntime = original }()

	tc := []struct {
		goos string
		bin  string
	}{
		{goos: "darwin", bin: "open"},
		{goos: "linux", bin: "xdg-open"},
		{goos: "windows", bin: "rundll32"},
	}

	for _, tt := range tc {
		t.Run(tt.goos, func(t *testing.T) {
			getRuntime = func() string { return tt.goos }
			cmd, err := openCommand("https://open.spotify.com/track/1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if filepath.Base(cmd.Path) != tt.bin && cmd.Args[0] != tt.bin {
				t.Errorf("expected %s, got %v", tt.bin, cmd.Args)
			}
			if cmd.Args[len(cmd.Args)-1] != "https://open.spotify.com/track/1" {
				t.Errorf("expected url as last argument, got %v", cmd.Args)
			}
		})
	}

	t.Run("unsupported platform", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if _, err := openCommand("https://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})

	t.Run("empty url", func(t *testing.T) {
		if err := OpenBrowser(""); err == nil {
			t.Error("expected error for empty url")
		}
	})
}
