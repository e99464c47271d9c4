package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNew(t *testing.T) {
	l := New(DefaultConfig())
	if l == nil {
		t.Fatal("New() returned nil")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != InfoLevel {
		t.Errorf("Level = %v, want InfoLevel", cfg.Level)
	}
	if !cfg.Pretty {
		t.Error("Pretty should be true by default")
	}
	if cfg.Output == nil {
		t.Error("Output should not be nil")
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{
		Level:  InfoLevel,
		Pretty: false,
		Output: &buf,
	})

	l = l.WithComponent("indexer")
	l.Info("index generated")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry["component"] != "indexer" {
		t.Errorf("component = %v, want indexer", entry["component"])
	}
	if entry["message"] != "index generated" {
		t.Errorf("message = %v, want 'index generated'", entry["message"])
	}
}

func TestLogger_WithPath(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{
		Level:  InfoLevel,
		Pretty: false,
		Output: &buf,
	})

	l.WithPath("docs/api/discovery.json").Info("loaded")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry["path"] != "docs/api/discovery.json" {
		t.Errorf("path = %v, want docs/api/discovery.json", entry["path"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{
		Level:  WarnLevel,
		Pretty: false,
		Output: &buf,
	})

	l.Debug("hidden")
	l.Info("hidden too")

	if buf.Len() != 0 {
		t.Errorf("below-level messages were written: %q", buf.String())
	}

	l.Warn("shown")
	if buf.Len() == 0 {
		t.Error("warn message should be written")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"info", InfoLevel, false},
		{"error", ErrorLevel, false},
		{"bogus", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && level != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, level, tt.want)
			}
		})
	}
}
