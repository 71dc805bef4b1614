package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TABCODEC_LOG_LEVEL", "")
	t.Setenv("TABCODEC_LOG_FORMAT", "")
	t.Setenv("TABCODEC_MERGE_ROW_LIMIT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "text")
	}
	if cfg.Decode.MergeRowLimit != 10000 {
		t.Errorf("Decode.MergeRowLimit = %d, want %d", cfg.Decode.MergeRowLimit, 10000)
	}
	if cfg.Decode.MaxCells != 10_000_000 {
		t.Errorf("Decode.MaxCells = %d, want %d", cfg.Decode.MaxCells, 10_000_000)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TABCODEC_LOG_LEVEL", "debug")
	t.Setenv("TABCODEC_LOG_FORMAT", "json")
	t.Setenv("TABCODEC_MERGE_ROW_LIMIT", "-1")
	t.Setenv("TABCODEC_MAX_CELLS", "500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Decode.MergeRowLimit != -1 {
		t.Errorf("Decode.MergeRowLimit = %d, want -1", cfg.Decode.MergeRowLimit)
	}
	if cfg.Decode.MaxCells != 500 {
		t.Errorf("Decode.MaxCells = %d, want 500", cfg.Decode.MaxCells)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"bad integer", "TABCODEC_MERGE_ROW_LIMIT", "many", "invalid value for TABCODEC_MERGE_ROW_LIMIT"},
		{"bad level", "TABCODEC_LOG_LEVEL", "loud", "TABCODEC_LOG_LEVEL"},
		{"bad format", "TABCODEC_LOG_FORMAT", "xml", "TABCODEC_LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, expected it to mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "TABCODEC_LOG_FORMAT=json\nTABCODEC_MERGE_ROW_LIMIT=25\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	// Already-set variables win over the file.
	t.Setenv("TABCODEC_LOG_FORMAT", "text")
	t.Setenv("TABCODEC_MERGE_ROW_LIMIT", "")
	os.Unsetenv("TABCODEC_MERGE_ROW_LIMIT")

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want the pre-set %q", cfg.Logging.Format, "text")
	}
	if cfg.Decode.MergeRowLimit != 25 {
		t.Errorf("Decode.MergeRowLimit = %d, want 25 from the file", cfg.Decode.MergeRowLimit)
	}
}
