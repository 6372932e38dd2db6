package config

import (
	"path/filepath"
	"testing"
	"time"
)

func setTestPaths(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("LOG_DIR", filepath.Join(dir, "logs"))
	t.Setenv("DB_PATH", filepath.Join(dir, "data.db"))
}

func TestLoadDefaults(t *testing.T) {
	setTestPaths(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("server port = %q", cfg.ServerPort)
	}
	if cfg.LLM.Model != "chatgpt-4o-latest" {
		t.Errorf("model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.MaxTokens != 10000 {
		t.Errorf("max tokens = %d", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.CopyeditTemperature != 0.1 || cfg.LLM.HighlightTemperature != 0.4 {
		t.Errorf("temperatures = %v, %v", cfg.LLM.CopyeditTemperature, cfg.LLM.HighlightTemperature)
	}
	if cfg.Pipeline.LinesPerPartition != 60 {
		t.Errorf("lines per partition = %d", cfg.Pipeline.LinesPerPartition)
	}
	if cfg.Pipeline.MaxConcurrent != 8 {
		t.Errorf("max concurrent = %d", cfg.Pipeline.MaxConcurrent)
	}
	if cfg.Archive.Enabled() {
		t.Error("archive enabled without endpoint and bucket")
	}
}

func TestLoadOverrides(t *testing.T) {
	setTestPaths(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("PIPELINE_MAX_CONCURRENT", "2")
	t.Setenv("VIDEO_PROCESS_TIMEOUT", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != "9090" {
		t.Errorf("server port = %q", cfg.ServerPort)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", cfg.LLM.Model)
	}
	if cfg.Pipeline.MaxConcurrent != 2 {
		t.Errorf("max concurrent = %d", cfg.Pipeline.MaxConcurrent)
	}
	if cfg.Video.ProcessTimeout != 5*time.Minute {
		t.Errorf("process timeout = %v", cfg.Video.ProcessTimeout)
	}
}

func TestValidateRejectsBadPipeline(t *testing.T) {
	setTestPaths(t)
	t.Setenv("PIPELINE_LINES_PER_PARTITION", "-1")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative partition size")
	}
}

func TestArchiveEnabled(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		bucket   string
		want     bool
	}{
		{name: "Both set", endpoint: "https://nyc3.digitaloceanspaces.com", bucket: "transcripts", want: true},
		{name: "Endpoint only", endpoint: "https://nyc3.digitaloceanspaces.com", want: false},
		{name: "Bucket only", bucket: "transcripts", want: false},
		{name: "Neither", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ArchiveConfig{Endpoint: tt.endpoint, Bucket: tt.bucket}
			if got := cfg.Enabled(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
