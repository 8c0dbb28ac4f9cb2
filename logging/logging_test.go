package logging

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"getaround-api/config"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")
	defer log.SetOutput(os.Stderr)

	out := Setup(config.LogConfig{File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	if out == nil {
		t.Fatal("Setup returned nil writer")
	}

	log.Printf("dataset loaded: %d rows", 42)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "dataset loaded: 42 rows") {
		t.Errorf("log file missing entry, got: %q", string(data))
	}
}

func TestSetupStdoutOnly(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	if out := Setup(config.LogConfig{}); out != os.Stdout {
		t.Errorf("Setup() without file = %v, want os.Stdout", out)
	}
}
