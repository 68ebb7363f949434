package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConsoleFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "warn", Console: &buf})
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hidden")
	log.Warn("shown", zap.Int("faces", 6))
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, `"faces": 6`) {
		t.Errorf("warn entry missing: %q", out)
	}
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshkit.log")
	cfg := DefaultFileConfig(path)
	cfg.Compress = false
	log, err := New(Options{Level: "debug", File: cfg})
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("pad creases", zap.Int("split", 6))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"pad creases"`) || !strings.Contains(string(data), `"split":6`) {
		t.Errorf("log file = %q", data)
	}
}

func TestNoOutputIsNop(t *testing.T) {
	log, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger without outputs should be disabled")
	}
}

func TestBadLevel(t *testing.T) {
	if _, err := New(Options{Level: "chatty", Console: &bytes.Buffer{}}); err == nil {
		t.Error("New accepted an unknown level")
	}
}
