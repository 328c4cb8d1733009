package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", "json")

	log.Info("hidden")
	log.Warn("malformed lines skipped", "source", "stat", "skipped", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["msg"] != "malformed lines skipped" || rec["source"] != "stat" || rec["skipped"] != float64(2) {
		t.Errorf("record = %v", rec)
	}
}

func TestNewWithWriterTextDebug(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "DEBUG", "text").Debug("skipped line", "line", 3)

	if !strings.Contains(buf.String(), "skipped line") || !strings.Contains(buf.String(), "line=3") {
		t.Errorf("output = %q", buf.String())
	}
}
