package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"hoststatus/internal/config"
	"hoststatus/internal/logger"
	"hoststatus/internal/status"
)

func newCollector(t *testing.T) *status.Collector {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"loadavg": "0.10 0.20 0.30 1/200 12345\n",
		"vmstat":  "pgpgin 10\npgpgout 20\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	return status.NewCollector(logger.Nop(), status.WithProcRoot(root), status.WithHostInfo(nil))
}

func TestRunSnapshotSingleJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := runSnapshot(context.Background(), newCollector(t), []string{"loadavg"}, config.FormatJSON, &buf); err != nil {
		t.Fatal(err)
	}

	var got map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %s: %v", buf.String(), err)
	}
	if got["15-min"] != "1/200" {
		t.Errorf("got %v", got)
	}
}

func TestRunSnapshotSingleYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := runSnapshot(context.Background(), newCollector(t), []string{"vmstats"}, config.FormatYAML, &buf); err != nil {
		t.Fatal(err)
	}

	var got map[string]string
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %s: %v", buf.String(), err)
	}
	if got["pgpgout"] != "20" {
		t.Errorf("got %v", got)
	}
}

func TestRunSnapshotSingleFailure(t *testing.T) {
	var buf bytes.Buffer
	err := runSnapshot(context.Background(), newCollector(t), []string{"meminfo"}, config.FormatJSON, &buf)
	if !errors.Is(err, status.ErrSourceUnavailable) {
		t.Errorf("error = %v, want ErrSourceUnavailable", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote output on failure: %s", buf.String())
	}
}

func TestRunSnapshotMany(t *testing.T) {
	var buf bytes.Buffer
	if err := runSnapshot(context.Background(), newCollector(t), []string{"loadavg", "meminfo"}, config.FormatYAML, &buf); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"loadavg:", "1-min: \"0.20\"", "meminfo:", "kind: source_unavailable"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
