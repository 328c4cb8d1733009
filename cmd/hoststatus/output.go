package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"hoststatus/internal/config"
	"hoststatus/internal/status"
)

func writeOutput(w io.Writer, format string, v any) error {
	if format == config.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// runSnapshot prints the named collectors once. A single name prints its
// record directly and fails if it fails; several names print a mapping of
// per-collector results.
func runSnapshot(ctx context.Context, collector *status.Collector, names []string, format string, w io.Writer) error {
	if len(names) == 0 {
		names = []string{status.NameAll}
	}

	if len(names) == 1 {
		v, err := collector.Collect(ctx, names[0])
		if err != nil {
			return fmt.Errorf("%s: %w", names[0], err)
		}
		return writeOutput(w, format, v)
	}

	out := make(map[string]status.Result[any], len(names))
	for _, name := range names {
		v, err := collector.Collect(ctx, name)
		out[name] = status.Result[any]{Value: v, Err: err}
	}

	return writeOutput(w, format, out)
}
