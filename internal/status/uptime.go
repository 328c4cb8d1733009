package status

import (
	"context"
	"strings"
)

const sourceVersion = "version"

// Uptime returns the `uptime` utility's output as-is, trimmed.
func (c *Collector) Uptime(ctx context.Context) (string, error) {
	out, err := c.runCommand(ctx, "uptime")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

func (c *Collector) Version(ctx context.Context) (string, error) {
	text, err := c.readProc(ctx, sourceVersion)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}
