package status

import (
	"context"
	"strings"
)

const sourceMemInfo = "meminfo"

type MemInfoEntry struct {
	Value string `json:"value" yaml:"value"`
	Unit  string `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// MemInfo is keyed by the stat name without its trailing colon.
type MemInfo map[string]MemInfoEntry

func (c *Collector) MemInfo(ctx context.Context) (MemInfo, error) {
	text, err := c.readProc(ctx, sourceMemInfo)
	if err != nil {
		return nil, err
	}

	return parseMemInfo(text), nil
}

func parseMemInfo(text string) MemInfo {
	info := make(MemInfo)

	for _, l := range scanLines(text) {
		entry := MemInfoEntry{Value: l.fields[1]}
		if len(l.fields) > 2 {
			entry.Unit = l.fields[2]
		}

		info[strings.TrimSuffix(l.fields[0], ":")] = entry
	}

	return info
}
