package status

import (
	"context"
	"encoding/json"
	"strings"
)

const sourceCPUInfo = "cpuinfo"

// CPUInfo holds one set of /proc/cpuinfo keys. "flags" is kept as a token
// list, every other key as its trimmed value.
type CPUInfo struct {
	Flags  []string
	Fields map[string]string
}

func (i CPUInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.flatten())
}

func (i CPUInfo) MarshalYAML() (any, error) {
	return i.flatten(), nil
}

func (i CPUInfo) flatten() map[string]any {
	out := make(map[string]any, len(i.Fields)+1)
	for k, v := range i.Fields {
		out[k] = v
	}
	if i.Flags != nil {
		out["flags"] = i.Flags
	}
	return out
}

// CPUInfo returns a single flat mapping of /proc/cpuinfo. The file repeats
// the same keys for every logical processor, so the last processor's values
// win. Use Processors for one record per processor.
func (c *Collector) CPUInfo(ctx context.Context) (CPUInfo, error) {
	text, err := c.readProc(ctx, sourceCPUInfo)
	if err != nil {
		return CPUInfo{}, err
	}

	info, skipped := parseCPUInfo(text)
	c.report(sourceCPUInfo, skipped)

	return info, nil
}

func (c *Collector) Processors(ctx context.Context) ([]CPUInfo, error) {
	text, err := c.readProc(ctx, sourceCPUInfo)
	if err != nil {
		return nil, err
	}

	procs, skipped := parseProcessors(text)
	c.report(sourceCPUInfo, skipped)

	return procs, nil
}

func parseCPUInfo(text string) (CPUInfo, []*ParseError) {
	info := CPUInfo{Fields: make(map[string]string)}
	var skipped []*ParseError

	for _, l := range scanLines(text) {
		key, value, ok := splitPair(l, ":")
		if !ok || key == "" {
			skipped = append(skipped, &ParseError{Source: sourceCPUInfo, Line: l.num, Reason: "missing key separator"})
			continue
		}

		if key == "flags" {
			info.Flags = strings.Fields(value)
			continue
		}

		info.Fields[key] = value
	}

	return info, skipped
}

// parseProcessors splits cpuinfo on blank lines, one block per processor.
func parseProcessors(text string) ([]CPUInfo, []*ParseError) {
	var procs []CPUInfo
	var skipped []*ParseError

	offset := 0
	for _, block := range strings.Split(normalizeNewlines(text), "\n\n") {
		info, errs := parseCPUInfo(block)
		for _, pe := range errs {
			pe.Line += offset
		}
		offset += strings.Count(block, "\n") + 2
		skipped = append(skipped, errs...)

		if len(info.Fields) == 0 && info.Flags == nil {
			continue
		}
		procs = append(procs, info)
	}

	return procs, skipped
}
