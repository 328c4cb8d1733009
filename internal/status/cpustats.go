package status

import (
	"context"
	"encoding/json"
)

const sourceStat = "stat"

type CPUTimes struct {
	User    string `json:"user" yaml:"user"`
	Nice    string `json:"nice" yaml:"nice"`
	System  string `json:"system" yaml:"system"`
	Idle    string `json:"idle" yaml:"idle"`
	IOWait  string `json:"iowait" yaml:"iowait"`
	IRQ     string `json:"irq" yaml:"irq"`
	SoftIRQ string `json:"softirq" yaml:"softirq"`
	Steal   string `json:"steal" yaml:"steal"`
}

type InterruptStat struct {
	Total string   `json:"total" yaml:"total"`
	IRQs  []string `json:"irqs" yaml:"irqs"`
}

type SoftIRQStat struct {
	Total    string   `json:"total" yaml:"total"`
	SoftIRQs []string `json:"softirqs" yaml:"softirqs"`
}

// CPUStats is the decoded /proc/stat. Only the aggregate "cpu" row is
// decomposed; per-CPU rows (cpu0, cpu1, ...) land in Scalars with their
// first counter, like every other row.
type CPUStats struct {
	CPU     *CPUTimes
	Intr    *InterruptStat
	SoftIRQ *SoftIRQStat
	Scalars map[string]string
}

// MarshalJSON flattens the record into a single object keyed by row name.
func (s CPUStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.flatten())
}

func (s CPUStats) MarshalYAML() (any, error) {
	return s.flatten(), nil
}

func (s CPUStats) flatten() map[string]any {
	out := make(map[string]any, len(s.Scalars)+3)
	for k, v := range s.Scalars {
		out[k] = v
	}
	if s.CPU != nil {
		out["cpu"] = s.CPU
	}
	if s.Intr != nil {
		out["intr"] = s.Intr
	}
	if s.SoftIRQ != nil {
		out["softirq"] = s.SoftIRQ
	}
	return out
}

func (c *Collector) CPUStats(ctx context.Context) (CPUStats, error) {
	text, err := c.readProc(ctx, sourceStat)
	if err != nil {
		return CPUStats{}, err
	}

	stats, skipped := parseCPUStats(text)
	c.report(sourceStat, skipped)

	return stats, nil
}

func parseCPUStats(text string) (CPUStats, []*ParseError) {
	stats := CPUStats{Scalars: make(map[string]string)}
	var skipped []*ParseError

	for _, l := range scanLines(text) {
		f := l.fields

		switch f[0] {
		case "cpu":
			if pe := require(sourceStat, l, 9); pe != nil {
				skipped = append(skipped, pe)
				continue
			}
			stats.CPU = &CPUTimes{
				User:    f[1],
				Nice:    f[2],
				System:  f[3],
				Idle:    f[4],
				IOWait:  f[5],
				IRQ:     f[6],
				SoftIRQ: f[7],
				Steal:   f[8],
			}

		case "intr":
			stats.Intr = &InterruptStat{Total: f[1], IRQs: append([]string{}, f[2:]...)}

		case "softirq":
			stats.SoftIRQ = &SoftIRQStat{Total: f[1], SoftIRQs: append([]string{}, f[2:]...)}

		default:
			stats.Scalars[f[0]] = f[1]
		}
	}

	return stats, skipped
}
