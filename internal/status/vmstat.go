package status

import "context"

const sourceVMStat = "vmstat"

type VMStats map[string]string

func (c *Collector) VMStats(ctx context.Context) (VMStats, error) {
	text, err := c.readProc(ctx, sourceVMStat)
	if err != nil {
		return nil, err
	}

	return parseVMStats(text), nil
}

func parseVMStats(text string) VMStats {
	stats := make(VMStats)
	for _, l := range scanLines(text) {
		stats[l.fields[0]] = l.fields[1]
	}
	return stats
}
