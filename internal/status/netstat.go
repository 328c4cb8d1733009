package status

import (
	"context"
	"fmt"
	"strings"
)

const sourceNetStat = "net/netstat"

// NetStats maps a group name (TcpExt, IpExt, ...) to its column values.
type NetStats map[string]map[string]string

func (c *Collector) NetStats(ctx context.Context) (NetStats, error) {
	text, err := c.readProc(ctx, sourceNetStat)
	if err != nil {
		return nil, err
	}

	stats, skipped := parseNetStats(text)
	c.report(sourceNetStat, skipped)

	return stats, nil
}

type netstatState int

const (
	awaitingHeader netstatState = iota
	awaitingValue
)

// netstatParser consumes alternating header/value lines. A value line is
// one whose first token equals the pending header's first token. Once a
// value line is consumed the header is dropped, so a second value line
// for the same group is read as a new header.
type netstatParser struct {
	state   netstatState
	header  []string
	stats   NetStats
	skipped []*ParseError
}

func parseNetStats(text string) (NetStats, []*ParseError) {
	p := &netstatParser{stats: make(NetStats)}
	for _, l := range scanLines(text) {
		p.feed(l)
	}
	return p.stats, p.skipped
}

func (p *netstatParser) feed(l line) {
	if p.state == awaitingValue && l.fields[0] == p.header[0] {
		p.value(l)
		p.state = awaitingHeader
		p.header = nil
		return
	}

	p.header = l.fields
	p.state = awaitingValue
}

func (p *netstatParser) value(l line) {
	if len(l.fields) != len(p.header) {
		p.skipped = append(p.skipped, &ParseError{
			Source: sourceNetStat,
			Line:   l.num,
			Reason: fmt.Sprintf("%d values for %d headers", len(l.fields)-1, len(p.header)-1),
		})
		return
	}

	row := make(map[string]string, len(p.header)-1)
	for i := 1; i < len(p.header); i++ {
		row[p.header[i]] = l.fields[i]
	}

	p.stats[strings.TrimSuffix(p.header[0], ":")] = row
}
