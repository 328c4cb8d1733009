package status

import "context"

const sourceLoadAvg = "loadavg"

// LoadAverage maps /proc/loadavg tokens 1..3 to the three windows. Token 0
// is dropped, so "15-min" carries the runnable/total field.
type LoadAverage struct {
	OneMin     string `json:"1-min" yaml:"1-min"`
	FiveMin    string `json:"5-min" yaml:"5-min"`
	FifteenMin string `json:"15-min" yaml:"15-min"`
}

func (c *Collector) LoadAvg(ctx context.Context) (LoadAverage, error) {
	text, err := c.readProc(ctx, sourceLoadAvg)
	if err != nil {
		return LoadAverage{}, err
	}

	return parseLoadAvg(text)
}

func parseLoadAvg(text string) (LoadAverage, error) {
	lines := scanLines(text)
	if len(lines) == 0 {
		return LoadAverage{}, &ParseError{Source: sourceLoadAvg, Line: 1, Reason: "no data"}
	}

	l := lines[0]
	if pe := require(sourceLoadAvg, l, 4); pe != nil {
		return LoadAverage{}, pe
	}

	return LoadAverage{
		OneMin:     l.fields[1],
		FiveMin:    l.fields[2],
		FifteenMin: l.fields[3],
	}, nil
}
