package status

import (
	"context"
	"strings"
)

const (
	sourceNetDev = "net/dev"

	netDevFields = 17
)

type NetDevStat struct {
	RxBytes      string `json:"rx_bytes" yaml:"rx_bytes"`
	RxPackets    string `json:"rx_packets" yaml:"rx_packets"`
	RxErrors     string `json:"rx_errs" yaml:"rx_errs"`
	RxDrop       string `json:"rx_drop" yaml:"rx_drop"`
	RxFIFO       string `json:"rx_fifo" yaml:"rx_fifo"`
	RxFrame      string `json:"rx_frame" yaml:"rx_frame"`
	RxCompressed string `json:"rx_compressed" yaml:"rx_compressed"`
	RxMulticast  string `json:"rx_multicast" yaml:"rx_multicast"`
	TxBytes      string `json:"tx_bytes" yaml:"tx_bytes"`
	TxPackets    string `json:"tx_packets" yaml:"tx_packets"`
	TxErrors     string `json:"tx_errs" yaml:"tx_errs"`
	TxDrop       string `json:"tx_drop" yaml:"tx_drop"`
	TxFIFO       string `json:"tx_fifo" yaml:"tx_fifo"`
	TxColls      string `json:"tx_colls" yaml:"tx_colls"`
	TxCarrier    string `json:"tx_carrier" yaml:"tx_carrier"`
	TxCompressed string `json:"tx_compressed" yaml:"tx_compressed"`
}

// NetDev is keyed by interface name.
type NetDev map[string]NetDevStat

func (c *Collector) NetDev(ctx context.Context) (NetDev, error) {
	text, err := c.readProc(ctx, sourceNetDev)
	if err != nil {
		return nil, err
	}

	stats, skipped := parseNetDev(text)
	c.report(sourceNetDev, skipped)

	return stats, nil
}

func parseNetDev(text string) (NetDev, []*ParseError) {
	stats := make(NetDev)
	var skipped []*ParseError

	for _, l := range scanLines(text) {
		// header rows carry "|" column groupings
		if strings.Contains(l.text, "|") {
			continue
		}

		// kernels omit the space after "iface:" for wide counters
		iface, rest, ok := strings.Cut(l.text, ":")
		if !ok {
			skipped = append(skipped, &ParseError{Source: sourceNetDev, Line: l.num, Reason: "missing interface separator"})
			continue
		}

		fields := append([]string{strings.TrimSpace(iface)}, strings.Fields(rest)...)
		if pe := require(sourceNetDev, line{num: l.num, fields: fields}, netDevFields); pe != nil {
			skipped = append(skipped, pe)
			continue
		}

		f := fields[1:]
		stats[fields[0]] = NetDevStat{
			RxBytes:      f[0],
			RxPackets:    f[1],
			RxErrors:     f[2],
			RxDrop:       f[3],
			RxFIFO:       f[4],
			RxFrame:      f[5],
			RxCompressed: f[6],
			RxMulticast:  f[7],
			TxBytes:      f[8],
			TxPackets:    f[9],
			TxErrors:     f[10],
			TxDrop:       f[11],
			TxFIFO:       f[12],
			TxColls:      f[13],
			TxCarrier:    f[14],
			TxCompressed: f[15],
		}
	}

	return stats, skipped
}
