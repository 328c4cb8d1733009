// Package status reads host telemetry from kernel pseudo-files and a few
// system utilities and turns each source into a typed record.
//
// Every record keeps kernel values as strings. Parsers skip lines they
// cannot decode and report them through the collector's logger instead of
// failing the call.
package status

import (
	"context"
	"fmt"
	"time"

	"hoststatus/internal/logger"
)

const (
	NameUptime     = "uptime"
	NameLoadAvg    = "loadavg"
	NameCPUStats   = "cpustats"
	NameMemInfo    = "meminfo"
	NameCPUInfo    = "cpuinfo"
	NameDiskStats  = "diskstats"
	NameVMStats    = "vmstats"
	NameNetStats   = "netstats"
	NameW          = "w"
	NameProcessors = "processors"
	NameNetDev     = "netdev"
	NameVersion    = "version"
	NameAll        = "all"
)

// Names lists every collector accepted by Collect, in display order.
var Names = []string{
	NameUptime,
	NameLoadAvg,
	NameCPUStats,
	NameMemInfo,
	NameCPUInfo,
	NameDiskStats,
	NameVMStats,
	NameNetStats,
	NameW,
	NameProcessors,
	NameNetDev,
	NameVersion,
	NameAll,
}

type Collector struct {
	procRoot    string
	runner      Runner
	timeout     time.Duration
	concurrency int
	hostInfo    HostInfoFunc
	log         logger.Logger
}

type Option func(*Collector)

// WithProcRoot points the /proc readers at root. Host metadata in All
// still comes from the running host.
func WithProcRoot(root string) Option {
	return func(c *Collector) { c.procRoot = root }
}

func WithRunner(r Runner) Option {
	return func(c *Collector) { c.runner = r }
}

// WithTimeout bounds each file read and process spawn.
func WithTimeout(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithConcurrency limits how many sub-collectors All runs at once.
// Zero means no limit.
func WithConcurrency(n int) Option {
	return func(c *Collector) { c.concurrency = n }
}

func WithHostInfo(fn HostInfoFunc) Option {
	return func(c *Collector) { c.hostInfo = fn }
}

func NewCollector(log logger.Logger, opts ...Option) *Collector {
	c := &Collector{
		procRoot: "/proc",
		runner:   ExecRunner{},
		timeout:  5 * time.Second,
		hostInfo: gopsutilHostInfo,
		log:      log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Collect runs the named collector and returns its record.
func (c *Collector) Collect(ctx context.Context, name string) (any, error) {
	switch name {
	case NameUptime:
		return c.Uptime(ctx)
	case NameLoadAvg:
		return c.LoadAvg(ctx)
	case NameCPUStats:
		return c.CPUStats(ctx)
	case NameMemInfo:
		return c.MemInfo(ctx)
	case NameCPUInfo:
		return c.CPUInfo(ctx)
	case NameDiskStats:
		return c.DiskStats(ctx)
	case NameVMStats:
		return c.VMStats(ctx)
	case NameNetStats:
		return c.NetStats(ctx)
	case NameW:
		return c.W(ctx)
	case NameProcessors:
		return c.Processors(ctx)
	case NameNetDev:
		return c.NetDev(ctx)
	case NameVersion:
		return c.Version(ctx)
	case NameAll:
		return c.All(ctx), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollector, name)
	}
}

func (c *Collector) report(source string, skipped []*ParseError) {
	if len(skipped) == 0 {
		return
	}

	for _, pe := range skipped {
		c.log.Debug("skipped line", "source", source, "line", pe.Line, "reason", pe.Reason)
	}

	c.log.Warn("malformed lines skipped", "source", source, "skipped", len(skipped))
}
