package status

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Result holds either a collector's value or the error it failed with.
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

type SlotError struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

type resultValue[T any] struct {
	Value T `json:"value" yaml:"value"`
}

type resultError struct {
	Error SlotError `json:"error" yaml:"error"`
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

func (r Result[T]) MarshalYAML() (any, error) {
	return r.wire(), nil
}

func (r Result[T]) wire() any {
	if r.Err != nil {
		return resultError{Error: SlotError{Kind: Kind(r.Err), Message: r.Err.Error()}}
	}
	return resultValue[T]{Value: r.Value}
}

// Snapshot is one pass over every collector. Each slot is filled
// independently; a failed slot carries its error instead of a value.
type Snapshot struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	CollectedAt time.Time `json:"collected_at" yaml:"collected_at"`
	Host        *HostInfo `json:"host,omitempty" yaml:"host,omitempty"`

	CPUInfo   Result[CPUInfo]        `json:"cpuinfo" yaml:"cpuinfo"`
	CPUStats  Result[CPUStats]       `json:"cpustats" yaml:"cpustats"`
	DiskStats Result[DiskStats]      `json:"diskstats" yaml:"diskstats"`
	LoadAvg   Result[LoadAverage]    `json:"loadavg" yaml:"loadavg"`
	MemInfo   Result[MemInfo]        `json:"meminfo" yaml:"meminfo"`
	NetStats  Result[NetStats]       `json:"netstats" yaml:"netstats"`
	Uptime    Result[string]         `json:"uptime" yaml:"uptime"`
	VMStats   Result[VMStats]        `json:"vmstats" yaml:"vmstats"`
	W         Result[[]LoggedInUser] `json:"w" yaml:"w"`
}

// Errors returns the failed slots keyed by collector name.
func (s Snapshot) Errors() map[string]error {
	slots := map[string]error{
		NameCPUInfo:   s.CPUInfo.Err,
		NameCPUStats:  s.CPUStats.Err,
		NameDiskStats: s.DiskStats.Err,
		NameLoadAvg:   s.LoadAvg.Err,
		NameMemInfo:   s.MemInfo.Err,
		NameNetStats:  s.NetStats.Err,
		NameUptime:    s.Uptime.Err,
		NameVMStats:   s.VMStats.Err,
		NameW:         s.W.Err,
	}

	for name, err := range slots {
		if err == nil {
			delete(slots, name)
		}
	}

	return slots
}

// All runs every collector and always returns a complete snapshot. It
// waits for all collectors before returning.
func (c *Collector) All(ctx context.Context) Snapshot {
	snap := Snapshot{
		ID:          uuid.New(),
		CollectedAt: time.Now().UTC(),
	}

	var g errgroup.Group
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}

	fill(ctx, c, &g, NameCPUInfo, &snap.CPUInfo, c.CPUInfo)
	fill(ctx, c, &g, NameCPUStats, &snap.CPUStats, c.CPUStats)
	fill(ctx, c, &g, NameDiskStats, &snap.DiskStats, c.DiskStats)
	fill(ctx, c, &g, NameLoadAvg, &snap.LoadAvg, c.LoadAvg)
	fill(ctx, c, &g, NameMemInfo, &snap.MemInfo, c.MemInfo)
	fill(ctx, c, &g, NameNetStats, &snap.NetStats, c.NetStats)
	fill(ctx, c, &g, NameUptime, &snap.Uptime, c.Uptime)
	fill(ctx, c, &g, NameVMStats, &snap.VMStats, c.VMStats)
	fill(ctx, c, &g, NameW, &snap.W, c.W)

	if c.hostInfo != nil {
		g.Go(func() error {
			hctx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			info, err := c.hostInfo(hctx)
			if err != nil {
				c.log.Warn("host info unavailable", "error", err)
				return nil
			}
			snap.Host = info
			return nil
		})
	}

	// goroutines never return errors; failures live in the slots
	_ = g.Wait()

	return snap
}

func fill[T any](ctx context.Context, c *Collector, g *errgroup.Group, name string, slot *Result[T], fn func(context.Context) (T, error)) {
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				c.log.Error("collector panicked", "name", name, "panic", r)
				*slot = Result[T]{Err: fmt.Errorf("%s: panic: %v", name, r)}
			}
		}()

		v, err := fn(ctx)
		if err != nil {
			c.log.Error("collector", "name", name, "error", err)
			*slot = Result[T]{Err: err}
			return nil
		}

		*slot = Result[T]{Value: v}
		return nil
	})
}
