package status

import (
	"context"

	"github.com/shirou/gopsutil/v3/host"
)

// HostInfo identifies the host a snapshot was taken on.
type HostInfo struct {
	Hostname        string `json:"hostname" yaml:"hostname"`
	OS              string `json:"os" yaml:"os"`
	Platform        string `json:"platform" yaml:"platform"`
	PlatformVersion string `json:"platform_version" yaml:"platform_version"`
	KernelVersion   string `json:"kernel_version" yaml:"kernel_version"`
	KernelArch      string `json:"kernel_arch" yaml:"kernel_arch"`
	BootTime        uint64 `json:"boot_time" yaml:"boot_time"`
}

type HostInfoFunc func(ctx context.Context) (*HostInfo, error)

func gopsutilHostInfo(ctx context.Context) (*HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}

	return &HostInfo{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		KernelArch:      info.KernelArch,
		BootTime:        info.BootTime,
	}, nil
}
