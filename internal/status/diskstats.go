package status

import "context"

const (
	sourceDiskStats = "diskstats"

	diskStatFields = 14
)

// DiskStat covers the first fourteen columns of /proc/diskstats. Newer
// kernels append discard and flush counters, which are ignored.
type DiskStat struct {
	Major               string `json:"major" yaml:"major"`
	Minor               string `json:"minor" yaml:"minor"`
	Device              string `json:"device" yaml:"device"`
	ReadsIssued         string `json:"reads_issued" yaml:"reads_issued"`
	ReadsMerged         string `json:"reads_merged" yaml:"reads_merged"`
	SectorsRead         string `json:"sectors_read" yaml:"sectors_read"`
	MsSpentReading      string `json:"ms_spent_reading" yaml:"ms_spent_reading"`
	WritesCompleted     string `json:"writes_completed" yaml:"writes_completed"`
	WritesMerged        string `json:"writes_merged" yaml:"writes_merged"`
	SectorsWritten      string `json:"sectors_written" yaml:"sectors_written"`
	MsSpentWriting      string `json:"ms_spent_writing" yaml:"ms_spent_writing"`
	IOInProgress        string `json:"io_in_progress" yaml:"io_in_progress"`
	MsSpentInIO         string `json:"ms_spent_in_io" yaml:"ms_spent_in_io"`
	WeightedMsSpentInIO string `json:"weighted_ms_spent_in_io" yaml:"weighted_ms_spent_in_io"`
}

// DiskStats is keyed by device name.
type DiskStats map[string]DiskStat

func (c *Collector) DiskStats(ctx context.Context) (DiskStats, error) {
	text, err := c.readProc(ctx, sourceDiskStats)
	if err != nil {
		return nil, err
	}

	stats, skipped := parseDiskStats(text)
	c.report(sourceDiskStats, skipped)

	return stats, nil
}

func parseDiskStats(text string) (DiskStats, []*ParseError) {
	stats := make(DiskStats)
	var skipped []*ParseError

	for _, l := range scanLines(text) {
		if pe := require(sourceDiskStats, l, diskStatFields); pe != nil {
			skipped = append(skipped, pe)
			continue
		}

		d := newDiskStat(l.fields)
		stats[d.Device] = d
	}

	return stats, skipped
}

func newDiskStat(f []string) DiskStat {
	return DiskStat{
		Major:               f[0],
		Minor:               f[1],
		Device:              f[2],
		ReadsIssued:         f[3],
		ReadsMerged:         f[4],
		SectorsRead:         f[5],
		MsSpentReading:      f[6],
		WritesCompleted:     f[7],
		WritesMerged:        f[8],
		SectorsWritten:      f[9],
		MsSpentWriting:      f[10],
		IOInProgress:        f[11],
		MsSpentInIO:         f[12],
		WeightedMsSpentInIO: f[13],
	}
}
