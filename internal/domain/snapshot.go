package domain

import (
	"context"
	"math"
	"strconv"
)

const bytesPerGiB = 1 << 30

// ResourceUsage holds raw host figures as read from the OS.
type ResourceUsage struct {
	CPUPercent  float64
	MemUsed     uint64
	MemTotal    uint64
	MemPercent  float64
	DiskUsed    uint64
	DiskTotal   uint64
	DiskPercent float64
}

// ResourceSampler reads current host resource usage.
type ResourceSampler interface {
	Sample(ctx context.Context) (ResourceUsage, error)
}

// SystemSnapshot is the "system" object of the status response.
// Sizes are GiB and percentages are rounded to one decimal.
type SystemSnapshot struct {
	CPU       float64 `json:"cpu"`
	RAMPct    float64 `json:"ram_pct"`
	RAMUsed   float64 `json:"ram_used"`
	RAMTotal  float64 `json:"ram_total"`
	DiskPct   float64 `json:"disk_pct"`
	DiskUsed  float64 `json:"disk_used"`
	DiskTotal float64 `json:"disk_total"`
}

func NewSystemSnapshot(u ResourceUsage) SystemSnapshot {
	return SystemSnapshot{
		CPU:       RoundOneDecimal(u.CPUPercent),
		RAMPct:    RoundOneDecimal(u.MemPercent),
		RAMUsed:   BytesToGiB(u.MemUsed),
		RAMTotal:  BytesToGiB(u.MemTotal),
		DiskPct:   RoundOneDecimal(u.DiskPercent),
		DiskUsed:  BytesToGiB(u.DiskUsed),
		DiskTotal: BytesToGiB(u.DiskTotal),
	}
}

// BytesToGiB converts n bytes to GiB rounded to one decimal.
func BytesToGiB(n uint64) float64 {
	return RoundOneDecimal(float64(n) / bytesPerGiB)
}

// RoundOneDecimal rounds v to one decimal place using the exact binary value
// of v, with ties going to the even digit (1.25 -> 1.2, 1.75 -> 1.8).
func RoundOneDecimal(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return 0
	}
	return r
}
