// Package sysmetrics reads host CPU, memory and disk usage through gopsutil.
package sysmetrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/MrSnakeDoc/hostdash/internal/domain"
)

const (
	DefaultCPUInterval = 500 * time.Millisecond
	DefaultDiskPath    = "/"
)

// Sampler implements domain.ResourceSampler.
type Sampler struct {
	cpuInterval time.Duration
	diskPath    string

	// Swapped in tests.
	cpuPercent func(ctx context.Context, interval time.Duration, perCPU bool) ([]float64, error)
	virtualMem func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	diskUsage  func(ctx context.Context, path string) (*disk.UsageStat, error)
}

var _ domain.ResourceSampler = (*Sampler)(nil)

// New returns a sampler measuring CPU over cpuInterval and disk usage of diskPath.
// Zero values fall back to DefaultCPUInterval and DefaultDiskPath.
func New(cpuInterval time.Duration, diskPath string) *Sampler {
	if cpuInterval <= 0 {
		cpuInterval = DefaultCPUInterval
	}
	if diskPath == "" {
		diskPath = DefaultDiskPath
	}
	return &Sampler{
		cpuInterval: cpuInterval,
		diskPath:    diskPath,
		cpuPercent:  cpu.PercentWithContext,
		virtualMem:  mem.VirtualMemoryWithContext,
		diskUsage:   disk.UsageWithContext,
	}
}

// Sample blocks for the CPU interval. Figures that cannot be read are left at
// zero and reported in the returned error; the rest of the usage is still valid.
func (s *Sampler) Sample(ctx context.Context) (domain.ResourceUsage, error) {
	var (
		u    domain.ResourceUsage
		errs []error
	)

	if pct, err := s.cpuPercent(ctx, s.cpuInterval, false); err != nil {
		errs = append(errs, fmt.Errorf("cpu: %w", err))
	} else if len(pct) > 0 {
		u.CPUPercent = pct[0]
	}

	if vm, err := s.virtualMem(ctx); err != nil {
		errs = append(errs, fmt.Errorf("memory: %w", err))
	} else {
		u.MemUsed = vm.Used
		u.MemTotal = vm.Total
		u.MemPercent = vm.UsedPercent
	}

	if du, err := s.diskUsage(ctx, s.diskPath); err != nil {
		errs = append(errs, fmt.Errorf("disk %s: %w", s.diskPath, err))
	} else {
		u.DiskUsed = du.Used
		u.DiskTotal = du.Total
		u.DiskPercent = du.UsedPercent
	}

	return u, errors.Join(errs...)
}
