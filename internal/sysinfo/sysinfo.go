// Package sysinfo captures a coarse host-resource snapshot. The monitor
// records one when a remediation session starts so operators reviewing
// the alert log can tell a wedged dialog from a starved host.
package sysinfo

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// Snapshot holds host-wide resource usage at a point in time.
type Snapshot struct {
	CPUPercent  float64 `json:"cpu_percent"`
	MemTotalMB  float64 `json:"mem_total_mb"`
	MemUsedMB   float64 `json:"mem_used_mb"`
	MemPercent  float64 `json:"mem_percent"`
	DiskPercent float64 `json:"disk_percent"`
	LoadAvg1    float64 `json:"load_avg_1"`
	LoadAvg5    float64 `json:"load_avg_5"`
	LoadAvg15   float64 `json:"load_avg_15"`
}

// String renders the snapshot for free-text alert records.
func (s Snapshot) String() string {
	return fmt.Sprintf("cpu=%.1f%% mem=%.1f%% disk=%.1f%% load=%.2f/%.2f/%.2f",
		s.CPUPercent, s.MemPercent, s.DiskPercent, s.LoadAvg1, s.LoadAvg5, s.LoadAvg15)
}

// Collector collects host statistics. CPU usage is computed from the
// delta between consecutive Collect calls, so the first call reports 0.
type Collector struct {
	mu           sync.Mutex
	lastCPUTotal float64
	lastCPUIdle  float64
}

// NewCollector creates a new snapshot collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Collect gathers current host statistics. Each probe is best-effort;
// a failed probe leaves its fields zero.
func (c *Collector) Collect() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	var snap Snapshot
	c.collectCPU(&snap)
	c.collectMemory(&snap)
	c.collectDisk(&snap)
	c.collectLoadAvg(&snap)
	return snap
}

func (c *Collector) collectCPU(snap *Snapshot) {
	times, err := cpu.Times(false)
	if err != nil || len(times) == 0 {
		return
	}

	t := times[0]
	total := t.User + t.Nice + t.System + t.Idle + t.Iowait + t.Irq + t.Softirq + t.Steal
	idleTime := t.Idle + t.Iowait

	if c.lastCPUTotal > 0 {
		totalDelta := total - c.lastCPUTotal
		idleDelta := idleTime - c.lastCPUIdle
		if totalDelta > 0 {
			snap.CPUPercent = (1 - idleDelta/totalDelta) * 100
		}
	}

	c.lastCPUTotal = total
	c.lastCPUIdle = idleTime
}

func (c *Collector) collectMemory(snap *Snapshot) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return
	}
	snap.MemTotalMB = float64(vm.Total) / 1024 / 1024
	snap.MemUsedMB = float64(vm.Used) / 1024 / 1024
	snap.MemPercent = vm.UsedPercent
}

func (c *Collector) collectDisk(snap *Snapshot) {
	usage, err := disk.Usage(rootDiskPath())
	if err != nil {
		return
	}
	snap.DiskPercent = usage.UsedPercent
}

func (c *Collector) collectLoadAvg(snap *Snapshot) {
	avg, err := load.Avg()
	if err != nil {
		return
	}
	snap.LoadAvg1 = avg.Load1
	snap.LoadAvg5 = avg.Load5
	snap.LoadAvg15 = avg.Load15
}

func rootDiskPath() string {
	if runtime.GOOS == "windows" {
		return `C:\`
	}
	return "/"
}
