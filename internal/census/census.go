// Package census counts running instances of the watched process.
package census

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// CountFailed is returned when the process table itself cannot be read.
// It is distinct from zero: zero means "no instances", CountFailed means
// "unknown".
const CountFailed = -1

// Status is the health verdict derived from one census sample.
type Status struct {
	ProcessCount  int
	RequiredCount int
	Healthy       bool
}

// Evaluate derives health from a sample. Health is exact equality: an
// excess of instances is treated the same as a deficit.
func Evaluate(processCount, requiredCount int) Status {
	return Status{
		ProcessCount:  processCount,
		RequiredCount: requiredCount,
		Healthy:       processCount == requiredCount,
	}
}

// Sampler queries the OS process table.
type Sampler struct {
	logger *slog.Logger
}

// NewSampler creates a process census sampler.
func NewSampler(logger *slog.Logger) *Sampler {
	return &Sampler{logger: logger}
}

// Count returns the number of running processes whose executable name
// equals name, compared case-insensitively the way the Windows task list
// matches image names. An empty name counts as zero. Returns CountFailed
// when enumeration fails; the failure is logged, never propagated.
func (s *Sampler) Count(ctx context.Context, name string) int {
	if name == "" {
		return 0
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		s.logger.Error("process census failed", "error", err)
		return CountFailed
	}

	count := 0
	for _, p := range procs {
		procName, err := p.NameWithContext(ctx)
		if err != nil {
			// Processes exit between enumeration and inspection.
			continue
		}
		if strings.EqualFold(procName, name) {
			count++
		}
	}
	return count
}
