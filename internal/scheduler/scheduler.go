// Package scheduler selects the next process to run under one of the
// five CPU scheduling policies (spec.md §4.C7). Selection itself is
// policy-dependent but shallow; the interesting preemption and quantum
// behavior lives in internal/engine, which is the only caller that knows
// about running time. Grounded on
// original_source/PA04/SimUtils.c's selectNextProcess/findMinimum/
// findNextReady.
package scheduler

import (
	"github.com/mpetrov/ossim/internal/config"
	"github.com/mpetrov/ossim/internal/pcb"
)

// Scheduler picks the next READY-or-NEW PCB according to a fixed policy.
type Scheduler struct {
	policy config.Policy
}

// New returns a Scheduler for the given policy.
func New(policy config.Policy) *Scheduler {
	return &Scheduler{policy: policy}
}

// Policy returns the scheduler's configured policy.
func (s *Scheduler) Policy() config.Policy {
	return s.policy
}

// SelectNext returns the PCB the policy would dispatch next, or nil if no
// process is currently READY or NEW.
func (s *Scheduler) SelectNext(table *pcb.Table) *pcb.PCB {
	switch s.policy {
	case config.SJFNonPreemptive:
		return table.FindMinBy(func(p *pcb.PCB) int { return p.TotalTime })
	case config.SRTFPreemptive:
		return table.FindMinBy(func(p *pcb.PCB) int { return p.TimeRemaining })
	default: // FCFS-N, FCFS-P, RR-P all select the next ready process linearly.
		return table.FindNextReadyLinear()
	}
}

// Quantum reports whether this policy uses quantum-based preemption
// (only RR-P does).
func (s *Scheduler) Quantum() bool {
	return s.policy == config.RoundRobinPreempt
}
