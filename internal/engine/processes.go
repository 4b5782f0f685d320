package engine

import (
	"github.com/mpetrov/ossim/internal/config"
	"github.com/mpetrov/ossim/internal/metadata"
	"github.com/mpetrov/ossim/internal/pcb"
)

// buildProcesses slices the flat op-code program into per-process PCBs,
// grounded on original_source/PA04/SimUtils.c's createProcesses: walk the
// program once, starting a new PCB at each A(start) and closing it at the
// matching A(end); M ops contribute no time, P ops contribute
// value*ProcCycleMS, I/O ops contribute value*IOCycleMS.
func (e *Engine) buildProcesses(ops []metadata.OpCode) {
	fcfsPriority := e.cfg.Schedule == config.FCFSNonPreemptive || e.cfg.Schedule == config.FCFSPreemptive

	counter := 0
	var current *pcb.PCB
	for _, op := range ops {
		switch {
		case op.Component == 'S':
			continue

		case op.Component == 'A' && op.Name == "start":
			priority := 0
			if fcfsPriority {
				priority = counter
			}
			current = &pcb.PCB{ID: counter, Priority: priority, State: pcb.StateNew}
			counter++
			current.Ops = append(current.Ops, op)

		case op.Component == 'A' && op.Name == "end":
			current.Ops = append(current.Ops, op)
			e.table.Append(current)
			current = nil

		case op.Component == 'M':
			current.Ops = append(current.Ops, op)

		default: // 'P', 'I', 'O'
			current.Ops = append(current.Ops, op)
			ms := cycleTime(op, e.cfg)
			current.TotalTime += ms
			current.TimeRemaining += ms
		}
	}
}

func cycleTime(op metadata.OpCode, cfg config.Config) int {
	if op.Component == 'P' {
		return op.Value * cfg.ProcCycleMS
	}
	return op.Value * cfg.IOCycleMS
}
