// Package engine implements the top-level dispatch loop: the only
// goroutine that touches PCB state, the memory table, and the timeline
// log. It wires together every other internal package and is grounded on
// original_source/PA04/SimUtils.c's runSim/runProcess/interruptManager,
// restructured into emul/cpu.go's goroutine-plus-shared-state shape (one
// driving loop, background workers communicating through a single guarded
// queue).
package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mpetrov/ossim/internal/config"
	"github.com/mpetrov/ossim/internal/interruptq"
	"github.com/mpetrov/ossim/internal/ioworker"
	"github.com/mpetrov/ossim/internal/logbuf"
	"github.com/mpetrov/ossim/internal/memtab"
	"github.com/mpetrov/ossim/internal/metadata"
	"github.com/mpetrov/ossim/internal/pcb"
	"github.com/mpetrov/ossim/internal/scheduler"
	"github.com/mpetrov/ossim/internal/simtimer"
)

// idlePoll is how often the engine rechecks the interrupt queue while every
// process is blocked. Not part of the timed model; purely how often a
// waiting goroutine yields the processor.
const idlePoll = time.Millisecond

// Engine owns every piece of simulator state and runs the dispatch loop.
type Engine struct {
	cfg   config.Config
	timer *simtimer.Timer
	log   *logbuf.Buffer
	mem   *memtab.Table
	intq  *interruptq.Queue
	table *pcb.Table
	sched *scheduler.Scheduler
	diag  zerolog.Logger

	blockedCount int
}

// New builds an Engine from a parsed configuration and metadata program.
// The program is sliced into per-process PCBs immediately.
func New(cfg config.Config, ops []metadata.OpCode, diag zerolog.Logger) *Engine {
	e := &Engine{
		cfg:   cfg,
		timer: simtimer.New(),
		log:   logbuf.New(cfg.LogTo),
		mem:   memtab.NewTable(cfg.MemAvailableMB),
		intq:  interruptq.New(),
		table: pcb.NewTable(),
		sched: scheduler.New(cfg.Schedule),
		diag:  diag,
	}
	e.buildProcesses(ops)
	return e
}

// Log returns the accumulated timeline buffer, for callers that need to
// flush it themselves or inspect it in tests.
func (e *Engine) Log() *logbuf.Buffer {
	return e.log
}

// Run executes the simulation from System Start to System Stop and returns
// once every process has reached EXIT.
func (e *Engine) Run() error {
	e.diag.Info().Str("policy", string(e.cfg.Schedule)).Int("processes", len(e.table.All())).Msg("simulation starting")

	e.log.WriteHeader(e.cfg)
	e.log.Append("==============================================\n")
	e.log.Append("Begin Simulation\n\n")

	e.log.Timestamped(e.timer.Zero(), "OS: System Start")
	e.log.Timestamped(e.timer.Lap(), "OS: Create Process Control Blocks")
	// PCBs were already built in New; these two lines narrate the same
	// moment original_source's runSim does, split across two calls.
	e.log.Timestamped(e.timer.Lap(), "OS: All Processes initialized in NEW state")
	e.log.Timestamped(e.timer.Lap(), "OS: All Processes now set in READY state")

	for !e.table.AllDone() {
		next := e.sched.SelectNext(e.table)
		if next == nil {
			for !e.intq.NonEmpty() {
				time.Sleep(idlePoll)
			}
			e.serviceInterrupts(nil)
			continue
		}
		next.State = pcb.StateReady
		e.dispatch(next)
	}

	e.log.Timestamped(e.timer.Lap(), "OS: System Stop")
	e.log.Append("End Simulation - Complete\n")
	e.log.Append("==============================================\n")

	e.diag.Info().Msg("simulation complete")

	if e.cfg.LogTo != config.LogMonitor {
		if err := e.log.Flush(e.cfg.LogFilePath); err != nil {
			e.diag.Error().Err(err).Str("path", e.cfg.LogFilePath).Msg("log flush failed")
			return err
		}
	}
	return nil
}

// dispatch runs one selected PCB until it blocks on I/O, is preempted back
// to READY, or reaches EXIT.
func (e *Engine) dispatch(p *pcb.PCB) {
	e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("OS: Process %d selected with %d ms remaining.", p.ID, p.TimeRemaining))
	e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("OS: Process %d set in RUNNING state.", p.ID))
	p.State = pcb.StateRunning

	quantum := e.cfg.QuantumCycles

	for !p.Done() {
		op := p.CurrentOp()
		switch op.Component {
		case 'A':
			if op.Name == "start" {
				p.ProgramCounter++
				continue
			}
			e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("OS: Process %d ended and set in EXIT state.", p.ID))
			p.State = pcb.StateExit
			return

		case 'M':
			if e.runMMU(p, op) {
				return
			}
			p.ProgramCounter++

		case 'P':
			if !e.runCPU(p, &quantum) {
				return
			}
			p.ProgramCounter++

		case 'I', 'O':
			blocked := e.runIO(p, op)
			p.ProgramCounter++
			if blocked {
				return
			}

		default:
			p.ProgramCounter++
		}
	}
}

// runMMU executes one M op against the memory table, ending the process on
// any fault. Returns true if the process was just faulted into EXIT.
func (e *Engine) runMMU(p *pcb.PCB, op metadata.OpCode) bool {
	id, base, offset := memtab.DecodeOpValue(op.Value)

	switch op.Name {
	case "allocate":
		e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("Process: %d, MMU attempt to allocate %d/%d/%d.", p.ID, id, base, offset))
		if res := e.mem.Allocate(p.ID, id, base, offset); res != memtab.AllocateOK {
			e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("Process: %d, MMU failed to allocate.", p.ID))
			return e.segFault(p)
		}
		e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("Process: %d, MMU successful allocate.", p.ID))

	case "access":
		e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("Process: %d, MMU attempt to access %d/%d/%d.", p.ID, id, base, offset))
		if !e.mem.Access(p.ID, id, base, offset) {
			e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("Process: %d, MMU failed to access.", p.ID))
			return e.segFault(p)
		}
		e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("Process: %d, MMU successful access.", p.ID))
	}
	return false
}

func (e *Engine) segFault(p *pcb.PCB) bool {
	e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("Process: %d, experiences segmentation fault.", p.ID))
	e.diag.Warn().Int("process", p.ID).Msg("segmentation fault")
	p.State = pcb.StateExit
	return true
}

// runCPU executes one P op. Under a non-preemptive policy it always runs to
// completion and returns true. Under a preemptive policy it steps one
// ProcCycleMS at a time, bounded by the interrupt queue and, under RR-P
// only, by the quantum; it
// always returns false and leaves the PCB in READY state, whether it
// stopped because the op finished, the quantum ran out, or an interrupt
// arrived — only RR-P additionally rotates the PCB to the tail.
func (e *Engine) runCPU(p *pcb.PCB, quantum *int) bool {
	op := &p.Ops[p.ProgramCounter]

	e.log.Append("\n")
	e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("Process: %d, run operation start", p.ID))

	if !e.sched.Policy().Preemptive() {
		ms := op.Value * e.cfg.ProcCycleMS
		e.timer.SleepMS(ms)
		p.TimeRemaining -= ms
		op.Value = 0
		e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("Process: %d, run operation end", p.ID))
		return true
	}

	// The stepped loop stops when the op's value reaches zero or an
	// interrupt is pending; under RR-P it also stops when the quantum is
	// used up. FCFS-P and SRTF-P ignore the quantum setting.
	for (!e.sched.Quantum() || *quantum > 0) && op.Value > 0 && !e.intq.NonEmpty() {
		e.timer.SleepMS(e.cfg.ProcCycleMS)
		op.Value--
		*quantum--
		p.TimeRemaining -= e.cfg.ProcCycleMS
	}

	if op.Value == 0 {
		e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("Process: %d, run operation end", p.ID))
		e.log.Append("\n")
		e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("Process: %d, set in READY state", p.ID))
		p.State = pcb.StateReady
		p.ProgramCounter++
		if e.sched.Quantum() {
			e.table.RotateToTail(p.ID)
		}
		return false
	}

	p.State = pcb.StateReady
	if e.intq.NonEmpty() {
		e.serviceInterrupts(p)
	}
	if e.sched.Quantum() {
		e.table.RotateToTail(p.ID)
	}
	return false
}

// runIO executes one I or O op. Non-preemptive policies join the worker
// synchronously and log completion themselves; preemptive policies post the
// process to BLOCKED and let the interrupt path log completion later.
// Returns true if the process is now BLOCKED (dispatch must return).
func (e *Engine) runIO(p *pcb.PCB, op metadata.OpCode) bool {
	label := op.Name
	switch op.Component {
	case 'I':
		label += " input"
	case 'O':
		label += " output"
	}
	cycleMS := op.Value * e.cfg.IOCycleMS

	e.log.Append("\n")
	e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("Process: %d, %s start", p.ID, label))

	if !e.sched.Policy().Preemptive() {
		w := ioworker.New(e.timer, p.ID, cycleMS, "")
		w.RunSync()
		p.TimeRemaining -= cycleMS
		e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("Process: %d, %s end", p.ID, label))
		return false
	}

	w := ioworker.New(e.timer, p.ID, cycleMS, ioworker.CompletionLine(p.ID, label))
	w.Start(e.intq)
	p.TimeRemaining -= cycleMS

	e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("OS: Process %d set in BLOCKED state.", p.ID))
	p.State = pcb.StateBlocked
	e.blockedCount++
	return true
}

// serviceInterrupts drains every event currently queued, in FIFO order.
// interrupted is the PCB that was RUNNING at the moment of the check, or
// nil when the engine was idling with nothing dispatched. Grounded on
// original_source/PA04/SimUtils.c's interruptManager.
func (e *Engine) serviceInterrupts(interrupted *pcb.PCB) {
	for _, ev := range e.intq.DrainAll() {
		if interrupted != nil {
			e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("OS: Process %d interrupted by process %d.", interrupted.ID, ev.ProcessID))
			e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("OS: Process %d put in READY state.", interrupted.ID))
			interrupted.State = pcb.StateReady
		} else {
			e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("OS: Interrupt called by process %d.", ev.ProcessID))
		}

		e.log.Timestamped(e.timer.Lap(), ev.OutputLine)
		e.log.Timestamped(e.timer.Lap(), fmt.Sprintf("OS: Process %d put in READY state.", ev.ProcessID))

		if unblocked := e.table.FindByID(ev.ProcessID); unblocked != nil {
			unblocked.State = pcb.StateReady
		}
		e.blockedCount--
		if e.sched.Quantum() {
			e.table.RotateToTail(ev.ProcessID)
		}
	}
}
