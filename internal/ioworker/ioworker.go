// Package ioworker implements the per-I/O-operation background worker
// (spec.md §4.C5): it sleeps for the op's configured duration and then,
// for preemptive policies, posts an interrupt. Grounded on the
// goroutine-based UART transmit loop in
// _examples/gmofishsauce-wut4/emul/cpu.go (NewCPU's txChan/rxChan pair,
// driven by background goroutines started from main.go's
// cpu.startUART()).
package ioworker

import (
	"fmt"
	"sync"

	"github.com/mpetrov/ossim/internal/interruptq"
	"github.com/mpetrov/ossim/internal/simtimer"
)

// Worker runs one I/O operation's sleep on a background goroutine. It is
// always spawned the same way regardless of policy (spec.md §4.C5: "the
// worker is still spawned for parity"); only what happens after the sleep
// differs between Start (async, posts an interrupt) and RunSync (caller
// joins immediately and performs its own bookkeeping, so the worker never
// touches the interrupt queue).
type Worker struct {
	processID  int
	cycleTime  int
	outputLine string
	timer      *simtimer.Timer

	wg sync.WaitGroup
}

// New constructs a worker for one I/O op. outputLine is the completion
// line posted to the interrupt queue by Start, once its sleep finishes.
func New(timer *simtimer.Timer, processID, cycleTime int, outputLine string) *Worker {
	return &Worker{
		processID:  processID,
		cycleTime:  cycleTime,
		outputLine: outputLine,
		timer:      timer,
	}
}

// Start launches the worker's background goroutine, which sleeps and then
// pushes a completion event onto queue. Used by preemptive policies.
func (w *Worker) Start(queue *interruptq.Queue) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.timer.SleepMS(w.cycleTime)
		queue.Push(interruptq.Event{
			ProcessID:  w.processID,
			CycleTime:  w.cycleTime,
			OutputLine: w.outputLine,
		})
	}()
}

// RunSync spawns the same background goroutine as Start, but waits for it
// immediately and never touches an interrupt queue. Used by non-preemptive
// policies, whose caller performs its own completion logging and
// time-remaining accounting once RunSync returns, so no interrupt is ever
// observed (spec.md §4.C5).
func (w *Worker) RunSync() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.timer.SleepMS(w.cycleTime)
	}()
	w.wg.Wait()
}

// CompletionLine formats the "Process: N, <opname> <input|output> end"
// line a worker will post, per spec.md §4.C5 and
// original_source/PA04/SimUtils.c's opString construction.
func CompletionLine(processID int, opLabel string) string {
	return fmt.Sprintf("Process: %d, %s end", processID, opLabel)
}
