// Package logbuf implements the timeline log buffer (spec.md §4.C2): a
// lazy, append-only, in-memory ordered sequence of timestamped lines,
// flushed to screen, file, or both. Line text is composed by hand — this
// is the one part of the simulator whose output is a literal contract
// (spec.md §8's scenarios), so it is never routed through a structured
// logging library. Grounded on the Writer-based
// _examples/gmofishsauce-wut4/emul/trace.go Tracer, and on
// original_source/PA04/SimUtils.c's outputLine/addNewStrNode/
// createLogFileHeader for exact line shape.
package logbuf

import (
	"fmt"
	"os"
	"strings"

	"github.com/mpetrov/ossim/internal/config"
	"github.com/mpetrov/ossim/internal/simerr"
)

// Buffer accumulates timeline lines in append order and optionally mirrors
// them to stdout as they arrive.
type Buffer struct {
	mode  config.LogTo
	lines []string
}

// New returns a Buffer configured for the given log-to mode.
func New(mode config.LogTo) *Buffer {
	return &Buffer{mode: mode}
}

// Append adds one already-formatted line to the buffer. In MONITOR and
// BOTH mode the line is written to stdout immediately; FILE mode defers
// all output to Flush.
func (b *Buffer) Append(line string) {
	b.lines = append(b.lines, line)
	if b.mode == config.LogMonitor || b.mode == config.LogBoth {
		fmt.Fprint(os.Stdout, line)
	}
}

// Timestamped appends a line in the canonical "  S.ssssss, <rest>\n" shape
// described in spec.md §6, given an already-formatted timestamp (as
// returned by simtimer.Timer.Lap/Zero).
func (b *Buffer) Timestamped(timestamp, rest string) {
	b.Append(fmt.Sprintf("  %s, %s\n", timestamp, rest))
}

// WriteHeader writes the log file header block (file name, scheduling
// policy, quantum, memory, cycle rates) that original_source's
// createLogFileHeader writes ahead of the timeline, for FILE/BOTH modes
// only. Supplemented feature — see SPEC_FULL.md.
func (b *Buffer) WriteHeader(cfg config.Config) {
	if b.mode == config.LogMonitor {
		return
	}
	var h strings.Builder
	h.WriteString("==============================================\n")
	h.WriteString("Simulator Log File Header\n\n")
	fmt.Fprintf(&h, "File Name                       : %s\n", cfg.MetaDataPath)
	fmt.Fprintf(&h, "CPU Scheduling                  : %s\n", cfg.Schedule)
	fmt.Fprintf(&h, "Quantum Cycles                  : %d\n", cfg.QuantumCycles)
	fmt.Fprintf(&h, "Memory Available (MB)           : %d\n", cfg.MemAvailableMB)
	fmt.Fprintf(&h, "Processor Cycle Rate (ms/cycle) : %d\n", cfg.ProcCycleMS)
	fmt.Fprintf(&h, "I/O Cycle Rate (ms/cycle)       : %d\n\n", cfg.IOCycleMS)
	b.lines = append(b.lines, h.String())
}

// Lines returns the buffered lines in append order, for tests.
func (b *Buffer) Lines() []string {
	return b.lines
}

// Flush writes the full buffer to path, in FILE and BOTH modes. In BOTH
// mode a write failure degrades to MONITOR (the lines added by Append
// already reached stdout; the WriteHeader block never does); in FILE mode
// a write failure is
// fatal, per spec.md §4.C2.
func (b *Buffer) Flush(path string) error {
	if b.mode == config.LogMonitor {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return b.flushFailure(err)
	}
	defer f.Close()
	for _, line := range b.lines {
		if _, err := fmt.Fprint(f, line); err != nil {
			return b.flushFailure(err)
		}
	}
	return nil
}

func (b *Buffer) flushFailure(cause error) error {
	wrapped := fmt.Errorf("%w: %v", simerr.ErrLogWrite, cause)
	if b.mode == config.LogBoth {
		// Already mirrored to stdout via Append; degrade rather than abort.
		return nil
	}
	return wrapped
}
