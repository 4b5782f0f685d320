// Package pcb implements the process table (spec.md §4.C6): an
// insertion-ordered collection of process control blocks supporting
// linear and minimum-key selection plus round-robin rotation. It replaces
// the original's self-referential linked list with a plain ordered slice,
// per spec.md §9.
package pcb

import "github.com/mpetrov/ossim/internal/metadata"

// State is a PCB's position in the process lifecycle.
type State int

const (
	StateNew State = iota
	StateReady
	StateRunning
	StateBlocked
	StateExit
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateReady:
		return "READY"
	case StateRunning:
		return "RUNNING"
	case StateBlocked:
		return "BLOCKED"
	case StateExit:
		return "EXIT"
	default:
		return "UNKNOWN"
	}
}

// PCB is one simulated process. Ops holds this process's private op-code
// slice, starting at its A(start) and ending at its A(end) inclusive;
// ProgramCounter indexes the next op to execute.
type PCB struct {
	ID             int
	Priority       int
	State          State
	ProgramCounter int
	TimeRemaining  int // milliseconds
	TotalTime      int // milliseconds, immutable after creation
	Ops            []metadata.OpCode
}

// CurrentOp returns the op the program counter currently references.
func (p *PCB) CurrentOp() metadata.OpCode {
	return p.Ops[p.ProgramCounter]
}

// Done reports whether the program counter has run past the process's ops.
func (p *PCB) Done() bool {
	return p.ProgramCounter >= len(p.Ops)
}

// Table is an ordered collection of PCBs, indexed by ID for fast lookup.
type Table struct {
	order []*PCB
	byID  map[int]*PCB
}

// NewTable returns an empty process table.
func NewTable() *Table {
	return &Table{byID: make(map[int]*PCB)}
}

// Append adds a new PCB to the tail of the table.
func (t *Table) Append(p *PCB) {
	t.order = append(t.order, p)
	t.byID[p.ID] = p
}

// All returns the PCBs in current table order. Callers must not retain the
// slice across a RotateToTail call.
func (t *Table) All() []*PCB {
	return t.order
}

// FindByID returns the PCB with the given ID, or nil if absent.
func (t *Table) FindByID(id int) *PCB {
	return t.byID[id]
}

// FindNextReadyLinear returns the first PCB in table order whose state is
// READY or NEW, or nil if none qualifies.
func (t *Table) FindNextReadyLinear() *PCB {
	for _, p := range t.order {
		if p.State == StateReady || p.State == StateNew {
			return p
		}
	}
	return nil
}

// KeyFunc extracts the comparison key used by FindMinBy.
type KeyFunc func(p *PCB) int

// FindMinBy returns the READY-or-NEW PCB with the smallest key, breaking
// ties by keeping the first one encountered in table order (so equal keys
// behave like FCFS). Returns nil if no PCB is READY or NEW.
func (t *Table) FindMinBy(key KeyFunc) *PCB {
	var best *PCB
	for _, p := range t.order {
		if p.State != StateReady && p.State != StateNew {
			continue
		}
		if best == nil || key(p) < key(best) {
			best = p
		}
	}
	return best
}

// RotateToTail removes the PCB with the given ID and re-appends it at the
// tail, used by round-robin after a quantum expiry (spec.md §4.C6).
func (t *Table) RotateToTail(id int) {
	for i, p := range t.order {
		if p.ID != id {
			continue
		}
		t.order = append(t.order[:i], t.order[i+1:]...)
		t.order = append(t.order, p)
		return
	}
}

// AllDone reports whether every PCB in the table has reached EXIT.
func (t *Table) AllDone() bool {
	for _, p := range t.order {
		if p.State != StateExit {
			return false
		}
	}
	return true
}
