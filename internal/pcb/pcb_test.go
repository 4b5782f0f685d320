package pcb

import (
	"testing"

	"github.com/mpetrov/ossim/internal/metadata"
)

func TestFindNextReadyLinear(t *testing.T) {
	table := NewTable()
	table.Append(&PCB{ID: 0, State: StateExit})
	table.Append(&PCB{ID: 1, State: StateBlocked})
	table.Append(&PCB{ID: 2, State: StateReady})
	table.Append(&PCB{ID: 3, State: StateNew})

	got := table.FindNextReadyLinear()
	if got == nil || got.ID != 2 {
		t.Fatalf("FindNextReadyLinear() = %+v, want PCB 2", got)
	}
}

func TestFindMinByBreaksTiesByOrder(t *testing.T) {
	table := NewTable()
	table.Append(&PCB{ID: 0, State: StateReady, TotalTime: 50})
	table.Append(&PCB{ID: 1, State: StateReady, TotalTime: 10})
	table.Append(&PCB{ID: 2, State: StateReady, TotalTime: 10})

	got := table.FindMinBy(func(p *PCB) int { return p.TotalTime })
	if got == nil || got.ID != 1 {
		t.Fatalf("FindMinBy() = %+v, want PCB 1 (first with min key)", got)
	}
}

func TestFindMinByIgnoresNonReadyNew(t *testing.T) {
	table := NewTable()
	table.Append(&PCB{ID: 0, State: StateBlocked, TimeRemaining: 1})
	table.Append(&PCB{ID: 1, State: StateExit, TimeRemaining: 2})

	if got := table.FindMinBy(func(p *PCB) int { return p.TimeRemaining }); got != nil {
		t.Fatalf("FindMinBy() = %+v, want nil", got)
	}
}

func TestRotateToTail(t *testing.T) {
	table := NewTable()
	table.Append(&PCB{ID: 0})
	table.Append(&PCB{ID: 1})
	table.Append(&PCB{ID: 2})

	table.RotateToTail(0)

	order := table.All()
	wantIDs := []int{1, 2, 0}
	for i, p := range order {
		if p.ID != wantIDs[i] {
			t.Fatalf("order[%d].ID = %d, want %d", i, p.ID, wantIDs[i])
		}
	}
}

func TestAllDone(t *testing.T) {
	table := NewTable()
	table.Append(&PCB{ID: 0, State: StateExit})
	table.Append(&PCB{ID: 1, State: StateExit})
	if !table.AllDone() {
		t.Fatal("AllDone() = false, want true")
	}

	table.Append(&PCB{ID: 2, State: StateReady})
	if table.AllDone() {
		t.Fatal("AllDone() = true, want false")
	}
}

func TestCurrentOpAndDone(t *testing.T) {
	p := &PCB{Ops: []metadata.OpCode{
		{Component: 'A', Name: "start", Value: 0},
		{Component: 'P', Name: "run", Value: 3},
		{Component: 'A', Name: "end", Value: 0},
	}}
	if p.Done() {
		t.Fatal("Done() = true on fresh PCB, want false")
	}
	if got := p.CurrentOp(); got.Component != 'A' || got.Name != "start" {
		t.Errorf("CurrentOp() = %+v, want A(start)0", got)
	}
	p.ProgramCounter = len(p.Ops)
	if !p.Done() {
		t.Fatal("Done() = false past end of Ops, want true")
	}
}
