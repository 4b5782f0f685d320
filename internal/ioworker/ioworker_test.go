package ioworker

import (
	"testing"
	"time"

	"github.com/mpetrov/ossim/internal/interruptq"
	"github.com/mpetrov/ossim/internal/simtimer"
)

func TestStartPostsCompletionEvent(t *testing.T) {
	timer := simtimer.New()
	q := interruptq.New()

	w := New(timer, 3, 5, CompletionLine(3, "hdd input"))
	w.Start(q)

	deadline := time.Now().Add(time.Second)
	for !q.NonEmpty() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	events := q.DrainAll()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].ProcessID != 3 {
		t.Errorf("ProcessID = %d, want 3", events[0].ProcessID)
	}
	if want := "Process: 3, hdd input end"; events[0].OutputLine != want {
		t.Errorf("OutputLine = %q, want %q", events[0].OutputLine, want)
	}
}

func TestRunSyncNeverTouchesQueue(t *testing.T) {
	timer := simtimer.New()
	q := interruptq.New()

	w := New(timer, 1, 5, "")
	w.RunSync()

	if q.NonEmpty() {
		t.Error("RunSync() posted to the interrupt queue, want none")
	}
}

func TestCompletionLine(t *testing.T) {
	if got, want := CompletionLine(7, "run"), "Process: 7, run end"; got != want {
		t.Errorf("CompletionLine() = %q, want %q", got, want)
	}
}
