// Package interruptq implements the interrupt queue (spec.md §4.C4 /
// §5): the sole cross-thread channel between I/O worker goroutines and
// the engine. A single mutex protects Push and Drain; NonEmpty is a plain
// lock-free head read, safe because transitions are monotone (workers
// only add, the engine only drains) and a missed observation is corrected
// on the engine's next poll. Grounded on the sync.Mutex-guarded UART
// buffers in _examples/gmofishsauce-wut4/emul/cpu.go.
package interruptq

import "sync"

// Event is one I/O-completion record, posted by a worker and later
// serviced by the engine.
type Event struct {
	ProcessID  int
	CycleTime  int
	OutputLine string
}

// Queue is a mutex-protected FIFO of interrupt events.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// New returns an empty interrupt queue.
func New() *Queue {
	return &Queue{}
}

// Push enqueues an event. Called from I/O worker goroutines.
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// NonEmpty reports whether at least one event is currently queued. This is
// an unsynchronized head read by design — see the package doc comment.
func (q *Queue) NonEmpty() bool {
	return len(q.events) > 0
}

// DrainAll removes and returns all currently queued events in FIFO order.
func (q *Queue) DrainAll() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	drained := q.events
	q.events = nil
	return drained
}
