package logbuf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mpetrov/ossim/internal/config"
)

func TestTimestampedShape(t *testing.T) {
	b := New(config.LogFile)
	b.Timestamped("1.234500", "OS: System Start")

	want := "  1.234500, OS: System Start\n"
	if got := b.Lines(); len(got) != 1 || got[0] != want {
		t.Errorf("Lines() = %q, want [%q]", got, want)
	}
}

func TestWriteHeaderSkippedInMonitorMode(t *testing.T) {
	b := New(config.LogMonitor)
	b.WriteHeader(config.Config{MetaDataPath: "p.mdf"})
	if len(b.Lines()) != 0 {
		t.Errorf("Lines() after WriteHeader in MONITOR mode = %v, want none", b.Lines())
	}
}

func TestWriteHeaderIncludesConfigFields(t *testing.T) {
	b := New(config.LogFile)
	b.WriteHeader(config.Config{MetaDataPath: "p.mdf", Schedule: config.RoundRobinPreempt, QuantumCycles: 4})

	joined := strings.Join(b.Lines(), "")
	for _, want := range []string{"p.mdf", "RR-P", "4"} {
		if !strings.Contains(joined, want) {
			t.Errorf("header missing %q:\n%s", want, joined)
		}
	}
}

func TestFlushWritesAllLines(t *testing.T) {
	b := New(config.LogFile)
	b.Append("one\n")
	b.Append("two\n")

	path := filepath.Join(t.TempDir(), "out.log")
	if err := b.Flush(path); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "one\ntwo\n" {
		t.Errorf("file contents = %q, want %q", data, "one\ntwo\n")
	}
}

func TestFlushNoopInMonitorMode(t *testing.T) {
	b := New(config.LogMonitor)
	b.Append("one\n")
	if err := b.Flush(filepath.Join(t.TempDir(), "should-not-exist.log")); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestFlushDegradesInBothModeOnWriteFailure(t *testing.T) {
	b := New(config.LogBoth)
	b.Append("one\n")
	// A directory path can never be opened for writing as a file.
	if err := b.Flush(t.TempDir()); err != nil {
		t.Errorf("Flush() in BOTH mode = %v, want nil (degrade to MONITOR)", err)
	}
}

func TestFlushFailsInFileMode(t *testing.T) {
	b := New(config.LogFile)
	b.Append("one\n")
	if err := b.Flush(t.TempDir()); err == nil {
		t.Error("Flush() in FILE mode with bad path = nil, want error")
	}
}
