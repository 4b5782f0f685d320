// Package simerr defines the small set of sentinel error kinds the
// simulator distinguishes between when deciding whether to abort, degrade,
// or continue. Call sites wrap a sentinel with fmt.Errorf("...: %w", ...)
// and callers classify with errors.Is.
package simerr

import "errors"

var (
	// ErrConfigRead is returned when the configuration file cannot be opened or read.
	ErrConfigRead = errors.New("config: read error")
	// ErrConfigInvalid is returned when the configuration file is structurally malformed.
	ErrConfigInvalid = errors.New("config: invalid file")
	// ErrConfigValueInvalid is returned when a recognized key carries an unusable value.
	ErrConfigValueInvalid = errors.New("config: invalid value")
	// ErrMetaRead is returned when the metadata file cannot be opened or read.
	ErrMetaRead = errors.New("metadata: read error")
	// ErrMetaInvalid is returned when the metadata file is structurally malformed.
	ErrMetaInvalid = errors.New("metadata: invalid file")
	// ErrLogWrite is returned when the log sink fails to write.
	ErrLogWrite = errors.New("log: write error")
	// ErrSegmentFault marks a per-process memory violation; never fatal to the run.
	ErrSegmentFault = errors.New("mmu: segment fault")
	// ErrOutOfMemory is returned when the simulated memory table cannot satisfy bookkeeping.
	ErrOutOfMemory = errors.New("mmu: out of memory")
)
