// Package memtab implements the memory table and MMU (spec.md §4.C3,
// §4.C9): pure bookkeeping over simulated memory segments, no real
// allocation. Grounded on the address-translation shape of
// _examples/gmofishsauce-wut4/emul/memory.go (translate/fault pattern)
// generalized from page-table lookup to linear segment bookkeeping per
// original_source/PA04/SimUtils.c's memoryManager/memorySpaceFree/
// requestMemory.
package memtab

// Segment is one allocated memory region, owned by a single process.
type Segment struct {
	ProcessID  int
	Identifier int
	Base       int // MB
	Offset     int // MB
}

// Table is an insertion-ordered list of allocated segments.
type Table struct {
	segments     []Segment
	availableKB  int
}

// NewTable returns an empty memory table. memAvailableMB is the configured
// "Memory Available (MB)" value; per spec.md §9 it is compared against
// allocation base as if it were KB — retained here as specified behavior,
// not silently corrected.
func NewTable(memAvailableMB int) *Table {
	return &Table{availableKB: memAvailableMB}
}

// AllocateResult reports the outcome of an allocate op.
type AllocateResult int

const (
	AllocateOK AllocateResult = iota
	AllocateFaultBaseTaken
	AllocateFaultDuplicateIdentifier
	AllocateFaultOutOfRange
)

// Allocate attempts to record a new segment. On any fault it does not
// mutate the table.
func (t *Table) Allocate(pid, identifier, base, offset int) AllocateResult {
	for _, s := range t.segments {
		if s.Base == base {
			return AllocateFaultBaseTaken
		}
		if s.ProcessID == pid && s.Identifier == identifier {
			return AllocateFaultDuplicateIdentifier
		}
	}
	// availableKB holds the config's "MB" value, compared directly
	// against base per spec.md §9 (documented, not corrected).
	if base > t.availableKB/1024 {
		return AllocateFaultOutOfRange
	}
	t.segments = append(t.segments, Segment{
		ProcessID:  pid,
		Identifier: identifier,
		Base:       base,
		Offset:     offset,
	})
	return AllocateOK
}

// Access reports whether a (pid, identifier, base) segment exists and the
// requested offset is within the segment's recorded offset.
func (t *Table) Access(pid, identifier, base, offset int) bool {
	for _, s := range t.segments {
		if s.ProcessID == pid && s.Identifier == identifier && s.Base == base {
			return offset <= s.Offset
		}
	}
	return false
}

// Segments returns the current segments in insertion order, for tests and
// diagnostics.
func (t *Table) Segments() []Segment {
	return t.segments
}

// DecodeOpValue splits an M op's packed value into (identifier, base,
// offset), per the encoding in original_source/PA04/SimUtils.c's
// memoryManager: identifier*1_000_000 + base*1_000 + offset.
func DecodeOpValue(value int) (identifier, base, offset int) {
	identifier = value / 1_000_000
	base = (value / 1000) % 1000
	offset = value % 1000
	return identifier, base, offset
}
