// Package metadata parses the metadata program file: a comma-separated
// sequence of "L(name)value" tokens terminated with a literal period. This
// is one of the "deliberately out of scope" external collaborators named in
// spec.md §1 — it hands the engine a flat, validated []OpCode and nothing
// more; the engine (internal/engine) is the one that groups these op codes
// into per-process PCBs.
package metadata

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mpetrov/ossim/internal/simerr"
)

// OpCode is a single read-only instruction in the metadata program.
type OpCode struct {
	Component byte   // one of 'S', 'A', 'P', 'I', 'O', 'M'
	Name      string // e.g. "start", "end", "hdd", "run", "allocate"
	Value     int
}

// String reproduces the canonical "L(name)value" token form, used for
// diagnostics.
func (o OpCode) String() string {
	return fmt.Sprintf("%c(%s)%d", o.Component, o.Name, o.Value)
}

var validComponents = map[byte]bool{
	'S': true, 'A': true, 'P': true, 'I': true, 'O': true, 'M': true,
}

// Load reads and parses a metadata file from disk.
func Load(path string) ([]OpCode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", simerr.ErrMetaRead, path, err)
	}
	return Parse(string(data))
}

// Parse tokenizes the raw contents of a metadata file into an ordered list
// of op codes, validating the S(start)/S(end) bookends and balanced
// A(start)/A(end) pairing described in spec.md §6.
func Parse(raw string) ([]OpCode, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, ".")

	fields := strings.Split(raw, ",")
	ops := make([]OpCode, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		op, err := parseToken(field)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	if err := validate(ops); err != nil {
		return nil, err
	}
	return ops, nil
}

func parseToken(token string) (OpCode, error) {
	open := strings.IndexByte(token, '(')
	closeIdx := strings.IndexByte(token, ')')
	if open != 1 || closeIdx <= open {
		return OpCode{}, fmt.Errorf("%w: malformed token %q", simerr.ErrMetaInvalid, token)
	}

	component := token[0]
	if !validComponents[component] {
		return OpCode{}, fmt.Errorf("%w: unknown component letter %q in %q", simerr.ErrMetaInvalid, string(component), token)
	}

	name := token[open+1 : closeIdx]
	valueStr := token[closeIdx+1:]
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return OpCode{}, fmt.Errorf("%w: non-integer value in %q: %v", simerr.ErrMetaInvalid, token, err)
	}

	return OpCode{Component: component, Name: name, Value: value}, nil
}

func validate(ops []OpCode) error {
	if len(ops) < 2 {
		return fmt.Errorf("%w: program too short", simerr.ErrMetaInvalid)
	}
	first, last := ops[0], ops[len(ops)-1]
	if first.Component != 'S' || first.Name != "start" {
		return fmt.Errorf("%w: program must begin with S(start)0", simerr.ErrMetaInvalid)
	}
	if last.Component != 'S' || last.Name != "end" {
		return fmt.Errorf("%w: program must end with S(end)0", simerr.ErrMetaInvalid)
	}

	depth := 0
	for i, op := range ops[1 : len(ops)-1] {
		if op.Component != 'A' {
			continue
		}
		switch op.Name {
		case "start":
			if depth != 0 {
				return fmt.Errorf("%w: nested A(start) at token %d", simerr.ErrMetaInvalid, i+1)
			}
			depth = 1
		case "end":
			if depth != 1 {
				return fmt.Errorf("%w: A(end) without matching A(start) at token %d", simerr.ErrMetaInvalid, i+1)
			}
			depth = 0
		default:
			return fmt.Errorf("%w: unknown A op %q", simerr.ErrMetaInvalid, op.Name)
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: unterminated A(start)", simerr.ErrMetaInvalid)
	}
	return nil
}
