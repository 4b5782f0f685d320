package metadata

import (
	"errors"
	"testing"

	"github.com/mpetrov/ossim/internal/simerr"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []OpCode
		wantErr bool
	}{
		{
			name: "single process",
			raw:  "S(start)0, A(start)0, P(run)3, A(end)0, S(end)0.",
			want: []OpCode{
				{'S', "start", 0},
				{'A', "start", 0},
				{'P', "run", 3},
				{'A', "end", 0},
				{'S', "end", 0},
			},
		},
		{
			name:    "missing leading S(start)",
			raw:     "A(start)0, A(end)0, S(end)0.",
			wantErr: true,
		},
		{
			name:    "missing trailing S(end)",
			raw:     "S(start)0, A(start)0, A(end)0.",
			wantErr: true,
		},
		{
			name:    "nested A(start)",
			raw:     "S(start)0, A(start)0, A(start)1, A(end)1, A(end)0, S(end)0.",
			wantErr: true,
		},
		{
			name:    "unterminated A(start)",
			raw:     "S(start)0, A(start)0, S(end)0.",
			wantErr: true,
		},
		{
			name:    "malformed token",
			raw:     "S(start)0, Abad, S(end)0.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = nil error, want error", tt.raw)
				}
				if !errors.Is(err, simerr.ErrMetaInvalid) {
					t.Errorf("Parse(%q) error = %v, want wrapping ErrMetaInvalid", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.raw, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Parse(%q) = %d ops, want %d", tt.raw, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("op %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOpCodeString(t *testing.T) {
	op := OpCode{Component: 'P', Name: "run", Value: 3}
	if got, want := op.String(), "P(run)3"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
