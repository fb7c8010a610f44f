package propagators

import (
	"errors"
	"testing"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

func TestNewByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"taylor", "taylor"},
		{"", "taylor"},
		{"euler", "euler"},
		{"visscher", "visscher"},
		{"crank-nicolson", "crank-nicolson"},
		{"cn", "crank-nicolson"},
	}
	for _, tt := range tests {
		t.Run("name="+tt.name, func(t *testing.T) {
			p, err := New(tt.name, 70)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name() != tt.want {
				t.Errorf("got %q, expected %q", p.Name(), tt.want)
			}
		})
	}
}

func TestNewUnknownName(t *testing.T) {
	if _, err := New("rk4", 70); !errors.Is(err, quantum.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewPassesOrderThrough(t *testing.T) {
	p, err := New("taylor", 35)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	taylor, ok := p.(*Taylor)
	if !ok {
		t.Fatalf("expected *Taylor, got %T", p)
	}
	if taylor.Order != 35 {
		t.Errorf("order: got %d, expected 35", taylor.Order)
	}
}
