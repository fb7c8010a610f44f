package quantum

import (
	"math"
	"testing"
)

func TestStateClone(t *testing.T) {
	s := State{1 + 2i, 3 - 1i}
	c := s.Clone()
	c[0] = 0

	if s[0] != 1+2i {
		t.Error("clone should not share backing storage")
	}
}

func TestStateIsValid(t *testing.T) {
	cases := []struct {
		name  string
		state State
		want  bool
	}{
		{"finite", State{1 + 1i, -2i, 0}, true},
		{"nan real", State{complex(math.NaN(), 0)}, false},
		{"nan imag", State{complex(0, math.NaN())}, false},
		{"inf real", State{complex(math.Inf(1), 0)}, false},
		{"inf imag", State{complex(0, math.Inf(-1))}, false},
		{"empty", State{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.state.IsValid(); got != tc.want {
				t.Errorf("got %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestStateSquareModulus(t *testing.T) {
	s := State{3 + 4i, 1i, 2}
	got := s.SquareModulus(nil)

	want := []float64{25, 1, 4}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("index %d: got %g, expected %g", i, got[i], want[i])
		}
	}

	// A sufficiently large dst is reused, not reallocated.
	dst := make([]float64, 8)
	out := s.SquareModulus(dst)
	if &out[0] != &dst[0] {
		t.Error("expected dst to be reused")
	}
	if len(out) != len(s) {
		t.Errorf("output length: got %d, expected %d", len(out), len(s))
	}
}

func TestStateScale(t *testing.T) {
	s := State{1 + 1i, 2}
	s.Scale(2i)

	if s[0] != -2+2i || s[1] != 4i {
		t.Errorf("scale by 2i: got %v", s)
	}
}

func TestStateRealImag(t *testing.T) {
	s := State{1 + 2i, 3 - 4i}

	re := s.Real(nil)
	im := s.Imag(nil)

	if re[0] != 1 || re[1] != 3 {
		t.Errorf("real parts: got %v", re)
	}
	if im[0] != 2 || im[1] != -4 {
		t.Errorf("imag parts: got %v", im)
	}
}
