package input

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func TestDirections_PressRelease(t *testing.T) {
	var s Directions
	s = s.Press(Up).Press(Left)

	if !s.Has(Up) || !s.Has(Left) {
		t.Fatalf("set = %v, want up and left held", s)
	}
	if s.Has(Down) || s.Has(Right) {
		t.Errorf("set = %v, want down and right released", s)
	}

	s = s.Release(Up)
	if s.Has(Up) {
		t.Errorf("Has(Up) after release = true, want false")
	}
	if got := s.String(); got != "{left}" {
		t.Errorf("String() = %q, want %q", got, "{left}")
	}
}

func TestDirections_ReleaseInactiveIsNoop(t *testing.T) {
	s := Only(Right)
	after := s.Release(Up).Release(Up)
	if after != s {
		t.Errorf("Release of inactive direction changed set: %v -> %v", s, after)
	}

	var empty Directions
	if got := empty.Release(Down); !got.Empty() {
		t.Errorf("Release on empty set = %v, want empty", got)
	}
}

func TestDirections_InvalidDirectionIgnored(t *testing.T) {
	s := Only(Up)
	if got := s.Press(Direction(9)); got != s {
		t.Errorf("Press(invalid) = %v, want %v", got, s)
	}
	if s.Has(Direction(9)) {
		t.Error("Has(invalid) = true, want false")
	}
}

func TestOnly(t *testing.T) {
	for _, d := range AllDirections {
		s := Only(d)
		for _, other := range AllDirections {
			if got, want := s.Has(other), other == d; got != want {
				t.Errorf("Only(%v).Has(%v) = %v, want %v", d, other, got, want)
			}
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"up", Up, false},
		{"down", Down, false},
		{"left", Left, false},
		{"right", Right, false},
		{"north", 0, true},
		{"", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseDirection(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownDirection) {
				t.Errorf("ParseDirection(%q) err = %v, want ErrUnknownDirection", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if got.String() != tc.in {
			t.Errorf("String() = %q, want %q", got.String(), tc.in)
		}
	}
}

// A sequence of press/release events must agree with a plain map model,
// whatever the interleaving.
func TestDirections_MatchesSetModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var s Directions
		model := map[Direction]bool{}

		steps := rapid.IntRange(0, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			d := rapid.SampledFrom(AllDirections[:]).Draw(t, "dir")
			if rapid.Bool().Draw(t, "press") {
				s = s.Press(d)
				model[d] = true
			} else {
				s = s.Release(d)
				delete(model, d)
			}
		}

		for _, d := range AllDirections {
			if s.Has(d) != model[d] {
				t.Fatalf("Has(%v) = %v, model says %v", d, s.Has(d), model[d])
			}
		}
		if s.Empty() != (len(model) == 0) {
			t.Fatalf("Empty() = %v, model size %d", s.Empty(), len(model))
		}
	})
}
