package nn

import (
	"errors"
	"math"
	"sort"
	"testing"
)

func TestBuiltInActivations(t *testing.T) {
	tests := []struct {
		name string
		act  string
		x    float64
		want float64
	}{
		{name: "identity", act: "identity", x: 2.5, want: 2.5},
		{name: "relu-negative", act: "relu", x: -1, want: 0},
		{name: "relu-positive", act: "relu", x: 3, want: 3},
		{name: "tanh-zero", act: "tanh", x: 0, want: 0},
		{name: "sigmoid-zero", act: "sigmoid", x: 0, want: 0.5},
		{name: "step-positive", act: "step", x: 0.1, want: 1},
		{name: "step-zero", act: "step", x: 0, want: 0},
		{name: "sgn-negative", act: "sgn", x: -3, want: -1},
		{name: "ramp-clamped", act: "ramp", x: 4, want: 1},
		{name: "ramp-linear", act: "ramp", x: 0.25, want: 0.25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fn, err := GetActivation(tc.act)
			if err != nil {
				t.Fatalf("get activation: %v", err)
			}
			if got := fn(tc.x); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("unexpected value: got=%f want=%f", got, tc.want)
			}
		})
	}
}

func TestRegisterActivation(t *testing.T) {
	defer resetActivationRegistryForTests()

	if err := RegisterActivation("double", func(x float64) float64 { return 2 * x }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := RegisterActivation("double", func(x float64) float64 { return x }); !errors.Is(err, ErrActivationExists) {
		t.Fatalf("expected ErrActivationExists, got %v", err)
	}
	if err := RegisterActivation("", func(x float64) float64 { return x }); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := RegisterActivation("nilfn", nil); err == nil {
		t.Fatal("expected error for nil function")
	}

	fn, err := GetActivation("double")
	if err != nil {
		t.Fatalf("get activation: %v", err)
	}
	if got := fn(3); got != 6 {
		t.Fatalf("unexpected value: got=%f want=6", got)
	}
}

func TestGetActivationNotFound(t *testing.T) {
	if _, err := GetActivation("no-such-activation"); !errors.Is(err, ErrActivationNotFound) {
		t.Fatalf("expected ErrActivationNotFound, got %v", err)
	}
}

func TestListActivationsSorted(t *testing.T) {
	names := ListActivations()
	if len(names) == 0 {
		t.Fatal("expected built-in activations")
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("names not sorted: %v", names)
	}
}
