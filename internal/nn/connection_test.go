package nn

import (
	"errors"
	"math"
	"testing"
)

func TestNewConnectionValidation(t *testing.T) {
	source, err := NewNeuron("identity")
	if err != nil {
		t.Fatalf("new neuron: %v", err)
	}

	tests := []struct {
		name   string
		source *Neuron
		weight float64
		hasErr bool
	}{
		{name: "valid", source: source, weight: 0.5},
		{name: "zero-weight", source: source, weight: 0},
		{name: "nil-source", source: nil, weight: 0.5, hasErr: true},
		{name: "nan-weight", source: source, weight: math.NaN(), hasErr: true},
		{name: "inf-weight", source: source, weight: math.Inf(1), hasErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conn, err := NewConnection(tc.source, tc.weight)
			if tc.hasErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if conn.Weight() != tc.weight {
				t.Fatalf("unexpected weight: got=%f want=%f", conn.Weight(), tc.weight)
			}
			if conn.Source() != tc.source {
				t.Fatal("source reference lost")
			}
		})
	}
}

func TestConnectionSetWeight(t *testing.T) {
	source, err := NewNeuron("identity")
	if err != nil {
		t.Fatalf("new neuron: %v", err)
	}
	conn, err := NewConnection(source, 1)
	if err != nil {
		t.Fatalf("new connection: %v", err)
	}

	if err := conn.SetWeight(-2.5); err != nil {
		t.Fatalf("set weight: %v", err)
	}
	if conn.Weight() != -2.5 {
		t.Fatalf("unexpected weight: got=%f want=-2.5", conn.Weight())
	}

	if err := conn.SetWeight(math.NaN()); !errors.Is(err, ErrNonFiniteWeight) {
		t.Fatalf("expected ErrNonFiniteWeight, got %v", err)
	}
	if conn.Weight() != -2.5 {
		t.Fatalf("weight mutated by rejected set: got=%f", conn.Weight())
	}
}
