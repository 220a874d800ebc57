package nn

import (
	"errors"
	"fmt"
	"math"
)

var ErrNonFiniteWeight = errors.New("connection weight must be finite")

// Connection is a directed weighted edge into the neuron that owns it. The
// source neuron is shared, not owned; the weight is the only mutable field
// (written by training, read by the forward pass).
type Connection struct {
	source *Neuron
	weight float64
}

func NewConnection(source *Neuron, weight float64) (*Connection, error) {
	if source == nil {
		return nil, errors.New("source neuron is required")
	}
	if !isFinite(weight) {
		return nil, fmt.Errorf("%w: %v", ErrNonFiniteWeight, weight)
	}
	return &Connection{source: source, weight: weight}, nil
}

func (c *Connection) Source() *Neuron {
	return c.source
}

func (c *Connection) Weight() float64 {
	return c.weight
}

func (c *Connection) SetWeight(weight float64) error {
	if !isFinite(weight) {
		return fmt.Errorf("%w: %v", ErrNonFiniteWeight, weight)
	}
	c.weight = weight
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
