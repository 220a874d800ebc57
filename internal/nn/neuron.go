package nn

import (
	"fmt"

	"github.com/google/uuid"
)

// Neuron is a computational unit: an ordered set of incoming connections,
// an activation function resolved by name from the registry, and current
// input/output scalars. Output is recomputed from connection weights and
// source outputs each time Calculate runs.
type Neuron struct {
	id          string
	activation  string
	fn          ActivationFunc
	connections []*Connection
	input       float64
	output      float64
}

func NewNeuron(activation string) (*Neuron, error) {
	return NewNeuronWithID(uuid.NewString(), activation)
}

func NewNeuronWithID(id, activation string) (*Neuron, error) {
	if id == "" {
		return nil, fmt.Errorf("neuron id is required")
	}
	fn, err := GetActivation(activation)
	if err != nil {
		return nil, fmt.Errorf("neuron %s: %w", id, err)
	}
	return &Neuron{id: id, activation: activation, fn: fn}, nil
}

func (n *Neuron) ID() string {
	return n.id
}

func (n *Neuron) Activation() string {
	return n.activation
}

// Calculate sums weight*source.Output over all incoming connections and
// applies the activation function. A neuron without connections keeps its
// current input (set via SetInput, zero otherwise), so network input
// neurons survive a whole-network pass.
func (n *Neuron) Calculate() {
	if len(n.connections) > 0 {
		sum := 0.0
		for _, conn := range n.connections {
			sum += conn.weight * conn.source.output
		}
		n.input = sum
	}
	n.output = n.fn(n.input)
}

// SetInput overrides the summed input directly, bypassing connections.
func (n *Neuron) SetInput(value float64) {
	n.input = value
}

func (n *Neuron) Input() float64 {
	return n.input
}

func (n *Neuron) Output() float64 {
	return n.output
}

// AddInputConnection appends to the connection sequence. Parallel edges
// from the same source are legal.
func (n *Neuron) AddInputConnection(conn *Connection) error {
	if conn == nil {
		return fmt.Errorf("neuron %s: connection is required", n.id)
	}
	n.connections = append(n.connections, conn)
	return nil
}

func (n *Neuron) Connections() []*Connection {
	return n.connections
}

// HasInputFrom reports whether any incoming connection originates at source.
func (n *Neuron) HasInputFrom(source *Neuron) bool {
	for _, conn := range n.connections {
		if conn.source == source {
			return true
		}
	}
	return false
}

// Reset zeroes input/output state without touching connections.
func (n *Neuron) Reset() {
	n.input = 0
	n.output = 0
}

// RandomizeWeights reassigns every incoming connection's weight from r.
// Activation state is untouched.
func (n *Neuron) RandomizeWeights(r WeightRandomizer) error {
	for _, conn := range n.connections {
		if err := conn.SetWeight(r.NextWeight()); err != nil {
			return fmt.Errorf("neuron %s: %w", n.id, err)
		}
	}
	return nil
}
