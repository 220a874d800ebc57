package nn

import (
	"errors"
	"fmt"
)

var ErrNeuronReferenced = errors.New("neuron is still referenced")

// Layer is an ordered grouping of neurons computed together in one
// traversal pass. Iteration order is a contract: for feed-forward graphs
// it has no semantic effect, but with intra-layer or backward connections
// it decides which source outputs are stale within a single pass.
type Layer struct {
	label   string
	neurons []*Neuron
	parent  *Network
}

func NewLayer(label string) *Layer {
	return &Layer{label: label}
}

func (l *Layer) Label() string {
	return l.label
}

func (l *Layer) ParentNetwork() *Network {
	return l.parent
}

func (l *Layer) AddNeuron(neuron *Neuron) error {
	if neuron == nil {
		return errors.New("neuron is required")
	}
	l.neurons = append(l.neurons, neuron)
	return nil
}

func (l *Layer) AddNeuronAt(idx int, neuron *Neuron) error {
	if neuron == nil {
		return errors.New("neuron is required")
	}
	if idx < 0 || idx > len(l.neurons) {
		return fmt.Errorf("neuron index out of range: %d", idx)
	}
	l.neurons = append(l.neurons, nil)
	copy(l.neurons[idx+1:], l.neurons[idx:])
	l.neurons[idx] = neuron
	return nil
}

// RemoveNeuronAt rejects removal while the neuron is referenced by the
// parent network's input/output views or by another neuron's connection.
// Dangling references are an error here, never a silent computation over
// stale state.
func (l *Layer) RemoveNeuronAt(idx int) error {
	if idx < 0 || idx >= len(l.neurons) {
		return fmt.Errorf("neuron index out of range: %d", idx)
	}
	neuron := l.neurons[idx]
	if l.parent != nil {
		if err := l.parent.checkNeuronUnreferenced(neuron); err != nil {
			return err
		}
	}
	l.neurons = append(l.neurons[:idx], l.neurons[idx+1:]...)
	return nil
}

func (l *Layer) NeuronAt(idx int) (*Neuron, error) {
	if idx < 0 || idx >= len(l.neurons) {
		return nil, fmt.Errorf("neuron index out of range: %d", idx)
	}
	return l.neurons[idx], nil
}

func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}

func (l *Layer) NeuronCount() int {
	return len(l.neurons)
}

// Calculate invokes every neuron in this layer's fixed order.
func (l *Layer) Calculate() {
	for _, neuron := range l.neurons {
		neuron.Calculate()
	}
}

func (l *Layer) Reset() {
	for _, neuron := range l.neurons {
		neuron.Reset()
	}
}

func (l *Layer) RandomizeWeights(r WeightRandomizer) error {
	for _, neuron := range l.neurons {
		if err := neuron.RandomizeWeights(r); err != nil {
			return err
		}
	}
	return nil
}
