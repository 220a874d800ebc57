package nn

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"neurograph/internal/model"
)

var (
	ErrDimensionMismatch = errors.New("input vector size does not match network input dimension")
	ErrLayerReferenced   = errors.New("layer is still referenced")
	ErrForeignNeuron     = errors.New("neuron does not belong to this network")
)

// Network owns an ordered sequence of layers and orchestrates whole-network
// forward evaluation. Input/output neuron collections are views into the
// layers, not copies.
//
// The graph (layers, neurons, connections) is not safe for concurrent
// read/write. Training started on a separate goroutine mutates connection
// weights with no internal locking; callers running inference concurrently
// with training must synchronize externally.
type Network struct {
	id            string
	typ           model.NetworkType
	layers        []*Layer
	inputNeurons  []*Neuron
	outputNeurons []*Neuron

	plugins   map[string]Plugin
	observers []registeredObserver

	trainState
}

// NewNetwork creates an empty network of the given type with the default
// labels plugin installed.
func NewNetwork(typ model.NetworkType) *Network {
	net := &Network{
		id:      uuid.NewString(),
		typ:     typ,
		plugins: make(map[string]Plugin),
	}
	net.mustAddPlugin(NewLabelsPlugin())
	return net
}

func (net *Network) ID() string {
	return net.id
}

func (net *Network) SetID(id string) {
	net.id = id
}

func (net *Network) Type() model.NetworkType {
	return net.typ
}

func (net *Network) SetType(typ model.NetworkType) {
	net.typ = typ
}

// AddLayer appends layer and sets its back-reference to this network.
func (net *Network) AddLayer(layer *Layer) error {
	if layer == nil {
		return errors.New("layer is required")
	}
	layer.parent = net
	net.layers = append(net.layers, layer)
	return nil
}

func (net *Network) AddLayerAt(idx int, layer *Layer) error {
	if layer == nil {
		return errors.New("layer is required")
	}
	if idx < 0 || idx > len(net.layers) {
		return fmt.Errorf("layer index out of range: %d", idx)
	}
	layer.parent = net
	net.layers = append(net.layers, nil)
	copy(net.layers[idx+1:], net.layers[idx:])
	net.layers[idx] = layer
	return nil
}

// RemoveLayerAt rejects removal while any neuron of the layer is referenced
// by the input/output views or by a connection from a neuron outside the
// layer. References internal to the removed layer go away with it.
func (net *Network) RemoveLayerAt(idx int) error {
	if idx < 0 || idx >= len(net.layers) {
		return fmt.Errorf("layer index out of range: %d", idx)
	}
	layer := net.layers[idx]
	for _, neuron := range layer.neurons {
		if net.neuronInViews(neuron) {
			return fmt.Errorf("%w: neuron %s is an input/output neuron", ErrLayerReferenced, neuron.id)
		}
		for _, other := range net.layers {
			if other == layer {
				continue
			}
			for _, dst := range other.neurons {
				if dst.HasInputFrom(neuron) {
					return fmt.Errorf("%w: neuron %s feeds neuron %s", ErrLayerReferenced, neuron.id, dst.id)
				}
			}
		}
	}
	layer.parent = nil
	net.layers = append(net.layers[:idx], net.layers[idx+1:]...)
	return nil
}

func (net *Network) RemoveLayer(layer *Layer) error {
	for idx, candidate := range net.layers {
		if candidate == layer {
			return net.RemoveLayerAt(idx)
		}
	}
	return fmt.Errorf("layer not found in network %s", net.id)
}

func (net *Network) LayerAt(idx int) (*Layer, error) {
	if idx < 0 || idx >= len(net.layers) {
		return nil, fmt.Errorf("layer index out of range: %d", idx)
	}
	return net.layers[idx], nil
}

func (net *Network) Layers() []*Layer {
	return net.layers
}

func (net *Network) LayerCount() int {
	return len(net.layers)
}

// SetInputNeurons designates the input view. Every neuron must already
// belong to one of the network's layers.
func (net *Network) SetInputNeurons(neurons []*Neuron) error {
	for _, neuron := range neurons {
		if !net.containsNeuron(neuron) {
			return fmt.Errorf("%w: %s", ErrForeignNeuron, neuron.id)
		}
	}
	net.inputNeurons = append([]*Neuron(nil), neurons...)
	return nil
}

// SetOutputNeurons designates the output view. Every neuron must already
// belong to one of the network's layers.
func (net *Network) SetOutputNeurons(neurons []*Neuron) error {
	for _, neuron := range neurons {
		if !net.containsNeuron(neuron) {
			return fmt.Errorf("%w: %s", ErrForeignNeuron, neuron.id)
		}
	}
	net.outputNeurons = append([]*Neuron(nil), neurons...)
	return nil
}

func (net *Network) InputNeurons() []*Neuron {
	return net.inputNeurons
}

func (net *Network) OutputNeurons() []*Neuron {
	return net.outputNeurons
}

// SetInput assigns values positionally to the input neurons. A length
// mismatch fails before any neuron state is touched.
func (net *Network) SetInput(values []float64) error {
	if len(values) != len(net.inputNeurons) {
		return fmt.Errorf("%w: got=%d want=%d", ErrDimensionMismatch, len(values), len(net.inputNeurons))
	}
	for i, neuron := range net.inputNeurons {
		neuron.SetInput(values[i])
	}
	return nil
}

// Output reads the output neurons positionally into a fresh slice. It does
// not trigger computation; call Calculate first.
func (net *Network) Output() []float64 {
	out := make([]float64, len(net.outputNeurons))
	for i, neuron := range net.outputNeurons {
		out[i] = neuron.Output()
	}
	return out
}

// Calculate runs every layer in layer order. Layer order is the propagation
// order; keeping it topologically consistent with the intended data flow is
// the builder's responsibility and is not validated here.
func (net *Network) Calculate() {
	for _, layer := range net.layers {
		layer.Calculate()
	}
}

func (net *Network) Reset() {
	for _, layer := range net.layers {
		layer.Reset()
	}
}

func (net *Network) RandomizeWeights(r WeightRandomizer) error {
	if r == nil {
		return errors.New("weight randomizer is required")
	}
	for _, layer := range net.layers {
		if err := layer.RandomizeWeights(r); err != nil {
			return err
		}
	}
	return nil
}

// CreateConnection builds a connection from one neuron into another's input
// sequence. Both neurons must belong to this network.
func (net *Network) CreateConnection(from, to *Neuron, weight float64) error {
	if from == nil || to == nil {
		return errors.New("both neurons are required")
	}
	if !net.containsNeuron(from) {
		return fmt.Errorf("%w: %s", ErrForeignNeuron, from.id)
	}
	if !net.containsNeuron(to) {
		return fmt.Errorf("%w: %s", ErrForeignNeuron, to.id)
	}
	conn, err := NewConnection(from, weight)
	if err != nil {
		return err
	}
	return to.AddInputConnection(conn)
}

func (net *Network) containsNeuron(neuron *Neuron) bool {
	if neuron == nil {
		return false
	}
	for _, layer := range net.layers {
		for _, candidate := range layer.neurons {
			if candidate == neuron {
				return true
			}
		}
	}
	return false
}

func (net *Network) neuronInViews(neuron *Neuron) bool {
	for _, candidate := range net.inputNeurons {
		if candidate == neuron {
			return true
		}
	}
	for _, candidate := range net.outputNeurons {
		if candidate == neuron {
			return true
		}
	}
	return false
}

func (net *Network) checkNeuronUnreferenced(neuron *Neuron) error {
	if net.neuronInViews(neuron) {
		return fmt.Errorf("%w: neuron %s is an input/output neuron", ErrNeuronReferenced, neuron.id)
	}
	for _, layer := range net.layers {
		for _, dst := range layer.neurons {
			if dst == neuron {
				continue
			}
			if dst.HasInputFrom(neuron) {
				return fmt.Errorf("%w: neuron %s feeds neuron %s", ErrNeuronReferenced, neuron.id, dst.id)
			}
		}
	}
	return nil
}

// String returns the label registered for this network when one exists.
func (net *Network) String() string {
	if labels, ok := net.LabelsPlugin(); ok {
		if label, found := labels.Label(net); found {
			return label
		}
	}
	return fmt.Sprintf("network %s (%s)", net.id, net.typ)
}
