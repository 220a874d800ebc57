package nn

import (
	"fmt"

	"github.com/google/uuid"

	"neurograph/internal/model"
)

// networkLabelKey stores the network's own label in a snapshot's label map;
// neuron labels are keyed by neuron ID.
const networkLabelKey = "network"

// Snapshot captures the whole graph as a persistable record: topology,
// current weights, type tag, input/output views and the label registry.
// Plugins other than labels hold live references and are not persisted.
func (net *Network) Snapshot() model.NetworkRecord {
	rec := model.NetworkRecord{
		ID:     net.id,
		Type:   net.typ,
		Layers: make([]model.LayerRecord, 0, len(net.layers)),
	}

	labels, hasLabels := net.LabelsPlugin()
	if hasLabels {
		if label, ok := labels.Label(net); ok {
			rec.Labels = map[string]string{networkLabelKey: label}
		}
	}

	for _, layer := range net.layers {
		layerRec := model.LayerRecord{
			Label:   layer.label,
			Neurons: make([]model.NeuronRecord, 0, len(layer.neurons)),
		}
		for _, neuron := range layer.neurons {
			neuronRec := model.NeuronRecord{
				ID:         neuron.id,
				Activation: neuron.activation,
			}
			for _, conn := range neuron.connections {
				neuronRec.Connections = append(neuronRec.Connections, model.ConnectionRecord{
					From:   conn.source.id,
					Weight: conn.weight,
				})
			}
			if hasLabels {
				if label, ok := labels.Label(neuron); ok {
					if rec.Labels == nil {
						rec.Labels = make(map[string]string)
					}
					rec.Labels[neuron.id] = label
				}
			}
			layerRec.Neurons = append(layerRec.Neurons, neuronRec)
		}
		rec.Layers = append(rec.Layers, layerRec)
	}

	for _, neuron := range net.inputNeurons {
		rec.InputNeuronIDs = append(rec.InputNeuronIDs, neuron.id)
	}
	for _, neuron := range net.outputNeurons {
		rec.OutputNeuronIDs = append(rec.OutputNeuronIDs, neuron.id)
	}
	return rec
}

// FromRecord rebuilds a live network from a snapshot. Weights and activation
// state start from the record: weights as saved, input/output scalars zero.
func FromRecord(rec model.NetworkRecord) (*Network, error) {
	typ := rec.Type
	if typ == "" {
		typ = model.NetworkTypeCustom
	}
	net := NewNetwork(typ)
	if rec.ID != "" {
		net.id = rec.ID
	} else {
		net.id = uuid.NewString()
	}

	byID := make(map[string]*Neuron, rec.NeuronCount())
	for layerIdx, layerRec := range rec.Layers {
		layer := NewLayer(layerRec.Label)
		for _, neuronRec := range layerRec.Neurons {
			neuron, err := NewNeuronWithID(neuronRec.ID, neuronRec.Activation)
			if err != nil {
				return nil, fmt.Errorf("layer %d: %w", layerIdx, err)
			}
			if _, dup := byID[neuron.id]; dup {
				return nil, fmt.Errorf("duplicate neuron id: %s", neuron.id)
			}
			byID[neuron.id] = neuron
			if err := layer.AddNeuron(neuron); err != nil {
				return nil, err
			}
		}
		if err := net.AddLayer(layer); err != nil {
			return nil, err
		}
	}

	for _, layerRec := range rec.Layers {
		for _, neuronRec := range layerRec.Neurons {
			dst := byID[neuronRec.ID]
			for _, connRec := range neuronRec.Connections {
				src, ok := byID[connRec.From]
				if !ok {
					return nil, fmt.Errorf("neuron %s: connection source not found: %s", neuronRec.ID, connRec.From)
				}
				conn, err := NewConnection(src, connRec.Weight)
				if err != nil {
					return nil, fmt.Errorf("neuron %s: %w", neuronRec.ID, err)
				}
				if err := dst.AddInputConnection(conn); err != nil {
					return nil, err
				}
			}
		}
	}

	inputs, err := resolveNeuronIDs(byID, rec.InputNeuronIDs)
	if err != nil {
		return nil, fmt.Errorf("input view: %w", err)
	}
	outputs, err := resolveNeuronIDs(byID, rec.OutputNeuronIDs)
	if err != nil {
		return nil, fmt.Errorf("output view: %w", err)
	}
	if err := net.SetInputNeurons(inputs); err != nil {
		return nil, err
	}
	if err := net.SetOutputNeurons(outputs); err != nil {
		return nil, err
	}

	if len(rec.Labels) > 0 {
		labels, ok := net.LabelsPlugin()
		if ok {
			for key, label := range rec.Labels {
				if key == networkLabelKey {
					labels.SetLabel(net, label)
					continue
				}
				if neuron, found := byID[key]; found {
					labels.SetLabel(neuron, label)
				}
			}
		}
	}
	return net, nil
}

func resolveNeuronIDs(byID map[string]*Neuron, ids []string) ([]*Neuron, error) {
	neurons := make([]*Neuron, 0, len(ids))
	for _, id := range ids {
		neuron, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("neuron not found: %s", id)
		}
		neurons = append(neurons, neuron)
	}
	return neurons, nil
}
