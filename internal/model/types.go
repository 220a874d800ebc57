package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// NetworkType tags the topology family a network was built as. The tag is
// informational; the engine never validates topology against it.
type NetworkType string

const (
	NetworkTypePerceptron           NetworkType = "perceptron"
	NetworkTypeMultiLayerPerceptron NetworkType = "multi_layer_perceptron"
	NetworkTypeHopfield             NetworkType = "hopfield"
	NetworkTypeRBF                  NetworkType = "rbf"
	NetworkTypeCustom               NetworkType = "custom"
)

// NetworkRecord is the persistable snapshot of a whole network graph:
// layers, neurons, connections with current weights, the type tag and the
// label registry. Input/output views are stored as neuron ID sequences.
type NetworkRecord struct {
	VersionedRecord
	ID              string            `json:"id"`
	Type            NetworkType       `json:"type"`
	Layers          []LayerRecord     `json:"layers"`
	InputNeuronIDs  []string          `json:"input_neuron_ids"`
	OutputNeuronIDs []string          `json:"output_neuron_ids"`
	Labels          map[string]string `json:"labels,omitempty"`
}

type LayerRecord struct {
	Label   string         `json:"label,omitempty"`
	Neurons []NeuronRecord `json:"neurons"`
}

type NeuronRecord struct {
	ID          string             `json:"id"`
	Activation  string             `json:"activation"`
	Connections []ConnectionRecord `json:"connections,omitempty"`
}

// ConnectionRecord references its source neuron by ID; the destination is
// the neuron that owns the record.
type ConnectionRecord struct {
	From   string  `json:"from"`
	Weight float64 `json:"weight"`
}

// NeuronCount returns the total number of neurons across all layers.
func (r NetworkRecord) NeuronCount() int {
	total := 0
	for _, layer := range r.Layers {
		total += len(layer.Neurons)
	}
	return total
}

// ConnectionCount returns the total number of connections across all layers.
func (r NetworkRecord) ConnectionCount() int {
	total := 0
	for _, layer := range r.Layers {
		for _, neuron := range layer.Neurons {
			total += len(neuron.Connections)
		}
	}
	return total
}
