// Package neurograph is the public surface of the engine: a declarative
// network builder plus store- and file-backed persistence around the live
// graph in internal/nn.
package neurograph

import (
	"context"
	"errors"
	"fmt"

	"neurograph/internal/model"
	"neurograph/internal/nn"
	"neurograph/internal/storage"
)

var ErrNetworkNotFound = errors.New("network not found")

type Options struct {
	// StoreKind selects the persistence backend: "memory" (default) or
	// "sqlite" (requires the sqlite build tag).
	StoreKind  string
	SQLitePath string
}

type Client struct {
	store storage.Store
}

func New(opts Options) (*Client, error) {
	store, err := storage.NewStore(opts.StoreKind, opts.SQLitePath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store}, nil
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// LayerSpec describes one layer of a declaratively built network.
type LayerSpec struct {
	Label      string
	Size       int
	Activation string
}

// NetworkSpec describes a fully connected layered topology. Consecutive
// layers are wired densely; the first layer becomes the input view and the
// last the output view. Initial weights are drawn uniformly from
// [WeightMin, WeightMax), defaulting to [-1, 1).
type NetworkSpec struct {
	ID        string
	Type      model.NetworkType
	Label     string
	Layers    []LayerSpec
	WeightMin float64
	WeightMax float64
	Seed      uint64
}

// Build assembles a live network from spec.
func Build(spec NetworkSpec) (*nn.Network, error) {
	if len(spec.Layers) == 0 {
		return nil, errors.New("at least one layer is required")
	}
	typ := spec.Type
	if typ == "" {
		typ = model.NetworkTypeCustom
	}
	net := nn.NewNetwork(typ)
	if spec.ID != "" {
		net.SetID(spec.ID)
	}

	min, max := spec.WeightMin, spec.WeightMax
	if min == 0 && max == 0 {
		min, max = -1, 1
	}
	if max <= min {
		return nil, fmt.Errorf("invalid weight range: [%v, %v)", min, max)
	}
	weights := nn.NewRangeRandomizer(min, max, spec.Seed)

	var previous *nn.Layer
	for i, layerSpec := range spec.Layers {
		if layerSpec.Size <= 0 {
			return nil, fmt.Errorf("layer %d: size must be > 0", i)
		}
		activation := layerSpec.Activation
		if activation == "" {
			activation = "identity"
		}
		layer := nn.NewLayer(layerSpec.Label)
		for j := 0; j < layerSpec.Size; j++ {
			neuron, err := nn.NewNeuron(activation)
			if err != nil {
				return nil, fmt.Errorf("layer %d: %w", i, err)
			}
			if err := layer.AddNeuron(neuron); err != nil {
				return nil, err
			}
		}
		if err := net.AddLayer(layer); err != nil {
			return nil, err
		}
		if previous != nil {
			for _, dst := range layer.Neurons() {
				for _, src := range previous.Neurons() {
					if err := net.CreateConnection(src, dst, weights.NextWeight()); err != nil {
						return nil, err
					}
				}
			}
		}
		previous = layer
	}

	first, err := net.LayerAt(0)
	if err != nil {
		return nil, err
	}
	last, err := net.LayerAt(net.LayerCount() - 1)
	if err != nil {
		return nil, err
	}
	if err := net.SetInputNeurons(first.Neurons()); err != nil {
		return nil, err
	}
	if err := net.SetOutputNeurons(last.Neurons()); err != nil {
		return nil, err
	}

	if spec.Label != "" {
		if labels, ok := net.LabelsPlugin(); ok {
			labels.SetLabel(net, spec.Label)
		}
	}
	return net, nil
}

// NetworkItem is the listing row for stored networks.
type NetworkItem struct {
	ID          string
	Type        model.NetworkType
	Label       string
	Layers      int
	Neurons     int
	Connections int
}

// SaveNetwork snapshots net into the store and returns its ID.
func (c *Client) SaveNetwork(ctx context.Context, net *nn.Network) (string, error) {
	rec := net.Snapshot()
	if err := c.store.SaveNetwork(ctx, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// LoadNetwork rebuilds a live network from the store.
func (c *Client) LoadNetwork(ctx context.Context, id string) (*nn.Network, error) {
	rec, ok, err := c.store.GetNetwork(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNetworkNotFound, id)
	}
	return nn.FromRecord(rec)
}

func (c *Client) Networks(ctx context.Context) ([]NetworkItem, error) {
	records, err := c.store.ListNetworks(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]NetworkItem, 0, len(records))
	for _, rec := range records {
		items = append(items, NetworkItem{
			ID:          rec.ID,
			Type:        rec.Type,
			Label:       rec.Labels["network"],
			Layers:      len(rec.Layers),
			Neurons:     rec.NeuronCount(),
			Connections: rec.ConnectionCount(),
		})
	}
	return items, nil
}

func (c *Client) DeleteNetwork(ctx context.Context, id string) error {
	return c.store.DeleteNetwork(ctx, id)
}

// ExportFile writes net's snapshot to a standalone file.
func (c *Client) ExportFile(path string, net *nn.Network) error {
	return storage.SaveFile(path, net.Snapshot())
}

// ImportFile rebuilds a live network from a file written by ExportFile.
func (c *Client) ImportFile(path string) (*nn.Network, error) {
	rec, err := storage.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return nn.FromRecord(rec)
}

// Infer loads the stored network id, feeds inputs through one forward pass
// and returns the output vector.
func (c *Client) Infer(ctx context.Context, id string, inputs []float64) ([]float64, error) {
	net, err := c.LoadNetwork(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := net.SetInput(inputs); err != nil {
		return nil, err
	}
	net.Calculate()
	return net.Output(), nil
}
