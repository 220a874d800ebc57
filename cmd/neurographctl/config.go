package main

import (
	"encoding/json"
	"fmt"
	"os"

	"neurograph/internal/model"
	"neurograph/pkg/neurograph"
)

type networkConfig struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Label     string        `json:"label"`
	Layers    []layerConfig `json:"layers"`
	WeightMin float64       `json:"weight_min"`
	WeightMax float64       `json:"weight_max"`
	Seed      uint64        `json:"seed"`
}

type layerConfig struct {
	Label      string `json:"label"`
	Size       int    `json:"size"`
	Activation string `json:"activation"`
}

func loadNetworkSpec(path string) (neurograph.NetworkSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return neurograph.NetworkSpec{}, err
	}
	var cfg networkConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return neurograph.NetworkSpec{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(cfg.Layers) == 0 {
		return neurograph.NetworkSpec{}, fmt.Errorf("%s: at least one layer is required", path)
	}

	spec := neurograph.NetworkSpec{
		ID:        cfg.ID,
		Type:      model.NetworkType(cfg.Type),
		Label:     cfg.Label,
		WeightMin: cfg.WeightMin,
		WeightMax: cfg.WeightMax,
		Seed:      cfg.Seed,
	}
	for _, layer := range cfg.Layers {
		spec.Layers = append(spec.Layers, neurograph.LayerSpec{
			Label:      layer.Label,
			Size:       layer.Size,
			Activation: layer.Activation,
		})
	}
	return spec, nil
}
