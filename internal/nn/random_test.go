package nn

import (
	"math"
	"testing"

	"neurograph/internal/model"
)

func TestRangeRandomizerBounds(t *testing.T) {
	r := NewRangeRandomizer(-0.25, 0.75, 11)
	for i := 0; i < 1000; i++ {
		w := r.NextWeight()
		if w < -0.25 || w >= 0.75 {
			t.Fatalf("weight outside range: %f", w)
		}
	}
}

func TestGaussianRandomizerFinite(t *testing.T) {
	r := NewGaussianRandomizer(0, 0.5, 11)
	for i := 0; i < 1000; i++ {
		w := r.NextWeight()
		if math.IsNaN(w) || math.IsInf(w, 0) {
			t.Fatalf("non-finite weight: %f", w)
		}
	}
}

func TestRandomizersAreSeeded(t *testing.T) {
	a := NewRangeRandomizer(-1, 1, 42)
	b := NewRangeRandomizer(-1, 1, 42)
	for i := 0; i < 10; i++ {
		if a.NextWeight() != b.NextWeight() {
			t.Fatal("same seed should yield the same sequence")
		}
	}
}

func TestRandomizeNguyenWidrow(t *testing.T) {
	net := NewNetwork(model.NetworkTypeMultiLayerPerceptron)
	layers := []*Layer{NewLayer("input"), NewLayer("hidden"), NewLayer("output")}
	sizes := []int{2, 3, 1}
	var all [][]*Neuron
	for i, layer := range layers {
		var neurons []*Neuron
		for j := 0; j < sizes[i]; j++ {
			neuron := mustNeuron(t, "tanh")
			if err := layer.AddNeuron(neuron); err != nil {
				t.Fatalf("add neuron: %v", err)
			}
			neurons = append(neurons, neuron)
		}
		if err := net.AddLayer(layer); err != nil {
			t.Fatalf("add layer: %v", err)
		}
		all = append(all, neurons)
	}
	for l := 1; l < len(all); l++ {
		for _, dst := range all[l] {
			for _, src := range all[l-1] {
				if err := net.CreateConnection(src, dst, 0); err != nil {
					t.Fatalf("connect: %v", err)
				}
			}
		}
	}

	// Views must be set first.
	if err := RandomizeNguyenWidrow(net, 5); err == nil {
		t.Fatal("expected error before views are set")
	}
	if err := net.SetInputNeurons(all[0]); err != nil {
		t.Fatalf("set inputs: %v", err)
	}
	if err := net.SetOutputNeurons(all[2]); err != nil {
		t.Fatalf("set outputs: %v", err)
	}

	if err := RandomizeNguyenWidrow(net, 5); err != nil {
		t.Fatalf("randomize: %v", err)
	}
	beta := 0.7 * math.Pow(3, 1.0/2.0)
	changed := false
	for _, layer := range net.Layers() {
		for _, neuron := range layer.Neurons() {
			for _, conn := range neuron.Connections() {
				w := conn.Weight()
				if w < -beta || w >= beta {
					t.Fatalf("weight outside nguyen-widrow range: %f (beta=%f)", w, beta)
				}
				if w != 0 {
					changed = true
				}
			}
		}
	}
	if !changed {
		t.Fatal("no weights were randomized")
	}
}
