package nn

import (
	"math"
	"testing"

	"neurograph/internal/model"
)

func TestSnapshotRoundTrip(t *testing.T) {
	net, in, out := buildChainNetwork(t, "sigmoid", 0.75)
	labels, _ := net.LabelsPlugin()
	labels.SetLabel(net, "round-trip")
	labels.SetLabel(in, "in-0")

	rec := net.Snapshot()
	if rec.ID != net.ID() {
		t.Fatalf("unexpected id: got=%s want=%s", rec.ID, net.ID())
	}
	if rec.NeuronCount() != 2 || rec.ConnectionCount() != 1 {
		t.Fatalf("unexpected counts: neurons=%d connections=%d", rec.NeuronCount(), rec.ConnectionCount())
	}

	restored, err := FromRecord(rec)
	if err != nil {
		t.Fatalf("from record: %v", err)
	}
	if restored.ID() != net.ID() || restored.Type() != net.Type() {
		t.Fatalf("identity lost: id=%s type=%s", restored.ID(), restored.Type())
	}
	if restored.LayerCount() != net.LayerCount() {
		t.Fatalf("unexpected layer count: got=%d want=%d", restored.LayerCount(), net.LayerCount())
	}
	if len(restored.InputNeurons()) != 1 || len(restored.OutputNeurons()) != 1 {
		t.Fatal("views not restored")
	}
	if restored.InputNeurons()[0].ID() != in.ID() {
		t.Fatal("input view order lost")
	}
	gotWeight := restored.OutputNeurons()[0].Connections()[0].Weight()
	if gotWeight != 0.75 {
		t.Fatalf("weight lost: got=%f want=0.75", gotWeight)
	}

	restoredLabels, _ := restored.LabelsPlugin()
	if label, ok := restoredLabels.Label(restored); !ok || label != "round-trip" {
		t.Fatalf("network label lost: %q ok=%v", label, ok)
	}
	if label, ok := restoredLabels.Label(restored.InputNeurons()[0]); !ok || label != "in-0" {
		t.Fatalf("neuron label lost: %q ok=%v", label, ok)
	}

	// Restored network computes like the original.
	for _, candidate := range []*Network{net, restored} {
		if err := candidate.SetInput([]float64{0.5}); err != nil {
			t.Fatalf("set input: %v", err)
		}
		candidate.Calculate()
	}
	a, b := net.Output(), restored.Output()
	if math.Abs(a[0]-b[0]) > 1e-12 {
		t.Fatalf("outputs diverge: original=%f restored=%f", a[0], b[0])
	}
	_ = out
}

func TestFromRecordErrors(t *testing.T) {
	base := func() model.NetworkRecord {
		return model.NetworkRecord{
			ID:   "net",
			Type: model.NetworkTypeCustom,
			Layers: []model.LayerRecord{{
				Neurons: []model.NeuronRecord{
					{ID: "a", Activation: "identity"},
					{ID: "b", Activation: "identity", Connections: []model.ConnectionRecord{{From: "a", Weight: 1}}},
				},
			}},
			InputNeuronIDs:  []string{"a"},
			OutputNeuronIDs: []string{"b"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*model.NetworkRecord)
	}{
		{name: "unknown-activation", mutate: func(r *model.NetworkRecord) {
			r.Layers[0].Neurons[0].Activation = "no-such"
		}},
		{name: "duplicate-id", mutate: func(r *model.NetworkRecord) {
			r.Layers[0].Neurons[1].ID = "a"
		}},
		{name: "missing-source", mutate: func(r *model.NetworkRecord) {
			r.Layers[0].Neurons[1].Connections[0].From = "ghost"
		}},
		{name: "missing-input-view", mutate: func(r *model.NetworkRecord) {
			r.InputNeuronIDs = []string{"ghost"}
		}},
		{name: "missing-output-view", mutate: func(r *model.NetworkRecord) {
			r.OutputNeuronIDs = []string{"ghost"}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := base()
			tc.mutate(&rec)
			if _, err := FromRecord(rec); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	// The unmutated record is valid.
	if _, err := FromRecord(base()); err != nil {
		t.Fatalf("base record should restore: %v", err)
	}
}

func TestFromRecordAssignsID(t *testing.T) {
	rec := model.NetworkRecord{
		Layers: []model.LayerRecord{{
			Neurons: []model.NeuronRecord{{ID: "a", Activation: "identity"}},
		}},
		InputNeuronIDs:  []string{"a"},
		OutputNeuronIDs: []string{"a"},
	}
	net, err := FromRecord(rec)
	if err != nil {
		t.Fatalf("from record: %v", err)
	}
	if net.ID() == "" {
		t.Fatal("expected generated id")
	}
	if net.Type() != model.NetworkTypeCustom {
		t.Fatalf("expected custom type default, got %s", net.Type())
	}
}
