package nn

import (
	"testing"

	"neurograph/internal/model"
)

type namedPlugin struct {
	name   string
	parent *Network
}

func (p *namedPlugin) Name() string                  { return p.name }
func (p *namedPlugin) SetParentNetwork(net *Network) { p.parent = net }

func TestDefaultLabelsPluginInstalled(t *testing.T) {
	net := NewNetwork(model.NetworkTypeCustom)

	p, ok := net.Plugin(LabelsPluginName)
	if !ok {
		t.Fatal("default labels plugin missing")
	}
	labels, ok := p.(*LabelsPlugin)
	if !ok {
		t.Fatalf("unexpected plugin type: %T", p)
	}
	if labels.ParentNetwork() != net {
		t.Fatal("labels plugin back-reference not set")
	}
}

func TestPluginRegistry(t *testing.T) {
	net := NewNetwork(model.NetworkTypeCustom)

	if _, ok := net.Plugin("absent"); ok {
		t.Fatal("absent plugin should report ok=false")
	}

	first := &namedPlugin{name: "metrics"}
	if err := net.AddPlugin(first); err != nil {
		t.Fatalf("add plugin: %v", err)
	}
	if first.parent != net {
		t.Fatal("back-reference not set on add")
	}

	// Name collisions overwrite.
	second := &namedPlugin{name: "metrics"}
	if err := net.AddPlugin(second); err != nil {
		t.Fatalf("add plugin: %v", err)
	}
	got, ok := net.Plugin("metrics")
	if !ok || got != Plugin(second) {
		t.Fatal("collision should overwrite the stored plugin")
	}

	net.RemovePlugin("metrics")
	if _, ok := net.Plugin("metrics"); ok {
		t.Fatal("plugin still present after removal")
	}

	if err := net.AddPlugin(nil); err == nil {
		t.Fatal("expected error for nil plugin")
	}
	if err := net.AddPlugin(&namedPlugin{}); err == nil {
		t.Fatal("expected error for empty plugin name")
	}
}

func TestLabelsPluginLabels(t *testing.T) {
	net := NewNetwork(model.NetworkTypeCustom)
	labels, ok := net.LabelsPlugin()
	if !ok {
		t.Fatal("labels plugin missing")
	}

	neuron := mustNeuron(t, "identity")
	labels.SetLabel(neuron, "bias")
	if label, found := labels.Label(neuron); !found || label != "bias" {
		t.Fatalf("unexpected label: %q found=%v", label, found)
	}
	if _, found := labels.Label(net); found {
		t.Fatal("unlabeled subject should report found=false")
	}
	labels.RemoveLabel(neuron)
	if _, found := labels.Label(neuron); found {
		t.Fatal("label still present after removal")
	}
}
