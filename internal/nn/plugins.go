package nn

import (
	"errors"
	"sync"
)

// LabelsPluginName keys the default labeling plugin every network carries.
const LabelsPluginName = "labels"

// Plugin is a named extension attached to a network. Attaching gives the
// plugin a back-reference to its owning network.
type Plugin interface {
	Name() string
	SetParentNetwork(net *Network)
}

// AddPlugin stores p keyed by its name, overwriting any plugin already
// registered under the same name, and sets the back-reference.
func (net *Network) AddPlugin(p Plugin) error {
	if p == nil {
		return errors.New("plugin is required")
	}
	if p.Name() == "" {
		return errors.New("plugin name is required")
	}
	p.SetParentNetwork(net)
	net.plugins[p.Name()] = p
	return nil
}

func (net *Network) mustAddPlugin(p Plugin) {
	if err := net.AddPlugin(p); err != nil {
		panic(err)
	}
}

// Plugin returns the plugin registered under name. Absent keys report
// ok=false, never a crash.
func (net *Network) Plugin(name string) (Plugin, bool) {
	p, ok := net.plugins[name]
	return p, ok
}

func (net *Network) RemovePlugin(name string) {
	delete(net.plugins, name)
}

// LabelsPlugin is the typed accessor for the default labeling plugin.
func (net *Network) LabelsPlugin() (*LabelsPlugin, bool) {
	p, ok := net.plugins[LabelsPluginName]
	if !ok {
		return nil, false
	}
	labels, ok := p.(*LabelsPlugin)
	return labels, ok
}

// LabelsPlugin keeps human-readable labels for arbitrary graph objects:
// the network itself, layers, neurons. The network's String consults it.
type LabelsPlugin struct {
	parent *Network

	mu     sync.RWMutex
	labels map[any]string
}

func NewLabelsPlugin() *LabelsPlugin {
	return &LabelsPlugin{labels: make(map[any]string)}
}

func (p *LabelsPlugin) Name() string {
	return LabelsPluginName
}

func (p *LabelsPlugin) SetParentNetwork(net *Network) {
	p.parent = net
}

func (p *LabelsPlugin) ParentNetwork() *Network {
	return p.parent
}

func (p *LabelsPlugin) SetLabel(subject any, label string) {
	p.mu.Lock()
	p.labels[subject] = label
	p.mu.Unlock()
}

func (p *LabelsPlugin) Label(subject any) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	label, ok := p.labels[subject]
	return label, ok
}

func (p *LabelsPlugin) RemoveLabel(subject any) {
	p.mu.Lock()
	delete(p.labels, subject)
	p.mu.Unlock()
}
