package nn

import (
	"errors"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// WeightRandomizer supplies fresh weights for (re)initialization. The
// distribution and range are the randomizer's own business.
type WeightRandomizer interface {
	NextWeight() float64
}

// RangeRandomizer draws weights uniformly from [min, max).
type RangeRandomizer struct {
	dist distuv.Uniform
}

func NewRangeRandomizer(min, max float64, seed uint64) *RangeRandomizer {
	return &RangeRandomizer{dist: distuv.Uniform{
		Min: min,
		Max: max,
		Src: rand.NewSource(seed),
	}}
}

func (r *RangeRandomizer) NextWeight() float64 {
	return r.dist.Rand()
}

// GaussianRandomizer draws weights from a normal distribution.
type GaussianRandomizer struct {
	dist distuv.Normal
}

func NewGaussianRandomizer(mean, sigma float64, seed uint64) *GaussianRandomizer {
	return &GaussianRandomizer{dist: distuv.Normal{
		Mu:    mean,
		Sigma: sigma,
		Src:   rand.NewSource(seed),
	}}
}

func (r *GaussianRandomizer) NextWeight() float64 {
	return r.dist.Rand()
}

// RandomizeNguyenWidrow reinitializes all connection weights uniformly in
// [-beta, beta] with beta = 0.7 * h^(1/n), where h is the hidden neuron
// count and n the input neuron count. Input/output views must be set.
func RandomizeNguyenWidrow(net *Network, seed uint64) error {
	inputs := len(net.InputNeurons())
	outputs := len(net.OutputNeurons())
	if inputs == 0 || outputs == 0 {
		return errors.New("input and output neurons must be set before nguyen-widrow randomization")
	}
	hidden := 0
	for _, layer := range net.Layers() {
		hidden += layer.NeuronCount()
	}
	hidden -= inputs + outputs
	if hidden < 1 {
		hidden = 1
	}
	beta := 0.7 * math.Pow(float64(hidden), 1.0/float64(inputs))
	return net.RandomizeWeights(NewRangeRandomizer(-beta, beta, seed))
}
