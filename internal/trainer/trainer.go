// Package trainer builds trie-reservoir models and runs the readout
// training loop over a labeled dataset.
package trainer

import (
	"fmt"
	"math/rand"

	"github.com/rcliao/trlm/internal/model"
	"github.com/rcliao/trlm/internal/readout"
	"github.com/rcliao/trlm/internal/reservoir"
	"github.com/rcliao/trlm/internal/trie"
)

// Default training schedule, matching the reference driver.
const (
	DefaultEpochs       = 100
	DefaultLearningRate = 0.01
	DefaultDecayEvery   = 20
	DefaultDecayFactor  = 0.9
)

// Options configures one training run.
type Options struct {
	Params model.Params
	Labels []string
	// Corpus lists the words to insert into the trie. When empty,
	// the distinct sample inputs are used.
	Corpus       []string
	Samples      []model.Sample
	Epochs       int
	LearningRate float64
	DecayEvery   int
	DecayFactor  float64
	Seed         int64
}

// Model bundles a trie, a frozen reservoir bank, and a trained
// readout. The trie and bank never change after Build; only the
// readout moves during training.
type Model struct {
	Params model.Params
	Labels []string
	Words  []string
	Seed   int64

	trie    *trie.Trie
	bank    *reservoir.Bank
	engine  *reservoir.Engine
	readout *readout.Readout
}

// Build constructs an untrained model. All randomness flows from a
// single rng seeded with seed, drawn in a fixed order (bank, then
// readout, then update noise), so the same seed reproduces the same
// frozen reservoir exactly.
func Build(params model.Params, labels, words []string, seed int64) (*Model, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("at least one label is required")
	}
	if params.OutDim != len(labels) {
		return nil, fmt.Errorf("out_dim %d does not match %d labels", params.OutDim, len(labels))
	}

	rng := rand.New(rand.NewSource(seed))

	tr, err := trie.New(params.MaxDepth)
	if err != nil {
		return nil, err
	}
	for _, w := range words {
		tr.Insert(w)
	}

	bank, err := reservoir.NewBank(params.MaxDepth, params.ReservoirSize, params.Rho, rng)
	if err != nil {
		return nil, err
	}

	ro, err := readout.New(params.OutDim, params.ReservoirSize, rng)
	if err != nil {
		return nil, err
	}

	return &Model{
		Params:  params,
		Labels:  labels,
		Words:   words,
		Seed:    seed,
		trie:    tr,
		bank:    bank,
		engine:  reservoir.NewEngine(params.Alpha, params.NoiseAmp, rng),
		readout: ro,
	}, nil
}

// Train builds a model from opts and runs the SGD loop: one readout
// update per sample per epoch, with the learning rate multiplied by
// DecayFactor every DecayEvery epochs.
func Train(opts Options) (*Model, error) {
	if opts.Epochs <= 0 {
		opts.Epochs = DefaultEpochs
	}
	if opts.LearningRate <= 0 {
		opts.LearningRate = DefaultLearningRate
	}
	if opts.DecayEvery <= 0 {
		opts.DecayEvery = DefaultDecayEvery
	}
	if opts.DecayFactor <= 0 {
		opts.DecayFactor = DefaultDecayFactor
	}
	if len(opts.Samples) == 0 {
		return nil, fmt.Errorf("at least one sample is required")
	}

	words := opts.Corpus
	if len(words) == 0 {
		words = corpus(opts.Samples)
	}
	m, err := Build(opts.Params, opts.Labels, words, opts.Seed)
	if err != nil {
		return nil, err
	}

	gold := make([]int, len(opts.Samples))
	for i, s := range opts.Samples {
		idx, err := m.LabelIndex(s.Label)
		if err != nil {
			return nil, err
		}
		gold[i] = idx
	}

	lr := opts.LearningRate
	for epoch := 0; epoch < opts.Epochs; epoch++ {
		for i, s := range opts.Samples {
			state, _ := m.engine.Forward(m.trie, m.bank, s.Input)
			if err := m.readout.TrainStep(state, gold[i], lr); err != nil {
				return nil, err
			}
		}
		if (epoch+1)%opts.DecayEvery == 0 {
			lr *= opts.DecayFactor
		}
	}
	return m, nil
}

// Predict runs a forward pass through the reservoir and readout.
func (m *Model) Predict(input string) model.Prediction {
	state, steps := m.engine.Forward(m.trie, m.bank, input)
	probs := m.readout.Forward(state)

	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return model.Prediction{
		Input: input,
		Probs: probs,
		Best:  m.Labels[best],
		Index: best,
		Steps: steps,
	}
}

// Evaluate predicts every sample and returns the predictions with the
// fraction whose best class matches the sample label.
func (m *Model) Evaluate(samples []model.Sample) ([]model.Prediction, float64, error) {
	if len(samples) == 0 {
		return nil, 0, fmt.Errorf("no samples to evaluate")
	}
	preds := make([]model.Prediction, len(samples))
	correct := 0
	for i, s := range samples {
		idx, err := m.LabelIndex(s.Label)
		if err != nil {
			return nil, 0, err
		}
		preds[i] = m.Predict(s.Input)
		if preds[i].Index == idx {
			correct++
		}
	}
	return preds, float64(correct) / float64(len(samples)), nil
}

// LabelIndex maps a label name to its class index.
func (m *Model) LabelIndex(label string) (int, error) {
	for i, l := range m.Labels {
		if l == label {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown label %q", label)
}

// Record exports the model for persistence. The reservoir bank is
// represented by its seed; Restore regenerates it.
func (m *Model) Record() *model.Record {
	return &model.Record{
		Seed:    m.Seed,
		Params:  m.Params,
		Labels:  m.Labels,
		Words:   m.Words,
		Weights: m.readout.Weights(),
	}
}

// Restore rebuilds a trained model from a persisted record: the trie
// from its corpus words, the bank from the stored seed, and the
// readout from the stored weights.
func Restore(rec *model.Record) (*Model, error) {
	m, err := Build(rec.Params, rec.Labels, rec.Words, rec.Seed)
	if err != nil {
		return nil, err
	}
	ro, err := readout.Restore(rec.Params.OutDim, rec.Params.ReservoirSize, rec.Weights)
	if err != nil {
		return nil, err
	}
	m.readout = ro
	return m, nil
}

// corpus returns the distinct sample inputs in first-seen order.
func corpus(samples []model.Sample) []string {
	seen := make(map[string]bool, len(samples))
	var words []string
	for _, s := range samples {
		if !seen[s.Input] {
			seen[s.Input] = true
			words = append(words, s.Input)
		}
	}
	return words
}
