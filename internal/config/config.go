// Package config loads YAML dataset files for training runs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/trlm/internal/model"
	"github.com/rcliao/trlm/internal/trainer"
)

// Training holds the schedule for one run.
type Training struct {
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
	DecayEvery   int     `yaml:"decay_every"`
	DecayFactor  float64 `yaml:"decay_factor"`
	Seed         int64   `yaml:"seed"`
}

// Dataset is a complete training specification: hyperparameters, the
// label vocabulary, labeled samples, and the schedule. Omitted fields
// take the reference defaults.
type Dataset struct {
	Name     string         `yaml:"name"`
	Params   model.Params   `yaml:"params"`
	Labels   []string       `yaml:"labels"`
	Corpus   []string       `yaml:"corpus,omitempty"`
	Samples  []model.Sample `yaml:"samples"`
	Training Training       `yaml:"training"`
}

// Load reads and validates a dataset file.
func Load(path string) (*Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var d Dataset
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	d.applyDefaults()
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Dataset) applyDefaults() {
	def := model.DefaultParams()
	if d.Params.ReservoirSize == 0 {
		d.Params.ReservoirSize = def.ReservoirSize
	}
	if d.Params.MaxDepth == 0 {
		d.Params.MaxDepth = def.MaxDepth
	}
	if d.Params.Alpha == 0 {
		d.Params.Alpha = def.Alpha
	}
	if d.Params.Rho == 0 {
		d.Params.Rho = def.Rho
	}
	if d.Params.OutDim == 0 {
		d.Params.OutDim = len(d.Labels)
	}
	// NoiseAmp is left alone: an omitted field reads as 0, which means
	// no noise injection and a deterministic forward pass.
	if d.Training.Epochs == 0 {
		d.Training.Epochs = trainer.DefaultEpochs
	}
	if d.Training.LearningRate == 0 {
		d.Training.LearningRate = trainer.DefaultLearningRate
	}
	if d.Training.DecayEvery == 0 {
		d.Training.DecayEvery = trainer.DefaultDecayEvery
	}
	if d.Training.DecayFactor == 0 {
		d.Training.DecayFactor = trainer.DefaultDecayFactor
	}
}

func (d *Dataset) validate() error {
	if len(d.Labels) == 0 {
		return fmt.Errorf("dataset has no labels")
	}
	if len(d.Samples) == 0 {
		return fmt.Errorf("dataset has no samples")
	}
	if err := d.Params.Validate(); err != nil {
		return err
	}
	known := make(map[string]bool, len(d.Labels))
	for _, l := range d.Labels {
		if known[l] {
			return fmt.Errorf("duplicate label %q", l)
		}
		known[l] = true
	}
	for _, s := range d.Samples {
		if s.Input == "" {
			return fmt.Errorf("sample with empty input")
		}
		if !known[s.Label] {
			return fmt.Errorf("sample %q has unknown label %q", s.Input, s.Label)
		}
	}
	return nil
}

// TrainerOptions converts the dataset into trainer options.
func (d *Dataset) TrainerOptions() trainer.Options {
	return trainer.Options{
		Params:       d.Params,
		Labels:       d.Labels,
		Corpus:       d.Corpus,
		Samples:      d.Samples,
		Epochs:       d.Training.Epochs,
		LearningRate: d.Training.LearningRate,
		DecayEvery:   d.Training.DecayEvery,
		DecayFactor:  d.Training.DecayFactor,
		Seed:         d.Training.Seed,
	}
}

// Demo returns the built-in dataset from the reference driver: five
// corpus words, four of them labeled with their own class.
func Demo() *Dataset {
	d := &Dataset{
		Name:   "demo",
		Params: model.DefaultParams(),
		Labels: []string{"hello", "cat", "dog", "help"},
		Corpus: DemoCorpus(),
		Samples: []model.Sample{
			{Input: "hello", Label: "hello"},
			{Input: "cat", Label: "cat"},
			{Input: "dog", Label: "dog"},
			{Input: "help", Label: "help"},
		},
	}
	d.applyDefaults()
	return d
}

// DemoCorpus lists every word inserted into the demo trie, including
// "helium", which shares a prefix with the labeled words but carries
// no label of its own.
func DemoCorpus() []string {
	return []string{"hello", "help", "helium", "cat", "dog"}
}
