// Package model defines the core model data types.
package model

import (
	"fmt"
	"time"
)

// Default hyperparameters, matching the reference configuration.
const (
	DefaultReservoirSize = 64
	DefaultMaxDepth      = 16
	DefaultAlpha         = 0.85
	DefaultRho           = 0.9
	DefaultOutDim        = 4
	DefaultNoiseAmp      = 0.01
)

// Params holds the fixed hyperparameters of a trie-reservoir model.
// They are set once at construction and never change for the lifetime
// of a model.
type Params struct {
	ReservoirSize int     `json:"reservoir_size" yaml:"reservoir_size"`
	MaxDepth      int     `json:"max_depth" yaml:"max_depth"`
	Alpha         float64 `json:"alpha" yaml:"alpha"`
	Rho           float64 `json:"rho" yaml:"rho"`
	OutDim        int     `json:"out_dim" yaml:"out_dim"`
	NoiseAmp      float64 `json:"noise_amp" yaml:"noise_amp"`
}

// DefaultParams returns the default hyperparameters.
func DefaultParams() Params {
	return Params{
		ReservoirSize: DefaultReservoirSize,
		MaxDepth:      DefaultMaxDepth,
		Alpha:         DefaultAlpha,
		Rho:           DefaultRho,
		OutDim:        DefaultOutDim,
		NoiseAmp:      DefaultNoiseAmp,
	}
}

// Validate checks that every dimension is usable.
func (p Params) Validate() error {
	if p.ReservoirSize <= 0 {
		return fmt.Errorf("reservoir_size must be positive, got %d", p.ReservoirSize)
	}
	if p.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", p.MaxDepth)
	}
	if p.OutDim <= 0 {
		return fmt.Errorf("out_dim must be positive, got %d", p.OutDim)
	}
	if p.NoiseAmp < 0 {
		return fmt.Errorf("noise_amp must be non-negative, got %g", p.NoiseAmp)
	}
	return nil
}

// Sample is one labeled training example.
type Sample struct {
	Input string `json:"input" yaml:"input"`
	Label string `json:"label" yaml:"label"`
}

// Prediction is the readout output for one input.
type Prediction struct {
	Input string    `json:"input"`
	Probs []float64 `json:"probs"`
	Best  string    `json:"best"`
	Index int       `json:"index"`
	Steps int       `json:"steps"`
}

// Record is a persisted trained model.
type Record struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Version    int       `json:"version"`
	Supersedes string    `json:"supersedes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	Seed       int64     `json:"seed"`
	Params     Params    `json:"params"`
	Labels     []string  `json:"labels"`
	Words      []string  `json:"words"`
	Weights    []float64 `json:"weights"`
}
