// Package store provides the trained-model storage interface and
// SQLite implementation.
package store

import (
	"context"

	"github.com/rcliao/trlm/internal/model"
)

// GetParams holds parameters for retrieving a model.
type GetParams struct {
	Name    string
	Version int // 0 means latest
}

// ListParams holds parameters for listing models.
type ListParams struct {
	Limit int
}

// Store defines the model storage interface.
type Store interface {
	// Save persists a trained model under name. Saving an existing
	// name creates a new version superseding the previous one.
	Save(ctx context.Context, name string, rec *model.Record) (*model.Record, error)

	// Get retrieves a model by name, fully populated (corpus words
	// and readout weights included).
	Get(ctx context.Context, p GetParams) (*model.Record, error)

	// List lists the latest version of each stored model. Words and
	// weights are omitted from the listed records.
	List(ctx context.Context, p ListParams) ([]model.Record, error)

	// Rm deletes every version of a model and its corpus.
	Rm(ctx context.Context, name string) error

	// Close closes the store.
	Close() error
}
