package storage

import (
	"context"

	"neurograph/internal/model"
)

// Store defines persistence operations for network snapshots.
type Store interface {
	Init(ctx context.Context) error
	SaveNetwork(ctx context.Context, rec model.NetworkRecord) error
	GetNetwork(ctx context.Context, id string) (model.NetworkRecord, bool, error)
	ListNetworks(ctx context.Context) ([]model.NetworkRecord, error)
	DeleteNetwork(ctx context.Context, id string) error
}
