package reader

import (
	"context"

	"github.com/yamaru/pokesearch/internal/types"
)

// DatasetFileName is the asset resolved against a source location
const DatasetFileName = "pokemon.json"

// DatasetReader defines the interface for retrieving the creature dataset
type DatasetReader interface {
	// Load retrieves and decodes the dataset. Malformed records are skipped;
	// an error means nothing usable was retrieved.
	Load(ctx context.Context) ([]*types.Creature, error)

	// Location returns the resolved location of the dataset
	Location() string
}
