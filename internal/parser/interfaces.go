package parser

import (
	"encoding/json"

	"github.com/yamaru/pokesearch/internal/types"
)

// RecordParser defines the interface for decoding the creature dataset
type RecordParser interface {
	// ParseDataset splits a dataset document into raw record elements
	ParseDataset(body []byte) ([]json.RawMessage, error)

	// ParseRecord decodes and validates a single record element
	ParseRecord(raw []byte) (*types.Creature, error)
}
