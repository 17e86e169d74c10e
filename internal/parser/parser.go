package parser

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yamaru/pokesearch/internal/types"
)

var (
	// ErrMalformedDataset is returned when the document is not a JSON array
	ErrMalformedDataset = errors.New("malformed dataset")

	// ErrMalformedRecord is returned when an element does not match the record shape
	ErrMalformedRecord = errors.New("malformed record")
)

// wireRecord mirrors one element of pokemon.json
type wireRecord struct {
	ID   *int                       `json:"id"`
	Name *types.Name                `json:"name"`
	Type []string                   `json:"type"`
	Base map[string]json.RawMessage `json:"base"`
}

// jsonParser implements RecordParser interface
type jsonParser struct{}

// NewRecordParser creates a new RecordParser instance
func NewRecordParser() RecordParser {
	return &jsonParser{}
}

// ParseDataset splits a dataset document into raw record elements
func (p *jsonParser) ParseDataset(body []byte) ([]json.RawMessage, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(body, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
	}
	return elements, nil
}

// ParseRecord decodes and validates a single record element
func (p *jsonParser) ParseRecord(raw []byte) (*types.Creature, error) {
	var w wireRecord
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	if w.ID == nil {
		return nil, fmt.Errorf("%w: missing id", ErrMalformedRecord)
	}
	if w.Name == nil {
		return nil, fmt.Errorf("%w: id %d: missing name", ErrMalformedRecord, *w.ID)
	}

	creature := &types.Creature{
		ID:    *w.ID,
		Name:  *w.Name,
		Types: w.Type,
	}

	for _, key := range types.StatKeys() {
		value, ok := w.Base[key.String()]
		if !ok {
			return nil, fmt.Errorf("%w: id %d: missing stat %q", ErrMalformedRecord, *w.ID, key)
		}
		var n int
		if err := json.Unmarshal(value, &n); err != nil {
			return nil, fmt.Errorf("%w: id %d: stat %q is not an integer", ErrMalformedRecord, *w.ID, key)
		}
		creature.Base.Set(key, n)
	}

	if err := creature.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	return creature, nil
}
