package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/yamaru/pokesearch/internal/parser"
	"github.com/yamaru/pokesearch/internal/types"
)

var (
	// ErrUnexpectedStatus is returned for a non-2xx dataset response
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrResponseTooLarge is returned when the body exceeds maxResponseBytes
	ErrResponseTooLarge = errors.New("response body too large")
)

// maxResponseBytes caps the dataset download. The full dataset is well
// under 1 MiB.
var maxResponseBytes int64 = 64 << 20

// NewReader creates the DatasetReader matching the location: http(s) URLs
// are fetched, anything else is read from the filesystem.
func NewReader(location string, logger *zap.Logger) (DatasetReader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		u, err := ResolveURL(location)
		if err != nil {
			return nil, err
		}
		return NewHTTPReader(u, http.DefaultClient, logger), nil
	}

	return NewFileReader(ResolvePath(location), logger), nil
}

// ResolveURL resolves the dataset asset against a base URL the way a
// browser resolves a relative reference. A URL naming a .json file is kept.
func ResolveURL(location string) (*url.URL, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset url %q: %w", location, err)
	}
	if strings.HasSuffix(strings.ToLower(u.Path), ".json") {
		return u, nil
	}
	return u.ResolveReference(&url.URL{Path: DatasetFileName}), nil
}

// ResolvePath maps a directory to the dataset file inside it
func ResolvePath(location string) string {
	if location == "" {
		location = "."
	}
	if info, err := os.Stat(location); err == nil && info.IsDir() {
		return filepath.Join(location, DatasetFileName)
	}
	return location
}

// fileReader implements DatasetReader for a local file
type fileReader struct {
	path   string
	parser parser.RecordParser
	logger *zap.Logger
}

// NewFileReader creates a DatasetReader for a local file
func NewFileReader(path string, logger *zap.Logger) DatasetReader {
	return &fileReader{path: path, parser: parser.NewRecordParser(), logger: logger}
}

// Load reads and decodes the dataset file
func (r *fileReader) Load(ctx context.Context) ([]*types.Creature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	return decodeDataset(body, r.parser, r.logger.With(zap.String("location", r.path)))
}

// Location returns the dataset file path
func (r *fileReader) Location() string {
	return r.path
}

// httpReader implements DatasetReader for a same-origin static asset
type httpReader struct {
	url    *url.URL
	client *http.Client
	parser parser.RecordParser
	logger *zap.Logger
}

// NewHTTPReader creates a DatasetReader fetching u with a plain GET
func NewHTTPReader(u *url.URL, client *http.Client, logger *zap.Logger) DatasetReader {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpReader{url: u, client: client, parser: parser.NewRecordParser(), logger: logger}
}

// Load fetches and decodes the dataset
func (r *httpReader) Load(ctx context.Context) ([]*types.Creature, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > maxResponseBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxResponseBytes)
	}

	return decodeDataset(body, r.parser, r.logger.With(zap.String("location", r.url.String())))
}

// Location returns the resolved dataset URL
func (r *httpReader) Location() string {
	return r.url.String()
}

// decodeDataset parses every element, skipping malformed records and
// repeated ids. Kept records stay in dataset order.
func decodeDataset(body []byte, p parser.RecordParser, logger *zap.Logger) ([]*types.Creature, error) {
	elements, err := p.ParseDataset(body)
	if err != nil {
		return nil, err
	}

	creatures := make([]*types.Creature, 0, len(elements))
	seen := make(map[int]struct{}, len(elements))
	skipped := 0

	for i, raw := range elements {
		creature, err := p.ParseRecord(raw)
		if err != nil {
			skipped++
			logger.Warn("skipping malformed record", zap.Int("index", i), zap.Error(err))
			continue
		}
		if _, dup := seen[creature.ID]; dup {
			skipped++
			logger.Warn("skipping duplicate id", zap.Int("index", i), zap.Int("id", creature.ID))
			continue
		}
		seen[creature.ID] = struct{}{}
		creatures = append(creatures, creature)
	}

	logger.Info("dataset loaded", zap.Int("records", len(creatures)), zap.Int("skipped", skipped))
	return creatures, nil
}
