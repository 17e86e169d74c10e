package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
)

// DatasetFileName mirrors reader.DatasetFileName. It is not imported from
// there because the reader's in-package tests import this package.
const DatasetFileName = "pokemon.json"

// CreateSampleDatasetFile creates a sample pokemon.json in dir
func CreateSampleDatasetFile(dir string) (string, error) {
	return writeDataset(dir, DatasetJSON(SampleDataset()))
}

// CreateCorruptedDatasetFile creates a pokemon.json that is not valid JSON
func CreateCorruptedDatasetFile(dir string) (string, error) {
	return writeDataset(dir, []byte(`[{"id": 1, "name": {"english": "Bulba`))
}

// CreateMalformedDatasetFile creates a pokemon.json with some bad records
func CreateMalformedDatasetFile(dir string) (string, error) {
	return writeDataset(dir, MalformedDatasetJSON())
}

func writeDataset(dir string, data []byte) (string, error) {
	filename := filepath.Join(dir, DatasetFileName)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write dataset file: %w", err)
	}
	return filename, nil
}
