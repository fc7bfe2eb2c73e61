// Package corpus loads raw feeds and normalizes them into episodes.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"castgrid/internal/model"
)

// LoadFile reads a raw corpus feed from a JSON file.
func LoadFile(path string) (model.RawCorpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.RawCorpus{}, fmt.Errorf("failed to read corpus: %w", err)
	}
	var raw model.RawCorpus
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.RawCorpus{}, fmt.Errorf("failed to decode corpus: %w", err)
	}
	return raw, nil
}
