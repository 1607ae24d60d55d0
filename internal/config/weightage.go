package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// WeightageTable maps a year of a candidate's timeline (1..N) to the weight a
// skill exercised in that year contributes. Loaded once at process start and
// read-only thereafter. The raw file may also carry a "max" key.
type WeightageTable struct {
	weights map[int]float64
	max     float64
}

// LoadWeightageTable reads the year-weightage JSON table from disk.
// The file is a flat object of string year keys to numeric weights,
// e.g. {"1": 1.0, "2": 0.9, "max": 1.0}.
func LoadWeightageTable(path string) (*WeightageTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weightage file %s: %w", path, err)
	}

	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse weightage JSON: %w", err)
	}

	return NewWeightageTable(raw)
}

// NewWeightageTable builds a table from the raw string-keyed form.
// Keys that are neither integers nor "max" are rejected.
func NewWeightageTable(raw map[string]float64) (*WeightageTable, error) {
	t := &WeightageTable{weights: make(map[int]float64, len(raw))}
	for key, weight := range raw {
		if key == "max" {
			t.max = weight
			continue
		}
		year, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid weightage key %q: %w", key, err)
		}
		if year < 1 {
			return nil, fmt.Errorf("invalid weightage year %d: must be >= 1", year)
		}
		t.weights[year] = weight
	}
	return t, nil
}

// Weight returns the multiplier for the given year.
// Years absent from the table default to 1.
func (t *WeightageTable) Weight(year int) float64 {
	if w, ok := t.weights[year]; ok {
		return w
	}
	return 1
}

// Max returns the "max" weight from the table, or 1 if absent.
func (t *WeightageTable) Max() float64 {
	if t.max == 0 {
		return 1
	}
	return t.max
}

// Years returns the number of explicit year entries in the table.
func (t *WeightageTable) Years() int {
	return len(t.weights)
}
