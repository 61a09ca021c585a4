package archive

import (
	"encoding/json"
	"os"
	"time"
)

// Entry records one published curve date.
type Entry struct {
	PublishedAt time.Time `json:"published_at"`
	TenorCount  int       `json:"tenor_count"`
	Failures    int       `json:"failures"`
}

// State is the on-disk run index.
type State struct {
	Published     map[string]Entry `json:"published"`
	TotalRuns     int              `json:"total_runs"`
	TotalFailures int              `json:"total_failures"`
	LastRunAt     time.Time        `json:"last_run_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// LoadState reads the index from a JSON file. Returns a fresh state if the
// file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Published: make(map[string]Entry)}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Published == nil {
		state.Published = make(map[string]Entry)
	}
	return &state, nil
}

// SaveState writes the index to a JSON file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0o644)
}
