package paper

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ChartPulse/internal/model"
)

// LoadState reads the paper state from a JSON file. Returns a zero state if the file doesn't exist.
func LoadState(filePath string) (*model.PaperState, error) {
	if filePath == "" {
		return &model.PaperState{}, nil
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.PaperState{}, nil
		}
		return nil, fmt.Errorf("read paper state: %w", err)
	}
	var state model.PaperState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse paper state %s: %w", filePath, err)
	}
	return &state, nil
}

// SaveState writes the paper state to a JSON file. An empty path keeps state in memory only.
func SaveState(filePath string, state *model.PaperState) error {
	state.UpdatedAt = time.Now()
	if filePath == "" {
		return nil
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filePath)
}
