// Package genesis maintains access to the genesis configuration.
package genesis

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"
)

// Genesis represents the genesis configuration for a chain.
type Genesis struct {
	Date       time.Time `json:"date"`
	ChainID    uint16    `json:"chain_id"`   // Unique id for this running network.
	Difficulty int       `json:"difficulty"` // Number of leading '0' hex characters required of the proof digest.
}

// Default returns the genesis configuration used when no genesis file is
// present. The difficulty of 4 keeps mining fast enough for an educational
// network while still being observable work.
func Default() Genesis {
	return Genesis{
		Date:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		ChainID:    1,
		Difficulty: 4,
	}
}

// Load opens and consumes the genesis file. A missing file falls back to the
// defaults so a fresh node starts clean.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
