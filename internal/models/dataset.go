// file: internal/models/dataset.go
// version: 1.0.0
// guid: 2a6b8c0d-4e5f-4a1b-9c2d-3e4f5a6b7c8d

package models

import (
	"time"

	"github.com/jdfalk/pokematch/internal/engine"
)

// Dataset is one named pair of ordered name lists, as loaded from disk.
// Exemptions overrides the global exemption list when non-nil.
type Dataset struct {
	Name       string   `json:"name"`
	Creatures  []string `json:"creatures"`
	Moves      []string `json:"moves"`
	Exemptions []string `json:"exemptions,omitempty"`
}

// CreatureMatches pairs one creature with its selected moves.
type CreatureMatches struct {
	Creature string         `json:"creature"`
	Matches  []engine.Match `json:"matches"`
}

// Result is a computed match mapping for one dataset, with creatures in
// dataset order so repeated responses are byte-identical.
type Result struct {
	Dataset    string            `json:"dataset"`
	Creatures  []CreatureMatches `json:"creatures"`
	MoveCount  int               `json:"move_count"`
	ComputedAt time.Time         `json:"computed_at"`
}

// NewResult flattens an engine mapping into a Result, preserving the
// dataset's creature order.
func NewResult(ds Dataset, mapping engine.Mapping) Result {
	result := Result{
		Dataset:    ds.Name,
		Creatures:  make([]CreatureMatches, 0, len(ds.Creatures)),
		MoveCount:  len(ds.Moves),
		ComputedAt: time.Now().UTC(),
	}
	for _, creature := range ds.Creatures {
		result.Creatures = append(result.Creatures, CreatureMatches{
			Creature: creature,
			Matches:  mapping[creature],
		})
	}
	return result
}
