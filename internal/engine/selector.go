// file: internal/engine/selector.go
// version: 1.1.0
// guid: 8b0c4d2e-6f1a-4b3c-9d5e-7a8f0b1c2d3e

package engine

// Match is one selected move for a creature. Start and Length delimit the
// matched range inside Move (move[Start : Start+Length]) so a consumer can
// highlight it. Secondary marks entries added by the exemption fallback.
type Match struct {
	Move      string `json:"move"`
	Length    int    `json:"length"`
	Start     int    `json:"start"`
	Secondary bool   `json:"secondary"`
}

// Mapping holds the selected matches per creature. Every scanned creature is
// present, with an empty (non-nil) slice when nothing matched.
type Mapping map[string][]Match

// ExemptionSet holds move names disfavored as a sole best match.
type ExemptionSet map[string]struct{}

// DefaultExemptions lists the moves that never reduce a target to zero and
// therefore should not stand alone as the only suggestion.
var DefaultExemptions = []string{"False Swipe", "Pain Split"}

// NewExemptionSet builds an ExemptionSet from move names.
func NewExemptionSet(moves ...string) ExemptionSet {
	set := make(ExemptionSet, len(moves))
	for _, m := range moves {
		set[m] = struct{}{}
	}
	return set
}

// Contains reports whether move is in the set.
func (e ExemptionSet) Contains(move string) bool {
	_, ok := e[move]
	return ok
}

// BestMatches scores every move against every creature and reduces the
// results per creature: keep the moves with the longest aligned run, prefer
// runs that start at the move's first character, and when only exempted
// moves survive, widen with the best-scoring non-exempt alternative(s),
// marked Secondary. The reduction is deterministic for a given input order.
func BestMatches(creatures, moves []string, exempt ExemptionSet) Mapping {
	mapping := make(Mapping, len(creatures))
	for _, creature := range creatures {
		mapping[creature] = selectForCreature(creature, moves, exempt)
	}
	return mapping
}

func selectForCreature(creature string, moves []string, exempt ExemptionSet) []Match {
	var candidates []Match
	maxLen := 0
	for _, move := range moves {
		length, start := Score(move, creature)
		if length == 0 {
			continue
		}
		candidates = append(candidates, Match{Move: move, Length: length, Start: start})
		if length > maxLen {
			maxLen = length
		}
	}
	if len(candidates) == 0 {
		return []Match{}
	}

	// Keep only the top length tier.
	tier := candidates[:0:0]
	zeroStart := false
	for _, cand := range candidates {
		if cand.Length != maxLen {
			continue
		}
		tier = append(tier, cand)
		if cand.Start == 0 {
			zeroStart = true
		}
	}

	// A run beginning at the move's first character beats any mid-move run.
	// Ties between two non-zero starts are deliberately left un-narrowed.
	if zeroStart {
		filtered := tier[:0:0]
		for _, cand := range tier {
			if cand.Start == 0 {
				filtered = append(filtered, cand)
			}
		}
		tier = filtered
	}

	allExempt := true
	for _, cand := range tier {
		if !exempt.Contains(cand.Move) {
			allExempt = false
			break
		}
	}
	if allExempt {
		tier = append(tier, secondaryScan(creature, moves, tier, exempt)...)
	}
	return tier
}

// secondaryScan rescans moves not already selected and not exempt, keeping
// the entries that share the best length and, among those, the smallest
// start. Several moves can tie on both; all of them are returned.
func secondaryScan(creature string, moves []string, selected []Match, exempt ExemptionSet) []Match {
	chosen := make(map[string]struct{}, len(selected))
	for _, cand := range selected {
		chosen[cand.Move] = struct{}{}
	}

	var pool []Match
	maxLen := 0
	for _, move := range moves {
		if _, ok := chosen[move]; ok {
			continue
		}
		if exempt.Contains(move) {
			continue
		}
		length, start := Score(move, creature)
		if length == 0 {
			continue
		}
		pool = append(pool, Match{Move: move, Length: length, Start: start, Secondary: true})
		if length > maxLen {
			maxLen = length
		}
	}
	if len(pool) == 0 {
		return nil
	}

	minStart := -1
	for _, cand := range pool {
		if cand.Length != maxLen {
			continue
		}
		if minStart == -1 || cand.Start < minStart {
			minStart = cand.Start
		}
	}

	var out []Match
	for _, cand := range pool {
		if cand.Length == maxLen && cand.Start == minStart {
			out = append(out, cand)
		}
	}
	return out
}
