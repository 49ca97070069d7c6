// file: internal/engine/score.go
// version: 1.0.0
// guid: 3e1f5a2b-9c4d-4e8f-a10b-6d2c7f8e9a0b

package engine

import "strings"

// NoStart is the start offset reported when a move has no alignment at all.
const NoStart = -1

// Score computes the best contiguous case-insensitive run within move that
// matches a prefix of creature. Only the start offset inside the move varies;
// the creature is always compared from its own first character. It returns
// the run length and the offset at which the run starts inside the move.
// Ties on length resolve to the earliest start. A move with no aligned
// characters anywhere returns (0, NoStart).
func Score(move, creature string) (length, start int) {
	m := []rune(strings.ToLower(move))
	c := []rune(strings.ToLower(creature))

	length = 0
	start = NoStart
	for s := 0; s < len(m); s++ {
		run := 0
		for s+run < len(m) && run < len(c) && m[s+run] == c[run] {
			run++
		}
		if run > length {
			length = run
			start = s
		}
	}
	return length, start
}
