package game

import (
	"github.com/cespare/xxhash"

	"github.com/domino14/pylos/move"
	"github.com/domino14/pylos/notation"
)

type historyEntry struct {
	undo move.Undo
	key  uint64
}

// positionKey hashes the notation of the current position. Sphere IDs do
// not matter, only which color sits where.
func (g *Game) positionKey() uint64 {
	return xxhash.Sum64String(notation.Format(g))
}

func (g *Game) resetHistory() {
	g.history = g.history[:0]
	g.turnnum = 0
	g.seen = map[uint64]int{g.positionKey(): 1}
}

func (g *Game) record(u move.Undo) {
	k := g.positionKey()
	g.history = append(g.history, historyEntry{undo: u, key: k})
	g.seen[k]++
	g.turnnum++
}

func (g *Game) forgetCurrent() {
	k := g.history[len(g.history)-1].key
	g.seen[k]--
	if g.seen[k] <= 0 {
		delete(g.seen, k)
	}
}

// Repetitions returns how many times the current position has occurred in
// this game, counting the current occurrence.
func (g *Game) Repetitions() int {
	return g.seen[g.positionKey()]
}
