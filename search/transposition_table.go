package search

import (
	"math"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/pylos/move"
)

const (
	TTExact = 0x01
	TTLower = 0x02
	TTUpper = 0x03
)

// entrySize is the padded size of a TableEntry in bytes.
const entrySize = 24

const (
	DefaultSizePowerOf2 = 20
	minSizePowerOf2     = 16
	maxSizePowerOf2     = 24
)

type TableEntry struct {
	key   uint64
	value float64
	play  uint16
	depth int8
	flag  uint8
}

func (t TableEntry) valid() bool {
	// a table flag is 1, 2, or 3.
	return t.flag != 0
}

func (t TableEntry) Value() float64 { return t.value }
func (t TableEntry) Depth() int     { return int(t.depth) }
func (t TableEntry) Flag() uint8    { return t.flag }

// Move is the best move recorded for the position, or move.None.
func (t TableEntry) Move() move.Move {
	if t.play == 0 {
		return move.None
	}
	return move.Unpack(t.play)
}

// TranspositionTable is a fixed-size, directly indexed table owned by a
// single solver. It is not safe for concurrent writers.
type TranspositionTable struct {
	table        []TableEntry
	created      atomic.Uint64
	lookups      atomic.Uint64
	hits         atomic.Uint64
	sizePowerOf2 int
	sizeMask     uint64
	// "type 2" collisions: the slot is taken by an unrelated position that
	// shares the same low bits.
	t2collisions atomic.Uint64
}

func NewTranspositionTable(sizePowerOf2 int) *TranspositionTable {
	t := &TranspositionTable{}
	t.Reset(sizePowerOf2)
	return t
}

func (t *TranspositionTable) lookup(key uint64) TableEntry {
	t.lookups.Add(1)
	idx := key & t.sizeMask
	e := t.table[idx]
	if e.key != key || !e.valid() {
		if e.valid() {
			// There is another unrelated node at this position.
			t.t2collisions.Add(1)
		}
		return TableEntry{}
	}
	t.hits.Add(1)
	return e
}

// Probe returns a value only if it can be used as-is: the stored search was
// at least as deep and its bound settles the (alpha, beta) window.
func (t *TranspositionTable) Probe(key uint64, depth int, alpha, beta float64) (float64, bool) {
	e := t.lookup(key)
	if !e.valid() || int(e.depth) < depth {
		return 0, false
	}
	switch e.flag {
	case TTExact:
		return e.value, true
	case TTLower:
		if e.value >= beta {
			return e.value, true
		}
	case TTUpper:
		if e.value <= alpha {
			return e.value, true
		}
	}
	return 0, false
}

// BestMove returns the move stored for exactly this key, if any. It does
// not count as a lookup.
func (t *TranspositionTable) BestMove(key uint64) (move.Move, bool) {
	e := t.table[key&t.sizeMask]
	if !e.valid() || e.key != key || e.play == 0 {
		return move.None, false
	}
	return move.Unpack(e.play), true
}

// Entry returns the raw entry for key, if present.
func (t *TranspositionTable) Entry(key uint64) (TableEntry, bool) {
	e := t.table[key&t.sizeMask]
	if !e.valid() || e.key != key {
		return TableEntry{}, false
	}
	return e, true
}

// Store classifies value against the original window and writes it unless
// the slot holds a deeper search.
func (t *TranspositionTable) Store(key uint64, depth int, value, alphaOrig, beta float64, best move.Move) {
	flag := uint8(TTExact)
	if value <= alphaOrig {
		flag = TTUpper
	} else if value >= beta {
		flag = TTLower
	}
	idx := key & t.sizeMask
	if old := t.table[idx]; old.valid() && int(old.depth) > depth {
		return
	}
	var play uint16
	if !best.IsNone() {
		play = best.Pack()
	}
	t.table[idx] = TableEntry{key: key, value: value, play: play, depth: int8(depth), flag: flag}
	t.created.Add(1)
}

func (t *TranspositionTable) clampPower(p int) int {
	if p < minSizePowerOf2 {
		return minSizePowerOf2
	}
	if p > maxSizePowerOf2 {
		return maxSizePowerOf2
	}
	return p
}

// Reset clears the table, reallocating it if the size changes.
func (t *TranspositionTable) Reset(sizePowerOf2 int) {
	t.sizePowerOf2 = t.clampPower(sizePowerOf2)
	numElems := 1 << t.sizePowerOf2
	t.sizeMask = uint64(numElems - 1)
	reset := false
	if t.table != nil && len(t.table) == numElems {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]TableEntry, numElems)
	}
	log.Debug().Int("num-elems", numElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Bool("reset", reset).
		Msg("transposition-table-size")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.t2collisions.Store(0)
}

// ResetForMemory sizes the table to the largest power of two that fits in
// the given fraction of system memory, within the supported bounds.
func (t *TranspositionTable) ResetForMemory(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	p := minSizePowerOf2
	if desiredNElems >= 1 {
		p = int(math.Log2(desiredNElems))
	}
	log.Info().Float64("desired-num-elems", desiredNElems).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("sizing-transposition-table")
	t.Reset(p)
}

func (t *TranspositionTable) SizePowerOf2() int { return t.sizePowerOf2 }

// Stats is a snapshot of the table counters.
type Stats struct {
	Created      uint64
	Lookups      uint64
	Hits         uint64
	T2Collisions uint64
}

func (t *TranspositionTable) Stats() Stats {
	return Stats{
		Created:      t.created.Load(),
		Lookups:      t.lookups.Load(),
		Hits:         t.hits.Load(),
		T2Collisions: t.t2collisions.Load(),
	}
}
