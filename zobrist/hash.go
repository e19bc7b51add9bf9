// Package zobrist fingerprints Pylos positions for the transposition
// table. Despite the name the keys are not random: each cell key is an
// FNV-1a digest of its coordinates, finalized with a splitmix step, so the
// same position hashes the same in every process.
package zobrist

import "github.com/domino14/pylos/board"

const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211

	// added to a cell's digest depending on who owns the sphere on it
	moverSalt    = 0x51ED270B27FB5A3D
	opponentSalt = 0x2545F4914F6CDD1D

	sideMix  = 0x9E3779B97F4A7C15
	phaseMix = 0xBF58476D1CE4E5B9
)

// cellKeys[i][0] is used when the side to move owns the sphere on cell i,
// cellKeys[i][1] when the opponent does.
var cellKeys [board.NumLocations][2]uint64

func init() {
	for _, l := range board.Locations() {
		d := uint64(fnvOffset)
		for _, b := range []int{l.Z, l.X, l.Y} {
			d ^= uint64(b)
			d *= fnvPrime
		}
		cellKeys[l.Index][0] = hashUint64((d + moverSalt) * fnvPrime)
		cellKeys[l.Index][1] = hashUint64((d + opponentSalt) * fnvPrime)
	}
}

// https://stackoverflow.com/a/12996028/1737333
func hashUint64(x uint64) uint64 {
	x = (x ^ (x >> 30)) * uint64(0xbf58476d1ce4e5b9)
	x = (x ^ (x >> 27)) * uint64(0x94d049bb133111eb)
	x = x ^ (x >> 31)
	return x
}

// CellKey is the contribution of a sphere on l. mover is true if it
// belongs to the side to move.
func CellKey(l board.Location, mover bool) uint64 {
	if mover {
		return cellKeys[l.Index][0]
	}
	return cellKeys[l.Index][1]
}

// Hash fingerprints the placed spheres, the side to move and the phase.
// Reserve spheres contribute nothing. Cell keys are XORed together so the
// order spheres are visited in never matters.
func Hash(e board.Engine) uint64 {
	stm := e.ColorOnTurn()
	key := uint64(fnvOffset)
	for _, l := range e.Locations() {
		id := e.Occupant(l)
		if id == board.NoSphere {
			continue
		}
		key ^= CellKey(l, id.Color() == stm)
	}
	key ^= (uint64(stm) + 1) * sideMix
	key ^= (uint64(e.Phase()) + 1) * phaseMix
	return key
}
