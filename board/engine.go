package board

// Engine is the rules engine a searcher drives. It owns sphere positions,
// reserves, turn order and phase transitions; callers treat its answers as
// authoritative and never validate them again.
//
// Every mutator has an inverse that takes the phase and color captured
// immediately before the forward call. Inverses must be applied in strict
// LIFO order.
type Engine interface {
	Locations() []Location
	Phase() Phase
	ColorOnTurn() Color

	// Occupant returns the sphere on l, or NoSphere.
	Occupant(l Location) SphereID
	InReserve(id SphereID) bool
	// LocationOf is only meaningful for placed spheres.
	LocationOf(id SphereID) (Location, bool)
	// Reserve returns some reserve sphere of c, if any is left.
	Reserve(c Color) (SphereID, bool)
	ReserveCount(c Color) int

	CanMoveTo(id SphereID, l Location) bool
	CanRemove(id SphereID) bool

	MoveSphere(id SphereID, to Location)
	UndoAddSphere(id SphereID, prevPhase Phase, prevColor Color)
	UndoMoveSphere(id SphereID, from Location, prevPhase Phase, prevColor Color)

	RemoveSphere(id SphereID)
	UndoRemoveFirstSphere(id SphereID, from Location, prevPhase Phase, prevColor Color)
	UndoRemoveSecondSphere(id SphereID, from Location, prevPhase Phase, prevColor Color)

	Pass()
	UndoPass(prevPhase Phase, prevColor Color)
}

// Occupancy fills mine/theirs with the cells held by c and its opponent.
func Occupancy(e Engine, c Color, mine, theirs *[NumLocations]bool) {
	for _, l := range e.Locations() {
		id := e.Occupant(l)
		mine[l.Index] = id != NoSphere && id.Color() == c
		theirs[l.Index] = id != NoSphere && id.Color() != c
	}
}
