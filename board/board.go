// Package board holds the fixed geometry of the Pylos pyramid and the small
// set of value types that every other package speaks in: locations, colors,
// phases and sphere identifiers.
package board

import "fmt"

const (
	// NumLayers is the height of the pyramid.
	NumLayers = 4
	// NumLocations is 4*4 + 3*3 + 2*2 + 1*1.
	NumLocations = 30
	// SpheresPerColor is the starting reserve of each side.
	SpheresPerColor = 15
	NumSpheres      = 2 * SpheresPerColor
	// NumSquares is the number of unit cells across all layers (9 + 4 + 1).
	NumSquares = 14
)

type Color int8

const (
	Light Color = iota
	Dark
	NoColor
)

func (c Color) Other() Color {
	switch c {
	case Light:
		return Dark
	case Dark:
		return Light
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case Light:
		return "light"
	case Dark:
		return "dark"
	}
	return "none"
}

// Phase is the state machine position of a game. Only the engine moves it
// forward; searchers read it.
type Phase int8

const (
	PhaseMove Phase = iota
	PhaseRemoveFirst
	PhaseRemoveSecond
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseMove:
		return "move"
	case PhaseRemoveFirst:
		return "remove1"
	case PhaseRemoveSecond:
		return "remove2"
	case PhaseCompleted:
		return "done"
	}
	return "unknown"
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, error) {
	for p := PhaseMove; p <= PhaseCompleted; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return PhaseMove, fmt.Errorf("unknown phase %q", s)
}

// SphereID is a stable index into the arena of 30 spheres. Light owns
// 0..14 and Dark owns 15..29.
type SphereID int8

const NoSphere SphereID = -1

func (id SphereID) Color() Color {
	switch {
	case id < 0 || id >= NumSpheres:
		return NoColor
	case id < SpheresPerColor:
		return Light
	}
	return Dark
}

func (id SphereID) String() string {
	if id == NoSphere {
		return "-"
	}
	if id.Color() == Light {
		return fmt.Sprintf("L%d", int(id))
	}
	return fmt.Sprintf("D%d", int(id)-SpheresPerColor)
}

var spheresByColor [2][]SphereID

// SpheresOf returns the IDs of all spheres of c, reserve or placed, in
// ascending order. The slice is shared and must not be modified.
func SpheresOf(c Color) []SphereID {
	if c != Light && c != Dark {
		return nil
	}
	return spheresByColor[c]
}

func init() {
	for i := 0; i < NumSpheres; i++ {
		id := SphereID(i)
		spheresByColor[id.Color()] = append(spheresByColor[id.Color()], id)
	}
	initGeometry()
}
