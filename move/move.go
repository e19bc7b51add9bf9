package move

import (
	"fmt"
	"strings"

	"github.com/domino14/pylos/board"
)

// MoveType is the kind of action a move performs.
type MoveType uint8

const (
	MoveTypeNone MoveType = iota
	MoveTypePlace
	MoveTypeLift
	MoveTypeRemove
	MoveTypePass
)

func (t MoveType) String() string {
	switch t {
	case MoveTypePlace:
		return "place"
	case MoveTypeLift:
		return "lift"
	case MoveTypeRemove:
		return "remove"
	case MoveTypePass:
		return "pass"
	}
	return "none"
}

// Move is a small value; copy it freely. To is only meaningful for place
// and lift.
type Move struct {
	action MoveType
	sphere board.SphereID
	to     board.Location
}

// None is the "no action" move returned when a player has nothing to do.
var None = Move{action: MoveTypeNone, sphere: board.NoSphere}

func NewPlace(id board.SphereID, to board.Location) Move {
	return Move{action: MoveTypePlace, sphere: id, to: to}
}

func NewLift(id board.SphereID, to board.Location) Move {
	return Move{action: MoveTypeLift, sphere: id, to: to}
}

func NewRemove(id board.SphereID) Move {
	return Move{action: MoveTypeRemove, sphere: id}
}

func NewPass() Move {
	return Move{action: MoveTypePass, sphere: board.NoSphere}
}

func (m Move) Action() MoveType       { return m.action }
func (m Move) Sphere() board.SphereID { return m.sphere }
func (m Move) To() board.Location     { return m.to }
func (m Move) IsNone() bool           { return m.action == MoveTypeNone }

// Equals compares action, sphere and destination.
func (m Move) Equals(o Move) bool {
	if m.action != o.action || m.sphere != o.sphere {
		return false
	}
	if m.action == MoveTypePlace || m.action == MoveTypeLift {
		return m.to.Index == o.to.Index
	}
	return true
}

func (m Move) String() string {
	switch m.action {
	case MoveTypePlace, MoveTypeLift:
		return fmt.Sprintf("%s %s %s", m.action, m.sphere, m.to)
	case MoveTypeRemove:
		return fmt.Sprintf("remove %s", m.sphere)
	case MoveTypePass:
		return "pass"
	}
	return "none"
}

// ShortDescription omits the sphere for placements, since any reserve
// sphere of the mover is interchangeable.
func (m Move) ShortDescription() string {
	if m.action == MoveTypePlace {
		return m.to.String()
	}
	if m.action == MoveTypeLift {
		return m.sphere.String() + ">" + m.to.String()
	}
	return m.String()
}

// Pack squeezes the move into 16 bits for storage in table entries:
// action in the top 4 bits, sphere (+1) in the next 6, destination index
// (+1) in the low 6.
func (m Move) Pack() uint16 {
	to := 0
	if m.action == MoveTypePlace || m.action == MoveTypeLift {
		to = m.to.Index + 1
	}
	return uint16(m.action)<<12 | uint16(int(m.sphere)+1)<<6 | uint16(to)
}

// Unpack is the inverse of Pack.
func Unpack(p uint16) Move {
	m := Move{
		action: MoveType(p >> 12),
		sphere: board.SphereID(int((p>>6)&0x3f) - 1),
	}
	if to := int(p & 0x3f); to > 0 {
		m.to = board.LocationByIndex(to - 1)
	}
	return m
}

// FromString parses the forms produced by String and ShortDescription.
// For bare locations the mover's next reserve sphere is used.
func FromString(e board.Engine, s string) (Move, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(fields) == 0 {
		return None, fmt.Errorf("empty move")
	}
	switch fields[0] {
	case "pass":
		return NewPass(), nil
	case "none":
		return None, nil
	case "remove":
		if len(fields) != 2 {
			return None, fmt.Errorf("remove needs a sphere: %q", s)
		}
		id, err := parseSphere(e, fields[1])
		if err != nil {
			return None, err
		}
		return NewRemove(id), nil
	case "place":
		switch len(fields) {
		case 2:
			return reservePlacement(e, fields[1])
		case 3:
			id, err := parseSphere(e, fields[1])
			if err != nil {
				return None, err
			}
			to, err := board.ParseLocation(fields[2])
			if err != nil {
				return None, err
			}
			return NewPlace(id, to), nil
		}
		return None, fmt.Errorf("place needs a location: %q", s)
	case "lift":
		if len(fields) != 3 {
			return None, fmt.Errorf("lift needs a sphere and a location: %q", s)
		}
		id, err := parseSphere(e, fields[1])
		if err != nil {
			return None, err
		}
		to, err := board.ParseLocation(fields[2])
		if err != nil {
			return None, err
		}
		return NewLift(id, to), nil
	}
	if len(fields) == 1 {
		if from, to, ok := strings.Cut(fields[0], ">"); ok {
			return FromString(e, "lift "+from+" "+to)
		}
		return reservePlacement(e, fields[0])
	}
	return None, fmt.Errorf("cannot parse move %q", s)
}

func reservePlacement(e board.Engine, loc string) (Move, error) {
	to, err := board.ParseLocation(loc)
	if err != nil {
		return None, err
	}
	id, ok := e.Reserve(e.ColorOnTurn())
	if !ok {
		return None, fmt.Errorf("%s has no reserve spheres", e.ColorOnTurn())
	}
	return NewPlace(id, to), nil
}

// parseSphere accepts "l3"/"d0" style names, or a location whose occupant
// is taken.
func parseSphere(e board.Engine, s string) (board.SphereID, error) {
	if strings.Contains(s, ":") {
		l, err := board.ParseLocation(s)
		if err != nil {
			return board.NoSphere, err
		}
		id := e.Occupant(l)
		if id == board.NoSphere {
			return board.NoSphere, fmt.Errorf("no sphere at %s", l)
		}
		return id, nil
	}
	var n int
	var c byte
	if _, err := fmt.Sscanf(s, "%c%d", &c, &n); err != nil {
		return board.NoSphere, fmt.Errorf("bad sphere %q: %w", s, err)
	}
	if n < 0 || n >= board.SpheresPerColor {
		return board.NoSphere, fmt.Errorf("sphere number out of range: %q", s)
	}
	switch c {
	case 'l':
		return board.SphereID(n), nil
	case 'd':
		return board.SphereID(n + board.SpheresPerColor), nil
	}
	return board.NoSphere, fmt.Errorf("bad sphere color in %q", s)
}
