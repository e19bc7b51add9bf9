package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Location is one cell of the pyramid. Index is dense in [0, NumLocations),
// layer 0 first, then row-major by X and Y.
type Location struct {
	Z, X, Y int
	Index   int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d:%d", l.Z, l.X, l.Y)
}

// LayerSize is the side length of layer z.
func LayerSize(z int) int {
	return NumLayers - z
}

var (
	locations   []Location
	layerOffset [NumLayers]int
	// below[i] holds the four cells that support location i (empty on layer 0).
	below [NumLocations][]int
	// above[i] holds the cells that location i helps support.
	above [NumLocations][]int
	// squares[s] holds the four cells of unit cell s.
	squares [NumSquares][4]int
	// squaresOf[i] lists the unit cells that contain location i.
	squaresOf [NumLocations][]int
)

func initGeometry() {
	idx := 0
	for z := 0; z < NumLayers; z++ {
		layerOffset[z] = idx
		n := LayerSize(z)
		for x := 0; x < n; x++ {
			for y := 0; y < n; y++ {
				locations = append(locations, Location{Z: z, X: x, Y: y, Index: idx})
				idx++
			}
		}
	}
	for _, l := range locations {
		if l.Z == 0 {
			continue
		}
		for dx := 0; dx < 2; dx++ {
			for dy := 0; dy < 2; dy++ {
				b := indexOf(l.Z-1, l.X+dx, l.Y+dy)
				below[l.Index] = append(below[l.Index], b)
				above[b] = append(above[b], l.Index)
			}
		}
	}
	s := 0
	for z := 0; z < NumLayers-1; z++ {
		n := LayerSize(z)
		for x := 0; x < n-1; x++ {
			for y := 0; y < n-1; y++ {
				squares[s] = [4]int{
					indexOf(z, x, y), indexOf(z, x+1, y),
					indexOf(z, x, y+1), indexOf(z, x+1, y+1),
				}
				for _, c := range squares[s] {
					squaresOf[c] = append(squaresOf[c], s)
				}
				s++
			}
		}
	}
}

func indexOf(z, x, y int) int {
	n := LayerSize(z)
	return layerOffset[z] + x*n + y
}

// Locations returns every cell of the pyramid in index order. The slice is
// shared and must not be modified.
func Locations() []Location {
	return locations
}

// LocationAt returns the cell at (z, x, y).
func LocationAt(z, x, y int) (Location, bool) {
	if z < 0 || z >= NumLayers {
		return Location{}, false
	}
	n := LayerSize(z)
	if x < 0 || x >= n || y < 0 || y >= n {
		return Location{}, false
	}
	return locations[indexOf(z, x, y)], true
}

// LocationByIndex returns the cell with the given dense index.
func LocationByIndex(i int) Location {
	return locations[i]
}

// ParseLocation reads the "z:x:y" form produced by Location.String.
func ParseLocation(s string) (Location, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Location{}, fmt.Errorf("location %q: want z:x:y", s)
	}
	var coords [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return Location{}, fmt.Errorf("location %q: %w", s, err)
		}
		coords[i] = v
	}
	l, ok := LocationAt(coords[0], coords[1], coords[2])
	if !ok {
		return Location{}, fmt.Errorf("location %q is off the board", s)
	}
	return l, nil
}

// Below returns the cells supporting l; nil on the base layer.
func Below(l Location) []int {
	return below[l.Index]
}

// Above returns the cells that l helps support.
func Above(l Location) []int {
	return above[l.Index]
}

// Square returns the four cells of unit cell s.
func Square(s int) [4]int {
	return squares[s]
}

// SquaresContaining returns the unit cells that include l.
func SquaresContaining(l Location) []int {
	return squaresOf[l.Index]
}

// Supports reports whether a sphere at l is one of the four holding up top.
func Supports(l, top Location) bool {
	for _, b := range below[top.Index] {
		if b == l.Index {
			return true
		}
	}
	return false
}
