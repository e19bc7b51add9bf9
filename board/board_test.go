package board

import (
	"testing"

	"github.com/matryer/is"
)

func TestGeometry(t *testing.T) {
	is := is.New(t)
	is.Equal(len(Locations()), NumLocations)
	for i, l := range Locations() {
		is.Equal(l.Index, i)
		got, ok := LocationAt(l.Z, l.X, l.Y)
		is.True(ok)
		is.Equal(got, l)
	}
	top, ok := LocationAt(3, 0, 0)
	is.True(ok)
	is.Equal(top.Index, NumLocations-1)

	_, ok = LocationAt(1, 3, 0)
	is.True(!ok)
}

func TestSupportTables(t *testing.T) {
	is := is.New(t)
	for _, l := range Locations() {
		if l.Z == 0 {
			is.Equal(len(Below(l)), 0)
		} else {
			is.Equal(len(Below(l)), 4)
			for _, b := range Below(l) {
				is.True(Supports(LocationByIndex(b), l))
			}
		}
	}
	// A center base cell supports four cells above it; a corner supports one.
	center, _ := LocationAt(0, 1, 1)
	corner, _ := LocationAt(0, 0, 0)
	is.Equal(len(Above(center)), 4)
	is.Equal(len(Above(corner)), 1)

	top, _ := LocationAt(3, 0, 0)
	is.Equal(len(Above(top)), 0)
}

func TestSquares(t *testing.T) {
	is := is.New(t)
	perLayer := map[int]int{}
	for s := 0; s < NumSquares; s++ {
		cells := Square(s)
		z := LocationByIndex(cells[0]).Z
		perLayer[z]++
		for _, c := range cells {
			is.Equal(LocationByIndex(c).Z, z)
		}
	}
	is.Equal(perLayer, map[int]int{0: 9, 1: 4, 2: 1})

	center, _ := LocationAt(0, 1, 1)
	is.Equal(len(SquaresContaining(center)), 4)
	top, _ := LocationAt(3, 0, 0)
	is.Equal(len(SquaresContaining(top)), 0)
}

func TestSphereIDs(t *testing.T) {
	is := is.New(t)
	is.Equal(len(SpheresOf(Light)), SpheresPerColor)
	is.Equal(len(SpheresOf(Dark)), SpheresPerColor)
	is.Equal(SphereID(0).Color(), Light)
	is.Equal(SphereID(14).Color(), Light)
	is.Equal(SphereID(15).Color(), Dark)
	is.Equal(NoSphere.Color(), NoColor)
	is.Equal(SphereID(16).String(), "D1")
	is.Equal(Light.Other(), Dark)
}

func TestParseLocation(t *testing.T) {
	is := is.New(t)
	l, err := ParseLocation("1:2:0")
	is.NoErr(err)
	is.Equal(l.String(), "1:2:0")

	_, err = ParseLocation("3:1:0")
	is.True(err != nil)
	_, err = ParseLocation("nonsense")
	is.True(err != nil)
}

func TestParsePhase(t *testing.T) {
	is := is.New(t)
	for p := PhaseMove; p <= PhaseCompleted; p++ {
		got, err := ParsePhase(p.String())
		is.NoErr(err)
		is.Equal(got, p)
	}
	_, err := ParsePhase("bogus")
	is.True(err != nil)
}
