package goboard

import (
	"sort"

	"baduk/internal/gotypes"
)

type pointSet map[gotypes.Point]struct{}

func newPointSet(points ...gotypes.Point) pointSet {
	s := make(pointSet, len(points))
	for _, p := range points {
		s[p] = struct{}{}
	}
	return s
}

func (s pointSet) sorted() []gotypes.Point {
	out := make([]gotypes.Point, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// GoString is a maximal chain of connected stones of one colour together
// with its liberties. A GoString is never modified once it is on a board;
// every change builds a new one, so boards can share them freely.
type GoString struct {
	Color     gotypes.Player
	stones    pointSet
	liberties pointSet
}

func newGoString(color gotypes.Player, stones, liberties pointSet) *GoString {
	return &GoString{Color: color, stones: stones, liberties: liberties}
}

// Stones returns the member points in row-major order.
func (s *GoString) Stones() []gotypes.Point { return s.stones.sorted() }

// Liberties returns the liberties in row-major order.
func (s *GoString) Liberties() []gotypes.Point { return s.liberties.sorted() }

func (s *GoString) NumStones() int    { return len(s.stones) }
func (s *GoString) NumLiberties() int { return len(s.liberties) }

func (s *GoString) HasStone(p gotypes.Point) bool {
	_, ok := s.stones[p]
	return ok
}

func (s *GoString) HasLiberty(p gotypes.Point) bool {
	_, ok := s.liberties[p]
	return ok
}

func (s *GoString) withoutLiberty(p gotypes.Point) *GoString {
	libs := make(pointSet, len(s.liberties))
	for l := range s.liberties {
		if l != p {
			libs[l] = struct{}{}
		}
	}
	return newGoString(s.Color, s.stones, libs)
}

func (s *GoString) withLiberty(p gotypes.Point) *GoString {
	libs := make(pointSet, len(s.liberties)+1)
	for l := range s.liberties {
		libs[l] = struct{}{}
	}
	libs[p] = struct{}{}
	return newGoString(s.Color, s.stones, libs)
}

// mergedWith joins two same-coloured strings. Liberties occupied by the
// combined stones are dropped.
func (s *GoString) mergedWith(other *GoString) *GoString {
	if other.Color != s.Color {
		panic("goboard: merging strings of different colours")
	}
	stones := make(pointSet, len(s.stones)+len(other.stones))
	for p := range s.stones {
		stones[p] = struct{}{}
	}
	for p := range other.stones {
		stones[p] = struct{}{}
	}
	libs := make(pointSet, len(s.liberties)+len(other.liberties))
	for _, set := range []pointSet{s.liberties, other.liberties} {
		for p := range set {
			if _, taken := stones[p]; !taken {
				libs[p] = struct{}{}
			}
		}
	}
	return newGoString(s.Color, stones, libs)
}

// Equal compares colour, stones and liberties.
func (s *GoString) Equal(other *GoString) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil || s.Color != other.Color {
		return false
	}
	return setsEqual(s.stones, other.stones) && setsEqual(s.liberties, other.liberties)
}

func setsEqual(a, b pointSet) bool {
	if len(a) != len(b) {
		return false
	}
	for p := range a {
		if _, ok := b[p]; !ok {
			return false
		}
	}
	return true
}
