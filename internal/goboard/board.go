package goboard

import (
	"fmt"
	"strings"

	"baduk/internal/gotypes"
)

// Board maps every occupied point to the GoString covering it. Boards share
// GoStrings, so Clone only copies the point index.
type Board struct {
	rows    int
	cols    int
	grid    []*GoString
	hash    uint64
	zobrist *zobristTable
}

func NewBoard(rows, cols int) *Board {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("goboard: invalid board shape %dx%d", rows, cols))
	}
	return &Board{
		rows:    rows,
		cols:    cols,
		grid:    make([]*GoString, rows*cols),
		zobrist: getZobrist(rows, cols),
	}
}

func (b *Board) NumRows() int { return b.rows }
func (b *Board) NumCols() int { return b.cols }

// Hash is the zobrist hash of the stones on the board.
func (b *Board) Hash() uint64 { return b.hash }

func (b *Board) IsOnGrid(p gotypes.Point) bool {
	return p.Row >= 1 && p.Row <= b.rows && p.Col >= 1 && p.Col <= b.cols
}

func (b *Board) index(p gotypes.Point) int {
	return (p.Row-1)*b.cols + (p.Col - 1)
}

// Get returns the colour of the stone at p; ok is false for an empty point.
func (b *Board) Get(p gotypes.Point) (gotypes.Player, bool) {
	if !b.IsOnGrid(p) {
		return 0, false
	}
	s := b.grid[b.index(p)]
	if s == nil {
		return 0, false
	}
	return s.Color, true
}

// GetGoString returns the string at p, or nil for an empty point.
func (b *Board) GetGoString(p gotypes.Point) *GoString {
	if !b.IsOnGrid(p) {
		return nil
	}
	return b.grid[b.index(p)]
}

// PlaceStone puts a stone for player on p and resolves captures. p must be
// on the board and empty; anything else is a caller bug and panics.
func (b *Board) PlaceStone(player gotypes.Player, p gotypes.Point) {
	if !b.IsOnGrid(p) {
		panic(fmt.Sprintf("goboard: %v is off the %dx%d board", p, b.rows, b.cols))
	}
	if b.grid[b.index(p)] != nil {
		panic(fmt.Sprintf("goboard: illegal play on occupied point %v", p))
	}

	var sameColor, oppositeColor []*GoString
	liberties := newPointSet()
	for _, n := range p.Neighbors() {
		if !b.IsOnGrid(n) {
			continue
		}
		ns := b.grid[b.index(n)]
		switch {
		case ns == nil:
			liberties[n] = struct{}{}
		case ns.Color == player:
			sameColor = appendUnique(sameColor, ns)
		default:
			oppositeColor = appendUnique(oppositeColor, ns)
		}
	}

	// Own connectivity is settled first so a simultaneous zero-liberty
	// situation is read as a capture of the opponent, not of ourselves.
	newString := newGoString(player, newPointSet(p), liberties)
	for _, s := range sameColor {
		newString = newString.mergedWith(s)
	}
	b.replaceString(newString)
	b.hash ^= b.zobrist.stone(p, player)

	for _, s := range oppositeColor {
		replacement := s.withoutLiberty(p)
		if replacement.NumLiberties() > 0 {
			b.replaceString(replacement)
		} else {
			b.removeString(s)
		}
	}
}

func appendUnique(list []*GoString, s *GoString) []*GoString {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

func (b *Board) replaceString(s *GoString) {
	for p := range s.stones {
		b.grid[b.index(p)] = s
	}
}

// removeString clears a captured string and hands its points back as
// liberties to every string that touched it.
func (b *Board) removeString(s *GoString) {
	for p := range s.stones {
		for _, n := range p.Neighbors() {
			if !b.IsOnGrid(n) {
				continue
			}
			ns := b.grid[b.index(n)]
			if ns == nil || ns == s {
				continue
			}
			b.replaceString(ns.withLiberty(p))
		}
		b.grid[b.index(p)] = nil
		b.hash ^= b.zobrist.stone(p, s.Color)
	}
}

// IsSelfCapture reports whether a play by player on the empty point p would
// leave its own string without liberties. Only neighbours are inspected.
func (b *Board) IsSelfCapture(player gotypes.Player, p gotypes.Point) bool {
	var friendly []*GoString
	for _, n := range p.Neighbors() {
		if !b.IsOnGrid(n) {
			continue
		}
		ns := b.grid[b.index(n)]
		switch {
		case ns == nil:
			return false
		case ns.Color == player:
			friendly = append(friendly, ns)
		case ns.NumLiberties() == 1:
			// Captures, so the new stone gets a liberty.
			return false
		}
	}
	for _, s := range friendly {
		if s.NumLiberties() > 1 {
			return false
		}
	}
	return true
}

// WillCapture reports whether a play by player on p takes an opponent's
// last liberty.
func (b *Board) WillCapture(player gotypes.Player, p gotypes.Point) bool {
	for _, n := range p.Neighbors() {
		if !b.IsOnGrid(n) {
			continue
		}
		ns := b.grid[b.index(n)]
		if ns != nil && ns.Color != player && ns.NumLiberties() == 1 {
			return true
		}
	}
	return false
}

func (b *Board) Clone() *Board {
	grid := make([]*GoString, len(b.grid))
	copy(grid, b.grid)
	return &Board{
		rows:    b.rows,
		cols:    b.cols,
		grid:    grid,
		hash:    b.hash,
		zobrist: b.zobrist,
	}
}

// Equal compares shape and the colour on every point.
func (b *Board) Equal(other *Board) bool {
	if b == other {
		return true
	}
	if other == nil || b.rows != other.rows || b.cols != other.cols || b.hash != other.hash {
		return false
	}
	for i, s := range b.grid {
		o := other.grid[i]
		if (s == nil) != (o == nil) {
			return false
		}
		if s != nil && s.Color != o.Color {
			return false
		}
	}
	return true
}

var stoneChars = map[gotypes.Player]byte{
	gotypes.Black: 'x',
	gotypes.White: 'o',
}

// String draws the board with row 1 at the bottom and GTP column letters.
func (b *Board) String() string {
	var sb strings.Builder
	for r := b.rows; r >= 1; r-- {
		fmt.Fprintf(&sb, "%2d ", r)
		for c := 1; c <= b.cols; c++ {
			ch := byte('.')
			if color, ok := b.Get(gotypes.Point{Row: r, Col: c}); ok {
				ch = stoneChars[color]
			}
			sb.WriteByte(ch)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	if b.cols <= len(gotypes.Cols) {
		sb.WriteString(gotypes.Cols[:b.cols])
	}
	sb.WriteByte('\n')
	return sb.String()
}
