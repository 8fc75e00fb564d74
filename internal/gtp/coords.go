// Package gtp speaks the Go Text Protocol on behalf of an agent.
package gtp

import (
	"fmt"
	"strconv"
	"strings"

	"baduk/internal/errors"
	"baduk/internal/goboard"
	"baduk/internal/gotypes"
)

// CoordsFromPoint renders p as a GTP vertex such as "D4". Row 1 is the
// bottom row and the column letters skip I.
func CoordsFromPoint(p gotypes.Point) string {
	if p.Col < 1 || p.Col > len(gotypes.Cols) {
		return "?"
	}
	return gotypes.Cols[p.Col-1:p.Col] + strconv.Itoa(p.Row)
}

// PointFromCoords parses a GTP vertex. Column letters are case-insensitive;
// the row is plain decimal digits without sign or leading zero.
func PointFromCoords(coords string) (gotypes.Point, error) {
	if len(coords) < 2 || !isRowNumber(coords[1:]) {
		return gotypes.Point{}, fmt.Errorf("%q: %w", coords, errors.ErrInvalidCoords)
	}
	col := strings.IndexByte(gotypes.Cols, strings.ToUpper(coords[:1])[0])
	row, err := strconv.Atoi(coords[1:])
	if col < 0 || err != nil || row < 1 {
		return gotypes.Point{}, fmt.Errorf("%q: %w", coords, errors.ErrInvalidCoords)
	}
	return gotypes.Point{Row: row, Col: col + 1}, nil
}

func isRowNumber(s string) bool {
	if s == "" || s[0] == '0' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MoveToGTP renders a move as a vertex, "pass" or "resign".
func MoveToGTP(m goboard.Move) string {
	switch {
	case m.IsPass():
		return "pass"
	case m.IsResign():
		return "resign"
	}
	return CoordsFromPoint(m.Point())
}

// MoveFromGTP parses a vertex, "pass" or "resign".
func MoveFromGTP(s string) (goboard.Move, error) {
	switch strings.ToLower(s) {
	case "pass":
		return goboard.PassTurn(), nil
	case "resign":
		return goboard.Resign(), nil
	}
	p, err := PointFromCoords(s)
	if err != nil {
		return goboard.Move{}, err
	}
	return goboard.Play(p), nil
}

// ParseColor accepts the GTP spellings of a colour.
func ParseColor(s string) (gotypes.Player, error) {
	switch strings.ToLower(s) {
	case "b", "black":
		return gotypes.Black, nil
	case "w", "white":
		return gotypes.White, nil
	}
	return 0, fmt.Errorf("unknown colour %q", s)
}
