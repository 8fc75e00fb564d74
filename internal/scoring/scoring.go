// Package scoring implements area scoring: stones on the board plus empty
// regions surrounded by a single colour.
package scoring

import (
	"fmt"
	"math"

	"baduk/internal/gotypes"
)

// Grid is the read-only board view scoring needs.
type Grid interface {
	NumRows() int
	NumCols() int
	IsOnGrid(p gotypes.Point) bool
	Get(p gotypes.Point) (gotypes.Player, bool)
}

type Territory struct {
	Stones    map[gotypes.Player]int
	Territory map[gotypes.Player]int
	Dame      int
}

func (t Territory) NumBlackStones() int    { return t.Stones[gotypes.Black] }
func (t Territory) NumWhiteStones() int    { return t.Stones[gotypes.White] }
func (t Territory) NumBlackTerritory() int { return t.Territory[gotypes.Black] }
func (t Territory) NumWhiteTerritory() int { return t.Territory[gotypes.White] }

// Points returns stones plus territory for player.
func (t Territory) Points(player gotypes.Player) int {
	return t.Stones[player] + t.Territory[player]
}

// EvaluateTerritory flood-fills every empty region. A region touching only
// one colour is that colour's territory; anything else is dame.
func EvaluateTerritory(board Grid) Territory {
	result := Territory{
		Stones:    map[gotypes.Player]int{gotypes.Black: 0, gotypes.White: 0},
		Territory: map[gotypes.Player]int{gotypes.Black: 0, gotypes.White: 0},
	}
	visited := make(map[gotypes.Point]bool)

	for r := 1; r <= board.NumRows(); r++ {
		for c := 1; c <= board.NumCols(); c++ {
			p := gotypes.Point{Row: r, Col: c}
			if color, ok := board.Get(p); ok {
				result.Stones[color]++
				continue
			}
			if visited[p] {
				continue
			}
			region, borders := collectRegion(board, p, visited)
			if len(borders) == 1 {
				for color := range borders {
					result.Territory[color] += region
				}
			} else {
				result.Dame += region
			}
		}
	}
	return result
}

// collectRegion returns the size of the empty region containing start and
// the set of colours bordering it.
func collectRegion(board Grid, start gotypes.Point, visited map[gotypes.Point]bool) (int, map[gotypes.Player]struct{}) {
	borders := make(map[gotypes.Player]struct{}, 2)
	stack := []gotypes.Point{start}
	visited[start] = true
	size := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++
		for _, n := range p.Neighbors() {
			if !board.IsOnGrid(n) {
				continue
			}
			if color, ok := board.Get(n); ok {
				borders[color] = struct{}{}
				continue
			}
			if !visited[n] {
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}
	return size, borders
}

// GameResult is an area-scored final position. Komi is credited to white.
type GameResult struct {
	B    int
	W    int
	Komi float64
}

// ComputeGameResult scores board with komi added to white's total.
func ComputeGameResult(board Grid, komi float64) GameResult {
	t := EvaluateTerritory(board)
	return GameResult{
		B:    t.Points(gotypes.Black),
		W:    t.Points(gotypes.White),
		Komi: komi,
	}
}

func (r GameResult) whiteTotal() float64 {
	return float64(r.W) + r.Komi
}

// Winner reports the winning player. ok is false on an exact tie.
func (r GameResult) Winner() (gotypes.Player, bool) {
	switch w := r.whiteTotal(); {
	case float64(r.B) > w:
		return gotypes.Black, true
	case float64(r.B) < w:
		return gotypes.White, true
	}
	return 0, false
}

func (r GameResult) WinningMargin() float64 {
	return math.Abs(float64(r.B) - r.whiteTotal())
}

func (r GameResult) String() string {
	winner, ok := r.Winner()
	if !ok {
		return "Draw"
	}
	if winner == gotypes.Black {
		return fmt.Sprintf("B+%.1f", r.WinningMargin())
	}
	return fmt.Sprintf("W+%.1f", r.WinningMargin())
}
