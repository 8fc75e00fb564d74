package goboard

import (
	"math/rand"
	"sync"

	"baduk/internal/gotypes"
)

// zobristTable holds one random code per (point, colour) plus a side-to-move
// code. The empty board hashes to zero.
type zobristTable struct {
	cols   int
	codes  []uint64
	toMove uint64
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[[2]int]*zobristTable
}

var zobristTables = &zobristStore{tables: make(map[[2]int]*zobristTable)}

// getZobrist returns the shared table for a board shape. Tables are seeded by
// shape, so hashes are stable across processes.
func getZobrist(rows, cols int) *zobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()

	dim := [2]int{rows, cols}
	if table, ok := zobristTables.tables[dim]; ok {
		return table
	}
	rng := rand.New(rand.NewSource(int64(rows)<<16 | int64(cols)))
	table := &zobristTable{
		cols:  cols,
		codes: make([]uint64, rows*cols*2),
	}
	for i := range table.codes {
		table.codes[i] = rng.Uint64()
	}
	table.toMove = rng.Uint64()
	zobristTables.tables[dim] = table
	return table
}

func (z *zobristTable) stone(p gotypes.Point, player gotypes.Player) uint64 {
	idx := ((p.Row-1)*z.cols + (p.Col - 1)) * 2
	if player == gotypes.White {
		idx++
	}
	return z.codes[idx]
}

// situation mixes the side to move into a board hash.
func (z *zobristTable) situation(next gotypes.Player, boardHash uint64) uint64 {
	if next == gotypes.White {
		return boardHash ^ z.toMove
	}
	return boardHash
}
