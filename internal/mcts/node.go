package mcts

import "baduk/internal/game"

// node lives in the tree's arena and refers to relatives by index. value is
// accumulated from the point of view of the player who made move, so a parent
// reads its children's averages directly as its own expected outcome.
type node[S game.State[S, M], M comparable] struct {
	state    S
	move     M
	parent   int
	children []int

	unvisited []M
	priors    []float64
	prior     float64

	visits     int
	totalValue float64
}

func (n *node[S, M]) meanValue() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.totalValue / float64(n.visits)
}

func (n *node[S, M]) canAddChild() bool {
	return len(n.unvisited) > 0
}

type tree[S game.State[S, M], M comparable] struct {
	nodes []node[S, M]
}

func (t *tree[S, M]) add(n node[S, M]) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *tree[S, M]) at(i int) *node[S, M] {
	return &t.nodes[i]
}
