package mcts

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baduk/internal/gotypes"
	"baduk/internal/ttt"
)

type (
	tttState = *ttt.GameState
	tttMove  = ttt.Move
)

func mv(row, col int) ttt.Move {
	return ttt.Move{Point: gotypes.Point{Row: row, Col: col}}
}

func play(moves ...ttt.Move) *ttt.GameState {
	s := ttt.NewGame()
	for _, m := range moves {
		s = s.ApplyMove(m)
	}
	return s
}

func randomRollout(rng *rand.Rand) Policy[tttState, tttMove] {
	return func(s *ttt.GameState) ttt.Move {
		moves := s.LegalMoves()
		return moves[rng.Intn(len(moves))]
	}
}

func newAgent(rounds int, seed int64) *Agent[tttState, tttMove] {
	rng := rand.New(rand.NewSource(seed))
	return NewAgent[tttState, tttMove](Config[tttState, tttMove]{
		Rounds:  rounds,
		Rollout: randomRollout(rng),
	}, rng)
}

func TestRootVisitsGrowByOnePerRound(t *testing.T) {
	a := newAgent(0, 1)
	tr := &tree[tttState, tttMove]{}
	tr.add(a.newNode(ttt.NewGame(), ttt.Move{}, -1, 1))

	for i := 1; i <= 100; i++ {
		a.round(tr)
		require.Equal(t, i, tr.at(0).visits)
	}
	sum := 0
	for _, ci := range tr.at(0).children {
		sum += tr.at(ci).visits
	}
	assert.Equal(t, 100, sum, "every round passes through exactly one root child")
}

// rootLeader returns the position in the root's child list of the most
// visited child, ties to the first, and the best visit count among the rest.
func rootLeader(tr *tree[tttState, tttMove]) (leader, leaderVisits, runnerUp int) {
	leader = -1
	for i, ci := range tr.at(0).children {
		v := tr.at(ci).visits
		switch {
		case leader < 0 || v > leaderVisits:
			if leader >= 0 {
				runnerUp = max(runnerUp, leaderVisits)
			}
			leader, leaderVisits = i, v
		default:
			runnerUp = max(runnerUp, v)
		}
	}
	return leader, leaderVisits, runnerUp
}

func TestLeaderStaysOnceOutOfReach(t *testing.T) {
	const rounds = 4000
	a := newAgent(0, 42)
	tr := &tree[tttState, tttMove]{}
	tr.add(a.newNode(ttt.NewGame(), ttt.Move{}, -1, 1))

	locked := -1
	for i := 1; i <= rounds; i++ {
		a.round(tr)
		leader, visits, runnerUp := rootLeader(tr)
		if locked >= 0 {
			require.Equal(t, locked, leader, "leader changed at round %d", i)
			continue
		}
		// No rival can catch up even if every remaining round goes to it.
		if visits > runnerUp+(rounds-i) {
			locked = leader
			t.Logf("leader %d out of reach at round %d", leader, i)
		}
	}
	assert.GreaterOrEqual(t, locked, 0, "a leader should pull out of reach")
}

func TestSearchReportsEveryRound(t *testing.T) {
	res := newAgent(200, 2).Search(context.Background(), ttt.NewGame())

	require.True(t, res.OK)
	assert.Equal(t, 200, res.Rounds)
	assert.Len(t, res.Children, 9)
	sum := 0
	for _, c := range res.Children {
		sum += c.Visits
		assert.InDelta(t, 1.0/9, c.Prior, 1e-9)
		assert.LessOrEqual(t, c.MeanValue, 1.0)
		assert.GreaterOrEqual(t, c.MeanValue, -1.0)
	}
	assert.Equal(t, 200, sum)
}

func TestMostVisitedTieGoesToFirstChild(t *testing.T) {
	// With one round per legal move every child is visited exactly once.
	res := newAgent(9, 3).Search(context.Background(), ttt.NewGame())

	require.Len(t, res.Children, 9)
	for _, c := range res.Children {
		require.Equal(t, 1, c.Visits)
	}
	assert.Equal(t, res.Children[0].Move, res.Move)
}

func TestTakesTheWin(t *testing.T) {
	s := play(mv(1, 1), mv(2, 1), mv(1, 2), mv(2, 2))

	m, ok := newAgent(1000, 4).SelectMove(context.Background(), s)
	require.True(t, ok)
	assert.Equal(t, mv(1, 3), m)
}

func TestBlocksTheLoss(t *testing.T) {
	s := play(mv(1, 1), mv(2, 2), mv(1, 2))

	m, ok := newAgent(3000, 5).SelectMove(context.Background(), s)
	require.True(t, ok)
	assert.Equal(t, mv(1, 3), m)
}

func TestFinishedGameHasNoMove(t *testing.T) {
	won := play(mv(1, 1), mv(2, 1), mv(1, 2), mv(2, 2), mv(1, 3))

	res := newAgent(50, 6).Search(context.Background(), won)
	assert.False(t, res.OK)
	assert.Empty(t, res.Children)
}

func TestCancelledContextStopsBeforeFirstRound(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newAgent(50, 7).Search(ctx, ttt.NewGame())
	assert.Zero(t, res.Rounds)
	assert.False(t, res.OK)
}

func TestPriorAndValueOverrides(t *testing.T) {
	favourite := mv(2, 2)
	rng := rand.New(rand.NewSource(8))
	a := NewAgent[tttState, tttMove](Config[tttState, tttMove]{
		Rounds:  20,
		Rollout: func(*ttt.GameState) ttt.Move {
			panic("rollout must not run when the value function has full weight")
		},
		Prior: func(_ *ttt.GameState, moves []ttt.Move) []float64 {
			out := make([]float64, len(moves))
			for i, m := range moves {
				if m == favourite {
					out[i] = 1
				}
			}
			return out
		},
		Value:       func(*ttt.GameState) float64 { return 0 },
		ValueWeight: 1,
	}, rng)

	res := a.Search(context.Background(), ttt.NewGame())
	require.True(t, res.OK)
	assert.Equal(t, favourite, res.Move)
	for _, c := range res.Children {
		if c.Move == favourite {
			assert.Equal(t, 1.0, c.Prior)
			assert.Equal(t, 20-8, c.Visits)
		} else {
			assert.Zero(t, c.Prior)
		}
	}
}
