package goboard

// situationSet is a persistent hash trie of (side to move, board) keys. Adding
// a key copies only the path to its leaf, so every GameState can keep the set
// of all situations in its history while sharing structure with its parent.
type situationSet struct {
	root *trieNode
	size int
}

const (
	trieBits   = 4
	trieFanout = 1 << trieBits
	trieMask   = trieFanout - 1
)

type trieNode struct {
	children [trieFanout]*trieNode
	leaf     bool
	key      uint64
	// boards holds every distinct board filed under key, so a hash
	// collision never reads as a repetition.
	boards []*Board
}

func (s *situationSet) Len() int {
	if s == nil {
		return 0
	}
	return s.size
}

// with returns a set that also contains board under key.
func (s *situationSet) with(key uint64, board *Board) *situationSet {
	var root *trieNode
	size := 0
	if s != nil {
		root, size = s.root, s.size
	}
	newRoot, added := insertSituation(root, key, board, 0)
	if added {
		size++
	}
	return &situationSet{root: newRoot, size: size}
}

func insertSituation(n *trieNode, key uint64, board *Board, shift uint) (*trieNode, bool) {
	if n == nil {
		return &trieNode{leaf: true, key: key, boards: []*Board{board}}, true
	}
	if n.leaf {
		if n.key == key {
			for _, b := range n.boards {
				if b.Equal(board) {
					return n, false
				}
			}
			boards := make([]*Board, len(n.boards), len(n.boards)+1)
			copy(boards, n.boards)
			return &trieNode{leaf: true, key: key, boards: append(boards, board)}, true
		}
		// Push the existing leaf one level down and retry.
		inner := &trieNode{}
		inner.children[(n.key>>shift)&trieMask] = n
		return insertSituation(inner, key, board, shift)
	}
	cp := *n
	idx := (key >> shift) & trieMask
	child, added := insertSituation(n.children[idx], key, board, shift+trieBits)
	cp.children[idx] = child
	return &cp, added
}

// contains reports whether a board equal to board is filed under key.
func (s *situationSet) contains(key uint64, board *Board) bool {
	if s == nil {
		return false
	}
	n := s.root
	for shift := uint(0); n != nil; shift += trieBits {
		if n.leaf {
			if n.key != key {
				return false
			}
			for _, b := range n.boards {
				if b.Equal(board) {
					return true
				}
			}
			return false
		}
		n = n.children[(key>>shift)&trieMask]
	}
	return false
}
