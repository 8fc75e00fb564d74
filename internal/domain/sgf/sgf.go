package sgf

// GameTree is one SGF tree: a main line of nodes plus variations.
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

// Node is one SGF node. Properties may repeat, as in AB[aa][bb].
type Node struct {
	Properties map[string][]string
}

type SGF struct {
	Root *GameTree
}

func NewNode() Node {
	return Node{Properties: make(map[string][]string)}
}

// Set replaces the values of key.
func (n Node) Set(key string, values ...string) Node {
	n.Properties[key] = values
	return n
}

func (n Node) Get(key string) (string, bool) {
	values := n.Properties[key]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// AppendMove adds a node holding a single B or W property. An empty point is
// a pass.
func (t *GameTree) AppendMove(color, point string) {
	t.Nodes = append(t.Nodes, NewNode().Set(color, point))
}

// MainLineMoves counts the B and W nodes of the main line.
func (t *GameTree) MainLineMoves() int {
	n := 0
	for tree := t; tree != nil; {
		for _, node := range tree.Nodes {
			if _, ok := node.Get("B"); ok {
				n++
			} else if _, ok := node.Get("W"); ok {
				n++
			}
		}
		if len(tree.Children) == 0 {
			break
		}
		tree = tree.Children[0]
	}
	return n
}
