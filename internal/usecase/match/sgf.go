package match

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"baduk/internal/domain/match"
	"baduk/internal/domain/sgf"
	"baduk/internal/gtp"
)

const sgfLetters = "abcdefghijklmnopqrs"

// PrepareSgfFile builds the root node of an archived game.
func PrepareSgfFile(g match.ArchivedGame) sgf.SGF {
	root := sgf.NewNode().
		Set("FF", "4").
		Set("GM", "1").
		Set("SZ", strconv.Itoa(g.BoardSize)).
		Set("PB", g.Black).
		Set("PW", g.White).
		Set("DT", g.CreatedAt.Format("2006-01-02")).
		Set("RE", g.Result).
		Set("KM", strconv.FormatFloat(g.Komi, 'f', 1, 64)).
		Set("RU", "Chinese")
	return sgf.SGF{Root: &sgf.GameTree{Nodes: []sgf.Node{root}}}
}

// AddMovesToSgf appends one node per play or pass. Resignations only show in
// the RE property.
func AddMovesToSgf(tree *sgf.GameTree, boardSize int, moves []match.MoveRecord) error {
	for _, rec := range moves {
		if rec.Move == "resign" {
			continue
		}
		coords, err := sgfCoords(boardSize, rec.Move)
		if err != nil {
			return err
		}
		tree.AppendMove(rec.Color, coords)
	}
	return nil
}

func sgfCoords(boardSize int, gtpMove string) (string, error) {
	m, err := gtp.MoveFromGTP(gtpMove)
	if err != nil {
		return "", err
	}
	if m.IsPass() {
		return "", nil
	}
	p := m.Point()
	if p.Col > boardSize || p.Row > boardSize {
		return "", fmt.Errorf("%s is off a %dx%d board", gtpMove, boardSize, boardSize)
	}
	return sgfLetters[p.Col-1:p.Col] + sgfLetters[boardSize-p.Row:boardSize-p.Row+1], nil
}

func SerializeSGF(s *sgf.SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	serializeGameTree(&builder, s.Root)
	builder.WriteString(")")
	return builder.String()
}

var orderedKeys = []string{"FF", "GM", "SZ", "PB", "PW", "DT", "RE", "KM", "RU", "C", "B", "W"}

func serializeGameTree(builder *strings.Builder, tree *sgf.GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")
		keys := append([]string(nil), orderedKeys...)
		var extra []string
		for key := range node.Properties {
			if !slices.Contains(orderedKeys, key) {
				extra = append(extra, key)
			}
		}
		sort.Strings(extra)
		for _, key := range append(keys, extra...) {
			values := node.Properties[key]
			if len(values) == 0 {
				continue
			}
			builder.WriteString(key)
			for _, v := range values {
				fmt.Fprintf(builder, "[%s]", v)
			}
		}
	}
	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}
