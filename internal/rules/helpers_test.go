package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sq(name string) Position {
	p, ok := ParseSquare(name)
	if !ok {
		panic("bad square " + name)
	}
	return p
}

func nm(from, dest string) Normal {
	return Normal{From: sq(from), Dest: sq(dest)}
}

func piece(c Color, r Rank) Piece {
	return Piece{Rank: r, Color: c}
}

func stateWith(toMove Color, pieces map[string]Piece) GameState {
	var b Board
	for name, p := range pieces {
		b = b.Set(sq(name), &p)
	}
	return GameState{Board: b, History: []MoveRecord{}, ToMove: toMove, CapturedPieces: []Piece{}}
}

func play(t *testing.T, s GameState, moves ...Move) GameState {
	t.Helper()
	for i, m := range moves {
		next, ok := Apply(m, s)
		require.Truef(t, ok, "move %d (%v) rejected", i, m)
		s = next
	}
	return s
}
