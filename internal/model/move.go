package model

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/width"

	"github.com/benbeisheim/chessrules/internal/rules"
)

// WSMove is a move request from a client: either SAN text or a pair of
// square names as picked on the board.
type WSMove struct {
	SAN  string `json:"san,omitempty"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

type SimpleMove struct {
	From rules.Position `json:"from"`
	To   rules.Position `json:"to"`
}

// normalizeSAN folds full-width input (as produced by some IMEs) to ASCII.
func normalizeSAN(text string) string {
	return strings.TrimSpace(width.Narrow.String(text))
}

// resolve turns the request into an engine move for state.
func (m WSMove) resolve(state rules.GameState) (rules.Move, error) {
	if m.SAN != "" {
		move, ok := rules.FromAlgebraic(normalizeSAN(m.SAN), state)
		if !ok {
			return nil, ErrBadNotation
		}
		return move, nil
	}
	from, ok := rules.ParseSquare(normalizeSAN(m.From))
	if !ok {
		return nil, ErrBadNotation
	}
	to, ok := rules.ParseSquare(normalizeSAN(m.To))
	if !ok {
		return nil, ErrBadNotation
	}
	move := rules.FromInputPositions(from, to, state.Board)
	// A pawn stepping diagonally onto an empty square reads as en passant and
	// a long king step as castling; either must still land where asked.
	if dest, ok := rules.Destination(move, state); !ok || dest != to {
		return nil, errors.Wrapf(ErrIllegalMove, "%s-%s", m.From, m.To)
	}
	return move, nil
}
