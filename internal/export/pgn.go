// Package export renders games for other chess tools. Replaying through
// notnil/chess applies full legality, so a game that is only pseudo-legal
// (a king left in check) is reported rather than exported.
package export

import (
	"slices"

	"github.com/notnil/chess"
	"github.com/pkg/errors"

	"github.com/benbeisheim/chessrules/internal/rules"
)

// ReplayError identifies the first transcript entry that could not be
// replayed.
type ReplayError struct {
	Index    int
	Notation string
	Err      error
}

func (e *ReplayError) Error() string {
	return errors.Wrapf(e.Err, "replay move %d (%s)", e.Index, e.Notation).Error()
}

func (e *ReplayError) Unwrap() error {
	return e.Err
}

// ply is one history record with the position it was played from.
type ply struct {
	record rules.MoveRecord
	before rules.GameState
}

// plies walks state back to the start, oldest first.
func plies(state rules.GameState) ([]ply, error) {
	out := make([]ply, 0, len(state.History))
	for s := state; len(s.History) > 0; {
		prev := rules.RevertLast(s)
		if len(prev.History) == len(s.History) {
			return nil, errors.Errorf("cannot take back %v", s.History[0].Move)
		}
		out = append(out, ply{record: s.History[0], before: prev})
		s = prev
	}
	slices.Reverse(out)
	return out, nil
}

// Replay plays the history of state from the standard starting position.
// Moves are matched by origin and destination square, so the oracle's own
// disambiguation rules never come into play.
func Replay(state rules.GameState) (*chess.Game, error) {
	steps, err := plies(state)
	if err != nil {
		return nil, errors.Wrap(err, "replay")
	}

	game := chess.NewGame()
	for i, p := range steps {
		from := rules.Origin(p.record.Move, p.before)
		to, _ := rules.Destination(p.record.Move, p.before)
		notation, ok := rules.ToAlgebraic(p.record, p.before)
		if !ok {
			notation = from.String() + to.String()
		}

		move := findMove(game, from.String(), to.String())
		if move == nil {
			return nil, &ReplayError{Index: i, Notation: notation, Err: errors.New("no such move in the replayed position")}
		}
		if err := game.Move(move); err != nil {
			return nil, &ReplayError{Index: i, Notation: notation, Err: err}
		}
	}
	return game, nil
}

func findMove(game *chess.Game, from, to string) *chess.Move {
	for _, m := range game.ValidMoves() {
		if m.S1().String() == from && m.S2().String() == to && m.Promo() == chess.NoPieceType {
			return m
		}
	}
	return nil
}

// PGN exports the game in portable game notation.
func PGN(state rules.GameState) (string, error) {
	game, err := Replay(state)
	if err != nil {
		return "", err
	}
	return game.String(), nil
}
