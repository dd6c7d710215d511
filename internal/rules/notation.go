package rules

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chessrules/internal/parse"
)

// ToAlgebraic renders record in SAN-like notation. state is either the state
// record produced (record is its history head) or the position the move was
// played from; disambiguation and en passant are resolved against the
// position before the move.
func ToAlgebraic(record MoveRecord, state GameState) (string, bool) {
	before := positionBefore(record, state)

	switch m := record.Move.(type) {
	case Castle:
		if m.Side == QueenSide {
			return "O-O-O", true
		}
		return "O-O", true
	case EnPassant:
		target, ok := lastDoublePush(before.History)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%sx%s", m.From.File(), target.landing), true
	case Normal:
		return normalToAlgebraic(m, record, before), true
	}
	return "", false
}

func positionBefore(record MoveRecord, state GameState) GameState {
	if last, ok := state.LastRecord(); ok && last.equal(record) {
		return RevertLast(state)
	}
	return state
}

func normalToAlgebraic(m Normal, record MoveRecord, before GameState) string {
	var sb strings.Builder
	sb.WriteString(record.Moved.Rank.Symbol())

	if record.Moved.Rank == Pawn {
		if record.Captured != nil {
			sb.WriteString(m.From.File())
		}
	} else {
		var rivals []Position
		for _, pos := range before.Board.FindPieces(record.Moved.Color, record.Moved.Rank) {
			if pos != m.From && IsLegal(Normal{From: pos, Dest: m.Dest}, before) {
				rivals = append(rivals, pos)
			}
		}
		if len(rivals) > 0 {
			sameFile, sameRow := false, false
			for _, pos := range rivals {
				sameFile = sameFile || pos.Col == m.From.Col
				sameRow = sameRow || pos.Row == m.From.Row
			}
			switch {
			case !sameFile:
				sb.WriteString(m.From.File())
			case !sameRow:
				fmt.Fprintf(&sb, "%d", m.From.Row+1)
			default:
				sb.WriteString(m.From.String())
			}
		}
	}

	if record.Captured != nil {
		sb.WriteString("x")
	}
	sb.WriteString(m.Dest.String())
	return sb.String()
}

// sanMove is what the notation parser extracts from a piece move.
type sanMove struct {
	rank    Rank
	col     *int
	row     *int
	capture bool
	dest    Position
}

var (
	rowParser = parse.Refine(parse.Digit(), func(d int) (int, bool) {
		return d - 1, d >= 1 && d <= 8
	})
	colParser = parse.Alt(
		parse.Constant("a", 0), parse.Constant("b", 1), parse.Constant("c", 2), parse.Constant("d", 3),
		parse.Constant("e", 4), parse.Constant("f", 5), parse.Constant("g", 6), parse.Constant("h", 7),
	)
	squareParser = parse.Map(parse.Seq(rowParser, colParser), func(p parse.Pair[int, int]) Position {
		return Position{Row: p.First, Col: p.Second}
	})
	rankParser = parse.Alt(
		parse.Constant("N", Knight), parse.Constant("B", Bishop), parse.Constant("R", Rook),
		parse.Constant("Q", Queen), parse.Constant("K", King), parse.Constant("P", Pawn),
		parse.Constant("", Pawn),
	)
	suffixParser = parse.Optional(parse.Alt(parse.String("+"), parse.String("#")))

	castleParser = parse.Right(suffixParser, parse.Alt(
		parse.Constant("O-O-O", QueenSide), parse.Constant("O-O", KingSide),
		parse.Constant("0-0-0", QueenSide), parse.Constant("0-0", KingSide),
	))

	pieceMoveParser = parse.Map(
		parse.Right(suffixParser,
			parse.Seq(
				parse.Seq(
					parse.Seq(squareParser, parse.Optional(parse.String("x"))),
					parse.Seq(parse.Optional(rowParser), parse.Optional(colParser)),
				),
				rankParser,
			)),
		func(p parse.Pair[parse.Pair[parse.Pair[Position, *string], parse.Pair[*int, *int]], Rank]) sanMove {
			return sanMove{
				rank:    p.Second,
				dest:    p.First.First.First,
				capture: p.First.First.Second != nil,
				row:     p.First.Second.First,
				col:     p.First.Second.Second,
			}
		},
	)
)

// ParseSquare parses a square name such as "e4".
func ParseSquare(text string) (Position, bool) {
	return squareParser.Parse(text)
}

// FromAlgebraic turns SAN-like text into a move for the side to move in
// state. It reports false when the text does not parse or does not resolve to
// exactly one piece.
func FromAlgebraic(text string, state GameState) (Move, bool) {
	if side, ok := castleParser.Parse(text); ok {
		return Castle{Side: side}, true
	}
	san, ok := pieceMoveParser.Parse(text)
	if !ok {
		return nil, false
	}
	if san.col != nil && san.row != nil {
		return Normal{From: Position{Row: *san.row, Col: *san.col}, Dest: san.dest}, true
	}

	var candidates []Position
	for _, pos := range state.Board.FindPieces(state.ToMove, san.rank) {
		if (san.col != nil && pos.Col != *san.col) || (san.row != nil && pos.Row != *san.row) {
			continue
		}
		if IsLegal(Normal{From: pos, Dest: san.dest}, state) {
			candidates = append(candidates, pos)
		}
	}
	if len(candidates) == 1 {
		return Normal{From: candidates[0], Dest: san.dest}, true
	}

	if len(candidates) == 0 && san.rank == Pawn && san.capture && san.col != nil {
		from := Position{Row: san.dest.Row - state.ToMove.pawnDirection(), Col: *san.col}
		if target, ok := enPassantCapture(from, state); ok && target.landing == san.dest {
			return EnPassant{From: from}, true
		}
	}
	return nil, false
}
