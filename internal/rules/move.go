package rules

import "fmt"

type CastleSide int

const (
	QueenSide CastleSide = iota
	KingSide
)

func (s CastleSide) String() string {
	if s == QueenSide {
		return "queenSide"
	}
	return "kingSide"
}

// Move is one of Normal, EnPassant or Castle.
type Move interface {
	isMove()
	fmt.Stringer
}

// Normal relocates the piece on From to Dest, capturing whatever is there.
type Normal struct {
	From Position
	Dest Position
}

// EnPassant captures the pawn that double-stepped on the previous move. The
// destination is derived from that move.
type EnPassant struct {
	From Position
}

// Castle moves the king and rook of the side to move. Their squares are
// derived from Side and the mover's color.
type Castle struct {
	Side CastleSide
}

func (Normal) isMove()    {}
func (EnPassant) isMove() {}
func (Castle) isMove()    {}

func (m Normal) String() string    { return m.From.String() + "-" + m.Dest.String() }
func (m EnPassant) String() string { return m.From.String() + " e.p." }
func (m Castle) String() string    { return "castle " + m.Side.String() }

// MoveRecord is a history entry. Moved is the moving piece after the move and
// Captured is nil when nothing was taken. FirstMove is set when the mover had
// not moved before this record.
type MoveRecord struct {
	Move      Move
	Moved     Piece
	Captured  *Piece
	FirstMove bool
}

// before is the moving piece as it stood before the record was applied.
func (r MoveRecord) before() Piece {
	p := r.Moved
	p.HasMoved = !r.FirstMove
	return p
}

func (r MoveRecord) equal(o MoveRecord) bool {
	if r.Move != o.Move || r.Moved != o.Moved || r.FirstMove != o.FirstMove {
		return false
	}
	if r.Captured == nil || o.Captured == nil {
		return r.Captured == o.Captured
	}
	return *r.Captured == *o.Captured
}

// castling holds the squares involved in castling for one side.
type castling struct {
	kingFrom, kingTo Position
	rookFrom, rookTo Position
	between          []int
}

func castlingSquares(side CastleSide, color Color) castling {
	row := color.homeRow()
	if side == QueenSide {
		return castling{
			kingFrom: Position{Row: row, Col: 4},
			kingTo:   Position{Row: row, Col: 2},
			rookFrom: Position{Row: row, Col: 0},
			rookTo:   Position{Row: row, Col: 3},
			between:  []int{1, 2, 3},
		}
	}
	return castling{
		kingFrom: Position{Row: row, Col: 4},
		kingTo:   Position{Row: row, Col: 6},
		rookFrom: Position{Row: row, Col: 7},
		rookTo:   Position{Row: row, Col: 5},
		between:  []int{5, 6},
	}
}
