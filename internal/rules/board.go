package rules

import (
	"fmt"

	"github.com/pkg/errors"
)

type Color int

const (
	White Color = iota
	Black
)

func (c Color) Invert() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// homeRow is the back rank of c.
func (c Color) homeRow() int {
	if c == White {
		return 0
	}
	return 7
}

// pawnDirection is the row delta of a single pawn step for c.
func (c Color) pawnDirection() int {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return errors.Errorf("unknown color %q", text)
	}
	return nil
}

type Rank int

const (
	Pawn Rank = iota
	Knight
	Bishop
	Rook
	King
	Queen
)

var rankNames = [...]string{
	Pawn:   "pawn",
	Knight: "knight",
	Bishop: "bishop",
	Rook:   "rook",
	King:   "king",
	Queen:  "queen",
}

func (r Rank) String() string {
	return rankNames[r]
}

// Symbol is the letter used for r in algebraic notation. Pawns have none.
func (r Rank) Symbol() string {
	switch r {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

func rankByName(name string) (Rank, bool) {
	for r, n := range rankNames {
		if n == name {
			return Rank(r), true
		}
	}
	return 0, false
}

// MustRank returns the rank with the given name and panics on anything else.
func MustRank(name string) Rank {
	r, ok := rankByName(name)
	if !ok {
		panic(fmt.Sprintf("rules: unknown rank %q", name))
	}
	return r
}

func (r Rank) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rank) UnmarshalText(text []byte) error {
	v, ok := rankByName(string(text))
	if !ok {
		return errors.Errorf("unknown rank %q", text)
	}
	*r = v
	return nil
}

type Piece struct {
	Rank     Rank  `json:"rank"`
	Color    Color `json:"color"`
	HasMoved bool  `json:"hasMoved"`
}

// Moved returns a copy of p flagged as having moved.
func (p Piece) Moved() Piece {
	p.HasMoved = true
	return p
}

func (p Piece) String() string {
	return fmt.Sprintf("(%s %s)", p.Color, p.Rank)
}

// Position addresses a square. Row 0 is White's back rank, Col 0 the a-file.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) Add(o Position) Position {
	return Position{Row: p.Row + o.Row, Col: p.Col + o.Col}
}

func (p Position) Sub(o Position) Position {
	return Position{Row: p.Row - o.Row, Col: p.Col - o.Col}
}

func (p Position) Abs() Position {
	return Position{Row: abs(p.Row), Col: abs(p.Col)}
}

// Normalized is the unit step towards p: the sign of each component.
func (p Position) Normalized() Position {
	return Position{Row: sign(p.Row), Col: sign(p.Col)}
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < 8 && p.Col >= 0 && p.Col < 8
}

func (p Position) File() string {
	return string(rune('a' + p.Col))
}

func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%s%d", p.File(), p.Row+1)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Board is the 8x8 grid addressed as board[row][col]. It is a value type:
// assigning or passing a Board copies the grid, and Set returns a modified
// copy. The pieces behind the pointers are never mutated.
type Board [8][8]*Piece

// Get panics when pos is off the board.
func (b Board) Get(pos Position) *Piece {
	return b[pos.Row][pos.Col]
}

// Set returns a copy of b with pos holding p.
func (b Board) Set(pos Position, p *Piece) Board {
	b.put(pos, p)
	return b
}

func (b *Board) put(pos Position, p *Piece) {
	b[pos.Row][pos.Col] = p
}

// FindPieces returns the squares holding a piece of the given color and rank,
// scanning rows first.
func (b Board) FindPieces(color Color, rank Rank) []Position {
	var found []Position
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b[row][col]; p != nil && p.Color == color && p.Rank == rank {
				found = append(found, Position{Row: row, Col: col})
			}
		}
	}
	return found
}

var backRank = [8]Rank{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	var b Board
	for col := 0; col < 8; col++ {
		b[0][col] = &Piece{Rank: backRank[col], Color: White}
		b[1][col] = &Piece{Rank: Pawn, Color: White}
		b[6][col] = &Piece{Rank: Pawn, Color: Black}
		b[7][col] = &Piece{Rank: backRank[col], Color: Black}
	}
	return b
}
