package rules

// GameState is the complete, immutable state of a game. Operations never
// modify a GameState in place; they return a new one.
type GameState struct {
	Board Board `json:"board"`
	// History is ordered most recent first.
	History []MoveRecord `json:"history"`
	ToMove  Color        `json:"toMove"`
	// CapturedPieces is ordered most recently captured first.
	CapturedPieces []Piece `json:"capturedPieces"`
}

func NewGameState() GameState {
	return GameState{
		Board:          NewBoard(),
		History:        []MoveRecord{},
		ToMove:         White,
		CapturedPieces: []Piece{},
	}
}

// LastRecord returns the history head.
func (s GameState) LastRecord() (MoveRecord, bool) {
	if len(s.History) == 0 {
		return MoveRecord{}, false
	}
	return s.History[0], true
}

func prependRecord(history []MoveRecord, r MoveRecord) []MoveRecord {
	out := make([]MoveRecord, 0, len(history)+1)
	out = append(out, r)
	return append(out, history...)
}

func prependPiece(pieces []Piece, p Piece) []Piece {
	out := make([]Piece, 0, len(pieces)+1)
	out = append(out, p)
	return append(out, pieces...)
}
