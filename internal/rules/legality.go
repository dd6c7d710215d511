package rules

// IsLegal reports whether move may be played in state. Moves are checked
// against piece movement and board occupancy only: whether the mover's king
// is left in check is not considered.
func IsLegal(move Move, state GameState) bool {
	switch m := move.(type) {
	case Normal:
		return isLegalNormal(m, state)
	case EnPassant:
		_, ok := enPassantCapture(m.From, state)
		return ok
	case Castle:
		_, ok := castlePlan(m.Side, state)
		return ok
	}
	return false
}

func isLegalNormal(m Normal, state GameState) bool {
	if !m.From.InBounds() || !m.Dest.InBounds() || m.From == m.Dest {
		return false
	}
	piece := state.Board.Get(m.From)
	if piece == nil || piece.Color != state.ToMove {
		return false
	}
	if target := state.Board.Get(m.Dest); target != nil && target.Color == piece.Color {
		return false
	}

	switch piece.Rank {
	case Knight:
		return isKnightMove(m.From, m.Dest)
	case Bishop:
		return isDiagonalMove(m.From, m.Dest, state.Board)
	case Rook:
		return isStraightMove(m.From, m.Dest, state.Board)
	case Queen:
		return isStraightMove(m.From, m.Dest, state.Board) || isDiagonalMove(m.From, m.Dest, state.Board)
	case King:
		return isKingMove(m.From, m.Dest)
	case Pawn:
		return isPawnMove(*piece, m.From, m.Dest, state.Board)
	}
	return false
}

func isKnightMove(from, dest Position) bool {
	d := dest.Sub(from).Abs()
	return (d.Row == 1 && d.Col == 2) || (d.Row == 2 && d.Col == 1)
}

func isKingMove(from, dest Position) bool {
	d := dest.Sub(from).Abs()
	return d.Row <= 1 && d.Col <= 1 && d != Position{}
}

func isDiagonalMove(from, dest Position, board Board) bool {
	d := dest.Sub(from).Abs()
	return d.Row == d.Col && d.Row != 0 && !isObstructed(from, dest, board)
}

func isStraightMove(from, dest Position, board Board) bool {
	d := dest.Sub(from)
	return (d.Row == 0) != (d.Col == 0) && !isObstructed(from, dest, board)
}

// isObstructed walks from origin towards dest one square at a time and
// reports whether any square strictly between them is occupied.
func isObstructed(from, dest Position, board Board) bool {
	step := dest.Sub(from).Normalized()
	for pos := from.Add(step); pos != dest; pos = pos.Add(step) {
		if !pos.InBounds() {
			return true
		}
		if board.Get(pos) != nil {
			return true
		}
	}
	return false
}

func isPawnMove(pawn Piece, from, dest Position, board Board) bool {
	dir := pawn.Color.pawnDirection()
	d := dest.Sub(from)
	occupied := board.Get(dest) != nil

	switch {
	case d.Col == 0 && d.Row == dir:
		return !occupied
	case d.Col == 0 && d.Row == 2*dir:
		skipped := Position{Row: from.Row + dir, Col: from.Col}
		return !pawn.HasMoved && !occupied && board.Get(skipped) == nil
	case abs(d.Col) == 1 && d.Row == dir:
		// Own pieces on dest are already rejected by the caller.
		return occupied
	}
	return false
}

// enPassantTarget describes a pawn that may be taken en passant: it stands on
// victim and the capturing pawn lands on landing.
type enPassantTarget struct {
	victim  Position
	landing Position
}

// lastDoublePush reports whether the head of history is a pawn double step.
func lastDoublePush(history []MoveRecord) (enPassantTarget, bool) {
	if len(history) == 0 {
		return enPassantTarget{}, false
	}
	last := history[0]
	m, ok := last.Move.(Normal)
	if !ok || last.Moved.Rank != Pawn {
		return enPassantTarget{}, false
	}
	dir := last.Moved.Color.pawnDirection()
	d := m.Dest.Sub(m.From)
	if d.Col != 0 || d.Row != 2*dir {
		return enPassantTarget{}, false
	}
	return enPassantTarget{
		victim:  m.Dest,
		landing: Position{Row: m.Dest.Row - dir, Col: m.Dest.Col},
	}, true
}

// enPassantCapture is the single en passant rule shared by the evaluator,
// apply and the notation codec.
func enPassantCapture(from Position, state GameState) (enPassantTarget, bool) {
	target, ok := lastDoublePush(state.History)
	if !ok || !from.InBounds() {
		return enPassantTarget{}, false
	}
	pawn := state.Board.Get(from)
	if pawn == nil || pawn.Rank != Pawn || pawn.Color != state.ToMove {
		return enPassantTarget{}, false
	}
	victim := state.Board.Get(target.victim)
	if victim == nil || victim.Rank != Pawn || victim.Color == state.ToMove {
		return enPassantTarget{}, false
	}
	d := target.landing.Sub(from)
	if d.Row != state.ToMove.pawnDirection() || abs(d.Col) != 1 {
		return enPassantTarget{}, false
	}
	if state.Board.Get(target.landing) != nil {
		return enPassantTarget{}, false
	}
	return target, true
}

// castlePlan is the castling rule shared by the evaluator and apply.
func castlePlan(side CastleSide, state GameState) (castling, bool) {
	c := castlingSquares(side, state.ToMove)

	kings := state.Board.FindPieces(state.ToMove, King)
	if len(kings) == 0 {
		return castling{}, false
	}
	king := state.Board.Get(c.kingFrom)
	if king == nil || king.Rank != King || king.Color != state.ToMove || king.HasMoved {
		return castling{}, false
	}
	for _, col := range c.between {
		if state.Board.Get(Position{Row: c.kingFrom.Row, Col: col}) != nil {
			return castling{}, false
		}
	}
	rook := state.Board.Get(c.rookFrom)
	if rook == nil || rook.Rank != Rook || rook.Color != state.ToMove || rook.HasMoved {
		return castling{}, false
	}
	return c, true
}

// PseudoLegalMoves lists every move IsLegal accepts for the piece on from.
func PseudoLegalMoves(from Position, state GameState) []Move {
	if !from.InBounds() {
		return nil
	}
	piece := state.Board.Get(from)
	if piece == nil || piece.Color != state.ToMove {
		return nil
	}

	var moves []Move
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			m := Normal{From: from, Dest: Position{Row: row, Col: col}}
			if IsLegal(m, state) {
				moves = append(moves, m)
			}
		}
	}
	switch piece.Rank {
	case Pawn:
		if m := (EnPassant{From: from}); IsLegal(m, state) {
			moves = append(moves, m)
		}
	case King:
		for _, side := range []CastleSide{QueenSide, KingSide} {
			if m := (Castle{Side: side}); IsLegal(m, state) && from == castlingSquares(side, state.ToMove).kingFrom {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

// Origin is the square the moving piece (the king, for castling) starts on.
func Origin(move Move, state GameState) Position {
	switch m := move.(type) {
	case Normal:
		return m.From
	case EnPassant:
		return m.From
	case Castle:
		return castlingSquares(m.Side, state.ToMove).kingFrom
	}
	return Position{}
}

// Destination is the square the moving piece (the king, for castling) ends
// up on if move is played in state.
func Destination(move Move, state GameState) (Position, bool) {
	switch m := move.(type) {
	case Normal:
		return m.Dest, true
	case EnPassant:
		t, ok := lastDoublePush(state.History)
		return t.landing, ok
	case Castle:
		return castlingSquares(m.Side, state.ToMove).kingTo, true
	}
	return Position{}, false
}
