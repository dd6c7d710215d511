package rules

// Apply plays move in state and returns the resulting state. It reports false,
// leaving state untouched, when the move is not legal.
func Apply(move Move, state GameState) (GameState, bool) {
	switch m := move.(type) {
	case Normal:
		return applyNormal(m, state)
	case EnPassant:
		return applyEnPassant(m, state)
	case Castle:
		return applyCastle(m, state)
	}
	return state, false
}

func applyNormal(m Normal, state GameState) (GameState, bool) {
	if !isLegalNormal(m, state) {
		return state, false
	}
	piece := state.Board.Get(m.From)
	captured := state.Board.Get(m.Dest)
	moved := piece.Moved()

	board := state.Board
	board.put(m.From, nil)
	board.put(m.Dest, &moved)

	capturedPieces := state.CapturedPieces
	if captured != nil {
		capturedPieces = prependPiece(capturedPieces, *captured)
	}
	record := MoveRecord{Move: m, Moved: moved, Captured: captured, FirstMove: !piece.HasMoved}
	return GameState{
		Board:          board,
		History:        prependRecord(state.History, record),
		ToMove:         state.ToMove.Invert(),
		CapturedPieces: capturedPieces,
	}, true
}

func applyEnPassant(m EnPassant, state GameState) (GameState, bool) {
	target, ok := enPassantCapture(m.From, state)
	if !ok {
		return state, false
	}
	pawn := state.Board.Get(m.From)
	victim := state.Board.Get(target.victim)
	moved := pawn.Moved()

	board := state.Board
	board.put(target.victim, nil)
	board.put(m.From, nil)
	board.put(target.landing, &moved)

	record := MoveRecord{Move: m, Moved: moved, Captured: victim, FirstMove: !pawn.HasMoved}
	return GameState{
		Board:          board,
		History:        prependRecord(state.History, record),
		ToMove:         state.ToMove.Invert(),
		CapturedPieces: prependPiece(state.CapturedPieces, *victim),
	}, true
}

func applyCastle(m Castle, state GameState) (GameState, bool) {
	c, ok := castlePlan(m.Side, state)
	if !ok {
		return state, false
	}
	king := state.Board.Get(c.kingFrom).Moved()
	rook := state.Board.Get(c.rookFrom).Moved()

	board := state.Board
	board.put(c.kingFrom, nil)
	board.put(c.rookFrom, nil)
	board.put(c.kingTo, &king)
	board.put(c.rookTo, &rook)

	record := MoveRecord{Move: m, Moved: king, FirstMove: true}
	return GameState{
		Board:          board,
		History:        prependRecord(state.History, record),
		ToMove:         state.ToMove.Invert(),
		CapturedPieces: state.CapturedPieces,
	}, true
}

// RevertLast undoes the history head. A state without history is returned
// as is.
func RevertLast(state GameState) GameState {
	last, ok := state.LastRecord()
	if !ok {
		return state
	}
	mover := state.ToMove.Invert()
	board := state.Board
	prior := last.before()

	switch m := last.Move.(type) {
	case Normal:
		board.put(m.From, &prior)
		board.put(m.Dest, last.Captured)
	case EnPassant:
		target, ok := lastDoublePush(state.History[1:])
		if !ok || last.Captured == nil {
			return state
		}
		board.put(target.landing, nil)
		board.put(m.From, &prior)
		board.put(target.victim, last.Captured)
	case Castle:
		c := castlingSquares(m.Side, mover)
		rook := board.Get(c.rookTo)
		if rook == nil {
			return state
		}
		unmovedRook := *rook
		unmovedRook.HasMoved = false
		board.put(c.kingTo, nil)
		board.put(c.rookTo, nil)
		board.put(c.kingFrom, &prior)
		board.put(c.rookFrom, &unmovedRook)
	default:
		return state
	}

	capturedPieces := state.CapturedPieces
	if last.Captured != nil && len(capturedPieces) > 0 {
		capturedPieces = capturedPieces[1:]
	}
	return GameState{
		Board:          board,
		History:        state.History[1:],
		ToMove:         mover,
		CapturedPieces: capturedPieces,
	}
}
