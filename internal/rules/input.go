package rules

// FromInputPositions classifies a raw origin/destination pair into a move
// without checking legality: a king travelling more than one square castles,
// a pawn moving diagonally onto an empty square captures en passant, and
// everything else is a Normal move.
func FromInputPositions(origin, destination Position, board Board) Move {
	normal := Normal{From: origin, Dest: destination}
	if !origin.InBounds() || !destination.InBounds() {
		return normal
	}
	piece := board.Get(origin)
	if piece == nil {
		return normal
	}
	d := destination.Sub(origin).Abs()
	switch {
	case piece.Rank == King && (d.Row > 1 || d.Col > 1):
		if destination.Col < 4 {
			return Castle{Side: QueenSide}
		}
		return Castle{Side: KingSide}
	case piece.Rank == Pawn && d.Col != 0 && board.Get(destination) == nil:
		return EnPassant{From: origin}
	}
	return normal
}
