package export

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbeisheim/chessrules/internal/rules"
)

func playSAN(t *testing.T, moves ...string) rules.GameState {
	t.Helper()
	s := rules.NewGameState()
	for _, text := range moves {
		m, ok := rules.FromAlgebraic(text, s)
		require.Truef(t, ok, "parse %s", text)
		s, ok = rules.Apply(m, s)
		require.Truef(t, ok, "apply %s", text)
	}
	return s
}

func TestPGN(t *testing.T) {
	s := playSAN(t, "e4", "e5", "Nf3", "Nc6", "Bb5")

	pgn, err := PGN(s)
	require.NoError(t, err)
	for _, san := range []string{"e4", "e5", "Nf3", "Nc6", "Bb5"} {
		assert.Contains(t, pgn, san)
	}
}

func TestReplayAgreesWithOracle(t *testing.T) {
	// En passant, castling and a file disambiguation.
	s := playSAN(t, "e4", "Nf6", "e5", "d5", "exd6", "Nbd7", "Nf3", "a6", "Be2", "b6", "O-O")

	game, err := Replay(s)
	require.NoError(t, err)
	assert.Len(t, game.Moves(), len(s.History))
	assert.Equal(t, chess.Black, game.Position().Turn())
}

func TestReplayStopsAtIllegalMove(t *testing.T) {
	// Ke3 walks into the d4 pawn: pseudo-legal here, illegal for the oracle.
	s := playSAN(t, "e4", "d5", "Ke2", "d4", "Ke3")

	_, err := PGN(s)
	require.Error(t, err)

	var replayErr *ReplayError
	require.True(t, errors.As(err, &replayErr))
	assert.Equal(t, 4, replayErr.Index)
	assert.Equal(t, "Ke3", replayErr.Notation)
	assert.Contains(t, err.Error(), "replay move 4 (Ke3)")
}

func TestReplayDisambiguationWithPinnedKnight(t *testing.T) {
	// The c3 knight is pinned, so Nge2 names a move the oracle would write
	// as Ne2.
	s := playSAN(t, "e4", "e6", "d4", "Bb4", "Nc3", "a6", "Nge2")

	game, err := Replay(s)
	require.NoError(t, err)
	assert.Len(t, game.Moves(), 7)

	pgn, err := PGN(s)
	require.NoError(t, err)
	assert.Contains(t, pgn, "Ne2")
}
