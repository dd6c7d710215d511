package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameStateJSONRoundTrip(t *testing.T) {
	s := play(t, advanceToFifth(t), nm("d7", "d5"), EnPassant{From: sq("e5")}, nm("g8", "f6"),
		nm("g1", "f3"), nm("b8", "c6"), nm("f1", "e2"), nm("c8", "d7"), Castle{Side: KingSide})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded GameState
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s, decoded)
	assert.Equal(t, Transcript(s), Transcript(decoded))
}

func TestMoveJSON(t *testing.T) {
	data, err := MarshalMove(Castle{Side: QueenSide})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"castle","side":"queenSide"}`, string(data))

	data, err = MarshalMove(nm("e2", "e4"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"normal","from":{"row":1,"col":4},"dest":{"row":3,"col":4}}`, string(data))

	m, err := UnmarshalMove([]byte(`{"kind":"enPassant","from":{"row":4,"col":4}}`))
	require.NoError(t, err)
	assert.Equal(t, Move(EnPassant{From: sq("e5")}), m)

	for _, bad := range []string{
		`{"kind":"teleport"}`,
		`{"kind":"normal","from":{"row":1,"col":4}}`,
		`{"kind":"castle","side":"middle"}`,
		`{"kind":"enPassant"}`,
		`[]`,
	} {
		_, err := UnmarshalMove([]byte(bad))
		assert.Errorf(t, err, "%s", bad)
	}
}

func TestMoveRecordJSONRejectsUnknownKind(t *testing.T) {
	var r MoveRecord
	err := json.Unmarshal([]byte(`{"move":{"kind":"drop"},"moved":{"rank":"pawn","color":"white","hasMoved":true}}`), &r)
	assert.Error(t, err)
}
