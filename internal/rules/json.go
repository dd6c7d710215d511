package rules

import (
	"encoding/json"

	"github.com/pkg/errors"
)

const (
	kindNormal    = "normal"
	kindEnPassant = "enPassant"
	kindCastle    = "castle"
)

type moveJSON struct {
	Kind string    `json:"kind"`
	From *Position `json:"from,omitempty"`
	Dest *Position `json:"dest,omitempty"`
	Side string    `json:"side,omitempty"`
}

func encodeMove(m Move) (moveJSON, error) {
	switch m := m.(type) {
	case Normal:
		return moveJSON{Kind: kindNormal, From: &m.From, Dest: &m.Dest}, nil
	case EnPassant:
		return moveJSON{Kind: kindEnPassant, From: &m.From}, nil
	case Castle:
		return moveJSON{Kind: kindCastle, Side: m.Side.String()}, nil
	}
	return moveJSON{}, errors.Errorf("cannot encode move %T", m)
}

func decodeMove(j moveJSON) (Move, error) {
	switch j.Kind {
	case kindNormal:
		if j.From == nil || j.Dest == nil {
			return nil, errors.New("normal move needs from and dest")
		}
		return Normal{From: *j.From, Dest: *j.Dest}, nil
	case kindEnPassant:
		if j.From == nil {
			return nil, errors.New("en passant move needs from")
		}
		return EnPassant{From: *j.From}, nil
	case kindCastle:
		switch j.Side {
		case QueenSide.String():
			return Castle{Side: QueenSide}, nil
		case KingSide.String():
			return Castle{Side: KingSide}, nil
		}
		return nil, errors.Errorf("unknown castle side %q", j.Side)
	}
	return nil, errors.Errorf("unknown move kind %q", j.Kind)
}

// MarshalMove encodes a move in its tagged JSON form.
func MarshalMove(m Move) ([]byte, error) {
	j, err := encodeMove(m)
	if err != nil {
		return nil, err
	}
	return json.Marshal(j)
}

func UnmarshalMove(data []byte) (Move, error) {
	var j moveJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, errors.Wrap(err, "decode move")
	}
	return decodeMove(j)
}

type recordJSON struct {
	Move      moveJSON `json:"move"`
	Moved     Piece    `json:"moved"`
	Captured  *Piece   `json:"captured"`
	FirstMove bool     `json:"firstMove"`
}

func (r MoveRecord) MarshalJSON() ([]byte, error) {
	m, err := encodeMove(r.Move)
	if err != nil {
		return nil, err
	}
	return json.Marshal(recordJSON{Move: m, Moved: r.Moved, Captured: r.Captured, FirstMove: r.FirstMove})
}

func (r *MoveRecord) UnmarshalJSON(data []byte) error {
	var j recordJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return errors.Wrap(err, "decode move record")
	}
	m, err := decodeMove(j.Move)
	if err != nil {
		return err
	}
	*r = MoveRecord{Move: m, Moved: j.Moved, Captured: j.Captured, FirstMove: j.FirstMove}
	return nil
}
