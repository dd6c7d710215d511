package model

import (
	"github.com/benbeisheim/chessrules/internal/rules"
)

type Player struct {
	ID string
}

type ClientPlayer struct {
	ID       string `json:"name"`
	Color    string `json:"color"`
	TimeLeft int    `json:"timeLeft"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func colorOf(c rules.Color) PlayerColor {
	if c == rules.White {
		return PlayerColorWhite
	}
	return PlayerColorBlack
}

// MatchFoundEvent is pushed to both players when matchmaking pairs them.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  PlayerColor `json:"color"`
}
