package service

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/benbeisheim/chessrules/internal/export"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/ws"
)

// GameService is what the controllers talk to.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", errors.Wrap(err, "failed to create game")
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameView, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return game.View(), nil
}

func (gs *GameService) HandleMove(gameID, playerID string, move model.WSMove) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(playerID, move)
}

func (gs *GameService) HandleUndo(gameID, playerID string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Undo(playerID)
}

func (gs *GameService) Transcript(gameID string) ([]string, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.Transcript(), nil
}

func (gs *GameService) LegalMoves(gameID, square string) ([]string, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(square)
}

// ExportPGN renders the game as PGN.
func (gs *GameService) ExportPGN(gameID string) (string, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return export.PGN(game.Snapshot())
}

func (gs *GameService) Archive() (int, error) {
	return gs.gameManager.ArchiveGames()
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn model.Conn) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

// SendToPlayer writes msg to the player's connection on the game, in turn
// with the game's own broadcasts.
func (gs *GameService) SendToPlayer(gameID, playerID string, msg ws.Message) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(playerID, msg)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	return gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID)
}
