package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	color, err := gc.gameService.JoinGame(c.Params("gameId"), playerID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	view, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	if err := gc.gameService.JoinMatchmaking(playerID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

// MakeMove accepts {"san": "Nf3"} or {"from": "g1", "to": "f3"}.
func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}

	gameID := c.Params("gameId")
	if err := gc.gameService.HandleMove(gameID, playerID(c), move); err != nil {
		return fail(c, err)
	}
	view, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if err := gc.gameService.HandleUndo(gameID, playerID(c)); err != nil {
		return fail(c, err)
	}
	view, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) Transcript(c *fiber.Ctx) error {
	moves, err := gc.gameService.Transcript(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"moves": moves,
	})
}

func (gc *GameController) PGN(c *fiber.Ctx) error {
	pgn, err := gc.gameService.ExportPGN(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/x-chess-pgn")
	return c.SendString(pgn)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	square := c.Params("square")
	dests, err := gc.gameService.LegalMoves(c.Params("gameId"), square)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"square": square,
		"moves":  dests,
	})
}

func (gc *GameController) Archive(c *fiber.Ctx) error {
	n, err := gc.gameService.Archive()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"archived": n,
	})
}
