package service

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/benbeisheim/chessrules/internal/archive"
	"github.com/benbeisheim/chessrules/internal/config"
	"github.com/benbeisheim/chessrules/internal/model"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager owns every live game and the matchmaking queue.
type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	cfg              config.Config
	mu               sync.RWMutex
	stop             chan struct{}
	stopOnce         sync.Once
}

func NewGameManager(cfg config.Config) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		cfg:              cfg,
		stop:             make(chan struct{}),
	}

	go gm.processMatchmaking(cfg.MatchmakingInterval())

	return gm
}

// Close stops the matchmaking loop.
func (gm *GameManager) Close() {
	gm.stopOnce.Do(func() { close(gm.stop) })
}

// RegisterMatchmakingChannel makes ch receive the playerID's match event. A
// channel registered earlier for the same player is closed.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
	return nil
}

// UnregisterMatchmakingChannel forgets the player's channel and drops them
// from the queue. The channel itself is left to its creator.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	delete(gm.matchingChannels, playerID)
	gm.queue.Remove(playerID)
}

func (gm *GameManager) processMatchmaking(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-gm.stop:
			return
		case <-ticker.C:
			gm.matchPlayers()
		}
	}
}

// matchPlayers pairs waiting players two at a time. Only players listening
// on a matchmaking channel are paired; the rest keep their place until they
// open one.
func (gm *GameManager) matchPlayers() {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	listening := func(p model.Player) bool {
		_, ok := gm.matchingChannels[p.ID]
		return ok
	}
	for {
		player1, player2, ok := gm.queue.NextReadyPair(listening)
		if !ok {
			return
		}

		gameID := uuid.New().String()
		game := model.NewGame(gameID, gm.cfg.Clock())
		p1Color, err := game.AddPlayer(player1.ID)
		if err != nil {
			log.Printf("matchmaking: seating %s: %v", player1.ID, err)
			continue
		}
		p2Color, err := game.AddPlayer(player2.ID)
		if err != nil {
			log.Printf("matchmaking: seating %s: %v", player2.ID, err)
			continue
		}
		gm.games[gameID] = game
		log.Printf("matchmaking: %s (%s) vs %s (%s) in game %s", player1.ID, p1Color, player2.ID, p2Color, gameID)

		gm.notifyLocked(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
		gm.notifyLocked(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
	}
}

// notifyLocked sends event on the player's channel and retires it.
func (gm *GameManager) notifyLocked(playerID string, event model.MatchFoundEvent) bool {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		log.Printf("matchmaking: no channel for %s", playerID)
		return false
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("matchmaking: marshal event for %s: %v", playerID, err)
		return false
	}

	select {
	case ch <- string(payload):
		delete(gm.matchingChannels, playerID)
		close(ch)
		return true
	default:
		log.Printf("matchmaking: channel for %s is full", playerID)
		return false
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return errors.Wrap(ErrGameExists, gameID)
	}
	gm.games[gameID] = model.NewGame(gameID, gm.cfg.Clock())
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.Wrap(ErrGameNotFound, gameID)
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) QueueSize() int {
	return gm.queue.Size()
}

// ArchiveGames writes every game to the configured parquet file and returns
// how many were written.
func (gm *GameManager) ArchiveGames() (int, error) {
	gm.mu.RLock()
	records := make([]archive.Record, 0, len(gm.games))
	now := time.Now()
	for id, game := range gm.games {
		records = append(records, archive.FromState(id, game.Snapshot(), now))
	}
	gm.mu.RUnlock()

	if err := archive.Write(gm.cfg.ArchivePath, records, gm.cfg.ArchiveParallel); err != nil {
		return 0, err
	}
	log.Printf("archived %d games to %s", len(records), gm.cfg.ArchivePath)
	return len(records), nil
}
