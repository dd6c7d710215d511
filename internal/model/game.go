package model

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/benbeisheim/chessrules/internal/rules"
	"github.com/benbeisheim/chessrules/internal/ws"
)

var (
	ErrGameFull       = errors.New("game is full")
	ErrNotInGame      = errors.New("player not in game")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrIllegalMove    = errors.New("illegal move")
	ErrBadNotation    = errors.New("cannot read move")
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrNotAuthorized  = errors.New("not authorized to join this game")
	ErrAlreadyWatched = errors.New("connection already exists")
	ErrNoConnection   = errors.New("no connection for player")
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// GameConnections holds the open connections of one game by player ID.
type GameConnections struct {
	connections map[string]Conn
	mu          sync.RWMutex
	// writeMu guards every write to a connection and sent; a websocket
	// allows one writer at a time.
	writeMu sync.Mutex
	// sent is the version of the last state broadcast.
	sent uint64
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Game is one session: the engine state plus seats, clocks and observers.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       rules.GameState
	white       string
	black       string
	sound       string
	lastMove    *SimpleMove
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
	// version counts state changes; broadcasts older than the last one sent
	// are dropped.
	version uint64
}

type CapturedPieces struct {
	// White holds the pieces White has taken.
	White []rules.Piece `json:"white"`
	Black []rules.Piece `json:"black"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// GameView is what clients receive.
type GameView struct {
	ID             string         `json:"id"`
	Sound          string         `json:"sound"`
	Board          rules.Board    `json:"boardState"`
	ToMove         rules.Color    `json:"toMove"`
	MoveHistory    []string       `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	Players        Players        `json:"players"`
	LastMove       *SimpleMove    `json:"lastMove"`
}

func NewGame(id string, clock time.Duration) *Game {
	return &Game{
		ID:          id,
		state:       rules.NewGameState(),
		connections: NewGameConnections(),
		whiteClock:  NewClock(clock),
		blackClock:  NewClock(clock),
	}
}

// AddPlayer seats playerID on the first free side. A player already seated
// gets their color back.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.seatOf(playerID); ok {
		return colorOf(c), nil
	}
	if g.white == "" {
		g.white = playerID
		return PlayerColorWhite, nil
	}
	if g.black == "" {
		g.black = playerID
		return PlayerColorBlack, nil
	}
	return "", ErrGameFull
}

func (g *Game) seatOf(playerID string) (rules.Color, bool) {
	switch {
	case playerID == "":
		return 0, false
	case playerID == g.white:
		return rules.White, true
	case playerID == g.black:
		return rules.Black, true
	}
	return 0, false
}

func (g *Game) clockOf(c rules.Color) *Clock {
	if c == rules.White {
		return g.whiteClock
	}
	return g.blackClock
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.seatOf(playerID)
	return ok
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.white == "" || g.black == ""
}

// Snapshot returns the engine state. GameState is immutable, so the caller
// may keep it.
func (g *Game) Snapshot() rules.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

func (g *Game) View() GameView {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.viewLocked()
}

func (g *Game) viewLocked() GameView {
	captured := CapturedPieces{White: []rules.Piece{}, Black: []rules.Piece{}}
	for _, p := range g.state.CapturedPieces {
		if p.Color == rules.Black {
			captured.White = append(captured.White, p)
		} else {
			captured.Black = append(captured.Black, p)
		}
	}
	return GameView{
		ID:             g.ID,
		Sound:          g.sound,
		Board:          g.state.Board,
		ToMove:         g.state.ToMove,
		MoveHistory:    rules.Transcript(g.state),
		CapturedPieces: captured,
		Players: Players{
			White: ClientPlayer{ID: g.white, Color: string(PlayerColorWhite), TimeLeft: g.whiteClock.Tenths()},
			Black: ClientPlayer{ID: g.black, Color: string(PlayerColorBlack), TimeLeft: g.blackClock.Tenths()},
		},
		LastMove: g.lastMove,
	}
}

// MakeMove plays a move for playerID, who must own the side to move.
func (g *Game) MakeMove(playerID string, request WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.seatOf(playerID)
	if !ok {
		return ErrNotInGame
	}
	if color != g.state.ToMove {
		return ErrNotYourTurn
	}
	move, err := request.resolve(g.state)
	if err != nil {
		return err
	}
	if !rules.IsLegal(move, g.state) {
		return errors.Wrapf(ErrIllegalMove, "%v", move)
	}
	next, ok := rules.Apply(move, g.state)
	if !ok {
		return errors.Wrapf(ErrIllegalMove, "%v", move)
	}

	from := rules.Origin(move, g.state)
	to, _ := rules.Destination(move, g.state)
	g.lastMove = &SimpleMove{From: from, To: to}
	g.sound = soundOf(next.History[0])
	g.state = next

	g.clockOf(color).Stop()
	g.clockOf(next.ToMove).Start()

	log.Printf("game %s: %s played %v", g.ID, playerID, move)
	g.publishLocked()
	return nil
}

func soundOf(r rules.MoveRecord) string {
	if r.Captured != nil {
		return "capture"
	}
	if _, ok := r.Move.(rules.Castle); ok {
		return "castle"
	}
	return "move"
}

// Undo takes back the last move. Only the player who made it may do so.
func (g *Game) Undo(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.seatOf(playerID)
	if !ok {
		return ErrNotInGame
	}
	if _, ok := g.state.LastRecord(); !ok {
		return ErrNothingToUndo
	}
	if color != g.state.ToMove.Invert() {
		return ErrNotYourTurn
	}

	g.clockOf(g.state.ToMove).Stop()
	g.state = rules.RevertLast(g.state)
	g.clockOf(g.state.ToMove).Start()
	g.lastMove = nil
	g.sound = "move"

	log.Printf("game %s: %s took back a move", g.ID, playerID)
	g.publishLocked()
	return nil
}

func (g *Game) Transcript() []string {
	return rules.Transcript(g.Snapshot())
}

// LegalMoves lists the destination squares of the piece on square.
func (g *Game) LegalMoves(square string) ([]string, error) {
	from, ok := rules.ParseSquare(normalizeSAN(square))
	if !ok {
		return nil, ErrBadNotation
	}
	state := g.Snapshot()
	dests := []string{}
	for _, m := range rules.PseudoLegalMoves(from, state) {
		if to, ok := rules.Destination(m, state); ok {
			dests = append(dests, to.String())
		}
	}
	return dests, nil
}

// RegisterConnection adds an observer. Players may always watch their own
// game; others only while a seat is free.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, seated := g.seatOf(playerID)
	if !seated && !g.canSpectate() {
		return ErrNotAuthorized
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		return ErrAlreadyWatched
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Printf("game %s: registered connection for %s", g.ID, playerID)

	g.publishLocked()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[playerID]; exists {
		log.Printf("game %s: unregistering connection for %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

// Send writes msg to the player's connection.
func (g *Game) Send(playerID string, msg ws.Message) error {
	g.connections.mu.RLock()
	conn, ok := g.connections.connections[playerID]
	g.connections.mu.RUnlock()
	if !ok {
		return ErrNoConnection
	}

	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	return conn.WriteJSON(msg)
}

// publishLocked broadcasts the current view without blocking the caller.
// Must be called with g.mu held.
func (g *Game) publishLocked() {
	g.version++
	go g.broadcastState(g.viewLocked(), g.version)
}

func (g *Game) broadcastState(view GameView, version uint64) {
	payload, err := json.Marshal(view)
	if err != nil {
		log.Printf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}

	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()

	if version <= g.connections.sent {
		return
	}
	g.connections.sent = version

	g.connections.mu.RLock()
	active := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Printf("game %s: failed to send state to %s: %v", g.ID, playerID, err)
			g.connections.mu.Lock()
			delete(g.connections.connections, playerID)
			g.connections.mu.Unlock()
		}
	}
}
