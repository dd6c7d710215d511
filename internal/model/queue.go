package model

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

var ErrAlreadyQueued = errors.New("player already in queue")

type QueuedPlayer struct {
	Player   Player
	JoinedAt time.Time
}

type Queue struct {
	players []QueuedPlayer
	mu      sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{
		players: []QueuedPlayer{},
	}
}

func (q *Queue) AddPlayer(player Player) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.Player.ID == player.ID {
			return ErrAlreadyQueued
		}
	}

	q.players = append(q.players, QueuedPlayer{
		Player:   player,
		JoinedAt: time.Now(),
	})
	return nil
}

// GetNextPair pops the two players who have waited longest. ok is false when
// fewer than two are waiting.
func (q *Queue) GetNextPair() (Player, Player, bool) {
	return q.NextReadyPair(func(Player) bool { return true })
}

// NextReadyPair pops the two longest-waiting players for which ready holds.
// Players that are not ready keep their place in the queue.
func (q *Queue) NextReadyPair(ready func(Player) bool) (Player, Player, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	picked := make([]int, 0, 2)
	for i, p := range q.players {
		if ready(p.Player) {
			picked = append(picked, i)
			if len(picked) == 2 {
				break
			}
		}
	}
	if len(picked) < 2 {
		return Player{}, Player{}, false
	}

	player1 := q.players[picked[0]].Player
	player2 := q.players[picked[1]].Player
	rest := make([]QueuedPlayer, 0, len(q.players)-2)
	for i, p := range q.players {
		if i != picked[0] && i != picked[1] {
			rest = append(rest, p)
		}
	}
	q.players = rest

	return player1, player2, true
}

func (q *Queue) Remove(playerID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.players {
		if p.Player.ID == playerID {
			q.players = append(q.players[:i:i], q.players[i+1:]...)
			return
		}
	}
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
