package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameCode is a short human-shareable code for manual pairing,
// distinct from the internal game ID
type GameCode string

// GameState represents the current phase of a game
type GameState string

const (
	GameStateWaiting  GameState = "waiting"  // Fewer than two players seated
	GameStateActive   GameState = "active"   // Two players, gestures pending
	GameStateComplete GameState = "complete" // Both gestures in, result set
)

// MaxPlayers is the number of seats in a game
const MaxPlayers = 2

// Result records the outcome of a completed game
type Result struct {
	WinnerID PlayerID // Empty on a tie
	Message  string
}

// Game represents a single rock-paper-scissors session
type Game struct {
	ID    GameID
	Code  GameCode
	State GameState

	// Seated players, in join order, at most MaxPlayers
	Players []Player

	// Set exactly when State is complete
	Result *Result

	// Host metadata for third-party-run sessions; the host is not seated
	HostID   PlayerID
	HostName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy sharing no memory with the receiver
func (g *Game) Clone() *Game {
	c := *g
	c.Players = make([]Player, len(g.Players))
	copy(c.Players, g.Players)
	if g.Result != nil {
		r := *g.Result
		c.Result = &r
	}
	return &c
}

// GetPlayer returns the seated player with the given ID, or nil
func (g *Game) GetPlayer(id PlayerID) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// Opponent returns the other seated player, or nil if there is none
func (g *Game) Opponent(id PlayerID) *Player {
	for i := range g.Players {
		if g.Players[i].ID != id {
			return &g.Players[i]
		}
	}
	return nil
}

// IsFull reports whether every seat is taken
func (g *Game) IsFull() bool {
	return len(g.Players) >= MaxPlayers
}

// AllGesturesIn reports whether both seats hold a non-empty gesture
func (g *Game) AllGesturesIn() bool {
	if !g.IsFull() {
		return false
	}
	for i := range g.Players {
		if g.Players[i].Gesture == GestureNone {
			return false
		}
	}
	return true
}
