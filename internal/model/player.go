package model

import "time"

// PlayerID is a client-chosen opaque identifier. Uniqueness is only
// meaningful within a single session; there is no global identity.
type PlayerID string

// Gesture is a player's choice for a round
type Gesture string

const (
	GestureNone     Gesture = ""
	GestureRock     Gesture = "rock"
	GesturePaper    Gesture = "paper"
	GestureScissors Gesture = "scissors"
)

// Valid reports whether the gesture is one of the three playable values
func (g Gesture) Valid() bool {
	switch g {
	case GestureRock, GesturePaper, GestureScissors:
		return true
	}
	return false
}

// Beats reports whether g wins against other under cyclic dominance
func (g Gesture) Beats(other Gesture) bool {
	switch g {
	case GestureRock:
		return other == GestureScissors
	case GestureScissors:
		return other == GesturePaper
	case GesturePaper:
		return other == GestureRock
	}
	return false
}

// Player represents a seated participant in a game
type Player struct {
	ID       PlayerID
	Name     string
	Gesture  Gesture
	JoinedAt time.Time
}

// WaitingEntry is a snapshot of a player awaiting random pairing
type WaitingEntry struct {
	Player    Player
	CreatedAt time.Time
}
