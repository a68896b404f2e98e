package response

import (
	"github.com/pixelpets/arena/internal/model"
)

// Result represents a completed game's outcome
type Result struct {
	WinnerID *string `json:"winner_id"`
	Message  string  `json:"message"`
}

// ResultFromModel converts model.Result
func ResultFromModel(r *model.Result) *Result {
	if r == nil {
		return nil
	}
	var winner *string
	if r.WinnerID != "" {
		w := string(r.WinnerID)
		winner = &w
	}
	return &Result{
		WinnerID: winner,
		Message:  r.Message,
	}
}

// Seat represents a seated player as visible to other clients
type Seat struct {
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	Submitted bool   `json:"submitted"`
}

// Opponent is the viewer's opponent, if seated
type Opponent struct {
	Name      string `json:"name"`
	Submitted bool   `json:"submitted"`
}

// GameStatus is the polling view of a game for one viewer
type GameStatus struct {
	GameID      string    `json:"game_id"`
	Code        string    `json:"code"`
	State       string    `json:"state"`
	Seats       []Seat    `json:"seats"`
	Opponent    *Opponent `json:"opponent,omitempty"`
	YourGesture string    `json:"your_gesture,omitempty"`
	HostName    string    `json:"host_name,omitempty"`
	Result      *Result   `json:"result,omitempty"`
}

// GameStatusFromModel builds the status view for the given viewer.
// Gestures other than the viewer's own are never revealed, only whether
// they have been submitted.
func GameStatusFromModel(g *model.Game, viewer model.PlayerID) GameStatus {
	seats := make([]Seat, len(g.Players))
	for i, p := range g.Players {
		seats[i] = Seat{
			PlayerID:  string(p.ID),
			Name:      p.Name,
			Submitted: p.Gesture != model.GestureNone,
		}
	}

	status := GameStatus{
		GameID:   string(g.ID),
		Code:     string(g.Code),
		State:    string(g.State),
		Seats:    seats,
		HostName: g.HostName,
		Result:   ResultFromModel(g.Result),
	}

	if me := g.GetPlayer(viewer); me != nil {
		status.YourGesture = string(me.Gesture)
		if opp := g.Opponent(viewer); opp != nil {
			status.Opponent = &Opponent{
				Name:      opp.Name,
				Submitted: opp.Gesture != model.GestureNone,
			}
		}
	}

	return status
}

// MatchmakingStatus reports where a player stands with matchmaking
type MatchmakingStatus struct {
	State    string      `json:"state"` // "waiting", "matched" or "idle"
	Game     *GameStatus `json:"game,omitempty"`
	Opponent *Opponent   `json:"opponent,omitempty"`
}

// SubmitGestureResponse is the response after submitting a gesture
type SubmitGestureResponse struct {
	Success      bool    `json:"success"`
	GameComplete bool    `json:"game_complete"`
	Result       *Result `json:"result,omitempty"`
}
