package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GameStatus:
		o.printGameStatus(v)
	case MatchmakingStatus:
		o.printMatchmakingStatus(v)
	case SubmitResult:
		o.printSubmitResult(v)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// GameStatus response type (matches API)
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

// Seat response type
type Seat struct {
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	Submitted bool   `json:"submitted"`
}

// Opponent response type
type Opponent struct {
	Name      string `json:"name"`
	Submitted bool   `json:"submitted"`
}

// Result response type
type Result struct {
	WinnerID *string `json:"winner_id"`
	Message  string  `json:"message"`
}

// MatchmakingStatus response type
type MatchmakingStatus struct {
	State    string      `json:"state"`
	Game     *GameStatus `json:"game,omitempty"`
	Opponent *Opponent   `json:"opponent,omitempty"`
}

// SubmitResult response type
type SubmitResult struct {
	Success      bool    `json:"success"`
	GameComplete bool    `json:"game_complete"`
	Result       *Result `json:"result,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printGameStatus(g GameStatus) {
	fmt.Printf("Game:  %s\n", g.GameID)
	fmt.Printf("Code:  %s\n", g.Code)
	fmt.Printf("State: %s\n", g.State)
	if g.HostName != "" {
		fmt.Printf("Host:  %s\n", g.HostName)
	}

	names := make([]string, len(g.Seats))
	for i, seat := range g.Seats {
		marker := ""
		if seat.Submitted {
			marker = " (submitted)"
		}
		names[i] = seat.Name + marker
	}
	fmt.Printf("Seats: %s\n", strings.Join(names, ", "))

	if g.Result != nil {
		fmt.Printf("Result: %s\n", g.Result.Message)
	}
}

func (o *Output) printMatchmakingStatus(m MatchmakingStatus) {
	switch m.State {
	case "waiting":
		fmt.Println("Waiting for an opponent...")
	case "matched":
		if m.Opponent != nil {
			fmt.Printf("Matched with %s\n", m.Opponent.Name)
		}
		if m.Game != nil {
			o.printGameStatus(*m.Game)
		}
	default:
		fmt.Println("Not in matchmaking")
	}
}

func (o *Output) printSubmitResult(r SubmitResult) {
	if !r.GameComplete {
		fmt.Println("Gesture submitted, waiting for opponent")
		return
	}
	if r.Result != nil {
		fmt.Printf("Game complete: %s\n", r.Result.Message)
	}
}
