package request

// FindOrWaitRequest is the request body for find-or-wait matchmaking
type FindOrWaitRequest struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// HostGameRequest is the request body for hosting a game
type HostGameRequest struct {
	HostID   string `json:"host_id"`
	HostName string `json:"host_name"`
}

// JoinGameRequest is the request body for joining a game by code
type JoinGameRequest struct {
	Code       string `json:"code"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// SubmitGestureRequest is the request body for submitting a gesture
type SubmitGestureRequest struct {
	PlayerID string `json:"player_id"`
	Gesture  string `json:"gesture"`
}
