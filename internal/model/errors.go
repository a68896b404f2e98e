package model

import "errors"

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound  = errors.New("game not found")
	ErrGameNotActive = errors.New("game is not active")
	ErrGameComplete  = errors.New("game is already complete")
	ErrJoinClosed    = errors.New("game is not open for joining")
	ErrNotInGame     = errors.New("player is not seated in this game")

	// Input errors
	ErrInvalidGesture = errors.New("gesture must be rock, paper or scissors")

	// Queue errors
	ErrQueueEmpty = errors.New("waiting queue is empty")
	ErrNotWaiting = errors.New("player is not in the waiting queue")
)
