package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Room errors
	ErrRoomNotFound           = errors.New("room not found")
	ErrWrongRoomPassword      = errors.New("wrong room password")
	ErrUserAlreadyInRoom      = errors.New("user already in room")
	ErrUserAlreadyInOtherRoom = errors.New("user already in other room")
	ErrRoomIsBusy             = errors.New("room is full")

	// Placement errors
	ErrInvalidField = errors.New("invalid ships positions")

	// Game errors
	ErrGameNotStartedYet = errors.New("game not started yet")
)
