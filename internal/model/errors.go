package model

import "errors"

var (
	ErrGameFull         = errors.New("game is full")
	ErrPlayerNotInGame  = errors.New("player not in game")
	ErrAlreadyQueued    = errors.New("player already in queue")
	ErrConnectionExists = errors.New("connection already exists")
	ErrNotAuthorized    = errors.New("not authorized to join this game")
)
