package tui

type state int

const (
	idleState state = iota
	openState
	playerState
	errorState
)
