package core

// DefaultTickRate is the simulation rate used when none is configured.
const DefaultTickRate = 60

// RuntimeConfig is what the platform tells a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // terminal columns
	ScreenH  int   // terminal rows
	TickRate int   // simulation steps per second
	Seed     int64 // 0 lets the platform pick one from the clock
}

// GameState is the part of a game the platform reads each tick.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is what one Step reports back.
type StepResult struct {
	State GameState
}
