// Package game provides the level session, the main game loop and state management.
package game

// State represents the current game state.
type State int

const (
	// StatePlaying is the default state: the player explores and fights.
	StatePlaying State = iota
	// StateVictory means the player reached the goal.
	StateVictory
	// StateGameOver means the player ran out of HP.
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateVictory:
		return "victory"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Finished reports whether the level has ended.
func (s State) Finished() bool {
	return s == StateVictory || s == StateGameOver
}
