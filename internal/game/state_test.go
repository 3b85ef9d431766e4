package game

import "testing"

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		want     string
		finished bool
	}{
		{StatePlaying, "playing", false},
		{StateVictory, "victory", true},
		{StateGameOver, "game_over", true},
		{State(99), "unknown", false},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
		if got := tt.state.Finished(); got != tt.finished {
			t.Errorf("State(%d).Finished() = %v, want %v", tt.state, got, tt.finished)
		}
	}
}
