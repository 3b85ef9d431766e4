package game

import "github.com/gdamore/tcell/v2"

// holdTicks is how long a movement key counts as held after a press. Terminals
// report key presses and repeats but no releases.
const holdTicks = 8

// action is what a key press asks for.
type action int

const (
	actionNone action = iota
	actionUp
	actionDown
	actionLeft
	actionRight
	actionAttack
	actionEvade
	actionPause
	actionRestart
	actionQuit
)

// actionFor maps a key to its action.
func actionFor(key tcell.Key, ch rune) action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyUp:
		return actionUp
	case tcell.KeyDown:
		return actionDown
	case tcell.KeyLeft:
		return actionLeft
	case tcell.KeyRight:
		return actionRight
	case tcell.KeyRune:
		switch ch {
		case 'w', 'W':
			return actionUp
		case 's', 'S':
			return actionDown
		case 'a', 'A':
			return actionLeft
		case 'd', 'D':
			return actionRight
		case 'j', 'J':
			return actionAttack
		case 'k', 'K':
			return actionEvade
		case ' ':
			return actionPause
		case 'r', 'R':
			return actionRestart
		case 'q', 'Q':
			return actionQuit
		}
	}
	return actionNone
}

// inputState turns key presses into per-tick Input. Each axis remembers its
// last direction for holdTicks ticks so two keys pressed together move diagonally.
type inputState struct {
	dx, dy        int
	dxTicks       int
	dyTicks       int
	attack, evade bool
}

// press records a movement or combat action.
func (s *inputState) press(a action) {
	switch a {
	case actionUp:
		s.dy, s.dyTicks = -1, holdTicks
	case actionDown:
		s.dy, s.dyTicks = 1, holdTicks
	case actionLeft:
		s.dx, s.dxTicks = -1, holdTicks
	case actionRight:
		s.dx, s.dxTicks = 1, holdTicks
	case actionAttack:
		s.attack = true
	case actionEvade:
		s.evade = true
	}
}

// next returns the input for one tick and ages the held keys.
func (s *inputState) next() Input {
	in := Input{Attack: s.attack, Evade: s.evade}
	if s.dxTicks > 0 {
		in.DX = s.dx
		s.dxTicks--
	}
	if s.dyTicks > 0 {
		in.DY = s.dy
		s.dyTicks--
	}
	s.attack, s.evade = false, false
	return in
}

// reset forgets every pending key.
func (s *inputState) reset() {
	*s = inputState{}
}
