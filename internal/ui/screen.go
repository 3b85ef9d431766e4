// Package ui draws the dungeon on a terminal with tcell.
package ui

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Screen is the terminal the game runs on. It implements Canvas.
type Screen struct {
	screen    tcell.Screen
	closeOnce sync.Once
}

// NewScreen takes over the terminal: black background, hidden cursor.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close restores the terminal. It is safe to call more than once.
func (s *Screen) Close() {
	s.closeOnce.Do(s.screen.Fini)
}

// Pump forwards terminal events to events until the screen is closed or ctx
// is done. Closing the screen unblocks the pending poll.
func (s *Screen) Pump(ctx context.Context, events chan<- tcell.Event) error {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *Screen) Clear() {
	s.screen.Clear()
}

func (s *Screen) Show() {
	s.screen.Show()
}

func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync redraws every cell, used after a resize.
func (s *Screen) Sync() {
	s.screen.Sync()
}
