// Package entity provides the player, monsters and their projectiles.
package entity

import (
	"math"

	"github.com/samdwyer/dungeonadventure/internal/world"
)

// Vec is a position or velocity in pixels.
type Vec struct {
	X, Y float64
}

// VecFromPoint converts an integer pixel point.
func VecFromPoint(p world.Point) Vec {
	return Vec{X: float64(p.X), Y: float64(p.Y)}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }

// Len returns the Euclidean length.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between two positions.
func Dist(a, b Vec) float64 { return a.Sub(b).Len() }

// Manhattan returns |dx| + |dy|.
func Manhattan(a, b Vec) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

// Terrain answers collision queries in pixel space. *world.Dungeon implements it.
type Terrain interface {
	IsPassablePixel(px, py float64) bool
}

// canStand reports whether a circle of the given radius fits at x, y, probing
// the four cardinal points of its rim.
func canStand(t Terrain, x, y, radius float64) bool {
	return t.IsPassablePixel(x-radius, y) &&
		t.IsPassablePixel(x+radius, y) &&
		t.IsPassablePixel(x, y-radius) &&
		t.IsPassablePixel(x, y+radius)
}

// Direction is the way the player faces.
type Direction int

const (
	DirDown Direction = iota
	DirUp
	DirLeft
	DirRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Unit returns the unit vector for the direction.
func (d Direction) Unit() Vec {
	switch d {
	case DirUp:
		return Vec{0, -1}
	case DirLeft:
		return Vec{-1, 0}
	case DirRight:
		return Vec{1, 0}
	default:
		return Vec{0, 1}
	}
}

// DirectionOf returns the facing for a movement delta. Vertical movement wins
// over horizontal. ok is false for a zero delta.
func DirectionOf(dx, dy int) (d Direction, ok bool) {
	switch {
	case dy < 0:
		return DirUp, true
	case dy > 0:
		return DirDown, true
	case dx < 0:
		return DirLeft, true
	case dx > 0:
		return DirRight, true
	}
	return DirDown, false
}
