package entity

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonadventure/internal/gamedata"
	"github.com/samdwyer/dungeonadventure/internal/world"
)

// Ranged monster tuning.
const (
	RangedAttackRange    = 200.0
	RangedAttackCooldown = 1500 * time.Millisecond
	rangedKiteRange      = RangedAttackRange * 0.7
	rangedKiteSpeed      = 0.5
	rangedApproachSpeed  = 0.8
)

// Melee monster tuning.
const (
	meleeBaseSpeed     = 1.0
	meleeStopDistance  = 3.0
	meleePredictRange  = 50.0
	meleePredictFactor = 0.1
)

// projectileCullMargin is how far outside its room a projectile may travel.
const projectileCullMargin = 100.0

// Monster is a hostile creature bound to one room.
type Monster struct {
	Def        *gamedata.MonsterDef
	Name       string
	Symbol     rune
	Pos        Vec
	RoomIndex  int
	Room       world.Room
	HP, MaxHP  int
	HitRadius  float64
	Ranged     bool
	Active     bool // the player is inside this monster's room
	FacingLeft bool

	Projectiles []*Projectile

	sinceShot time.Duration
}

// NewMonster creates a monster from its definition at the pixel center of its room.
func NewMonster(def *gamedata.MonsterDef, roomIndex int, room world.Room) *Monster {
	return &Monster{
		Def:       def,
		Name:      def.Name,
		Symbol:    def.GlyphRune(),
		Pos:       VecFromPoint(room.PixelCenter()),
		RoomIndex: roomIndex,
		Room:      room,
		HP:        def.HP,
		MaxHP:     def.HP,
		HitRadius: def.HitRadius,
		Ranged:    def.Ranged,
		sinceShot: RangedAttackCooldown + time.Millisecond,
	}
}

// ID returns the monster's type identifier.
func (m *Monster) ID() string { return m.Def.ID }

// Color returns the tcell color for this monster.
func (m *Monster) Color() tcell.Color { return m.Def.TCellColor() }

// IsAlive returns true if the monster has HP remaining.
func (m *Monster) IsAlive() bool { return m.HP > 0 }

// TakeDamage reduces HP and returns the damage taken.
func (m *Monster) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, m.HP)
	m.HP -= actual
	return actual
}

// UpdateActivation wakes the monster while the player is inside its room and
// puts it to sleep otherwise. It returns true when the state changed.
func (m *Monster) UpdateActivation(player Vec) bool {
	active := m.Room.ContainsPixel(player.X, player.Y)
	changed := active != m.Active
	m.Active = active
	return changed
}

// Update runs one tick of behavior toward the player. Inactive monsters do nothing.
func (m *Monster) Update(player Vec, dt time.Duration) {
	m.sinceShot += dt
	if !m.Active {
		return
	}

	delta := player.Sub(m.Pos)
	dist := delta.Len()
	m.FacingLeft = delta.X < 0

	if m.Ranged {
		m.updateRanged(player, delta, dist)
		return
	}
	m.updateMelee(delta, dist)
}

func (m *Monster) updateRanged(player, delta Vec, dist float64) {
	switch {
	case dist < RangedAttackRange && m.sinceShot > RangedAttackCooldown:
		m.Projectiles = append(m.Projectiles, NewProjectile(m.Pos, player))
		m.sinceShot = 0
	case dist < rangedKiteRange && dist > 0:
		m.Pos = m.clampToRoom(m.Pos.Sub(delta.Scale(rangedKiteSpeed / dist)))
	case dist > RangedAttackRange:
		m.Pos = m.clampToRoom(m.Pos.Add(delta.Scale(rangedApproachSpeed / dist)))
	}
}

func (m *Monster) updateMelee(delta Vec, dist float64) {
	if dist <= meleeStopDistance {
		return
	}
	// Speeds up when close; the multiplier keeps shrinking with distance.
	speed := meleeBaseSpeed * (1 + math.Min(0.5, (100-dist)/200))
	predict := 0.0
	if dist > meleePredictRange {
		predict = meleePredictFactor
	}
	aim := delta.Scale(1 + predict)
	m.Pos = m.Pos.Add(aim.Scale(speed / aim.Len()))
}

func (m *Monster) clampToRoom(p Vec) Vec {
	left, top, right, bottom := m.Room.PixelBounds()
	return Vec{
		X: math.Max(left, math.Min(p.X, right)),
		Y: math.Max(top, math.Min(p.Y, bottom)),
	}
}

// UpdateProjectiles advances every projectile and drops the ones that left
// the area around the room.
func (m *Monster) UpdateProjectiles() {
	left, top, right, bottom := m.Room.PixelBounds()
	left, top = left-projectileCullMargin, top-projectileCullMargin
	right, bottom = right+projectileCullMargin, bottom+projectileCullMargin

	kept := m.Projectiles[:0]
	for _, p := range m.Projectiles {
		p.Update()
		if p.Pos.X >= left && p.Pos.X <= right && p.Pos.Y >= top && p.Pos.Y <= bottom {
			kept = append(kept, p)
		}
	}
	clear(m.Projectiles[len(kept):])
	m.Projectiles = kept
}

// RemoveProjectile drops the i-th projectile.
func (m *Monster) RemoveProjectile(i int) {
	m.Projectiles = append(m.Projectiles[:i], m.Projectiles[i+1:]...)
}
