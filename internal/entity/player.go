package entity

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonadventure/internal/gamedata"
)

// DamageCooldown is the minimum time between two hits on the player.
const DamageCooldown = 2000 * time.Millisecond

// diagonalFactor scales the move speed when both axes are pressed.
const diagonalFactor = 0.7071

// PlayerState is what the player is currently doing.
type PlayerState int

const (
	PlayerIdle PlayerState = iota
	PlayerAttacking
	PlayerEvading
)

// String returns a human-readable state name.
func (s PlayerState) String() string {
	switch s {
	case PlayerIdle:
		return "idle"
	case PlayerAttacking:
		return "attacking"
	case PlayerEvading:
		return "evading"
	default:
		return "unknown"
	}
}

// Player is the hero controlled by the user.
type Player struct {
	Pos           Vec
	Radius        float64
	HP, MaxHP     int
	Facing        Direction
	Speed         float64
	EvadeDistance float64
	Symbol        rune
	Color         tcell.Color

	State         PlayerState
	AttackVariant int  // 1..3, advances when an attack ends
	EvadeVariant  int  // 1..3, advances when an evade ends
	AttackHit     bool // the current attack already landed a melee hit

	attackDuration time.Duration
	evadeDuration  time.Duration
	stateElapsed   time.Duration
	attackEmit     bool
	sinceDamage    time.Duration
}

// NewPlayer creates a player from its definition at the given pixel position.
func NewPlayer(def *gamedata.PlayerDef, pos Vec) *Player {
	return &Player{
		Pos:            pos,
		Radius:         def.Radius,
		HP:             def.HP,
		MaxHP:          def.HP,
		Facing:         DirDown,
		Speed:          def.MoveSpeed,
		EvadeDistance:  def.EvadeDistance,
		Symbol:         def.GlyphRune(),
		Color:          def.TCellColor(),
		AttackVariant:  1,
		EvadeVariant:   1,
		attackDuration: def.AttackDuration(),
		evadeDuration:  def.EvadeDuration(),
		sinceDamage:    DamageCooldown,
	}
}

// IsAlive returns true if the player has HP remaining.
func (p *Player) IsAlive() bool { return p.HP > 0 }

// Attacking reports whether an attack is in progress.
func (p *Player) Attacking() bool { return p.State == PlayerAttacking }

// Evading reports whether an evade is in progress.
func (p *Player) Evading() bool { return p.State == PlayerEvading }

// Move steps the player one tick along dx, dy (each in -1..1). Each axis is
// applied only if the player still fits there, so walls slide rather than stop.
func (p *Player) Move(t Terrain, dx, dy int) bool {
	dir, ok := DirectionOf(dx, dy)
	if !ok {
		return false
	}
	p.Facing = dir

	speed := p.Speed
	if dx != 0 && dy != 0 {
		speed = float64(int(speed * diagonalFactor))
	}

	moved := false
	if nx := p.Pos.X + float64(dx)*speed; dx != 0 && canStand(t, nx, p.Pos.Y, p.Radius) {
		p.Pos.X = nx
		moved = true
	}
	if ny := p.Pos.Y + float64(dy)*speed; dy != 0 && canStand(t, p.Pos.X, ny, p.Radius) {
		p.Pos.Y = ny
		moved = true
	}
	return moved
}

// StartAttack begins an attack. It is refused while attacking or evading.
func (p *Player) StartAttack() bool {
	if p.State != PlayerIdle {
		return false
	}
	p.State = PlayerAttacking
	p.stateElapsed = 0
	p.AttackHit = false
	p.attackEmit = true
	return true
}

// ConsumeAttackEmit returns true once per attack, telling the caller to fire
// the attack's laser.
func (p *Player) ConsumeAttackEmit() bool {
	emit := p.attackEmit
	p.attackEmit = false
	return emit
}

// StartEvade begins an evade and performs its dash along the facing. It is
// refused while attacking or evading.
func (p *Player) StartEvade(t Terrain) bool {
	if p.State != PlayerIdle {
		return false
	}
	p.State = PlayerEvading
	p.stateElapsed = 0

	dash := p.Facing.Unit().Scale(p.EvadeDistance)
	if nx := p.Pos.X + dash.X; canStand(t, nx, p.Pos.Y, p.Radius) {
		p.Pos.X = nx
	}
	if ny := p.Pos.Y + dash.Y; canStand(t, p.Pos.X, ny, p.Radius) {
		p.Pos.Y = ny
	}
	return true
}

// Tick advances the player's timers and ends a finished attack or evade.
func (p *Player) Tick(dt time.Duration) {
	p.sinceDamage += dt
	if p.State == PlayerIdle {
		return
	}

	p.stateElapsed += dt
	switch {
	case p.State == PlayerAttacking && p.stateElapsed >= p.attackDuration:
		p.AttackVariant = p.AttackVariant%3 + 1
		p.State = PlayerIdle
	case p.State == PlayerEvading && p.stateElapsed >= p.evadeDuration:
		p.EvadeVariant = p.EvadeVariant%3 + 1
		p.State = PlayerIdle
	}
}

// Vulnerable reports whether the player can take damage right now.
func (p *Player) Vulnerable() bool {
	return !p.Evading() && p.sinceDamage >= DamageCooldown
}

// TakeDamage reduces HP, restarts the damage cooldown and returns the damage taken.
func (p *Player) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, p.HP)
	p.HP -= actual
	p.sinceDamage = 0
	return actual
}
