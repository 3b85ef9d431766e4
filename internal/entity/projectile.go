package entity

import "time"

// Projectile tuning.
const (
	ProjectileSpeed  = 2.0
	ProjectileRadius = 5.0
)

// Laser tuning.
const (
	LaserLength   = 160.0
	LaserWidth    = 6.0
	LaserLifetime = 140 * time.Millisecond
)

// Projectile is a shot fired by a ranged monster. It flies in a straight
// line toward the point it was aimed at.
type Projectile struct {
	Pos    Vec
	Vel    Vec
	Radius float64
}

// NewProjectile creates a projectile at from aimed at target. A projectile
// aimed at its own origin does not move.
func NewProjectile(from, target Vec) *Projectile {
	p := &Projectile{Pos: from, Radius: ProjectileRadius}
	delta := target.Sub(from)
	if dist := delta.Len(); dist > 0 {
		p.Vel = delta.Scale(ProjectileSpeed / dist)
	}
	return p
}

// Update moves the projectile one tick.
func (p *Projectile) Update() {
	p.Pos = p.Pos.Add(p.Vel)
}

// Hits reports whether the projectile overlaps a circle at pos.
func (p *Projectile) Hits(pos Vec, radius float64) bool {
	return Dist(p.Pos, pos) < p.Radius+radius
}

// Laser is the beam fired by a player attack.
type Laser struct {
	From, To Vec
	Width    float64
	Age      time.Duration
}

// NewLaser fires a beam from origin along the facing.
func NewLaser(origin Vec, facing Direction) *Laser {
	return &Laser{
		From:  origin,
		To:    origin.Add(facing.Unit().Scale(LaserLength)),
		Width: LaserWidth,
	}
}

// Tick ages the laser.
func (l *Laser) Tick(dt time.Duration) { l.Age += dt }

// Expired reports whether the laser has faded.
func (l *Laser) Expired() bool { return l.Age >= LaserLifetime }
