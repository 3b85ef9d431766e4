// Package combat resolves collisions between the player, monsters and their shots.
package combat

import (
	"math"

	"github.com/samdwyer/dungeonadventure/internal/entity"
)

// Damage values and reaches, in HP and pixels.
const (
	LaserDamage      = 2
	MeleeDamage      = 1
	MeleeReach       = 30.0
	ContactDamage    = 1
	ProjectileDamage = 1
)

// Source names what dealt the damage.
type Source int

const (
	SourceLaser Source = iota
	SourceMelee
	SourceContact
	SourceProjectile
)

// String returns a human-readable source name.
func (s Source) String() string {
	switch s {
	case SourceLaser:
		return "laser"
	case SourceMelee:
		return "melee"
	case SourceContact:
		return "contact"
	case SourceProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// Hit is damage dealt to a monster by the player.
type Hit struct {
	Monster *entity.Monster
	Damage  int
	Killed  bool
	Source  Source
}

// PlayerHit is damage dealt to the player by a monster.
type PlayerHit struct {
	Monster *entity.Monster
	Damage  int
	Source  Source
}

// DistancePointToSegment returns the distance from p to the segment a-b.
func DistancePointToSegment(p, a, b entity.Vec) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return entity.Dist(p, a)
	}
	ap := p.Sub(a)
	t := math.Max(0, math.Min(1, (ap.X*ab.X+ap.Y*ab.Y)/lenSq))
	return entity.Dist(p, a.Add(ab.Scale(t)))
}

func damage(m *entity.Monster, amount int, src Source) Hit {
	dealt := m.TakeDamage(amount)
	return Hit{Monster: m, Damage: dealt, Killed: !m.IsAlive(), Source: src}
}

// ResolveLaser damages every active living monster the beam touches.
func ResolveLaser(l *entity.Laser, monsters []*entity.Monster) []Hit {
	var hits []Hit
	for _, m := range monsters {
		if !m.Active || !m.IsAlive() {
			continue
		}
		if DistancePointToSegment(m.Pos, l.From, l.To) <= m.HitRadius+l.Width {
			hits = append(hits, damage(m, LaserDamage, SourceLaser))
		}
	}
	return hits
}

// ResolveMelee lands the current attack on the first active living monster
// within reach. Each attack hits at most once, and not at all once its laser
// has hit.
func ResolveMelee(p *entity.Player, monsters []*entity.Monster) (Hit, bool) {
	if !p.Attacking() || p.AttackHit {
		return Hit{}, false
	}
	for _, m := range monsters {
		if !m.Active || !m.IsAlive() {
			continue
		}
		if entity.Dist(p.Pos, m.Pos) < p.Radius+MeleeReach {
			p.AttackHit = true
			return damage(m, MeleeDamage, SourceMelee), true
		}
	}
	return Hit{}, false
}

// ResolveContact hurts the player when touching an active living monster and
// knocks it back to prev, its position before this tick's movement.
func ResolveContact(p *entity.Player, prev entity.Vec, monsters []*entity.Monster) (PlayerHit, bool) {
	if !p.Vulnerable() {
		return PlayerHit{}, false
	}
	for _, m := range monsters {
		if !m.Active || !m.IsAlive() {
			continue
		}
		if entity.Dist(p.Pos, m.Pos) < p.Radius+m.HitRadius {
			dealt := p.TakeDamage(ContactDamage)
			p.Pos = prev
			return PlayerHit{Monster: m, Damage: dealt, Source: SourceContact}, true
		}
	}
	return PlayerHit{}, false
}

// ResolveProjectiles removes the first of the monster's shots that reaches the
// player. The shot only deals damage when the player can be hurt.
func ResolveProjectiles(p *entity.Player, m *entity.Monster) (PlayerHit, bool) {
	for i, shot := range m.Projectiles {
		if !shot.Hits(p.Pos, p.Radius) {
			continue
		}
		m.RemoveProjectile(i)
		if !p.Vulnerable() {
			return PlayerHit{}, false
		}
		dealt := p.TakeDamage(ProjectileDamage)
		return PlayerHit{Monster: m, Damage: dealt, Source: SourceProjectile}, true
	}
	return PlayerHit{}, false
}
