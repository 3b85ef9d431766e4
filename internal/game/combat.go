package game

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeonadventure/internal/combat"
	"github.com/samdwyer/dungeonadventure/internal/entity"
)

// =============================================================================
// Combat steps of Level.Update
// =============================================================================

// resolveContact applies contact damage from monsters touching the player.
func (l *Level) resolveContact(ctx context.Context, prev entity.Vec) {
	if hit, ok := combat.ResolveContact(l.Player, prev, l.Monsters); ok {
		l.playerDamaged(ctx, hit)
	}
}

// resolveAttack fires the laser of a fresh attack. Melee only lands when the
// laser missed.
func (l *Level) resolveAttack(ctx context.Context) {
	p := l.Player
	if p.ConsumeAttackEmit() {
		laser := entity.NewLaser(p.Pos, p.Facing)
		l.Lasers = append(l.Lasers, laser)
		hits := combat.ResolveLaser(laser, l.Monsters)
		if len(hits) > 0 {
			p.AttackHit = true
		}
		for _, hit := range hits {
			l.monsterHit(ctx, hit)
		}
	}
	if hit, ok := combat.ResolveMelee(p, l.Monsters); ok {
		l.monsterHit(ctx, hit)
	}
	l.removeDeadMonsters()
}

// updateMonsters runs activation, behavior and projectiles for every monster.
func (l *Level) updateMonsters(ctx context.Context, dt time.Duration) {
	p := l.Player
	for _, m := range l.Monsters {
		if m.UpdateActivation(p.Pos) && m.Active {
			l.logger.Debug().Str("monster", m.ID()).Int("room", m.RoomIndex).Msg("monster activated")
		}
		m.Update(p.Pos, dt)
		m.UpdateProjectiles()
		if hit, ok := combat.ResolveProjectiles(p, m); ok {
			l.playerDamaged(ctx, hit)
		}
	}
	l.removeDeadMonsters()
}

func (l *Level) removeDeadMonsters() {
	alive := l.Monsters[:0]
	for _, m := range l.Monsters {
		if m.IsAlive() {
			alive = append(alive, m)
		}
	}
	clear(l.Monsters[len(alive):])
	l.Monsters = alive
}

func (l *Level) monsterHit(ctx context.Context, hit combat.Hit) {
	if !hit.Killed {
		l.logger.Debug().
			Str("monster", hit.Monster.ID()).
			Str("source", hit.Source.String()).
			Int("damage", hit.Damage).
			Int("hp", hit.Monster.HP).
			Msg("monster hit")
		return
	}

	l.Kills++
	_, span := l.tracer.Start(ctx, "combat.monster_killed")
	span.SetAttributes(
		attribute.String("level.id", l.ID.String()),
		attribute.String("monster.id", hit.Monster.ID()),
		attribute.Int("monster.room", hit.Monster.RoomIndex),
		attribute.String("combat.source", hit.Source.String()),
		attribute.Int("level.kills", l.Kills),
	)
	span.End()

	l.logger.Info().
		Str("monster", hit.Monster.ID()).
		Int("room", hit.Monster.RoomIndex).
		Str("source", hit.Source.String()).
		Int("kills", l.Kills).
		Msg("monster killed")
}

func (l *Level) playerDamaged(ctx context.Context, hit combat.PlayerHit) {
	_, span := l.tracer.Start(ctx, "combat.player_damaged")
	span.SetAttributes(
		attribute.String("level.id", l.ID.String()),
		attribute.String("monster.id", hit.Monster.ID()),
		attribute.String("combat.source", hit.Source.String()),
		attribute.Int("combat.damage", hit.Damage),
		attribute.Int("player.hp", l.Player.HP),
	)
	span.End()

	l.logger.Info().
		Str("monster", hit.Monster.ID()).
		Str("source", hit.Source.String()).
		Int("damage", hit.Damage).
		Int("hp", l.Player.HP).
		Msg("player damaged")
}
