package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeonadventure/internal/entity"
	"github.com/samdwyer/dungeonadventure/internal/gamedata"
	"github.com/samdwyer/dungeonadventure/internal/telemetry"
	"github.com/samdwyer/dungeonadventure/internal/world"
)

// ErrTooFewRooms is returned for a generated dungeon that cannot hold both a
// start and a goal room.
var ErrTooFewRooms = errors.New("dungeon has fewer than two rooms")

const (
	// victoryDistance is the Manhattan distance to the goal that wins the level.
	victoryDistance = 30.0
	// spawnClearance keeps monsters out of rooms near the start and the goal.
	spawnClearance = 100
)

// Input is the player's intent for one tick.
type Input struct {
	DX, DY int // movement, each in -1..1
	Attack bool
	Evade  bool
}

// Level is one generated dungeon with its player and monsters.
type Level struct {
	ID       uuid.UUID
	Dungeon  *world.Dungeon
	Goal     world.Goal
	Player   *entity.Player
	Monsters []*entity.Monster
	Lasers   []*entity.Laser
	State    State

	Attempts int  // dungeons generated for this level
	Fallback bool // every attempt had too few rooms; the last one was kept
	Kills    int
	Elapsed  time.Duration

	cfg       Config
	rng       *rand.Rand
	registry  *gamedata.MonsterRegistry
	playerDef gamedata.PlayerDef
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewLevel generates a level. All randomness comes from rng, so a seeded rng
// reproduces the same level.
func NewLevel(ctx context.Context, cfg Config, rng *rand.Rand, registry *gamedata.MonsterRegistry,
	playerDef gamedata.PlayerDef, logger zerolog.Logger) (*Level, error) {
	l := &Level{
		cfg:       cfg,
		rng:       rng,
		registry:  registry,
		playerDef: playerDef,
		logger:    logger,
		tracer:    telemetry.Tracer("game"),
	}
	if err := l.generate(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// Restart replaces the level with a freshly generated one drawn from the same
// random source.
func (l *Level) Restart(ctx context.Context) error {
	ctx, span := l.tracer.Start(ctx, "level.restart")
	defer span.End()

	previous := l.ID
	if err := l.generate(ctx); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttributes(
		attribute.String("level.previous_id", previous.String()),
		attribute.String("level.id", l.ID.String()),
	)
	l.logger.Info().
		Str("previous_id", previous.String()).
		Str("level_id", l.ID.String()).
		Msg("level restarted")
	return nil
}

func (l *Level) generate(ctx context.Context) error {
	ctx, span := l.tracer.Start(ctx, "level.generate")
	defer span.End()

	id := uuid.New()
	attempts := 0
	var last *world.Dungeon

	dungeon, err := backoff.Retry(ctx, func() (*world.Dungeon, error) {
		attempts++
		d := world.NewDungeon(l.cfg.MapWidth, l.cfg.MapHeight, l.rng)
		d.Generate(ctx, l.cfg.RoomsMin, l.cfg.RoomsMax)
		last = d
		if n := len(d.RoomCenters()); n < 2 {
			l.logger.Warn().
				Str("level_id", id.String()).
				Int("attempt", attempts).
				Int("rooms", n).
				Msg("dungeon rejected")
			return nil, fmt.Errorf("%w: got %d", ErrTooFewRooms, n)
		}
		return d, nil
	},
		backoff.WithMaxTries(uint(l.cfg.GenerateRetries)),
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
	)

	fallback := false
	if err != nil {
		if last == nil {
			span.RecordError(err)
			return fmt.Errorf("generate level: %w", err)
		}
		l.logger.Warn().Err(err).
			Str("level_id", id.String()).
			Int("attempts", attempts).
			Msg("generation retries exhausted, keeping last dungeon")
		dungeon, fallback = last, true
	}

	l.reset(id, dungeon, attempts, fallback)

	span.SetAttributes(
		attribute.String("level.id", id.String()),
		attribute.Int("level.attempts", attempts),
		attribute.Int("level.rooms", len(dungeon.Rooms)),
		attribute.Int("level.monsters", len(l.Monsters)),
		attribute.Int("goal.distance", l.Goal.Distance),
		attribute.String("goal.source", l.Goal.Source.String()),
		attribute.Bool("level.fallback", fallback),
	)
	l.logger.Info().
		Str("level_id", id.String()).
		Int("attempts", attempts).
		Int("rooms", len(dungeon.Rooms)).
		Int("monsters", len(l.Monsters)).
		Int("start_room", l.Goal.StartRoom).
		Int("goal_room", l.Goal.EndRoom).
		Int("goal_distance", l.Goal.Distance).
		Str("goal_source", l.Goal.Source.String()).
		Msg("level generated")
	return nil
}

// reset installs a new dungeon and places the player and the monsters.
func (l *Level) reset(id uuid.UUID, d *world.Dungeon, attempts int, fallback bool) {
	l.ID = id
	l.Dungeon = d
	l.Attempts = attempts
	l.Fallback = fallback
	l.State = StatePlaying
	l.Kills = 0
	l.Elapsed = 0
	l.Lasers = nil

	var start world.Point
	if i := d.StartRoom(); i >= 0 {
		start = d.Rooms[i].PixelCenter()
	}
	l.Goal = d.SelectGoal(start)
	l.Player = entity.NewPlayer(&l.playerDef, entity.VecFromPoint(l.Goal.Start))
	l.spawnMonsters()
}

// spawnMonsters puts one monster in every room that is away from both the
// start and the goal.
func (l *Level) spawnMonsters() {
	l.Monsters = nil
	if l.registry == nil {
		return
	}
	for i, room := range l.Dungeon.Rooms {
		center := room.PixelCenter()
		if world.Manhattan(center, l.Goal.Start) <= spawnClearance ||
			world.Manhattan(center, l.Goal.End) <= spawnClearance {
			continue
		}
		def := l.registry.SpawnRandom(l.rng)
		if def == nil {
			continue
		}
		l.Monsters = append(l.Monsters, entity.NewMonster(def, i, room))
		l.logger.Debug().
			Str("monster", def.ID).
			Int("room", i).
			Msg("monster spawned")
	}
}

// GoalDistance returns the player's Manhattan distance to the goal in pixels.
func (l *Level) GoalDistance() float64 {
	return entity.Manhattan(l.Player.Pos, entity.VecFromPoint(l.Goal.End))
}

// Update advances the level by one tick. A finished level does not change.
func (l *Level) Update(ctx context.Context, in Input, dt time.Duration) {
	if l.State != StatePlaying {
		return
	}
	l.Elapsed += dt

	p := l.Player
	prev := p.Pos
	p.Move(l.Dungeon, in.DX, in.DY)

	if l.GoalDistance() <= victoryDistance {
		l.finish(StateVictory)
		return
	}

	l.resolveContact(ctx, prev)

	if in.Attack {
		p.StartAttack()
	}
	if in.Evade {
		p.StartEvade(l.Dungeon)
	}
	l.resolveAttack(ctx)

	l.updateMonsters(ctx, dt)

	p.Tick(dt)
	l.expireLasers(dt)

	if !p.IsAlive() {
		l.finish(StateGameOver)
	}
}

func (l *Level) expireLasers(dt time.Duration) {
	kept := l.Lasers[:0]
	for _, laser := range l.Lasers {
		laser.Tick(dt)
		if !laser.Expired() {
			kept = append(kept, laser)
		}
	}
	clear(l.Lasers[len(kept):])
	l.Lasers = kept
}

func (l *Level) finish(state State) {
	l.State = state
	event := l.logger.Info()
	if state == StateGameOver {
		event = l.logger.Warn()
	}
	event.
		Str("level_id", l.ID.String()).
		Str("outcome", state.String()).
		Int("kills", l.Kills).
		Int("hp", l.Player.HP).
		Dur("elapsed", l.Elapsed).
		Msg("level finished")
}
