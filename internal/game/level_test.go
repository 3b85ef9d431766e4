package game

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/samdwyer/dungeonadventure/internal/entity"
	"github.com/samdwyer/dungeonadventure/internal/gamedata"
	"github.com/samdwyer/dungeonadventure/internal/world"
)

const tick = time.Second / 60

func newTestLevel(t *testing.T, cfg Config, seed int64) *Level {
	t.Helper()
	l, err := NewLevel(context.Background(), cfg, rand.New(rand.NewSource(seed)),
		gamedata.MustLoadMonsterRegistry(), gamedata.MustLoadPlayer(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewLevel() error = %v", err)
	}
	return l
}

func TestNewLevelDefaults(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		l := newTestLevel(t, DefaultConfig(), seed)

		if l.ID == uuid.Nil {
			t.Errorf("seed=%d: level has no ID", seed)
		}
		if l.State != StatePlaying {
			t.Errorf("seed=%d: State = %v, want playing", seed, l.State)
		}
		if l.Attempts != 1 || l.Fallback {
			t.Errorf("seed=%d: attempts=%d fallback=%v, want 1/false", seed, l.Attempts, l.Fallback)
		}
		if l.Goal.Source != world.GoalByPath {
			t.Errorf("seed=%d: goal source = %v, want path", seed, l.Goal.Source)
		}
		if !l.Dungeon.Rooms[l.Goal.StartRoom].OnEdge() {
			t.Errorf("seed=%d: start room %d is not on the edge", seed, l.Goal.StartRoom)
		}
		if l.Player.Pos != entity.VecFromPoint(l.Goal.Start) {
			t.Errorf("seed=%d: player at %v, want %v", seed, l.Player.Pos, l.Goal.Start)
		}

		rooms := make(map[int]bool)
		for _, m := range l.Monsters {
			center := l.Dungeon.Rooms[m.RoomIndex].PixelCenter()
			if world.Manhattan(center, l.Goal.Start) <= spawnClearance ||
				world.Manhattan(center, l.Goal.End) <= spawnClearance {
				t.Errorf("seed=%d: monster in room %d is too close to start or goal", seed, m.RoomIndex)
			}
			if rooms[m.RoomIndex] {
				t.Errorf("seed=%d: two monsters in room %d", seed, m.RoomIndex)
			}
			rooms[m.RoomIndex] = true
		}
		if want := len(l.Dungeon.Rooms) - 2; len(l.Monsters) != want {
			t.Errorf("seed=%d: got %d monsters, want %d", seed, len(l.Monsters), want)
		}
	}
}

func TestNewLevelDeterministic(t *testing.T) {
	a := newTestLevel(t, DefaultConfig(), 77)
	b := newTestLevel(t, DefaultConfig(), 77)

	if a.Goal != b.Goal {
		t.Errorf("goals differ: %+v != %+v", a.Goal, b.Goal)
	}
	if len(a.Monsters) != len(b.Monsters) {
		t.Fatalf("monster counts differ: %d != %d", len(a.Monsters), len(b.Monsters))
	}
	for i := range a.Monsters {
		if a.Monsters[i].ID() != b.Monsters[i].ID() || a.Monsters[i].RoomIndex != b.Monsters[i].RoomIndex {
			t.Errorf("monster %d differs", i)
		}
	}
	if a.ID == b.ID {
		t.Error("level IDs should be unique")
	}
}

func TestNewLevelTinyMapKeepsLastDungeon(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MapWidth, cfg.MapHeight = 20, 20
	cfg.GenerateRetries = 3

	l := newTestLevel(t, cfg, 1)

	if !l.Fallback || l.Attempts != 3 {
		t.Errorf("fallback=%v attempts=%d, want true/3", l.Fallback, l.Attempts)
	}
	if l.Goal.Source != world.GoalSynthesized {
		t.Errorf("goal source = %v, want synthesized", l.Goal.Source)
	}
	if want := l.Goal.Start.Add(300, 300); l.Goal.End != want {
		t.Errorf("goal = %v, want %v", l.Goal.End, want)
	}
	if len(l.Monsters) != 0 {
		t.Errorf("got %d monsters in a single-room dungeon", len(l.Monsters))
	}
}

func TestNewLevelCanceledContextKeepsLastDungeon(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultConfig()
	cfg.MapWidth, cfg.MapHeight = 20, 20
	l, err := NewLevel(ctx, cfg, rand.New(rand.NewSource(1)), nil, gamedata.MustLoadPlayer(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewLevel() error = %v", err)
	}
	if !l.Fallback || l.Attempts < 1 || l.Dungeon == nil {
		t.Errorf("fallback=%v attempts=%d, want the rejected dungeon kept", l.Fallback, l.Attempts)
	}
}

func TestUpdateVictory(t *testing.T) {
	l := newTestLevel(t, DefaultConfig(), 3)
	goal := entity.VecFromPoint(l.Goal.End)
	l.Player.Pos = goal.Add(entity.Vec{X: 10, Y: 15})

	l.Update(context.Background(), Input{}, tick)

	if l.State != StateVictory {
		t.Fatalf("State = %v, want victory", l.State)
	}

	elapsed, pos := l.Elapsed, l.Player.Pos
	l.Update(context.Background(), Input{DX: 1, Attack: true}, tick)
	if l.Elapsed != elapsed || l.Player.Pos != pos || len(l.Lasers) != 0 {
		t.Error("a finished level should not update")
	}
}

func TestUpdateNotYetVictory(t *testing.T) {
	l := newTestLevel(t, DefaultConfig(), 3)
	l.Monsters = nil
	goal := entity.VecFromPoint(l.Goal.End)
	l.Player.Pos = goal.Add(entity.Vec{X: 16, Y: 15})

	l.Update(context.Background(), Input{}, tick)

	if l.State != StatePlaying {
		t.Errorf("State = %v at Manhattan 31 from the goal, want playing", l.State)
	}
}

// monsterInStartRoom adds a monster in the player's room at the given offset.
func monsterInStartRoom(l *Level, id string, offset entity.Vec) *entity.Monster {
	def := gamedata.MustLoadMonsterRegistry().GetByID(id)
	room := l.Dungeon.Rooms[l.Goal.StartRoom]
	m := entity.NewMonster(def, l.Goal.StartRoom, room)
	m.Pos = l.Player.Pos.Add(offset)
	m.Active = true
	l.Monsters = []*entity.Monster{m}
	return m
}

func TestUpdateContactDamage(t *testing.T) {
	l := newTestLevel(t, DefaultConfig(), 4)
	m := monsterInStartRoom(l, "zombie", entity.Vec{X: 0, Y: 2})
	start := l.Player.Pos

	l.Update(context.Background(), Input{}, tick)

	if l.Player.HP != l.Player.MaxHP-1 {
		t.Errorf("HP = %d, want %d", l.Player.HP, l.Player.MaxHP-1)
	}
	if l.Player.Pos != start {
		t.Errorf("player moved to %v, want rebound to %v", l.Player.Pos, start)
	}

	// The cooldown protects the player on the next ticks.
	m.Pos = l.Player.Pos
	l.Update(context.Background(), Input{}, tick)
	if l.Player.HP != l.Player.MaxHP-1 {
		t.Errorf("HP = %d during cooldown, want %d", l.Player.HP, l.Player.MaxHP-1)
	}
}

func TestUpdateGameOver(t *testing.T) {
	l := newTestLevel(t, DefaultConfig(), 5)
	monsterInStartRoom(l, "zombie", entity.Vec{X: 0, Y: 0})
	l.Player.HP = 1

	l.Update(context.Background(), Input{}, tick)

	if l.State != StateGameOver {
		t.Errorf("State = %v, want game over", l.State)
	}
}

func TestUpdateAttackKillsMonster(t *testing.T) {
	l := newTestLevel(t, DefaultConfig(), 6)
	l.Player.Facing = entity.DirDown
	m := monsterInStartRoom(l, "mummy", entity.Vec{X: 0, Y: 60})
	m.HP = 2

	l.Update(context.Background(), Input{Attack: true}, tick)

	if !l.Player.Attacking() {
		t.Error("player should be attacking")
	}
	if len(l.Monsters) != 0 || l.Kills != 1 {
		t.Errorf("monsters=%d kills=%d, want 0/1", len(l.Monsters), l.Kills)
	}
	if len(l.Lasers) != 1 {
		t.Fatalf("got %d lasers, want 1", len(l.Lasers))
	}

	for i := 0; i < 10; i++ {
		l.Update(context.Background(), Input{Attack: true}, tick)
	}
	if len(l.Lasers) != 0 {
		t.Errorf("laser still alive after %v", 11*tick)
	}
}

func TestAttackLaserHitSkipsMelee(t *testing.T) {
	tests := []struct {
		name   string
		facing entity.Direction
		offset entity.Vec
		wantHP int
	}{
		// In both laser and melee range: the laser lands, melee does not.
		{"laser and melee range", entity.DirDown, entity.Vec{X: 0, Y: 20}, 8},
		// Behind the player and out of the beam: melee lands alone.
		{"melee only", entity.DirUp, entity.Vec{X: 0, Y: 30}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLevel(t, DefaultConfig(), 6)
			l.Player.Facing = tt.facing
			m := monsterInStartRoom(l, "zombie", tt.offset)

			if !l.Player.StartAttack() {
				t.Fatal("StartAttack() refused")
			}
			l.resolveAttack(context.Background())
			l.resolveAttack(context.Background())

			if m.HP != tt.wantHP {
				t.Errorf("monster HP after one attack = %d, want %d", m.HP, tt.wantHP)
			}
			if !l.Player.AttackHit {
				t.Error("AttackHit not set")
			}
		})
	}
}

func TestUpdateMovesPlayer(t *testing.T) {
	l := newTestLevel(t, DefaultConfig(), 8)
	l.Monsters = nil
	start := l.Player.Pos

	l.Update(context.Background(), Input{DX: 1}, tick)

	if l.Player.Pos.X != start.X+l.Player.Speed || l.Player.Pos.Y != start.Y {
		t.Errorf("Pos = %v, want %v moved right by %v", l.Player.Pos, start, l.Player.Speed)
	}
	if l.Player.Facing != entity.DirRight {
		t.Errorf("Facing = %v, want right", l.Player.Facing)
	}
}

func TestRestart(t *testing.T) {
	l := newTestLevel(t, DefaultConfig(), 9)
	oldID := l.ID
	l.Player.HP = 0
	l.finish(StateGameOver)

	if err := l.Restart(context.Background()); err != nil {
		t.Fatalf("Restart() error = %v", err)
	}

	if l.ID == oldID {
		t.Error("Restart() kept the level ID")
	}
	if l.State != StatePlaying || l.Player.HP != l.Player.MaxHP || l.Kills != 0 {
		t.Errorf("state=%v hp=%d kills=%d after restart", l.State, l.Player.HP, l.Kills)
	}
}
