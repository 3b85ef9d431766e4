package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/samdwyer/dungeonadventure/internal/gamedata"
	"github.com/samdwyer/dungeonadventure/internal/telemetry"
	"github.com/samdwyer/dungeonadventure/internal/ui"
	"github.com/samdwyer/dungeonadventure/internal/world"
)

const hintLine = "arrows/WASD move  J attack  K evade  Space pause  R restart  Q quit"

// Game holds the entire game state.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	cfg      Config
	logger   zerolog.Logger
	level    *Level
	input    inputState
	paused   bool
	quit     context.CancelFunc
}

// New creates a new game instance.
func New(cfg Config, logger zerolog.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Run executes the main game loop until the player quits or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	// Initialize game (traced)
	initCtx, initSpan := tracer.Start(ctx, "game.init")

	seed := g.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	registry, err := gamedata.LoadMonsterRegistry()
	if err != nil {
		initSpan.RecordError(err)
		initSpan.End()
		g.screen.Close()
		return fmt.Errorf("load monsters: %w", err)
	}
	playerDef, err := gamedata.LoadPlayer()
	if err != nil {
		initSpan.RecordError(err)
		initSpan.End()
		g.screen.Close()
		return fmt.Errorf("load player: %w", err)
	}

	g.level, err = NewLevel(initCtx, g.cfg, rand.New(rand.NewSource(seed)), registry, playerDef, g.logger)
	if err != nil {
		initSpan.RecordError(err)
		initSpan.End()
		g.screen.Close()
		return err
	}

	initSpan.SetAttributes(
		attribute.Int64("game.seed", seed),
		attribute.Int("dungeon.width", g.cfg.MapWidth),
		attribute.Int("dungeon.height", g.cfg.MapHeight),
		attribute.Int("monster.types", registry.Count()),
	)
	initSpan.End()
	g.logger.Info().Int64("seed", seed).Msg("game started")

	ctx, g.quit = context.WithCancel(ctx)
	defer g.quit()
	group, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event)

	group.Go(func() error {
		return g.screen.Pump(ctx, events)
	})

	// Main game loop
	group.Go(func() error {
		defer g.screen.Close()
		return g.loop(ctx, events)
	})

	err = group.Wait()

	_, endSpan := tracer.Start(context.WithoutCancel(ctx), "game.end")
	endSpan.SetAttributes(
		attribute.String("game.outcome", g.level.State.String()),
		attribute.Int("game.kills", g.level.Kills),
		attribute.Int64("game.elapsed_ms", g.level.Elapsed.Milliseconds()),
	)
	endSpan.End()
	g.logger.Info().
		Str("outcome", g.level.State.String()).
		Int("kills", g.level.Kills).
		Msg("game ended")
	return err
}

func (g *Game) loop(ctx context.Context, events <-chan tcell.Event) error {
	dt := time.Second / time.Duration(g.cfg.TickRate)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	g.render()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := g.handleEvent(ctx, ev); err != nil {
				return err
			}
		case <-ticker.C:
			g.tick(ctx, dt)
			g.render()
		}
	}
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return nil
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) error {
	switch a := actionFor(ev.Key(), ev.Rune()); a {
	case actionQuit:
		g.quit()
	case actionPause:
		if !g.level.State.Finished() {
			g.paused = !g.paused
			g.input.reset()
			g.logger.Debug().Bool("paused", g.paused).Msg("pause toggled")
		}
	case actionRestart:
		if g.level.State.Finished() {
			g.input.reset()
			g.paused = false
			return g.level.Restart(ctx)
		}
	default:
		if !g.paused {
			g.input.press(a)
		}
	}
	return nil
}

// tick advances the simulation by one step.
func (g *Game) tick(ctx context.Context, dt time.Duration) {
	if g.paused || g.level.State.Finished() {
		return
	}
	g.level.Update(ctx, g.input.next(), dt)
}

func (g *Game) render() {
	g.renderer.Render(g.frame())
}

// frame builds what the renderer draws for the current state.
func (g *Game) frame() ui.Frame {
	l := g.level
	p := l.Player
	tx, ty := int(p.Pos.X)/world.TileSize, int(p.Pos.Y)/world.TileSize

	f := ui.Frame{
		Dungeon:  l.Dungeon,
		Player:   p,
		Monsters: l.Monsters,
		Lasers:   l.Lasers,
		Goal:     l.Goal.End,
		Status: fmt.Sprintf("HP %d/%d  pos %d,%d  goal %.0fpx  monsters %d  kills %d  %s",
			p.HP, p.MaxHP, tx, ty, l.GoalDistance(), len(l.Monsters), l.Kills, p.State),
		Hint: hintLine,
	}
	switch {
	case l.State == StateVictory:
		f.Banner = "You reached the goal! Press R to play again"
	case l.State == StateGameOver:
		f.Banner = "You died. Press R to try again"
	case g.paused:
		f.Banner = "PAUSED"
	}
	return f
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
