package ui

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonadventure/internal/entity"
	"github.com/samdwyer/dungeonadventure/internal/world"
)

// hudRows is the number of terminal rows reserved below the map.
const hudRows = 2

// Canvas is the drawing surface the renderer needs. *Screen implements it.
type Canvas interface {
	Clear()
	Show()
	Size() (width, height int)
	SetContent(x, y int, r rune, style tcell.Style)
}

// Frame is everything drawn in one frame.
type Frame struct {
	Dungeon  *world.Dungeon
	Player   *entity.Player
	Monsters []*entity.Monster
	Lasers   []*entity.Laser
	Goal     world.Point // pixels
	Status   string      // first HUD line
	Hint     string      // second HUD line
	Banner   string      // centered over the map when non-empty
}

// Renderer handles drawing the game to the screen. One terminal cell shows
// one tile and the view follows the player.
type Renderer struct {
	canvas Canvas
}

// NewRenderer creates a new renderer for the given canvas.
func NewRenderer(canvas Canvas) *Renderer {
	return &Renderer{canvas: canvas}
}

// Render draws the frame to the canvas.
func (r *Renderer) Render(f Frame) {
	r.canvas.Clear()

	width, height := r.canvas.Size()
	viewH := max(0, height-hudRows)
	px, py := pixelToTile(f.Player.Pos.X, f.Player.Pos.Y)
	cam := world.Point{
		X: cameraOrigin(px, width, f.Dungeon.Width),
		Y: cameraOrigin(py, viewH, f.Dungeon.Height),
	}
	view := viewport{origin: cam, width: width, height: viewH}

	// Draw dungeon tiles
	for sy := 0; sy < viewH; sy++ {
		for sx := 0; sx < width; sx++ {
			x, y := cam.X+sx, cam.Y+sy
			if x < 0 || y < 0 || x >= f.Dungeon.Width || y >= f.Dungeon.Height {
				continue
			}
			tile := f.Dungeon.GetTile(x, y)
			r.canvas.SetContent(sx, sy, tile.Rune(), tileStyle(tile))
		}
	}

	goalStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	r.drawAtPixel(view, float64(f.Goal.X), float64(f.Goal.Y), '>', goalStyle)

	for _, l := range f.Lasers {
		r.drawLaser(view, l)
	}

	shotStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)
	for _, m := range f.Monsters {
		for _, p := range m.Projectiles {
			r.drawAtPixel(view, p.Pos.X, p.Pos.Y, '*', shotStyle)
		}
	}
	for _, m := range f.Monsters {
		style := tcell.StyleDefault.Foreground(m.Color())
		if m.Active {
			style = style.Bold(true)
		} else {
			style = style.Dim(true)
		}
		r.drawAtPixel(view, m.Pos.X, m.Pos.Y, m.Symbol, style)
	}

	// Draw player on top
	playerStyle := tcell.StyleDefault.Foreground(f.Player.Color).Bold(true)
	if f.Player.Evading() {
		playerStyle = playerStyle.Reverse(true)
	}
	r.drawAtPixel(view, f.Player.Pos.X, f.Player.Pos.Y, f.Player.Symbol, playerStyle)

	r.drawText(0, viewH, f.Status, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	r.drawText(0, viewH+1, f.Hint, tcell.StyleDefault.Foreground(tcell.ColorGray))
	if f.Banner != "" {
		x := max(0, (width-len([]rune(f.Banner)))/2)
		r.drawText(x, viewH/2, f.Banner, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	}

	r.canvas.Show()
}

type viewport struct {
	origin        world.Point
	width, height int
}

func (v viewport) toScreen(tx, ty int) (int, int, bool) {
	sx, sy := tx-v.origin.X, ty-v.origin.Y
	return sx, sy, sx >= 0 && sy >= 0 && sx < v.width && sy < v.height
}

func (r *Renderer) drawAtPixel(v viewport, px, py float64, ch rune, style tcell.Style) {
	tx, ty := pixelToTile(px, py)
	if sx, sy, ok := v.toScreen(tx, ty); ok {
		r.canvas.SetContent(sx, sy, ch, style)
	}
}

// drawLaser marks every tile the beam crosses.
func (r *Renderer) drawLaser(v viewport, l *entity.Laser) {
	ch := '|'
	if l.From.Y == l.To.Y {
		ch = '-'
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	d := l.To.Sub(l.From)
	steps := int(d.Len()/(world.TileSize/2)) + 1
	for i := 0; i <= steps; i++ {
		p := l.From.Add(d.Scale(float64(i) / float64(steps)))
		r.drawAtPixel(v, p.X, p.Y, ch, style)
	}
}

// drawText writes a line of text at the given position.
func (r *Renderer) drawText(x, y int, msg string, style tcell.Style) {
	for i, ch := range []rune(msg) {
		r.canvas.SetContent(x+i, y, ch, style)
	}
}

// tileStyle returns the appropriate style for a tile type.
func tileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileEmpty:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	default:
		return tcell.StyleDefault
	}
}

func pixelToTile(px, py float64) (int, int) {
	return int(math.Floor(px / world.TileSize)), int(math.Floor(py / world.TileSize))
}

// cameraOrigin returns the first visible tile on one axis so that center is
// in the middle of the view, without scrolling past the map edges. A map
// smaller than the view is pinned to the origin.
func cameraOrigin(center, view, size int) int {
	if size <= view {
		return 0
	}
	return max(0, min(center-view/2, size-view))
}
