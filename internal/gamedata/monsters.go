package gamedata

import "github.com/gdamore/tcell/v2"

// MonsterDef defines a monster type loaded from YAML.
type MonsterDef struct {
	ID          string  `yaml:"id"`           // Unique identifier (e.g., "zombie")
	Name        string  `yaml:"name"`         // Display name (e.g., "Zombie")
	Glyph       string  `yaml:"glyph"`        // Single character for rendering (e.g., "Z")
	Color       string  `yaml:"color"`        // Hex color code (e.g., "#6B8E23")
	HP          int     `yaml:"hp"`           // Starting hit points
	HitRadius   float64 `yaml:"hit_radius"`   // Collision radius in pixels
	Ranged      bool    `yaml:"ranged"`       // Shoots projectiles instead of chasing
	SpawnWeight int     `yaml:"spawn_weight"` // Relative spawn frequency (higher = more common)
}

// GlyphRune returns the glyph as a rune for rendering.
func (m *MonsterDef) GlyphRune() rune {
	if len(m.Glyph) == 0 {
		return '?'
	}
	return rune(m.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (m *MonsterDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(m.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// MonstersFile represents the structure of monsters.yaml.
type MonstersFile struct {
	Monsters []MonsterDef `yaml:"monsters"`
}

// LoadMonsters loads monster definitions from the embedded monsters.yaml file.
func LoadMonsters() ([]MonsterDef, error) {
	file, err := Load[MonstersFile]("monsters.yaml")
	if err != nil {
		return nil, err
	}
	return file.Monsters, nil
}
