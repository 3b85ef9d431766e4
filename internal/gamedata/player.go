package gamedata

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// PlayerDef holds the player tuning loaded from YAML.
type PlayerDef struct {
	HP               int     `yaml:"hp"`
	Radius           float64 `yaml:"radius"`
	MoveSpeed        float64 `yaml:"move_speed"`
	EvadeDistance    float64 `yaml:"evade_distance"`
	AttackDurationMs int     `yaml:"attack_duration_ms"`
	EvadeDurationMs  int     `yaml:"evade_duration_ms"`
	Glyph            string  `yaml:"glyph"`
	Color            string  `yaml:"color"`
}

// AttackDuration returns how long an attack lasts.
func (p *PlayerDef) AttackDuration() time.Duration {
	return time.Duration(p.AttackDurationMs) * time.Millisecond
}

// EvadeDuration returns how long an evade lasts.
func (p *PlayerDef) EvadeDuration() time.Duration {
	return time.Duration(p.EvadeDurationMs) * time.Millisecond
}

// GlyphRune returns the glyph as a rune for rendering.
func (p *PlayerDef) GlyphRune() rune {
	if len(p.Glyph) == 0 {
		return '@'
	}
	return rune(p.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (p *PlayerDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(p.Color)
	if err != nil {
		return tcell.ColorYellow
	}
	return color
}

func (p *PlayerDef) validate() error {
	switch {
	case p.HP <= 0:
		return fmt.Errorf("player hp must be positive, got %d", p.HP)
	case p.Radius <= 0:
		return fmt.Errorf("player radius must be positive, got %v", p.Radius)
	case p.AttackDurationMs <= 0 || p.EvadeDurationMs <= 0:
		return fmt.Errorf("player attack/evade durations must be positive")
	}
	return nil
}

// LoadPlayer loads the player definition from the embedded player.yaml file.
func LoadPlayer() (PlayerDef, error) {
	def, err := Load[PlayerDef]("player.yaml")
	if err != nil {
		return def, err
	}
	if err := def.validate(); err != nil {
		return def, fmt.Errorf("player.yaml: %w", err)
	}
	return def, nil
}

// MustLoadPlayer loads the player definition, panicking on error.
func MustLoadPlayer() PlayerDef {
	def, err := LoadPlayer()
	if err != nil {
		panic(err)
	}
	return def
}
