package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/dungeonadventure/internal/world"
)

// Environment variables read by LoadConfig.
const (
	EnvConfigFile = "DUNGEON_CONFIG"
	EnvSeed       = "DUNGEON_SEED"
	EnvLogLevel   = "DUNGEON_LOG_LEVEL"
	EnvLogFile    = "DUNGEON_LOG_FILE"

	DefaultConfigFile = "dungeonadventure.yaml"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `yaml:"seed"`

	// Map size in tiles.
	MapWidth  int `yaml:"map_width"`
	MapHeight int `yaml:"map_height"`

	// Requested room count range. The generator clamps it to what the
	// super-grid can hold.
	RoomsMin int `yaml:"rooms_min"`
	RoomsMax int `yaml:"rooms_max"`

	// GenerateRetries bounds how many dungeons are generated before settling
	// for one with fewer than two rooms.
	GenerateRetries int `yaml:"generate_retries"`

	// TickRate is the number of simulation ticks per second.
	TickRate int `yaml:"tick_rate"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		MapWidth:        world.DefaultWidth,
		MapHeight:       world.DefaultHeight,
		RoomsMin:        world.DefaultRoomsMin,
		RoomsMax:        world.DefaultRoomsMax,
		GenerateRetries: 5,
		TickRate:        60,
		LogFile:         "dungeonadventure.log",
		LogLevel:        "info",
	}
}

// LoadConfig builds the configuration from the defaults, the optional YAML
// file named by DUNGEON_CONFIG and the environment overrides.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	path := os.Getenv(EnvConfigFile)
	if path == "" {
		path = DefaultConfigFile
	}
	if err := cfg.mergeFile(path); err != nil {
		return cfg, err
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// mergeFile overlays the YAML file onto cfg. A missing file is not an error.
func (c *Config) mergeFile(path string) error {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	return nil
}

// Validate rejects configurations the game cannot run with.
func (c Config) Validate() error {
	switch {
	case c.MapWidth <= 0 || c.MapHeight <= 0:
		return fmt.Errorf("map size must be positive, got %dx%d", c.MapWidth, c.MapHeight)
	case c.RoomsMin <= 0:
		return fmt.Errorf("rooms_min must be positive, got %d", c.RoomsMin)
	case c.RoomsMax < c.RoomsMin:
		return fmt.Errorf("rooms_max %d is below rooms_min %d", c.RoomsMax, c.RoomsMin)
	case c.GenerateRetries <= 0:
		return fmt.Errorf("generate_retries must be positive, got %d", c.GenerateRetries)
	case c.TickRate <= 0:
		return fmt.Errorf("tick_rate must be positive, got %d", c.TickRate)
	}
	return nil
}
