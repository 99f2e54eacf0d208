package game

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"snake-sprites/game/manager"
	"snake-sprites/game/types"
)

// Config holds the recognised game options. Lifetimes are milliseconds.
type Config struct {
	PixelSize         int     `json:"pixelSize"`
	GameSpeed         float64 `json:"gameSpeed"`
	SpriteSpawnRate   float64 `json:"spriteSpawnRate"`
	SpriteMinLifetime int     `json:"spriteMinLifetime"`
	SpriteMaxLifetime int     `json:"spriteMaxLifetime"`
	GridWidth         int     `json:"gridWidth"`
	GridHeight        int     `json:"gridHeight"`
	ShowGameDetails   bool    `json:"showGameDetails"`

	// FreezeSpritesWhilePaused stops sprite lifetimes from draining while the
	// game is paused. Off by default: sprites age in wall-clock time.
	FreezeSpritesWhilePaused bool `json:"freezeSpritesWhilePaused"`

	// Seed for sprite placement. Zero picks a time based seed.
	Seed uint64 `json:"seed"`
}

func DefaultConfig() Config {
	return Config{
		PixelSize:         types.DefaultPixelSize,
		GameSpeed:         types.DefaultGameSpeed,
		SpriteSpawnRate:   types.DefaultSpriteSpawnRate,
		SpriteMinLifetime: types.DefaultSpriteMinLifetime,
		SpriteMaxLifetime: types.DefaultSpriteMaxLifetime,
		GridWidth:         64,
		GridHeight:        36,
		ShowGameDetails:   true,
	}
}

// LoadConfig reads a JSON config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.PixelSize < 1:
		return types.NewValidationError(types.ErrInvalidConfig, "pixelSize %d must be positive", c.PixelSize)
	case c.GameSpeed <= 0:
		return types.NewValidationError(types.ErrInvalidConfig, "gameSpeed %v must be positive", c.GameSpeed)
	case c.SpriteSpawnRate <= 0:
		return types.NewValidationError(types.ErrInvalidConfig, "spriteSpawnRate %v must be positive", c.SpriteSpawnRate)
	case c.SpriteMinLifetime < 0:
		return types.NewValidationError(types.ErrInvalidConfig, "spriteMinLifetime %d must not be negative", c.SpriteMinLifetime)
	case c.SpriteMaxLifetime < c.SpriteMinLifetime:
		return types.NewValidationError(types.ErrInvalidConfig, "spriteMaxLifetime %d is below spriteMinLifetime %d",
			c.SpriteMaxLifetime, c.SpriteMinLifetime)
	}
	if _, err := types.NewGrid(c.GridWidth, c.GridHeight); err != nil {
		return err
	}
	return nil
}

// TickInterval is 100ms divided by the game speed.
func (c Config) TickInterval() time.Duration {
	return time.Duration(float64(types.BaseTickIntervalMs*time.Millisecond) / c.GameSpeed)
}

func (c Config) SpawnSettings() manager.SpawnSettings {
	return manager.SpawnSettings{
		BaseInterval: types.BaseSpriteSpawnMs * time.Millisecond,
		Rate:         c.SpriteSpawnRate,
		MinLifetime:  time.Duration(c.SpriteMinLifetime) * time.Millisecond,
		MaxLifetime:  time.Duration(c.SpriteMaxLifetime) * time.Millisecond,
	}
}
