package manager

import (
	"time"

	"github.com/golang/glog"

	"snake-sprites/game/entity"
	"snake-sprites/game/types"
)

// SpawnSettings control sprite spawning
type SpawnSettings struct {
	BaseInterval time.Duration // upper bound of the spawn gap at rate 1
	Rate         float64       // divides BaseInterval
	MinLifetime  time.Duration
	MaxLifetime  time.Duration
}

// SpriteManager owns the sprites on the board: it spawns them on a jittered
// schedule, drops them once they expire and hands them out when eaten.
type SpriteManager struct {
	settings      SpawnSettings
	rng           types.RandomSource
	spriteList    []entity.Sprite
	ids           entity.Sequence
	nextSpawnTime time.Time
	lastSpawnTime time.Time
}

// NewSpriteManager schedules the first spawn at start, so the first tick
// after start spawns immediately.
func NewSpriteManager(settings SpawnSettings, rng types.RandomSource, start time.Time) *SpriteManager {
	return &SpriteManager{
		settings:      settings,
		rng:           rng,
		spriteList:    make([]entity.Sprite, 0),
		ids:           entity.NewSequence(0),
		nextSpawnTime: start,
		lastSpawnTime: start,
	}
}

// Clone copies the sprite list and schedule. The random source is shared.
func (sm *SpriteManager) Clone() *SpriteManager {
	clone := *sm
	clone.spriteList = append(make([]entity.Sprite, 0, len(sm.spriteList)), sm.spriteList...)
	return &clone
}

// Consume removes every sprite at pos and returns how many were eaten.
func (sm *SpriteManager) Consume(pos types.Point) int {
	kept := make([]entity.Sprite, 0, len(sm.spriteList))
	eaten := 0
	for _, s := range sm.spriteList {
		if s.Position == pos {
			glog.V(1).Infof("sprite %d eaten at (%d,%d)", s.ID, pos.X, pos.Y)
			eaten++
			continue
		}
		kept = append(kept, s)
	}
	sm.spriteList = kept
	return eaten
}

// Expire drops sprites whose lifetime has run out and returns how many went.
func (sm *SpriteManager) Expire(now time.Time) int {
	kept := make([]entity.Sprite, 0, len(sm.spriteList))
	for _, s := range sm.spriteList {
		if s.Expired(now) {
			glog.V(1).Infof("sprite %d expired after %v", s.ID, s.Lifetime)
			continue
		}
		kept = append(kept, s)
	}
	expired := len(sm.spriteList) - len(kept)
	sm.spriteList = kept
	return expired
}

// TrySpawn places one sprite when the scheduled spawn time has passed.
// The next gap is (BaseInterval / Rate) * U(0,1), so short gaps are as likely
// as long ones and the mean gap is half the base interval.
func (sm *SpriteManager) TrySpawn(now time.Time, grid types.Grid) (entity.Sprite, bool) {
	if !now.After(sm.nextSpawnTime) {
		return entity.Sprite{}, false
	}

	sprite := entity.Sprite{
		Position:  grid.RandomCell(sm.rng),
		SpawnTime: now,
		Lifetime:  sm.randomLifetime(),
	}
	sprite.ID = sm.ids.Next()
	sm.spriteList = append(sm.spriteList, sprite)

	sm.lastSpawnTime = now
	gap := float64(sm.settings.BaseInterval) / sm.settings.Rate * sm.rng.Float64()
	sm.nextSpawnTime = now.Add(time.Duration(gap))

	glog.V(1).Infof("sprite %d spawned at (%d,%d), lifetime %v, next spawn in %v",
		sprite.ID, sprite.Position.X, sprite.Position.Y, sprite.Lifetime, time.Duration(gap))
	return sprite, true
}

func (sm *SpriteManager) randomLifetime() time.Duration {
	span := sm.settings.MaxLifetime - sm.settings.MinLifetime
	return sm.settings.MinLifetime + time.Duration(sm.rng.Float64()*float64(span))
}

// GetSpriteList returns a copy of the live sprites in spawn order.
func (sm *SpriteManager) GetSpriteList() []entity.Sprite {
	return append(make([]entity.Sprite, 0, len(sm.spriteList)), sm.spriteList...)
}

// AddSprite places a sprite directly, issuing it a fresh ID.
func (sm *SpriteManager) AddSprite(pos types.Point, spawnTime time.Time, lifetime time.Duration) entity.Sprite {
	sprite := entity.Sprite{
		ID:        sm.ids.Next(),
		Position:  pos,
		SpawnTime: spawnTime,
		Lifetime:  lifetime,
	}
	sm.spriteList = append(sm.spriteList, sprite)
	return sprite
}

func (sm *SpriteManager) NextSpawnTime() time.Time {
	return sm.nextSpawnTime
}

func (sm *SpriteManager) LastSpawnTime() time.Time {
	return sm.lastSpawnTime
}

// LastSpriteID returns the most recently issued sprite ID.
func (sm *SpriteManager) LastSpriteID() int {
	return sm.ids.Last()
}
