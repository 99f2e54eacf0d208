package entity

import (
	"math"
	"time"

	"snake-sprites/game/types"
)

// fadeWindow is how long before expiry a sprite starts fading out.
const fadeWindow = 10 * time.Second

// Sprite is a food item that can be eaten until its lifetime runs out
type Sprite struct {
	ID        int
	Position  types.Point
	SpawnTime time.Time
	Lifetime  time.Duration
}

// Expired reports whether more than Lifetime has passed since the spawn.
func (s Sprite) Expired(now time.Time) bool {
	return now.Sub(s.SpawnTime) > s.Lifetime
}

// TimeLeft returns the remaining lifetime, negative once expired.
func (s Sprite) TimeLeft(now time.Time) time.Duration {
	return s.SpawnTime.Add(s.Lifetime).Sub(now)
}

// SecondsLeft rounds TimeLeft to whole seconds.
func (s Sprite) SecondsLeft(now time.Time) int {
	return int(math.Round(s.TimeLeft(now).Seconds()))
}

// Opacity is 1 until the last ten seconds, then fades linearly per second.
func (s Sprite) Opacity(now time.Time) float64 {
	secs := s.SecondsLeft(now)
	if time.Duration(secs)*time.Second > fadeWindow {
		return 1
	}
	if secs <= 0 {
		return 0
	}
	return float64(secs) / fadeWindow.Seconds()
}
