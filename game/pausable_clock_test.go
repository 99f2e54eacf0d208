package game

import (
	"testing"
	"time"

	"snake-sprites/game/types"
)

func TestPausableClock(t *testing.T) {
	source := types.NewManualClock(epoch)
	pc := NewPausableClock(source)

	source.Advance(time.Second)
	if got := pc.Now(); !got.Equal(epoch.Add(time.Second)) {
		t.Errorf("running Now = %v", got)
	}

	pc.Pause()
	pc.Pause()
	source.Advance(5 * time.Second)
	if got := pc.Now(); !got.Equal(epoch.Add(time.Second)) {
		t.Errorf("paused Now = %v, want frozen at +1s", got)
	}
	if got := pc.TotalPauseDuration(); got != 5*time.Second {
		t.Errorf("pause in progress = %v, want 5s", got)
	}

	pc.Resume()
	source.Advance(2 * time.Second)
	if got := pc.Now(); !got.Equal(epoch.Add(3 * time.Second)) {
		t.Errorf("resumed Now = %v, want +3s", got)
	}
	if pc.IsPaused() || pc.TotalPauseDuration() != 5*time.Second {
		t.Errorf("paused=%v total=%v", pc.IsPaused(), pc.TotalPauseDuration())
	}
}
