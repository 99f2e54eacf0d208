package manager

// StateManager keeps the session counters shown in the game details panel
type StateManager struct {
	score       int
	lengthMoved int
	paused      bool
}

func NewStateManager() *StateManager {
	return &StateManager{}
}

// AddScore credits n eaten sprites.
func (sm *StateManager) AddScore(n int) {
	if n <= 0 {
		return
	}
	sm.score += n
}

// RecordMove counts one executed tick.
func (sm *StateManager) RecordMove() {
	sm.lengthMoved++
}

// TogglePause flips the pause flag and returns the new value.
func (sm *StateManager) TogglePause() bool {
	sm.paused = !sm.paused
	return sm.paused
}

func (sm *StateManager) GetScore() int {
	return sm.score
}

func (sm *StateManager) GetLengthMoved() int {
	return sm.lengthMoved
}

func (sm *StateManager) IsPaused() bool {
	return sm.paused
}
