package game

import "time"

// The timer is either running, with StartTime authoritative, or stopped,
// with ElapsedTime authoritative. The helpers below keep exactly one of the
// two set. All of them must be called with mu held.

// restartTimer starts the timer from zero at now
func (e *Engine) restartTimer(now time.Time) {
	e.state.StartTime = &now
	e.state.ElapsedTime = nil
	e.state.IsTimerRunning = true
}

// freezeTimer stops the timer and returns the frozen elapsed value
func (e *Engine) freezeTimer(now time.Time) time.Duration {
	elapsed := e.state.Elapsed(now)
	if elapsed < 0 {
		elapsed = 0
	}
	e.state.StartTime = nil
	e.state.ElapsedTime = &elapsed
	e.state.IsTimerRunning = false
	return elapsed
}

// resumeTimer restarts a stopped timer so that it continues from the
// frozen value
func (e *Engine) resumeTimer(now time.Time) {
	if e.state.IsTimerRunning {
		return
	}
	start := now.Add(-e.state.Elapsed(now))
	e.state.StartTime = &start
	e.state.ElapsedTime = nil
	e.state.IsTimerRunning = true
}
