package game

import (
	"time"

	"github.com/mcoot/singhit/internal/model"
	"github.com/mcoot/singhit/internal/testutil"
)

func (s *EngineSuite) TestFreezeFromStoppedKeepsValue() {
	s.startWith("Alice")
	s.clock.Advance(time.Second)
	s.Require().True(s.engine.StopTimer())

	s.clock.Advance(time.Hour)
	s.engine.mu.Lock()
	got := s.engine.freezeTimer(s.clock.Now())
	s.engine.mu.Unlock()

	s.Equal(time.Second, got)
}

func (s *EngineSuite) TestResumeRebasesStart() {
	s.startWith("Alice")
	s.clock.Advance(4 * time.Second)
	s.Require().True(s.engine.ToggleTimer())
	s.clock.Advance(6 * time.Second)

	s.Require().True(s.engine.ToggleTimer())

	// start = now - frozen = (Epoch+10s) - 4s
	s.Equal(testutil.Epoch.Add(6*time.Second), *s.engine.Snapshot().StartTime)
}

func (s *EngineSuite) TestResumeWhileRunningIsNoop() {
	s.startWith("Alice")
	s.clock.Advance(time.Second)

	s.engine.mu.Lock()
	s.engine.resumeTimer(s.clock.Now())
	s.engine.mu.Unlock()

	s.Equal(testutil.Epoch, *s.engine.Snapshot().StartTime)
}

func (s *EngineSuite) TestFreezeClampsClockSkew() {
	s.startWith("Alice")
	s.clock.Set(testutil.Epoch.Add(-time.Second))

	s.Require().True(s.engine.StopTimer())

	s.Equal(time.Duration(0), *s.engine.Snapshot().ElapsedTime)
}

func (s *EngineSuite) TestRestoredRunningTimerContinues() {
	start := testutil.Epoch.Add(-3 * time.Second)
	initial := model.NewGameState()
	initial.Players = []model.Player{{ID: "a", Name: "Alice"}}
	initial.Phase = model.PhaseActive
	initial.WordsQueue = []string{"uno", "due"}
	initial.CurrentWord = "uno"
	initial.StartTime = &start
	initial.IsTimerRunning = true
	s.engine = s.newEngine(initial)

	s.Equal(3*time.Second, s.engine.Elapsed())
	s.Require().True(s.engine.BuzzPlayer("a"))
	s.Equal(3*time.Second, *s.engine.Snapshot().ElapsedTime)
}
