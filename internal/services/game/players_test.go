package game

import (
	"math/rand"
	"time"

	"golang.org/x/text/cases"

	"github.com/mcoot/singhit/internal/model"
)

func foldForTest(name string) string {
	return cases.Fold().String(name)
}

func names(players []model.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

func (s *EngineSuite) TestAddPlayerSortsByName() {
	s.addPlayers("carla", "Alice", "bruno")

	s.Equal([]string{"Alice", "bruno", "carla"}, names(s.engine.Snapshot().Players))
}

func (s *EngineSuite) TestAddPlayerSortsAccentsWithBaseLetter() {
	s.addPlayers("Zoe", "Eva", "Émile")

	s.Equal([]string{"Émile", "Eva", "Zoe"}, names(s.engine.Snapshot().Players))
}

func (s *EngineSuite) TestAddPlayerTrimsName() {
	id, err := s.engine.AddPlayer("  Dario \t")
	s.Require().NoError(err)

	s.Equal("Dario", s.engine.Snapshot().GetPlayer(id).Name)
}

func (s *EngineSuite) TestAddPlayerRejectsDuplicateIgnoringCase() {
	s.addPlayers("Alice")

	_, err := s.engine.AddPlayer(" ALICE ")
	s.ErrorIs(err, model.ErrDuplicateName)

	_, err = s.engine.AddPlayer("alice")
	s.ErrorIs(err, model.ErrDuplicateName)

	s.Len(s.engine.Snapshot().Players, 1)
}

func (s *EngineSuite) TestAddPlayerFoldsSpecialCases() {
	s.addPlayers("Straße")

	_, err := s.engine.AddPlayer("STRASSE")
	s.ErrorIs(err, model.ErrDuplicateName)
}

func (s *EngineSuite) TestAddPlayerRejectsEmptyName() {
	_, err := s.engine.AddPlayer("   ")
	s.ErrorIs(err, model.ErrEmptyName)
	s.Empty(s.engine.Snapshot().Players)
	s.Equal(0, s.saver.count())
}

func (s *EngineSuite) TestAddPlayerDuringGame() {
	s.startWith("Alice")

	_, err := s.engine.AddPlayer("Bob")
	s.ErrorIs(err, model.ErrGameInProgress)
}

func (s *EngineSuite) TestAddPlayerAssignsFreshIDs() {
	s.random.QueueUUID("id-1", "id-2")

	ids := s.addPlayers("Bob", "Alice")

	s.Equal([]model.PlayerID{"id-1", "id-2"}, ids)
	s.Equal(model.PlayerID("id-2"), s.engine.Snapshot().Players[0].ID)
}

func (s *EngineSuite) TestAddPlayerSequencesNeverDuplicate() {
	input := []string{"Luca", "anna", "LUCA", "Marco", " anna", "Zed", "marco", "Anna ", "bea"}
	for _, name := range input {
		_, _ = s.engine.AddPlayer(name)
	}

	state := s.engine.Snapshot()
	s.Equal([]string{"anna", "bea", "Luca", "Marco", "Zed"}, names(state.Players))
	s.assertInvariants(state)
}

func (s *EngineSuite) TestRemovePlayer() {
	ids := s.addPlayers("Alice", "Bob", "Carla")

	s.True(s.engine.RemovePlayer(ids[1]))

	s.Equal([]string{"Alice", "Carla"}, names(s.engine.Snapshot().Players))
}

func (s *EngineSuite) TestRemoveUnknownPlayerIsNoop() {
	s.addPlayers("Alice")
	count := s.saver.count()

	s.False(s.engine.RemovePlayer("ghost"))

	s.Len(s.engine.Snapshot().Players, 1)
	s.Equal(count, s.saver.count())
}

func (s *EngineSuite) TestRemovePlayerDuringGameIgnored() {
	ids := s.startWith("Alice", "Bob")

	s.False(s.engine.RemovePlayer(ids[0]))
	s.Len(s.engine.Snapshot().Players, 2)
}

func (s *EngineSuite) TestRemovedNameCanBeReused() {
	ids := s.addPlayers("Alice")
	s.Require().True(s.engine.RemovePlayer(ids[0]))

	_, err := s.engine.AddPlayer("alice")
	s.NoError(err)
}

func (s *EngineSuite) TestFindPlayer() {
	ids := s.addPlayers("Alice", "Bob")

	p, ok := s.engine.FindPlayer(" bob")
	s.True(ok)
	s.Equal(ids[1], p.ID)

	_, ok = s.engine.FindPlayer("Carla")
	s.False(ok)
}

// TestRandomActionSequencesKeepInvariants drives the engine with random
// actions and checks the state after each one
func (s *EngineSuite) TestRandomActionSequencesKeepInvariants() {
	s.engine.SetTotalRounds(4)
	ids := s.addPlayers("Alice", "Bob", "Carla")
	rng := rand.New(rand.NewSource(7))

	actions := []func(){
		func() { s.engine.StartGame() },
		func() { s.engine.BuzzPlayer(ids[rng.Intn(len(ids))]) },
		func() { s.engine.VerifyAnswer(rng.Intn(2) == 0) },
		func() { s.engine.CancelVerify() },
		func() { s.engine.NextRound() },
		func() { s.engine.SkipWord() },
		func() { s.engine.StopTimer() },
		func() { s.engine.ToggleTimer() },
		func() { s.engine.ToggleShowUpsideDown() },
		func() { s.engine.EndGameEarly() },
		func() { s.engine.RestartGameWithSamePlayers(); s.engine.SetTotalRounds(4) },
	}

	for step := 0; step < 2000; step++ {
		// Restarts are rare so games run to completion
		n := len(actions) - 1
		if rng.Intn(10) == 0 {
			n = len(actions)
		}
		actions[rng.Intn(n)]()
		s.clock.Advance(time.Duration(rng.Intn(3000)) * time.Millisecond)

		state := s.engine.Snapshot()
		s.assertInvariants(state)
		s.GreaterOrEqual(s.engine.Elapsed(), time.Duration(0))
		if s.T().Failed() {
			s.FailNowf("invariant broken", "step %d phase %s", step, state.Phase)
		}
	}
}
