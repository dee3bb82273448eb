package scoring

import (
	"testing"
	"time"

	"github.com/mcoot/singhit/internal/model"
	"github.com/mcoot/singhit/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	now     time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
	s.now = testutil.Epoch
}

// ApplyVerdict tests

func (s *ServiceSuite) TestCorrectAnswerScoresAndChargesTime() {
	p := model.Player{ID: "p1", Name: "Alice", Score: 2, TotalTime: time.Second}

	s.service.ApplyVerdict(&p, true, 1500*time.Millisecond, s.now)

	s.Equal(3, p.Score)
	s.Equal(2500*time.Millisecond, p.TotalTime)
	s.Require().NotNil(p.FirstCorrectAt)
	s.Equal(s.now, *p.FirstCorrectAt)
}

func (s *ServiceSuite) TestWrongAnswerLosesPointWithoutTime() {
	p := model.Player{ID: "p1", Name: "Alice", TotalTime: time.Second}

	s.service.ApplyVerdict(&p, false, 1500*time.Millisecond, s.now)

	s.Equal(-1, p.Score)
	s.Equal(time.Second, p.TotalTime)
	s.Nil(p.FirstCorrectAt)
}

func (s *ServiceSuite) TestScoreCanGoNegative() {
	p := model.Player{ID: "p1", Name: "Alice"}

	for i := 0; i < 3; i++ {
		s.service.ApplyVerdict(&p, false, 0, s.now)
	}

	s.Equal(-3, p.Score)
}

func (s *ServiceSuite) TestFirstCorrectIsStampedOnce() {
	p := model.Player{ID: "p1", Name: "Alice"}

	s.service.ApplyVerdict(&p, true, time.Second, s.now)
	s.service.ApplyVerdict(&p, true, time.Second, s.now.Add(time.Minute))

	s.Require().NotNil(p.FirstCorrectAt)
	s.Equal(s.now, *p.FirstCorrectAt)
}

// Rank tests

func (s *ServiceSuite) TestRankByScoreThenTime() {
	players := []model.Player{
		{ID: "a", Name: "A", Score: 3, TotalTime: 500 * time.Millisecond},
		{ID: "b", Name: "B", Score: 3, TotalTime: 200 * time.Millisecond},
		{ID: "c", Name: "C", Score: 1, TotalTime: 100 * time.Millisecond},
	}

	ranked := s.service.Rank(players)

	s.Equal([]model.PlayerID{"b", "a", "c"}, ids(ranked))
}

func (s *ServiceSuite) TestRankDoesNotReorderInput() {
	players := []model.Player{
		{ID: "a", Name: "A", Score: 0},
		{ID: "b", Name: "B", Score: 5},
	}

	_ = s.service.Rank(players)

	s.Equal([]model.PlayerID{"a", "b"}, ids(players))
}

func (s *ServiceSuite) TestRankKeepsFullTiesInInputOrder() {
	players := []model.Player{
		{ID: "a", Name: "A", Score: 1, TotalTime: time.Second},
		{ID: "b", Name: "B", Score: 1, TotalTime: time.Second},
	}

	s.Equal([]model.PlayerID{"a", "b"}, ids(s.service.Rank(players)))
}

func (s *ServiceSuite) TestRankNegativeScoresLast() {
	players := []model.Player{
		{ID: "a", Name: "A", Score: -2},
		{ID: "b", Name: "B", Score: 0, TotalTime: time.Hour},
	}

	s.Equal([]model.PlayerID{"b", "a"}, ids(s.service.Rank(players)))
}

// DetermineWinner tests

func (s *ServiceSuite) TestWinnerIsTopRanked() {
	players := []model.Player{
		{ID: "a", Name: "A", Score: 2, TotalTime: 900 * time.Millisecond},
		{ID: "b", Name: "B", Score: 2, TotalTime: 300 * time.Millisecond},
	}

	winner, ok := s.service.DetermineWinner(players)
	s.True(ok)
	s.Equal(model.PlayerID("b"), winner.ID)
}

func (s *ServiceSuite) TestNoWinnerWithoutPositiveScore() {
	players := []model.Player{
		{ID: "a", Name: "A", Score: 0},
		{ID: "b", Name: "B", Score: -1},
	}

	_, ok := s.service.DetermineWinner(players)
	s.False(ok)
}

func (s *ServiceSuite) TestNoWinnerWithoutPlayers() {
	_, ok := s.service.DetermineWinner(nil)
	s.False(ok)
}

func ids(players []model.Player) []model.PlayerID {
	out := make([]model.PlayerID, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}
