package scoring

import (
	"sort"
	"time"

	"github.com/mcoot/singhit/internal/model"
)

// Service applies verdicts and orders players for display
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// ApplyVerdict updates the singer after the moderator's decision.
// A correct answer scores +1 and charges the frozen elapsed time; a wrong
// answer scores -1 and charges nothing. Scores have no floor.
func (s *Service) ApplyVerdict(player *model.Player, correct bool, elapsed time.Duration, now time.Time) {
	if !correct {
		player.Score--
		return
	}

	player.Score++
	player.TotalTime += elapsed
	if player.FirstCorrectAt == nil {
		stamp := now
		player.FirstCorrectAt = &stamp
	}
}

// Rank returns the players ordered by score descending, then by total
// time ascending. The input slice is left untouched.
func (s *Service) Rank(players []model.Player) []model.Player {
	ranked := make([]model.Player, len(players))
	copy(ranked, players)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].TotalTime < ranked[j].TotalTime
	})

	return ranked
}

// DetermineWinner returns the top ranked player, or false when nobody
// finished with a positive score
func (s *Service) DetermineWinner(players []model.Player) (model.Player, bool) {
	ranked := s.Rank(players)
	if len(ranked) == 0 || ranked[0].Score <= 0 {
		return model.Player{}, false
	}
	return ranked[0], true
}

// Interface for dependency injection
type ServiceInterface interface {
	ApplyVerdict(player *model.Player, correct bool, elapsed time.Duration, now time.Time)
	Rank(players []model.Player) []model.Player
	DetermineWinner(players []model.Player) (model.Player, bool)
}

var _ ServiceInterface = (*Service)(nil)
