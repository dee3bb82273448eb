package game

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/mcoot/singhit/internal/model"
)

// AddPlayer registers a new player during setup. The name is trimmed and
// must not match an existing name ignoring case.
func (e *Engine) AddPlayer(name string) (model.PlayerID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return "", model.ErrEmptyName
	}
	if e.state.Phase != model.PhaseSetup {
		return "", model.ErrGameInProgress
	}
	if existing := e.findByName(name); existing != nil {
		return "", fmt.Errorf("%w: %q", model.ErrDuplicateName, existing.Name)
	}

	player := model.Player{
		ID:   model.PlayerID(e.random.UUID()),
		Name: name,
	}
	e.state.Players = append(e.state.Players, player)
	e.sortPlayers()

	e.logger.Info("player added",
		slog.String("player_id", string(player.ID)),
		slog.String("name", player.Name),
		slog.Int("player_count", len(e.state.Players)))

	e.commit(model.EventPlayerAdded, model.PlayerPayload{PlayerID: player.ID, Name: player.Name})
	return player.ID, nil
}

// RemovePlayer drops a player during setup; unknown ids are ignored
func (e *Engine) RemovePlayer(id model.PlayerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != model.PhaseSetup {
		e.rejected("remove_player")
		return false
	}

	for i, p := range e.state.Players {
		if p.ID != id {
			continue
		}
		e.state.Players = append(e.state.Players[:i:i], e.state.Players[i+1:]...)
		e.logger.Info("player removed",
			slog.String("player_id", string(id)),
			slog.Int("player_count", len(e.state.Players)))
		e.commit(model.EventPlayerRemoved, model.PlayerPayload{PlayerID: id, Name: p.Name})
		return true
	}
	return false
}

// FindPlayer looks a player up by name ignoring case
func (e *Engine) FindPlayer(name string) (model.Player, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p := e.findByName(strings.TrimSpace(name)); p != nil {
		return p.Clone(), true
	}
	return model.Player{}, false
}

func (e *Engine) findByName(name string) *model.Player {
	folded := e.folder.String(name)
	for i := range e.state.Players {
		if e.folder.String(e.state.Players[i].Name) == folded {
			return &e.state.Players[i]
		}
	}
	return nil
}

// sortPlayers orders the roster alphabetically using Italian collation
func (e *Engine) sortPlayers() {
	sort.SliceStable(e.state.Players, func(i, j int) bool {
		return e.collator.CompareString(e.state.Players[i].Name, e.state.Players[j].Name) < 0
	})
}
