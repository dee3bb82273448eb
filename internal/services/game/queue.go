package game

import (
	"log/slog"

	"github.com/mcoot/singhit/internal/model"
)

// advanceQueue drops the displayed word and shows the next one, appending
// a freshly shuffled pool when the queue runs dry. Must be called with mu held.
func (e *Engine) advanceQueue() {
	if len(e.state.WordsQueue) > 0 {
		e.state.WordsQueue = e.state.WordsQueue[1:]
	}

	if len(e.state.WordsQueue) == 0 {
		fresh := e.words.Shuffled(e.state.Language)
		e.state.WordsQueue = append(e.state.WordsQueue, fresh...)
		e.logger.Debug("word queue replenished",
			slog.String("language", string(e.state.Language)),
			slog.Int("added", len(fresh)))
		e.publish(model.EventQueueReplenished, model.ReplenishPayload{
			Language: e.state.Language,
			Added:    len(fresh),
		})
	}

	if len(e.state.WordsQueue) > 0 {
		e.state.CurrentWord = e.state.WordsQueue[0]
	} else {
		e.state.CurrentWord = ""
	}
}
