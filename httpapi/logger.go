package httpapi

import (
	"go.uber.org/zap"

	"github.com/mssparcs/chessembly-bot/engine"
)

// zapSearchLogger adapts engine.Logger onto the handler's zap.Logger,
// so each search's node count and chosen move land in the same
// structured log stream as the request itself.
type zapSearchLogger struct {
	log *zap.Logger
}

func (l zapSearchLogger) BeginSearch(depth int) {
	l.log.Debug("search started", zap.Int("depth", depth))
}

func (l zapSearchLogger) EndSearch(stats engine.Stats, best *engine.ChessMove, score int) {
	if best == nil {
		l.log.Debug("search found no move", zap.Int64("nodes", stats.Nodes))
		return
	}
	l.log.Debug("search finished",
		zap.Int64("nodes", stats.Nodes),
		zap.Int("depth", stats.Depth),
		zap.Int("score", score),
		zap.String("move_type", best.MoveType.String()),
	)
}
