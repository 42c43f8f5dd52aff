package engine

import "math"

// Non-goals (spec §4.7): no iterative deepening, no transposition
// table, no quiescence search, no time management. Search always runs
// to exactly the requested depth and returns the single best move it
// found, or none if the position has no legal move.
const (
	minDepth = 1
	maxDepth = 4

	mateScore = 1 << 20
)

// Options keeps the search's tunables.
type Options struct {
	Depth int // plies to search, clamped to [minDepth, maxDepth]
}

// Stats reports how much work a search did.
type Stats struct {
	Nodes int64 // positions evaluated (leaves and internal)
	Depth int   // depth actually searched
}

// Logger observes search progress. httpapi's zapSearchLogger adapts a
// zap.Logger to this interface.
type Logger interface {
	BeginSearch(depth int)
	EndSearch(stats Stats, best *ChessMove, score int)
}

// NulLogger discards all search events.
type NulLogger struct{}

func (NulLogger) BeginSearch(int)                     {}
func (NulLogger) EndSearch(Stats, *ChessMove, int) {}

// Engine searches a single Board for the best move at a fixed depth.
type Engine struct {
	Options Options
	Log     Logger

	board *Board
	stats Stats
}

// NewEngine returns an Engine bound to board, clamping depth into the
// supported range.
func NewEngine(board *Board, options Options, log Logger) *Engine {
	if log == nil {
		log = NulLogger{}
	}
	if options.Depth < minDepth {
		options.Depth = minDepth
	}
	if options.Depth > maxDepth {
		options.Depth = maxDepth
	}
	return &Engine{Options: options, Log: log, board: board}
}

// Play returns the best legal move for the side to move, or (_, false)
// if there is none (checkmate or stalemate).
func (eng *Engine) Play() (ChessMove, bool) {
	eng.stats = Stats{Depth: eng.Options.Depth}
	eng.Log.BeginSearch(eng.Options.Depth)

	moves := LegalMoves(eng.board)
	if len(moves) == 0 {
		eng.Log.EndSearch(eng.stats, nil, 0)
		return ChessMove{}, false
	}

	const negInf = -math.MaxInt32
	const posInf = math.MaxInt32

	var best ChessMove
	bestScore := negInf
	alpha, beta := negInf, posInf

	for _, m := range moves {
		next := eng.board.MakeMoveNewNC(m)
		score := -eng.negamax(next, eng.Options.Depth-1, -beta, -alpha)
		if score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
	}

	eng.Log.EndSearch(eng.stats, &best, bestScore)
	return best, true
}

// negamax is a fixed-depth alpha-beta search with a material-only
// leaf evaluation (material.go). Each interior node calls LegalMoves
// for its own position; an empty result is scored as checkmate if the
// side to move is in check, else as stalemate (0).
func (eng *Engine) negamax(board *Board, depth, alpha, beta int) int {
	eng.stats.Nodes++

	if depth == 0 {
		return Evaluate(board)
	}

	moves := LegalMoves(board)
	if len(moves) == 0 {
		if kingInCheck(board, board.SideToMove) {
			return -mateScore - depth
		}
		return 0
	}

	best := alpha
	for _, m := range moves {
		next := board.MakeMoveNewNC(m)
		score := -eng.negamax(next, depth-1, -beta, -best)
		if score >= beta {
			return score
		}
		if score > best {
			best = score
		}
	}
	return best
}
