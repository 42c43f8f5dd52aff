package engine

// isCapturingType reports the move kinds that count as "attacking" the
// square they take, for danger-zone purposes (spec §4.6, "has_any_moves
// / danger zone").
func isCapturingType(mt MoveType) bool {
	switch mt {
	case Take, TakeMove, TakeJump, Catch:
		return true
	}
	return false
}

// GetAllMoves collects every pseudo-legal move for turn's pieces.
// checkDanger enables king-safety pruning inside generate_king_moves's
// equivalent and the `check`/`danger` script predicates; it must be
// false while this call is itself being used to build a danger zone,
// or those predicates would recurse.
//
// Per spec, filtering (MACHO's forward/same-rank rule, or the
// self-check legality rule) is applied whenever checkDanger is true or
// the board plays MACHO — so a MACHO board's danger zone is still
// forward-filtered, but MACHO boards never pay the self-check
// legality pass, even during ordinary move enumeration. This mirrors
// the original engine's control flow exactly; see DESIGN.md.
func GetAllMoves(board *Board, turn Color, checkDanger bool) []ChessMove {
	var ret []ChessMove
	for y := int8(0); y < Height; y++ {
		for x := int8(0); x < Width; x++ {
			p := Position{X: x, Y: y}
			c, ok := board.ColorOn(p)
			if !ok || c != turn {
				continue
			}
			moves := board.pseudoMoves(p, checkDanger)
			if checkDanger || board.Macho {
				moves = filterNodes(board, moves)
			}
			ret = append(ret, moves...)
		}
	}
	return ret
}

// HasAnyMove reports whether turn has at least one legal move,
// short-circuiting as soon as one is found (mate/stalemate detection
// without enumerating every square).
func HasAnyMove(board *Board, turn Color, checkDanger bool) bool {
	for y := int8(0); y < Height; y++ {
		for x := int8(0); x < Width; x++ {
			p := Position{X: x, Y: y}
			c, ok := board.ColorOn(p)
			if !ok || c != turn {
				continue
			}
			moves := board.pseudoMoves(p, checkDanger)
			if checkDanger || board.Macho {
				moves = filterNodes(board, moves)
			}
			if len(moves) > 0 {
				return true
			}
		}
	}
	return false
}

// LegalMoves returns every fully legal move for the side to move.
func LegalMoves(board *Board) []ChessMove {
	return GetAllMoves(board, board.SideToMove, true)
}

// filterNodes applies the board's legality rule to a batch of
// pseudo-legal candidates generated from the same source square.
func filterNodes(board *Board, nodes []ChessMove) []ChessMove {
	if board.Macho {
		return machoFilter(board, nodes)
	}
	return selfCheckFilter(board, nodes)
}

// machoFilter keeps only forward moves, coercing a same-rank capture
// into a MoveType of Take; backward moves and sideways non-captures
// are dropped (spec §9,
// "MACHO forward-only + same-rank-capture").
func machoFilter(board *Board, nodes []ChessMove) []ChessMove {
	var ret []ChessMove
	for _, n := range nodes {
		pieceColor, ok := board.ColorOn(n.From)
		if !ok {
			continue
		}
		switch {
		case pieceColor == Black && n.From.Y < n.MoveTo.Y:
			ret = append(ret, n)
		case pieceColor == White && n.From.Y > n.MoveTo.Y:
			ret = append(ret, n)
		case n.From.Y == n.MoveTo.Y:
			if tc, ok := board.ColorOn(n.Take); ok && tc == pieceColor.Opposite() {
				coerced := n
				coerced.MoveType = Take
				ret = append(ret, coerced)
			}
		}
	}
	return ret
}

// selfCheckFilter rejects any move that would leave the mover's own
// king in check.
func selfCheckFilter(board *Board, nodes []ChessMove) []ChessMove {
	var ret []ChessMove
	mover := board.SideToMove
	for _, n := range nodes {
		next := board.MakeMoveNewNC(n)
		if !kingInCheck(next, mover) {
			ret = append(ret, n)
		}
	}
	return ret
}

// kingInCheck reports whether color's king sits on a square attacked
// by the opposing side. This is the conventional legality notion; it
// is deliberately distinct from IsCheck (the move-script predicate),
// whose original semantics test the mover's own attacks rather than
// its opponent's — see DESIGN.md for why the two are not merged.
func kingInCheck(board *Board, color Color) bool {
	king, ok := findKing(board, color)
	if !ok {
		return false
	}
	return IsDangerBit(DangerMask(board, color.Opposite()), king)
}

func findKing(board *Board, color Color) (Position, bool) {
	for y := int8(0); y < Height; y++ {
		for x := int8(0); x < Width; x++ {
			p := Position{X: x, Y: y}
			if c, ok := board.ColorOn(p); ok && c == color {
				if kind, _ := board.PieceOn(p); kind == "king" {
					return p, true
				}
			}
		}
	}
	return Position{}, false
}

// DangerSquares returns every square attacked by attacker's pieces:
// the "take" target of each capturing-type pseudo-legal move,
// computed with checkDanger=false to avoid recursing through
// check/danger predicates inside attacker's own scripts.
func DangerSquares(board *Board, attacker Color) []Position {
	var out []Position
	for _, m := range GetAllMoves(board, attacker, false) {
		if isCapturingType(m.MoveType) {
			out = append(out, m.Take)
		}
	}
	return out
}

// DangerMask is DangerSquares packed into a 64-bit board, bit 8*y+x.
func DangerMask(board *Board, attacker Color) uint64 {
	var mask uint64
	for _, m := range GetAllMoves(board, attacker, false) {
		if isCapturingType(m.MoveType) {
			mask |= 1 << uint(8*m.Take.Y+m.Take.X)
		}
	}
	return mask
}

// IsDangerBit tests a single square against a precomputed mask.
func IsDangerBit(mask uint64, p Position) bool {
	return mask&(1<<uint(8*p.Y+p.X)) != 0
}

// IsDanger is the move-script `danger` predicate: whether the given
// square is attacked by color's own side. Scripts use it from the
// mover's perspective (board.ColorOn(position)), matching the
// original interpreter's is_danger call exactly.
func IsDanger(board *Board, p Position, color Color) bool {
	return IsDangerBit(DangerMask(board, color), p)
}

// IsCheck is the move-script `check` predicate: whether color's side
// currently attacks a square occupied by a king (of either color).
// This is the literal original behavior; do not confuse it with
// kingInCheck, which legality filtering uses instead.
func IsCheck(board *Board, color Color) bool {
	for _, p := range DangerSquares(board, color) {
		if kind, ok := board.PieceOn(p); ok && kind == "king" {
			return true
		}
	}
	return false
}
