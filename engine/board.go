package engine

// Piece is a (kind, color) pair. Kind is a catalog name (catalog.go) or
// any identifier a move-script refers to.
type Piece struct {
	Kind  string
	Color Color
}

// Square is either empty (nil) or occupied by a Piece.
type Square = *Piece

// BoardState is the per-side register block: castling availability,
// the squares this side can currently be captured en-passant on, and a
// small bag of named integer flags move-scripts can read/write.
type BoardState struct {
	CastlingOO  bool
	CastlingOOO bool
	EnPassant   map[Position]bool
	Register    map[string]uint8
}

// NewBoardState returns an empty BoardState with castling rights set.
func NewBoardState() BoardState {
	return BoardState{
		CastlingOO:  true,
		CastlingOOO: true,
		EnPassant:   make(map[Position]bool),
		Register:    make(map[string]uint8),
	}
}

func (bs BoardState) clone() BoardState {
	ep := make(map[Position]bool, len(bs.EnPassant))
	for p := range bs.EnPassant {
		ep[p] = true
	}
	reg := make(map[string]uint8, len(bs.Register))
	for k, v := range bs.Register {
		reg[k] = v
	}
	return BoardState{
		CastlingOO:  bs.CastlingOO,
		CastlingOOO: bs.CastlingOOO,
		EnPassant:   ep,
		Register:    reg,
	}
}

// Get returns the value of a register key, defaulting to 0.
func (bs BoardState) Get(key string) uint8 {
	return bs.Register[key]
}

// BothBoardState holds each side's BoardState.
type BothBoardState struct {
	White BoardState
	Black BoardState
}

func (bbs BothBoardState) clone() BothBoardState {
	return BothBoardState{White: bbs.White.clone(), Black: bbs.Black.clone()}
}

// For returns the BoardState belonging to color.
func (bbs *BothBoardState) For(color Color) *BoardState {
	if color == White {
		return &bbs.White
	}
	return &bbs.Black
}

// Board is the 8x8 grid, side to move, both sides' register state, the
// compiled move-script program, and the two mode flags chosen at
// construction time (MACHO and IMPRISONED never change over a board's
// lifetime — see spec §3).
//
// dp memoizes generated pseudo-legal moves per source square; it is a
// scratchpad only. MakeMoveNewNC (and Clone, which it uses) starts the
// new board with an empty cache; any other path that mutates the grid
// or a register must call ClearCache.
type Board struct {
	Grid       [Height][Width]Square
	SideToMove Color
	State      BothBoardState
	Script     *CompiledProgram
	Macho      bool
	Imprisoned bool

	dp map[Position][]ChessMove
}

// NewBoard returns an empty board with no pieces, White to move, with
// the given compiled program and mode flags.
func NewBoard(script *CompiledProgram, macho, imprisoned bool) *Board {
	return &Board{
		SideToMove: White,
		State:      BothBoardState{White: NewBoardState(), Black: NewBoardState()},
		Script:     script,
		Macho:      macho,
		Imprisoned: imprisoned,
		dp:         make(map[Position][]ChessMove),
	}
}

// Width and Height of this board; fixed at 8x8 for this engine.
func (b *Board) Width() int  { return Width }
func (b *Board) Height() int { return Height }

// ColorOn returns the color occupying p, or (_, false) if empty or out
// of bounds.
func (b *Board) ColorOn(p Position) (Color, bool) {
	if !p.InBounds() {
		return 0, false
	}
	sq := b.Grid[p.Y][p.X]
	if sq == nil {
		return 0, false
	}
	return sq.Color, true
}

// PieceOn returns the kind occupying p, or ("", false) if empty or out
// of bounds.
func (b *Board) PieceOn(p Position) (string, bool) {
	if !p.InBounds() {
		return "", false
	}
	sq := b.Grid[p.Y][p.X]
	if sq == nil {
		return "", false
	}
	return sq.Kind, true
}

// Set places a piece on p, or clears it if piece is nil.
func (b *Board) Set(p Position, piece Square) {
	b.Grid[p.Y][p.X] = piece
}

// ClearCache discards the per-square move memoization. Called
// automatically by MakeMoveNewNC; any other code path that mutates the
// grid or a register must call it too.
func (b *Board) ClearCache() {
	b.dp = make(map[Position][]ChessMove)
}

func (b *Board) cached(p Position) ([]ChessMove, bool) {
	m, ok := b.dp[p]
	return m, ok
}

func (b *Board) memoize(p Position, moves []ChessMove) []ChessMove {
	b.dp[p] = moves
	return moves
}

// Clone returns a deep copy of b, including an empty move cache.
func (b *Board) Clone() *Board {
	nb := &Board{
		SideToMove: b.SideToMove,
		State:      b.State.clone(),
		Script:     b.Script,
		Macho:      b.Macho,
		Imprisoned: b.Imprisoned,
		dp:         make(map[Position][]ChessMove),
	}
	nb.Grid = b.Grid
	return nb
}

// MakeMoveNewNC clones b and applies move, clearing the mover's
// en-passant squares unless the move carries state_change[enpassant]=1
// (a pawn double push), and always returns a board with an empty move
// cache. "NC" (no-cache) names the contract: callers must not reuse the
// cache across positions.
func (b *Board) MakeMoveNewNC(move ChessMove) *Board {
	nb := b.Clone()

	mover := nb.Grid[move.From.Y][move.From.X]
	nb.Set(move.From, nil)

	landing := mover
	if move.Transition != "" && mover != nil {
		p := *mover
		p.Kind = move.Transition
		landing = &p
	}
	nb.Set(move.MoveTo, landing)
	if move.Take != move.MoveTo {
		nb.Set(move.Take, nil)
	}

	if move.MoveType == Castling {
		rank := move.From.Y
		if move.MoveTo.X == 6 {
			rook := nb.Grid[rank][7]
			nb.Set(Position{X: 7, Y: rank}, nil)
			nb.Set(Position{X: 5, Y: rank}, rook)
		} else if move.MoveTo.X == 2 {
			rook := nb.Grid[rank][0]
			nb.Set(Position{X: 0, Y: rank}, nil)
			nb.Set(Position{X: 3, Y: rank}, rook)
		}
	}

	mutator := nb.State.For(b.SideToMove)
	keepsEnPassant := false
	for _, sc := range move.StateChange {
		if sc.Key == "enpassant" && sc.Value == 1 {
			keepsEnPassant = true
		}
	}
	if keepsEnPassant {
		mutator.EnPassant = map[Position]bool{move.MoveTo: true}
	} else {
		mutator.EnPassant = make(map[Position]bool)
	}
	for _, sc := range move.StateChange {
		switch sc.Key {
		case "enpassant":
			// handled above
		case "castling-oo":
			mutator.CastlingOO = sc.Value != 0
		case "castling-ooo":
			mutator.CastlingOOO = sc.Value != 0
		default:
			mutator.Register[sc.Key] = sc.Value
		}
	}

	nb.SideToMove = b.SideToMove.Opposite()
	nb.ClearCache()
	return nb
}
