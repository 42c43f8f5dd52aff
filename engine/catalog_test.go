package engine

import (
	"sort"
	"testing"
)

func moveTargets(moves []ChessMove) []Position {
	out := make([]Position, len(moves))
	for i, m := range moves {
		out[i] = m.MoveTo
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Y < out[j].Y
	})
	return out
}

func TestKnightFromEmptyBoardHasEightLMoves(t *testing.T) {
	b := newTestBoard()
	from := Position{X: 3, Y: 3}
	b.Set(from, &Piece{Kind: "knight", Color: White})

	moves := b.pseudoMoves(from, false)
	if len(moves) != 8 {
		t.Fatalf("got %d moves, want 8", len(moves))
	}
	for _, m := range moves {
		if m.From != from || m.MoveType != TakeMove {
			t.Errorf("unexpected move %+v", m)
		}
	}

	want := []Position{
		{1, 2}, {1, 4}, {2, 1}, {2, 5}, {4, 1}, {4, 5}, {5, 2}, {5, 4},
	}
	sort.Slice(want, func(i, j int) bool {
		if want[i].X != want[j].X {
			return want[i].X < want[j].X
		}
		return want[i].Y < want[j].Y
	})
	got := moveTargets(moves)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("targets = %v, want %v", got, want)
		}
	}
}

func TestPawnDoublePushSetsEnPassant(t *testing.T) {
	b := newTestBoard()
	from := Position{X: 4, Y: 6}
	b.Set(from, &Piece{Kind: "pawn", Color: White})

	moves := generatePawnMoves(b, from)
	var double *ChessMove
	for i, m := range moves {
		if m.MoveTo == (Position{X: 4, Y: 4}) {
			double = &moves[i]
		}
	}
	if double == nil {
		t.Fatal("expected a double-push move to (4,4)")
	}
	if len(double.StateChange) != 1 || double.StateChange[0].Key != "enpassant" || double.StateChange[0].Value != 1 {
		t.Fatalf("double push state_change = %+v, want [{enpassant 1}]", double.StateChange)
	}

	next := b.MakeMoveNewNC(*double)
	if !next.State.For(White).EnPassant[Position{X: 4, Y: 4}] {
		t.Fatal("expected en-passant square (4,4) to be recorded for White")
	}
}

func TestPawnEnPassantCapture(t *testing.T) {
	b := newTestBoard()
	b.SideToMove = Black
	b.Set(Position{X: 4, Y: 4}, &Piece{Kind: "pawn", Color: White})
	b.Set(Position{X: 3, Y: 4}, &Piece{Kind: "pawn", Color: Black})
	b.State.For(White).EnPassant[Position{X: 4, Y: 4}] = true

	moves := generatePawnMoves(b, Position{X: 3, Y: 4})
	var capture *ChessMove
	for i, m := range moves {
		if m.MoveType == TakeJump {
			capture = &moves[i]
		}
	}
	if capture == nil {
		t.Fatal("expected a TakeJump en-passant capture")
	}
	if capture.Take != (Position{X: 4, Y: 4}) {
		t.Fatalf("capture.Take = %v, want (4,4)", capture.Take)
	}
	if capture.MoveTo != (Position{X: 4, Y: 5}) {
		t.Fatalf("capture.MoveTo = %v, want (4,5)", capture.MoveTo)
	}
}

func TestCastlingBlockedByAttack(t *testing.T) {
	b := newTestBoard()
	king := Position{X: 4, Y: 7}
	b.Set(king, &Piece{Kind: "king", Color: White})
	b.Set(Position{X: 7, Y: 7}, &Piece{Kind: "rook", Color: White})
	b.Set(Position{X: 5, Y: 0}, &Piece{Kind: "rook", Color: Black})
	b.State.For(White).CastlingOO = true

	moves := generateKingMoves(b, king, true)
	for _, m := range moves {
		if m.MoveType == Castling {
			t.Fatalf("expected no castling move while the f-file is attacked, got %+v", m)
		}
	}
}

func TestBeaconReachesAnyFriendlySquareExceptPawnsAndBeacons(t *testing.T) {
	b := newTestBoard()
	beacon := Position{X: 0, Y: 4}
	b.Set(beacon, &Piece{Kind: "beacon", Color: White})
	b.Set(Position{X: 1, Y: 4}, &Piece{Kind: "pawn", Color: White})
	b.Set(Position{X: 7, Y: 7}, &Piece{Kind: "pawn", Color: White})
	b.Set(Position{X: 7, Y: 0}, &Piece{Kind: "beacon", Color: White})
	b.Set(Position{X: 3, Y: 1}, &Piece{Kind: "knight", Color: White})
	b.Set(Position{X: 6, Y: 6}, &Piece{Kind: "rook", Color: Black})

	moves := b.pseudoMoves(beacon, false)
	for _, m := range moves {
		if m.MoveTo == (Position{X: 1, Y: 4}) || m.MoveTo == (Position{X: 7, Y: 7}) {
			t.Fatalf("beacon shifted onto a pawn square %v, want pawns excluded", m.MoveTo)
		}
		if m.MoveTo == (Position{X: 7, Y: 0}) {
			t.Fatalf("beacon shifted onto another beacon's square %v, want beacons excluded", m.MoveTo)
		}
		if m.MoveTo == (Position{X: 6, Y: 6}) {
			t.Fatalf("beacon shifted onto an enemy square %v, want only friendly squares reachable", m.MoveTo)
		}
	}

	var sawKnightShift bool
	for _, m := range moves {
		if m.MoveTo == (Position{X: 3, Y: 1}) {
			sawKnightShift = true
			if m.MoveType != Shift || m.Take != beacon {
				t.Errorf("beacon move onto knight = %+v, want Shift with take=from", m)
			}
		}
	}
	if !sawKnightShift {
		t.Error("expected the beacon to reach a friendly non-pawn square anywhere on the board")
	}
}

func TestChameleonMetamorphosesOnDiagonalCatch(t *testing.T) {
	b := newTestBoard()
	from := Position{X: 3, Y: 3}
	b.Set(from, &Piece{Kind: "chameleon", Color: White})
	b.Set(Position{X: 5, Y: 5}, &Piece{Kind: "bishop", Color: Black})
	b.Set(Position{X: 4, Y: 4}, &Piece{Kind: "knight", Color: Black})

	moves := generateChameleonMoves(b, from)

	var caught *ChessMove
	for i, m := range moves {
		if m.MoveType == Catch {
			caught = &moves[i]
		}
	}
	if caught == nil {
		t.Fatal("expected a Catch on the bishop two squares diagonally away")
	}
	if caught.Take != (Position{X: 5, Y: 5}) {
		t.Fatalf("Catch.Take = %v, want (5,5)", caught.Take)
	}
	if caught.MoveTo != from {
		t.Fatalf("Catch.MoveTo = %v, want the chameleon's own square %v", caught.MoveTo, from)
	}
	if caught.Transition != "mirrored-bishop" {
		t.Fatalf("Transition = %q, want %q", caught.Transition, "mirrored-bishop")
	}

	var step *ChessMove
	for i, m := range moves {
		if m.MoveTo == (Position{X: 4, Y: 4}) {
			step = &moves[i]
		}
	}
	if step == nil {
		t.Fatal("expected a king-like one-step capture of the adjacent knight")
	}
	if step.MoveType != TakeMove || step.Transition != "" {
		t.Fatalf("adjacent capture = %+v, want a plain TakeMove with no Transition", *step)
	}
}

func TestMirroredBishopMovesPlainAndReincarnatesOnCapture(t *testing.T) {
	b := newTestBoard()
	from := Position{X: 3, Y: 3}
	b.Set(from, &Piece{Kind: "mirrored-bishop", Color: White})
	b.Set(Position{X: 6, Y: 6}, &Piece{Kind: "knight", Color: Black})

	moves := generateMirroredMoves(b, from, bishopScript())

	var open, capture *ChessMove
	for i, m := range moves {
		if m.MoveTo == (Position{X: 5, Y: 5}) {
			open = &moves[i]
		}
		if m.MoveTo == (Position{X: 6, Y: 6}) {
			capture = &moves[i]
		}
	}
	if open == nil || open.Transition != "" {
		t.Fatalf("expected a plain non-capturing diagonal slide to (5,5), got %+v", open)
	}
	if capture == nil {
		t.Fatal("expected a capture of the knight on (6,6)")
	}
	if capture.Transition != "mirrored-knight" {
		t.Fatalf("Transition = %q, want %q", capture.Transition, "mirrored-knight")
	}
}

func TestMirroredPawnForwardAndDiagonalCaptureOnly(t *testing.T) {
	b := newTestBoard()
	from := Position{X: 4, Y: 4}
	b.Set(from, &Piece{Kind: "mirrored-pawn", Color: White})
	b.Set(Position{X: 5, Y: 3}, &Piece{Kind: "rook", Color: Black})

	moves := generateMirroredPawnMoves(b, from)

	var forward, diag *ChessMove
	for i, m := range moves {
		if m.MoveTo == (Position{X: 4, Y: 3}) {
			forward = &moves[i]
		}
		if m.MoveTo == (Position{X: 5, Y: 3}) {
			diag = &moves[i]
		}
	}
	if forward == nil || forward.MoveType != Move {
		t.Fatalf("expected a plain forward-one move to (4,3), got %+v", forward)
	}
	if diag == nil || diag.MoveType != Take || diag.Transition != "mirrored-rook" {
		t.Fatalf("expected a diagonal capture to (5,3) with Transition mirrored-rook, got %+v", diag)
	}
	if len(moves) != 2 {
		t.Fatalf("got %d moves, want exactly 2 (no double-push, no non-capturing diagonal)", len(moves))
	}
}

func TestMachoRookForwardOnly(t *testing.T) {
	b := NewBoard(&CompiledProgram{}, true, false)
	from := Position{X: 3, Y: 4}
	b.Set(from, &Piece{Kind: "rook", Color: White})

	moves := GetAllMoves(b, White, false)
	for _, m := range moves {
		if m.From.Y <= m.MoveTo.Y && m.From.Y != m.MoveTo.Y {
			t.Errorf("MACHO rook kept a backward move %+v", m)
		}
	}
}
