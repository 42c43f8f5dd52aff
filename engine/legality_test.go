package engine

import "testing"

func TestMachoFilterKeepsForwardDropsBackward(t *testing.T) {
	b := NewBoard(&CompiledProgram{}, true, false)
	from := Position{X: 3, Y: 4}
	b.Set(from, &Piece{Kind: "rook", Color: White})

	all := generateMoves(plainRookScript(), b, from, false)
	filtered := machoFilter(b, all)

	for _, m := range filtered {
		if m.From.Y <= m.MoveTo.Y && m.From.Y != m.MoveTo.Y {
			t.Errorf("kept a non-forward move %+v", m)
		}
	}
	var sawForward bool
	for _, m := range filtered {
		if m.From.Y > m.MoveTo.Y {
			sawForward = true
		}
	}
	if !sawForward {
		t.Error("expected at least one forward move to survive MACHO filtering")
	}
}

func TestMachoFilterCoercesSameRankCapture(t *testing.T) {
	b := NewBoard(&CompiledProgram{}, true, false)
	from := Position{X: 3, Y: 4}
	b.Set(from, &Piece{Kind: "rook", Color: White})
	b.Set(Position{X: 5, Y: 4}, &Piece{Kind: "pawn", Color: Black})

	all := generateMoves(plainRookScript(), b, from, false)
	filtered := machoFilter(b, all)

	var found bool
	for _, m := range filtered {
		if m.From.Y == m.MoveTo.Y {
			found = true
			if m.MoveType != Take {
				t.Errorf("same-rank capture MoveType = %v, want Take", m.MoveType)
			}
		}
	}
	if !found {
		t.Error("expected the same-rank capture to survive, coerced to Take")
	}
}

func TestMachoFilterDropsSameRankNonCapture(t *testing.T) {
	b := NewBoard(&CompiledProgram{}, true, false)
	from := Position{X: 3, Y: 4}
	b.Set(from, &Piece{Kind: "rook", Color: White})

	all := generateMoves(plainRookScript(), b, from, false)
	filtered := machoFilter(b, all)
	for _, m := range filtered {
		if m.From.Y == m.MoveTo.Y {
			t.Errorf("same-rank non-capture move survived MACHO filtering: %+v", m)
		}
	}
}

func TestSelfCheckFilterRejectsMoveLeavingKingInCheck(t *testing.T) {
	b := newTestBoard()
	b.SideToMove = White
	b.Set(Position{X: 4, Y: 7}, &Piece{Kind: "king", Color: White})
	b.Set(Position{X: 4, Y: 6}, &Piece{Kind: "rook", Color: White})
	b.Set(Position{X: 4, Y: 0}, &Piece{Kind: "rook", Color: Black})

	rookMoves := generateMoves(plainRookScript(), b, Position{X: 4, Y: 6}, false)
	filtered := selfCheckFilter(b, rookMoves)
	for _, m := range filtered {
		if m.MoveTo.X != 4 {
			t.Errorf("pinned rook move left the file: %+v", m)
		}
	}
}

func TestDangerMaskBitLayout(t *testing.T) {
	b := newTestBoard()
	b.Set(Position{X: 0, Y: 0}, &Piece{Kind: "rook", Color: White})
	mask := DangerMask(b, White)
	for _, p := range DangerSquares(b, White) {
		if !IsDangerBit(mask, p) {
			t.Errorf("square %v missing from mask despite being in DangerSquares", p)
		}
		bit := uint(8*p.Y + p.X)
		if mask&(1<<bit) == 0 {
			t.Errorf("bit %d not set for square %v", bit, p)
		}
	}
}

func TestHasAnyMoveShortCircuits(t *testing.T) {
	b := newTestBoard()
	if HasAnyMove(b, White, false) {
		t.Error("empty board should have no moves for White")
	}
	b.Set(Position{X: 0, Y: 0}, &Piece{Kind: "king", Color: White})
	if !HasAnyMove(b, White, false) {
		t.Error("a lone king should have at least one move")
	}
}
