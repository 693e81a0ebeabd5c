package core_test

import (
	"testing"

	"chessmg/core"
	"chessmg/fen"
)

// S1: starting position perft.
func TestPerftStartingPosition(t *testing.T) {
	pos, err := fen.Parse(fen.StartPos)
	if err != nil {
		t.Fatalf("parse start FEN: %v", err)
	}
	want := []uint64{20, 400, 8902, 197281}
	for i, w := range want {
		depth := i + 1
		if got := core.Perft(pos, depth); got != w {
			t.Errorf("perft depth %d = %d, want %d", depth, got, w)
		}
	}
}

// S2: Kiwipete perft.
func TestPerftKiwipete(t *testing.T) {
	kiwipete := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos, err := fen.Parse(kiwipete)
	if err != nil {
		t.Fatalf("parse kiwipete FEN: %v", err)
	}
	want := []uint64{48, 2039, 97862}
	for i, w := range want {
		depth := i + 1
		if got := core.Perft(pos, depth); got != w {
			t.Errorf("kiwipete perft depth %d = %d, want %d", depth, got, w)
		}
	}
}

// S3/S4: making Ne5-c6 from Kiwipete and unmaking it round-trips.
func TestMakeUnmakeKiwipeteKnightMove(t *testing.T) {
	kiwipete := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	before, err := fen.Parse(kiwipete)
	if err != nil {
		t.Fatalf("parse kiwipete FEN: %v", err)
	}
	after, err := fen.Parse(kiwipete)
	if err != nil {
		t.Fatalf("parse kiwipete FEN: %v", err)
	}

	e5 := core.MakeSquare(4, 4)
	c6 := core.MakeSquare(2, 5)
	m := core.NewMove(e5, c6)

	if before.PieceAt(e5).Type() != core.Knight || before.PieceAt(e5).Colour() != core.White {
		t.Fatalf("expected a white knight on e5 in the kiwipete position")
	}

	before.MakeMove(m)

	if before.PieceAt(e5) != core.NoPiece {
		t.Errorf("e5 should be empty after Ne5-c6")
	}
	if before.PieceAt(c6) != core.MakePiece(core.White, core.Knight) {
		t.Errorf("c6 should hold a white knight after Ne5-c6")
	}
	if before.SideToMove() != core.Black {
		t.Errorf("side to move should be black after white's move")
	}
	if before.CastlingRights() != after.CastlingRights() {
		t.Errorf("castling rights should be unchanged by a knight move")
	}
	if before.EnPassantSquare() != core.NoSquare {
		t.Errorf("en-passant square should be cleared")
	}

	before.UnmakeMove(m)
	if !before.Equal(after) {
		t.Errorf("position after make/unmake does not equal the original kiwipete position")
	}
}

// S6: en-passant generation and application.
func TestEnPassantCapture(t *testing.T) {
	position := "8/8/8/8/pP6/8/8/8 b - b3 0 1"
	// Black pawn on a4, white pawn on b4 (having just played b2-b4), en
	// passant target b3.
	pos, err := fen.Parse(position)
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}
	a4 := core.MakeSquare(0, 3)
	b3 := core.MakeSquare(1, 2)
	b4 := core.MakeSquare(1, 3)

	moves := core.GeneratePseudoLegal(pos, nil)
	var epMove core.Move
	found := false
	for _, m := range moves {
		if m.IsEnPassant() && m.From() == a4 && m.To() == b3 {
			epMove = m
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a pseudo-legal en-passant move a4xb3")
	}

	pos.MakeMove(epMove)
	if pos.PieceAt(a4) != core.NoPiece {
		t.Errorf("a4 should be empty after en-passant capture")
	}
	if pos.PieceAt(b4) != core.NoPiece {
		t.Errorf("b4 (captured pawn's square) should be empty after en-passant capture")
	}
	if pos.PieceAt(b3) != core.MakePiece(core.Black, core.Pawn) {
		t.Errorf("b3 should hold the black pawn after en-passant capture")
	}
}

func TestLegalMoveRoundTripPreservesUndoDepth(t *testing.T) {
	pos, err := fen.Parse(fen.StartPos)
	if err != nil {
		t.Fatalf("parse start FEN: %v", err)
	}
	moves := core.GenerateLegal(pos, nil)
	if len(moves) != 20 {
		t.Fatalf("legal move count at start = %d, want 20", len(moves))
	}
	for _, m := range moves {
		depth := pos.UndoDepth()
		snapshot, _ := fen.Parse(fen.StartPos)
		pos.MakeMove(m)
		pos.UnmakeMove(m)
		if pos.UndoDepth() != depth {
			t.Fatalf("undo depth changed across make/unmake of %v", m)
		}
		if !pos.Equal(snapshot) {
			t.Fatalf("position after make/unmake of %v does not equal the starting position", m)
		}
	}
}
