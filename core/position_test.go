package core

import "testing"

func startingPosition() *Position {
	p := NewEmptyPosition()
	backRank := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < 8; file++ {
		p.AddPiece(MakePiece(White, backRank[file]), MakeSquare(file, 0))
		p.AddPiece(MakePiece(White, Pawn), MakeSquare(file, 1))
		p.AddPiece(MakePiece(Black, Pawn), MakeSquare(file, 6))
		p.AddPiece(MakePiece(Black, backRank[file]), MakeSquare(file, 7))
	}
	p.SetCastlingRights(AllCastling)
	p.SetSideToMove(White)
	return p
}

func TestMailboxBitboardConsistency(t *testing.T) {
	p := startingPosition()
	for s := Square(0); s < 64; s++ {
		pc := p.PieceAt(s)
		inColour := p.byColour[White].Has(s) || p.byColour[Black].Has(s)
		if pc == NoPiece && inColour {
			t.Fatalf("square %v: mailbox empty but a colour bitboard has it set", s)
		}
		if pc != NoPiece && !p.byColour[pc.Colour()].Has(s) {
			t.Fatalf("square %v: mailbox has %v but colour bitboard disagrees", s, pc)
		}
		if pc != NoPiece && !p.byType[pc.Type()].Has(s) {
			t.Fatalf("square %v: mailbox has %v but type bitboard disagrees", s, pc)
		}
	}
}

func TestColourAndTypeBitboardsDisjoint(t *testing.T) {
	p := startingPosition()
	if p.byColour[White]&p.byColour[Black] != BBEmpty {
		t.Fatal("white and black bitboards overlap")
	}
	for i := 0; i < NumPieceTypes; i++ {
		for j := i + 1; j < NumPieceTypes; j++ {
			if p.byType[i]&p.byType[j] != BBEmpty {
				t.Fatalf("piece type bitboards %d and %d overlap", i, j)
			}
		}
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	p := startingPosition()
	before := *p // shallow struct copy: slices alias but undo is empty here
	m := NewMove(MakeSquare(4, 1), MakeSquare(4, 3)) // e2e4

	p.MakeMove(m)
	if p.Equal(&before) {
		t.Fatal("position should differ after making a move")
	}
	p.UnmakeMove(m)

	if !p.Equal(&before) {
		t.Fatalf("position after make/unmake round trip does not equal original")
	}
	if p.UndoDepth() != 0 {
		t.Fatalf("undo depth after round trip = %d, want 0", p.UndoDepth())
	}
}

func TestUnmakeOnEmptyStackPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("UnmakeMove on empty undo stack did not panic")
		}
	}()
	p := startingPosition()
	p.UnmakeMove(NewMove(0, 1))
}

func TestEqualityIgnoresCounters(t *testing.T) {
	a := startingPosition()
	b := startingPosition()
	b.SetFiftyMoveCounter(7)
	b.SetHalfmoveCounter(9)
	if !a.Equal(b) {
		t.Fatal("Equal should ignore fifty-move and halfmove counters")
	}
}
