package xvalidate

import "testing"

func TestCompareStartingPosition(t *testing.T) {
	if err := Compare("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 3); err != nil {
		t.Fatal(err)
	}
}

func TestCompareKiwipete(t *testing.T) {
	kiwipete := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	if err := Compare(kiwipete, 2); err != nil {
		t.Fatal(err)
	}
}

func TestCompareDetectsIdenticalCounts(t *testing.T) {
	// A position with no legal en-passant or castling complications, just to
	// exercise the shallow-depth path independently of the richer fixtures
	// above.
	if err := Compare("8/8/8/8/8/8/8/4K2k w - - 0 1", 3); err != nil {
		t.Fatal(err)
	}
}
