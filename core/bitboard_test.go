package core

import "testing"

func TestShiftsMaskWraparound(t *testing.T) {
	a1 := BBSquare(MakeSquare(0, 0))
	if got := a1.ShiftW(); got != BBEmpty {
		t.Fatalf("a1.ShiftW() = %v, want empty (wraps off the board)", got)
	}
	h1 := BBSquare(MakeSquare(7, 0))
	if got := h1.ShiftE(); got != BBEmpty {
		t.Fatalf("h1.ShiftE() = %v, want empty", got)
	}
	if got := h1.ShiftNE(); got != BBEmpty {
		t.Fatalf("h1.ShiftNE() = %v, want empty", got)
	}
}

func TestPopLSB(t *testing.T) {
	bb := BBSquare(3) | BBSquare(10) | BBSquare(40)
	var got []Square
	for bb != BBEmpty {
		var sq Square
		sq, bb = bb.PopLSB()
		got = append(got, sq)
	}
	want := []Square{3, 10, 40}
	if len(got) != len(want) {
		t.Fatalf("PopLSB sequence length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PopLSB()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPopLSBOnEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("PopLSB on empty bitboard did not panic")
		}
	}()
	BBEmpty.PopLSB()
}
