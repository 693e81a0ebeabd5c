// Package xvalidate differentially perft-tests core against
// github.com/dylhunn/dragontoothmg, a second, independently written Go
// movegen library covering the same domain. It exists only to be called
// from tests: if the two engines' leaf counts diverge for the same FEN and
// depth, one of them has a move-generation bug, and it is very unlikely to
// be the same bug in both.
package xvalidate

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"

	"chessmg/core"
	"chessmg/fen"
)

// dragontoothPerft mirrors dragontoothmg's own perft recursion (make,
// recurse, restore) using its public Apply/GenerateLegalMoves surface.
func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}

// Compare parses fenStr with both engines and returns an error describing
// the first depth at which their perft counts disagree, or nil if they
// agree at every depth up to maxDepth.
func Compare(fenStr string, maxDepth int) error {
	ours, err := fen.Parse(fenStr)
	if err != nil {
		return fmt.Errorf("xvalidate: chessmg/fen: %w", err)
	}
	theirs := dragontoothmg.ParseFen(fenStr)

	for depth := 1; depth <= maxDepth; depth++ {
		ourCount := core.Perft(ours, depth)
		theirCount := dragontoothPerft(&theirs, depth)
		if ourCount != theirCount {
			return fmt.Errorf("xvalidate: %s depth %d: chessmg=%d dragontoothmg=%d", fenStr, depth, ourCount, theirCount)
		}
	}
	return nil
}
