package core

// Move lists are ordinary slices of moves; the generators append into a
// caller-supplied slice and return the extended slice. Perft and
// GenerateLegal still allocate a fresh slice at every node.

// GeneratePseudoLegal appends every pseudo-legal move for the side to move
// into dst and returns the extended slice. Pseudo-legal here means the move
// obeys piece movement rules but may leave the mover's own king in check;
// callers wanting only legal moves should use GenerateLegal.
func GeneratePseudoLegal(p *Position, dst []Move) []Move {
	us := p.SideToMove()
	them := us.Other()
	friendly := p.UnitsColour(us)
	occ := p.Occupied()
	notFriendly := friendly.Complement()

	dst = genKnightMoves(p, us, notFriendly, dst)
	dst = genKingMoves(p, us, notFriendly, dst)
	dst = genBishopMoves(p, us, occ, notFriendly, dst)
	dst = genRookMoves(p, us, occ, notFriendly, dst)
	dst = genQueenMoves(p, us, occ, notFriendly, dst)
	dst = genPawnMoves(p, us, occ, dst)
	dst = genEnPassantMoves(p, us, dst)
	dst = genCastlingMoves(p, us, them, occ, dst)
	return dst
}

// GenerateLegal returns every legal move for the side to move, filtering
// the pseudo-legal list by playing each candidate, testing whether the
// mover's own king is left in check, and retracting — the simplest correct
// legality filter, not an optimized pin/king-danger precomputation.
func GenerateLegal(p *Position, dst []Move) []Move {
	pseudo := GeneratePseudoLegal(p, make([]Move, 0, 64))
	us := p.SideToMove()
	for _, m := range pseudo {
		p.MakeMove(m)
		safe := !IsInCheck(p, us)
		p.UnmakeMove(m)
		if safe {
			dst = append(dst, m)
		}
	}
	return dst
}

func emitTargets(dst []Move, from Square, targets Bitboard) []Move {
	for targets != BBEmpty {
		var to Square
		to, targets = targets.PopLSB()
		dst = append(dst, NewMove(from, to))
	}
	return dst
}

func genKnightMoves(p *Position, us Colour, notFriendly Bitboard, dst []Move) []Move {
	pieces := p.Units(us, Knight)
	for pieces != BBEmpty {
		var from Square
		from, pieces = pieces.PopLSB()
		dst = emitTargets(dst, from, KnightAttacks(from)&notFriendly)
	}
	return dst
}

func genKingMoves(p *Position, us Colour, notFriendly Bitboard, dst []Move) []Move {
	pieces := p.Units(us, King)
	for pieces != BBEmpty {
		var from Square
		from, pieces = pieces.PopLSB()
		dst = emitTargets(dst, from, KingAttacks(from)&notFriendly)
	}
	return dst
}

func genBishopMoves(p *Position, us Colour, occ, notFriendly Bitboard, dst []Move) []Move {
	pieces := p.Units(us, Bishop)
	for pieces != BBEmpty {
		var from Square
		from, pieces = pieces.PopLSB()
		dst = emitTargets(dst, from, BishopAttacks(from, occ)&notFriendly)
	}
	return dst
}

func genRookMoves(p *Position, us Colour, occ, notFriendly Bitboard, dst []Move) []Move {
	pieces := p.Units(us, Rook)
	for pieces != BBEmpty {
		var from Square
		from, pieces = pieces.PopLSB()
		dst = emitTargets(dst, from, RookAttacks(from, occ)&notFriendly)
	}
	return dst
}

func genQueenMoves(p *Position, us Colour, occ, notFriendly Bitboard, dst []Move) []Move {
	pieces := p.Units(us, Queen)
	for pieces != BBEmpty {
		var from Square
		from, pieces = pieces.PopLSB()
		dst = emitTargets(dst, from, QueenAttacks(from, occ)&notFriendly)
	}
	return dst
}

var promoTypes = [4]PieceType{Knight, Bishop, Rook, Queen}

func emitPawnTargets(dst []Move, from, to Square, promoteRank Bitboard) []Move {
	if promoteRank.Has(to) {
		for _, pt := range promoTypes {
			dst = append(dst, NewPromotion(from, to, pt))
		}
		return dst
	}
	return append(dst, NewMove(from, to))
}

func genPawnMoves(p *Position, us Colour, occ Bitboard, dst []Move) []Move {
	them := us.Other()
	enemy := p.UnitsColour(them)
	promoteRank := ourRank8[us]
	pawns := p.Units(us, Pawn)
	empty := occ.Complement()

	for pieces := pawns; pieces != BBEmpty; {
		var from Square
		from, pieces = pieces.PopLSB()

		captures := PawnAttacks(us, from) & enemy
		for captures != BBEmpty {
			var to Square
			to, captures = captures.PopLSB()
			dst = emitPawnTargets(dst, from, to, promoteRank)
		}

		single := BBSquare(from)
		var push Bitboard
		if us == White {
			push = single.ShiftN()
		} else {
			push = single.ShiftS()
		}
		push &= empty
		if push != BBEmpty {
			to := push.LSB()
			dst = emitPawnTargets(dst, from, to, promoteRank)

			if ourRank2[us].Has(from) {
				var dbl Bitboard
				if us == White {
					dbl = push.ShiftN()
				} else {
					dbl = push.ShiftS()
				}
				dbl &= empty
				if dbl != BBEmpty {
					dst = append(dst, NewMove(from, dbl.LSB()))
				}
			}
		}
	}
	return dst
}

func genEnPassantMoves(p *Position, us Colour, dst []Move) []Move {
	ep := p.EnPassantSquare()
	if ep == NoSquare {
		return dst
	}
	target := BBSquare(ep)
	var origins Bitboard
	if us == White {
		origins = target.ShiftSW() | target.ShiftSE()
	} else {
		origins = target.ShiftNW() | target.ShiftNE()
	}
	origins &= p.Units(us, Pawn)
	for origins != BBEmpty {
		var from Square
		from, origins = origins.PopLSB()
		dst = append(dst, NewEnPassant(from, ep))
	}
	return dst
}

func genCastlingMoves(p *Position, us, them Colour, occ Bitboard, dst []Move) []Move {
	var candidates [2]CastlingRights
	if us == White {
		candidates = [2]CastlingRights{WhiteShort, WhiteLong}
	} else {
		candidates = [2]CastlingRights{BlackShort, BlackLong}
	}
	for _, cr := range candidates {
		if !p.CastlingRights().Has(cr) {
			continue
		}
		kingFrom := p.OrigKingSquare(cr)
		rookFrom := p.OrigRookSquare(cr)
		involved := BBSquare(kingFrom) | BBSquare(rookFrom)
		others := occ.SymDiff(occ & involved)
		if (p.RookPath(cr)|p.KingPath(cr))&others != BBEmpty {
			continue
		}
		if anySquareAttacked(p, p.KingPath(cr), them) {
			continue
		}
		dst = append(dst, NewCastling(kingFrom, rookFrom))
	}
	return dst
}

func anySquareAttacked(p *Position, squares Bitboard, by Colour) bool {
	for squares != BBEmpty {
		var sq Square
		sq, squares = squares.PopLSB()
		if IsAttacked(p, sq, by) {
			return true
		}
	}
	return false
}

// AttacksTo returns the set of squares occupied by colour's pieces that
// attack sq, using the standard symmetry trick: attack patterns are cast
// from sq using each piece type's own table/query and intersected with
// colour's pieces of the matching type. Pawns use the opposite-colour pawn
// table, since a pawn of colour attacks sq iff a pawn of !colour placed on
// sq would attack that pawn's square.
func AttacksTo(p *Position, sq Square, colour Colour) Bitboard {
	occ := p.Occupied()
	attackers := KingAttacks(sq) & p.Units(colour, King)
	attackers |= KnightAttacks(sq) & p.Units(colour, Knight)
	attackers |= BishopAttacks(sq, occ) & (p.Units(colour, Bishop) | p.Units(colour, Queen))
	attackers |= RookAttacks(sq, occ) & (p.Units(colour, Rook) | p.Units(colour, Queen))
	attackers |= PawnAttacks(colour.Other(), sq) & p.Units(colour, Pawn)
	return attackers
}

// IsAttacked reports whether any of colour's pieces attack sq.
func IsAttacked(p *Position, sq Square, colour Colour) bool {
	return AttacksTo(p, sq, colour) != BBEmpty
}

// IsInCheck reports whether colour's king is currently attacked. Assumes
// exactly one king per colour, per the position invariant.
func IsInCheck(p *Position, colour Colour) bool {
	kingSq := p.Units(colour, King).LSB()
	return IsAttacked(p, kingSq, colour.Other())
}

// Perft counts the leaf nodes of the legal-move tree rooted at p, to the
// given depth, by recursing all the way to depth zero rather than taking a
// bulk-counting shortcut at depth one — this keeps a legality-filter bug
// that only manifests one ply deeper from being silently masked.
func Perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := GenerateLegal(p, make([]Move, 0, 64))
	var nodes uint64
	for _, m := range moves {
		p.MakeMove(m)
		nodes += Perft(p, depth-1)
		p.UnmakeMove(m)
	}
	return nodes
}

// PerftDivide runs Perft one ply below the root and returns, for each root
// move, the subtree leaf count — useful for isolating which root move a
// perft mismatch comes from.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	moves := GenerateLegal(p, make([]Move, 0, 64))
	for _, m := range moves {
		p.MakeMove(m)
		result[m] = Perft(p, depth-1)
		p.UnmakeMove(m)
	}
	return result
}
