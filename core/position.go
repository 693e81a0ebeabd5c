package core

import "fmt"

// stateInfo is the irreversible-state snapshot pushed before every make and
// popped by the matching unmake.
type stateInfo struct {
	captured   Piece // NoPiece if none or if the move was en passant
	castling   CastlingRights
	epSquare   Square
	fiftyMove  int
}

// Position is the mutable board state: two representations of piece
// placement kept in lockstep (bitboards and mailbox), the side to move,
// castling rights, en-passant target, move counters, and an undo stack.
type Position struct {
	byColour [2]Bitboard
	byType   [6]Bitboard
	mailbox  [64]Piece

	sideToMove Colour
	castling   CastlingRights
	epSquare   Square
	fiftyMove  int
	halfmove   int

	undo []stateInfo

	// origKingSq/origRookSq record, per basic castling right, the square the
	// king/rook started the game on. These are read-only after setup and
	// exist so castling generalizes to non-standard starting squares (960)
	// without touching the make/unmake code path.
	origKingSq [4]Square
	origRookSq [4]Square
	rookPath   [4]Bitboard // inclusive of both endpoints
	kingPath   [4]Bitboard // inclusive of both endpoints
}

// NewEmptyPosition returns a Position with no pieces placed and standard
// castling geometry (e1/h1/a1/e8/h8/a8), ready for setup via AddPiece and
// the field setters. White to move, no castling rights, no en-passant
// square, counters zero.
func NewEmptyPosition() *Position {
	p := &Position{
		sideToMove: White,
		epSquare:   NoSquare,
	}
	for i := range p.mailbox {
		p.mailbox[i] = NoPiece
	}
	p.SetCastlingGeometry(
		MakeSquare(4, 0), MakeSquare(4, 7), // king start: e1, e8
		[4]Square{MakeSquare(7, 0), MakeSquare(0, 0), MakeSquare(7, 7), MakeSquare(0, 7)}, // rook start: h1,a1,h8,a8
	)
	return p
}

// SetCastlingGeometry records the original king/rook squares (per basic
// right, in WhiteShort/WhiteLong/BlackShort/BlackLong order for the rook
// squares) and derives the inclusive path masks used by castling
// legality checks. It is a setup-time call, not used during play.
func (p *Position) SetCastlingGeometry(whiteKing, blackKing Square, rookSquares [4]Square) {
	kingSq := [4]Square{whiteKing, whiteKing, blackKing, blackKing}
	for i := 0; i < 4; i++ {
		p.origKingSq[i] = kingSq[i]
		p.origRookSq[i] = rookSquares[i]
	}
	kingDest := [4]Square{MakeSquare(6, 0), MakeSquare(2, 0), MakeSquare(6, 7), MakeSquare(2, 7)}
	rookDest := [4]Square{MakeSquare(5, 0), MakeSquare(3, 0), MakeSquare(5, 7), MakeSquare(3, 7)}
	for i := 0; i < 4; i++ {
		p.kingPath[i] = inclusivePath(kingSq[i], kingDest[i])
		p.rookPath[i] = inclusivePath(rookSquares[i], rookDest[i])
	}
}

func inclusivePath(a, b Square) Bitboard {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	var bb Bitboard
	for s := lo; s <= hi; s++ {
		bb = bb.With(s)
	}
	return bb
}

// AddPiece places pc on sq during setup. It does not clear whatever was
// previously on sq; callers (FEN parsing) are expected to build up an empty
// position square by square.
func (p *Position) AddPiece(pc Piece, sq Square) {
	p.byColour[pc.Colour()] = p.byColour[pc.Colour()].With(sq)
	p.byType[pc.Type()] = p.byType[pc.Type()].With(sq)
	p.mailbox[sq] = pc
}

// SetSideToMove, SetCastlingRights, SetEnPassantSquare, SetFiftyMoveCounter
// and SetHalfmoveCounter are the remaining setup-time field setters FEN
// parsing drives.
func (p *Position) SetSideToMove(c Colour)              { p.sideToMove = c }
func (p *Position) SetCastlingRights(cr CastlingRights) { p.castling = cr }
func (p *Position) SetEnPassantSquare(sq Square)        { p.epSquare = sq }
func (p *Position) SetFiftyMoveCounter(n int)           { p.fiftyMove = n }
func (p *Position) SetHalfmoveCounter(n int)            { p.halfmove = n }

// Getters.

func (p *Position) Units(c Colour, pt PieceType) Bitboard {
	return p.byColour[c] & p.byType[pt]
}
func (p *Position) UnitsColour(c Colour) Bitboard   { return p.byColour[c] }
func (p *Position) UnitsType(pt PieceType) Bitboard { return p.byType[pt] }
func (p *Position) Occupied() Bitboard              { return p.byColour[White] | p.byColour[Black] }
func (p *Position) PieceAt(sq Square) Piece         { return p.mailbox[sq] }
func (p *Position) SideToMove() Colour              { return p.sideToMove }
func (p *Position) CastlingRights() CastlingRights  { return p.castling }
func (p *Position) EnPassantSquare() Square         { return p.epSquare }
func (p *Position) FiftyMoveCounter() int           { return p.fiftyMove }
func (p *Position) HalfmoveCounter() int            { return p.halfmove }
func (p *Position) FullmoveNumber() int {
	if p.sideToMove == White {
		return p.halfmove/2 + 1
	}
	return (p.halfmove + 1) / 2
}

func (p *Position) OrigKingSquare(cr CastlingRights) Square { return p.origKingSq[castleIndex(cr)] }
func (p *Position) OrigRookSquare(cr CastlingRights) Square { return p.origRookSq[castleIndex(cr)] }
func (p *Position) KingPath(cr CastlingRights) Bitboard     { return p.kingPath[castleIndex(cr)] }
func (p *Position) RookPath(cr CastlingRights) Bitboard     { return p.rookPath[castleIndex(cr)] }

// UndoDepth returns the number of makes not yet unmade.
func (p *Position) UndoDepth() int { return len(p.undo) }

// Equal implements the equality rule of the position contract: mailbox,
// colour bitboards, piece-type bitboards, side to move, castling rights and
// en-passant square must all match. Fifty-move and halfmove counters are
// deliberately excluded, so that make/unmake round trips and repeated
// positions reached via different move orders compare equal.
func (p *Position) Equal(o *Position) bool {
	if p.sideToMove != o.sideToMove || p.castling != o.castling || p.epSquare != o.epSquare {
		return false
	}
	if p.byColour != o.byColour || p.byType != o.byType {
		return false
	}
	return p.mailbox == o.mailbox
}

func (p *Position) addToBB(pc Piece, sq Square) {
	p.byColour[pc.Colour()] = p.byColour[pc.Colour()].With(sq)
	p.byType[pc.Type()] = p.byType[pc.Type()].With(sq)
}

func (p *Position) removeFromBB(pc Piece, sq Square) {
	p.byColour[pc.Colour()] = p.byColour[pc.Colour()].Without(sq)
	p.byType[pc.Type()] = p.byType[pc.Type()].Without(sq)
}

// MakeMove applies m to the position. The caller is responsible for
// ensuring m is at least pseudo-legal for the current position (this is the
// generator's job); MakeMove does not itself validate the move and always
// "succeeds" for a syntactically coherent move.
func (p *Position) MakeMove(m Move) {
	if m.IsCastling() {
		p.makeCastling(m)
		return
	}

	from, to := m.From(), m.To()
	mover := p.mailbox[from]
	colour := mover.Colour()

	p.removeFromBB(mover, from)
	p.mailbox[from] = NoPiece

	captured := NoPiece
	if m.IsEnPassant() {
		var capSq Square
		if colour == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
		capPiece := p.mailbox[capSq]
		p.removeFromBB(capPiece, capSq)
		p.mailbox[capSq] = NoPiece
	} else if p.mailbox[to] != NoPiece {
		captured = p.mailbox[to]
		p.removeFromBB(captured, to)
	}

	destType := mover.Type()
	if m.IsPromotion() {
		destType = m.PromotionType()
	}
	destPiece := MakePiece(colour, destType)
	p.addToBB(destPiece, to)
	p.mailbox[to] = destPiece

	p.undo = append(p.undo, stateInfo{
		captured:  captured,
		castling:  p.castling,
		epSquare:  p.epSquare,
		fiftyMove: p.fiftyMove,
	})

	p.epSquare = NoSquare
	if mover.Type() == Pawn {
		fromRank2 := ourRank2[colour].Has(from)
		toRank4 := ourRank4[colour].Has(to)
		if fromRank2 && toRank4 {
			p.epSquare = Square((int(from) + int(to)) / 2)
		}
	}

	p.updateCastlingRightsAfterMove(mover, from, captured, to)

	p.sideToMove = colour.Other()
	p.halfmove++
	if mover.Type() == Pawn || captured != NoPiece {
		p.fiftyMove = 0
	} else {
		p.fiftyMove++
	}
}

// updateCastlingRightsAfterMove clears rights lost because the king or a
// rook left its original square, or because a rook was captured on its
// original square (a pragmatic convention many engines share, not a literal
// reading of the FIDE laws).
func (p *Position) updateCastlingRightsAfterMove(mover Piece, from Square, captured Piece, to Square) {
	colour := mover.Colour()
	if mover.Type() == King {
		if from == p.origKingSq[castleIndex(rookRightFor(colour, true))] {
			p.castling &^= rightsForColour(colour)
		}
	}
	for _, cr := range castleList {
		if colourOfCastling(cr) == colour && mover.Type() == Rook && from == p.origRookSq[castleIndex(cr)] {
			p.castling &^= cr
		}
	}
	if captured.Type() == Rook {
		for _, cr := range castleList {
			if colourOfCastling(cr) == captured.Colour() && to == p.origRookSq[castleIndex(cr)] {
				p.castling &^= cr
			}
		}
	}
}

// rookRightFor is a small helper so updateCastlingRightsAfterMove can reuse
// castleIndex to look up a colour's king-origin square regardless of which
// of that colour's two rights it's called with; the two entries for a
// colour are always equal.
func rookRightFor(c Colour, short bool) CastlingRights {
	if c == White {
		if short {
			return WhiteShort
		}
		return WhiteLong
	}
	if short {
		return BlackShort
	}
	return BlackLong
}

// makeCastling applies a castling move. from is the king's original square;
// to encodes the rook's original square (see Move's doc comment).
func (p *Position) makeCastling(m Move) {
	kingFrom, rookFrom := m.From(), m.To()
	colour := p.mailbox[kingFrom].Colour()

	var cr CastlingRights
	if rookFrom.File() > kingFrom.File() {
		cr = rookRightFor(colour, true)
	} else {
		cr = rookRightFor(colour, false)
	}
	kingTo := MakeSquare(6, kingFrom.Rank())
	rookTo := MakeSquare(5, kingFrom.Rank())
	if cr == WhiteLong || cr == BlackLong {
		kingTo = MakeSquare(2, kingFrom.Rank())
		rookTo = MakeSquare(3, kingFrom.Rank())
	}

	colourBB := p.byColour[colour]
	colourBB = colourBB.SymDiff(BBSquare(kingFrom)).SymDiff(BBSquare(rookFrom)).
		SymDiff(BBSquare(kingTo)).SymDiff(BBSquare(rookTo))
	p.byColour[colour] = colourBB
	p.byType[King] = p.byType[King].SymDiff(BBSquare(kingFrom)).SymDiff(BBSquare(kingTo))
	p.byType[Rook] = p.byType[Rook].SymDiff(BBSquare(rookFrom)).SymDiff(BBSquare(rookTo))

	p.mailbox[kingFrom] = NoPiece
	p.mailbox[rookFrom] = NoPiece
	p.mailbox[kingTo] = MakePiece(colour, King)
	p.mailbox[rookTo] = MakePiece(colour, Rook)

	p.undo = append(p.undo, stateInfo{
		captured:  NoPiece,
		castling:  p.castling,
		epSquare:  p.epSquare,
		fiftyMove: p.fiftyMove,
	})

	p.epSquare = NoSquare
	p.castling &^= rightsForColour(colour)
	p.sideToMove = colour.Other()
	p.halfmove++
	p.fiftyMove++
}

// UnmakeMove reverses the most recent MakeMove call. Calling it with an
// empty undo stack is a programmer error.
func (p *Position) UnmakeMove(m Move) {
	if len(p.undo) == 0 {
		panic("core: UnmakeMove on empty undo stack")
	}
	st := p.undo[len(p.undo)-1]
	p.undo = p.undo[:len(p.undo)-1]

	p.sideToMove = p.sideToMove.Other()
	colour := p.sideToMove
	p.castling = st.castling
	p.epSquare = st.epSquare
	p.fiftyMove = st.fiftyMove
	p.halfmove--

	if m.IsCastling() {
		p.unmakeCastling(m, colour)
		return
	}

	from, to := m.From(), m.To()
	moverType := p.mailbox[to].Type()
	var restoredPiece Piece
	if m.IsPromotion() {
		restoredPiece = MakePiece(colour, Pawn)
		p.removeFromBB(MakePiece(colour, moverType), to)
	} else {
		restoredPiece = p.mailbox[to]
		p.removeFromBB(restoredPiece, to)
	}
	p.addToBB(restoredPiece, from)
	p.mailbox[from] = restoredPiece
	p.mailbox[to] = NoPiece

	if st.captured != NoPiece {
		p.addToBB(st.captured, to)
		p.mailbox[to] = st.captured
	}

	if m.IsEnPassant() {
		var capSq Square
		if colour == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
		capPiece := MakePiece(colour.Other(), Pawn)
		p.addToBB(capPiece, capSq)
		p.mailbox[capSq] = capPiece
	}
}

func (p *Position) unmakeCastling(m Move, colour Colour) {
	kingFrom, rookFrom := m.From(), m.To()
	var cr CastlingRights
	if rookFrom.File() > kingFrom.File() {
		cr = rookRightFor(colour, true)
	} else {
		cr = rookRightFor(colour, false)
	}
	kingTo := MakeSquare(6, kingFrom.Rank())
	rookTo := MakeSquare(5, kingFrom.Rank())
	if cr == WhiteLong || cr == BlackLong {
		kingTo = MakeSquare(2, kingFrom.Rank())
		rookTo = MakeSquare(3, kingFrom.Rank())
	}

	colourBB := p.byColour[colour]
	colourBB = colourBB.SymDiff(BBSquare(kingFrom)).SymDiff(BBSquare(rookFrom)).
		SymDiff(BBSquare(kingTo)).SymDiff(BBSquare(rookTo))
	p.byColour[colour] = colourBB
	p.byType[King] = p.byType[King].SymDiff(BBSquare(kingFrom)).SymDiff(BBSquare(kingTo))
	p.byType[Rook] = p.byType[Rook].SymDiff(BBSquare(rookFrom)).SymDiff(BBSquare(rookTo))

	p.mailbox[kingTo] = NoPiece
	p.mailbox[rookTo] = NoPiece
	p.mailbox[kingFrom] = MakePiece(colour, King)
	p.mailbox[rookFrom] = MakePiece(colour, Rook)
}

// Pretty renders the board as an 8x8 ASCII grid (rank 8 first) followed by a
// one-line footer of side to move, castling rights, en-passant square and
// counters. It has no bearing on any core invariant; it exists purely for
// debugging, the way the reference implementation's own pretty-printer does.
func (p *Position) Pretty() string {
	out := make([]byte, 0, 200)
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			pc := p.mailbox[MakeSquare(file, rank)]
			out = append(out, pc.String()[0], ' ')
		}
		out = append(out, '\n')
	}
	footer := fmt.Sprintf("%s %s %s %d %d", p.sideToMove, p.castling, p.epSquare, p.fiftyMove, p.halfmove)
	out = append(out, footer...)
	return string(out)
}
