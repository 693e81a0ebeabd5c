package core

// MoveSpecial distinguishes the four move shapes the 16-bit encoding can
// carry.
type MoveSpecial uint16

const (
	SpecialNormal MoveSpecial = iota
	SpecialPromotion
	SpecialCastling
	SpecialEnPassant
)

// Move is a 16-bit encoded move: bits 0-5 from-square, bits 6-11 to-square,
// bits 12-13 special kind, bits 14-15 promotion piece type (Knight=0 ..
// Queen=3, only meaningful when special is Promotion).
//
// For castling, to encodes the rook's original square rather than the
// king's destination, so the same encoding generalizes to Chess960 without
// change. For en passant, to is the square the pawn moves to, not the
// captured pawn's square.
type Move uint16

const (
	moveFromShift  = 0
	moveToShift    = 6
	moveSpecShift  = 12
	movePromoShift = 14

	moveFromMask  = 0x3F
	moveToMask    = 0x3F
	moveSpecMask  = 0x3
	movePromoMask = 0x3
)

// NewMove builds a plain (non-special) move.
func NewMove(from, to Square) Move {
	return Move(from)<<moveFromShift | Move(to)<<moveToShift
}

// NewPromotion builds a promotion move; promo must be one of Knight, Bishop,
// Rook, Queen.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move(from)<<moveFromShift | Move(to)<<moveToShift |
		Move(SpecialPromotion)<<moveSpecShift | Move(promo-Knight)<<movePromoShift
}

// NewCastling builds a castling move; to is the rook's original square.
func NewCastling(kingFrom, rookFrom Square) Move {
	return Move(kingFrom)<<moveFromShift | Move(rookFrom)<<moveToShift |
		Move(SpecialCastling)<<moveSpecShift
}

// NewEnPassant builds an en-passant capture; to is the pawn's destination
// square.
func NewEnPassant(from, to Square) Move {
	return Move(from)<<moveFromShift | Move(to)<<moveToShift |
		Move(SpecialEnPassant)<<moveSpecShift
}

func (m Move) From() Square { return Square((m >> moveFromShift) & moveFromMask) }
func (m Move) To() Square   { return Square((m >> moveToShift) & moveToMask) }

func (m Move) Special() MoveSpecial { return MoveSpecial((m >> moveSpecShift) & moveSpecMask) }

func (m Move) IsPromotion() bool  { return m.Special() == SpecialPromotion }
func (m Move) IsCastling() bool   { return m.Special() == SpecialCastling }
func (m Move) IsEnPassant() bool  { return m.Special() == SpecialEnPassant }

// PromotionType returns the promotion piece type; only meaningful when
// IsPromotion is true.
func (m Move) PromotionType() PieceType {
	return PieceType((m>>movePromoShift)&movePromoMask) + Knight
}

var promoLetters = [...]byte{'n', 'b', 'r', 'q'}

// String renders the move in UCI-ish long algebraic form. Castling is
// rendered as king-origin to king-destination (not the encoded rook square)
// since that is the conventional wire form external tools expect.
func (m Move) String() string {
	from, to := m.From(), m.To()
	if m.IsCastling() {
		to = castleKingDestination(from, to)
	}
	s := from.String() + to.String()
	if m.IsPromotion() {
		s += string(promoLetters[m.PromotionType()-Knight])
	}
	return s
}

// castleKingDestination maps (king-origin, rook-origin) to the king's actual
// destination square, for display purposes only.
func castleKingDestination(kingFrom, rookFrom Square) Square {
	rank := kingFrom.Rank()
	if rookFrom.File() > kingFrom.File() {
		return MakeSquare(6, rank) // g-file, short castle
	}
	return MakeSquare(2, rank) // c-file, long castle
}
