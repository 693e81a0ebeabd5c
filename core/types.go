// Package core implements the bitboard/mailbox chess position representation,
// its move generator, and make/unmake mutation. It has no knowledge of FEN,
// EPD, or any I/O; those live in sibling packages that drive this one through
// its exported constructors and setters.
package core

import "fmt"

// Colour identifies a side to move or a set of pieces. White and Black are
// the only meaningful colours during play; NoColour marks the absence of one
// (an empty square has no colour).
type Colour uint8

const (
	White Colour = iota
	Black
	NoColour
)

// Other returns the opposing colour. Calling it on NoColour is a programmer
// error and returns NoColour unchanged.
func (c Colour) Other() Colour {
	if c == White {
		return Black
	}
	if c == Black {
		return White
	}
	return NoColour
}

func (c Colour) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		return "-"
	}
}

// PieceType is ordered by ascending material value, mirroring the promotion
// bit encoding used by Move (Knight=0 .. Queen=3 once Pawn is excluded).
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

var pieceTypeLetters = [...]byte{'P', 'N', 'B', 'R', 'Q', 'K'}

func (pt PieceType) String() string {
	if pt > King {
		return "-"
	}
	return string(pieceTypeLetters[pt])
}

const NumPieceTypes = 6

// Piece packs a Colour and PieceType into a single small integer: colour*6 +
// type. NoPiece is the sentinel for an empty square.
type Piece uint8

const NoPiece Piece = Piece(NumPieceTypes) * Piece(NoColour)

// MakePiece builds a Piece from its colour and type.
func MakePiece(c Colour, pt PieceType) Piece {
	return Piece(c)*NumPieceTypes + Piece(pt)
}

// Colour extracts the piece's colour. Calling this on NoPiece returns
// NoColour.
func (p Piece) Colour() Colour {
	if p == NoPiece {
		return NoColour
	}
	return Colour(p / NumPieceTypes)
}

// Type extracts the piece's type. Calling this on NoPiece returns
// NoPieceType.
func (p Piece) Type() PieceType {
	if p == NoPiece {
		return NoPieceType
	}
	return PieceType(p % NumPieceTypes)
}

func (p Piece) String() string {
	if p == NoPiece {
		return "."
	}
	s := p.Type().String()
	if p.Colour() == Black {
		return string(s[0] + 32) // lowercase
	}
	return s
}

// Square is a board index 0..63 with 0 = a1, files increasing west to east,
// ranks increasing south to north. NoSquare marks the absence of one (e.g.
// no en-passant target).
type Square int8

const NoSquare Square = -1

// MakeSquare builds a Square from 0-based file and rank indices.
func MakeSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

func (s Square) File() int { return int(s) % 8 }
func (s Square) Rank() int { return int(s) / 8 }

func (s Square) String() string {
	if s == NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+byte(s.File()), '1'+byte(s.Rank()))
}

// CastlingRights is a 4-bit flag set; each bit names one side's ability to
// castle to one flank, independent of momentary path/attack legality.
type CastlingRights uint8

const (
	WhiteShort CastlingRights = 1 << iota
	WhiteLong
	BlackShort
	BlackLong

	NoCastling  CastlingRights = 0
	AllCastling CastlingRights = WhiteShort | WhiteLong | BlackShort | BlackLong
)

// castleIndex orders the four basic rights for table indexing, matching the
// order the original engine's CASTLE_LIST enumerates them in.
var castleList = [4]CastlingRights{WhiteShort, WhiteLong, BlackShort, BlackLong}

func castleIndex(cr CastlingRights) int {
	switch cr {
	case WhiteShort:
		return 0
	case WhiteLong:
		return 1
	case BlackShort:
		return 2
	case BlackLong:
		return 3
	default:
		panic(fmt.Sprintf("core: castleIndex of non-basic right %v", cr))
	}
}

// Has reports whether all bits of other are set in cr.
func (cr CastlingRights) Has(other CastlingRights) bool {
	return cr&other == other
}

func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	out := ""
	if cr.Has(WhiteShort) {
		out += "K"
	}
	if cr.Has(WhiteLong) {
		out += "Q"
	}
	if cr.Has(BlackShort) {
		out += "k"
	}
	if cr.Has(BlackLong) {
		out += "q"
	}
	return out
}

// colourOfCastling returns which colour a basic castling right belongs to.
func colourOfCastling(cr CastlingRights) Colour {
	if cr == WhiteShort || cr == WhiteLong {
		return White
	}
	return Black
}

// rightsForColour returns both basic rights belonging to a colour, as a mask.
func rightsForColour(c Colour) CastlingRights {
	if c == White {
		return WhiteShort | WhiteLong
	}
	return BlackShort | BlackLong
}
