// Package fen adapts between FEN strings and core.Position. It is a thin
// boundary layer: it only ever drives the position through its exported
// setters (AddPiece, SetSideToMove, ...), never touching core internals.
package fen

import (
	"errors"
	"strconv"
	"strings"

	"chessmg/core"
)

// StartPos is the FEN for the standard initial position.
const StartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var pieceLetters = map[rune]core.Piece{
	'P': core.MakePiece(core.White, core.Pawn),
	'N': core.MakePiece(core.White, core.Knight),
	'B': core.MakePiece(core.White, core.Bishop),
	'R': core.MakePiece(core.White, core.Rook),
	'Q': core.MakePiece(core.White, core.Queen),
	'K': core.MakePiece(core.White, core.King),
	'p': core.MakePiece(core.Black, core.Pawn),
	'n': core.MakePiece(core.Black, core.Knight),
	'b': core.MakePiece(core.Black, core.Bishop),
	'r': core.MakePiece(core.Black, core.Rook),
	'q': core.MakePiece(core.Black, core.Queen),
	'k': core.MakePiece(core.Black, core.King),
}

var letterOf = func() map[core.Piece]byte {
	m := make(map[core.Piece]byte, 12)
	for ch, pc := range pieceLetters {
		m[pc] = byte(ch)
	}
	return m
}()

// Parse reads a FEN string and returns a fully populated Position.
func Parse(s string) (*core.Position, error) {
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return nil, errors.New("fen: not enough fields")
	}

	p := core.NewEmptyPosition()

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, errors.New("fen: incorrect number of ranks")
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pc, ok := pieceLetters[ch]
			if !ok {
				return nil, errors.New("fen: unrecognized piece character")
			}
			if file >= 8 {
				return nil, errors.New("fen: too many squares in rank")
			}
			p.AddPiece(pc, core.MakeSquare(file, rank))
			file++
		}
		if file != 8 {
			return nil, errors.New("fen: rank does not have 8 columns")
		}
	}

	switch fields[1] {
	case "w":
		p.SetSideToMove(core.White)
	case "b":
		p.SetSideToMove(core.Black)
	default:
		return nil, errors.New("fen: side to move must be 'w' or 'b'")
	}

	var cr core.CastlingRights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				cr |= core.WhiteShort
			case 'Q':
				cr |= core.WhiteLong
			case 'k':
				cr |= core.BlackShort
			case 'q':
				cr |= core.BlackLong
			default:
				return nil, errors.New("fen: invalid castling rights character")
			}
		}
	}
	p.SetCastlingRights(cr)

	if fields[3] != "-" {
		sq, err := parseSquare(fields[3])
		if err != nil {
			return nil, err
		}
		p.SetEnPassantSquare(sq)
	} else {
		p.SetEnPassantSquare(core.NoSquare)
	}

	fifty := 0
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, errors.New("fen: halfmove clock is not a number")
		}
		fifty = n
	}
	p.SetFiftyMoveCounter(fifty)

	fullmove := 1
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, errors.New("fen: fullmove number is not a number")
		}
		fullmove = n
	}
	// halfmove = 2*(fullmove-1) if White to move, else 2*fullmove-1 (§3
	// invariant 5); this is the same derivation the reference
	// implementation's fromFen uses.
	halfmove := 2*fullmove - 2
	if p.SideToMove() == core.Black {
		halfmove = 2*fullmove - 1
	}
	p.SetHalfmoveCounter(halfmove)

	return p, nil
}

func parseSquare(s string) (core.Square, error) {
	if len(s) != 2 {
		return core.NoSquare, errors.New("fen: invalid square")
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return core.NoSquare, errors.New("fen: square out of range")
	}
	return core.MakeSquare(int(file-'a'), int(rank-'1')), nil
}

// Format renders a Position back into a FEN string.
func Format(p *core.Position) string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.PieceAt(core.MakeSquare(file, rank))
			if pc == core.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(letterOf[pc])
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(p.SideToMove().String())
	sb.WriteByte(' ')
	sb.WriteString(p.CastlingRights().String())
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassantSquare().String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FiftyMoveCounter()))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullmoveNumber()))
	return sb.String()
}
