// Package epd drives core.Position and fen through the two EPD-like text
// formats the wider chess community uses for correctness testing: perft
// count lines and make/unmake round-trip lines. It is an external
// collaborator in the same sense the reference test driver is — the core
// library has no notion of these formats.
package epd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"

	"chessmg/core"
	"chessmg/fen"
)

// PerftCase is one parsed line of the "FEN;D<depth> <count>;..." format.
type PerftCase struct {
	FEN    string
	Depths []int
	Counts []uint64
}

// ParsePerftCase parses a single perft EPD line.
func ParsePerftCase(line string) (PerftCase, error) {
	parts := strings.Split(line, ";")
	if len(parts) < 2 {
		return PerftCase{}, fmt.Errorf("epd: malformed perft line %q", line)
	}
	pc := PerftCase{FEN: strings.TrimSpace(parts[0])}
	for _, field := range parts[1:] {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		var depth int
		var count uint64
		if _, err := fmt.Sscanf(field, "D%d %d", &depth, &count); err != nil {
			return PerftCase{}, fmt.Errorf("epd: malformed depth field %q: %w", field, err)
		}
		pc.Depths = append(pc.Depths, depth)
		pc.Counts = append(pc.Counts, count)
	}
	return pc, nil
}

// PerftFailure describes one depth mismatch found while running a
// PerftCase.
type PerftFailure struct {
	FEN   string
	Depth int
	Want  uint64
	Got   uint64
}

func (f PerftFailure) String() string {
	return fmt.Sprintf("%s: depth %d: want %d got %d", f.FEN, f.Depth, f.Want, f.Got)
}

// RunPerftCase runs a parsed perft case and returns every depth that
// disagreed with the expected count.
func RunPerftCase(pc PerftCase) ([]PerftFailure, error) {
	pos, err := fen.Parse(pc.FEN)
	if err != nil {
		return nil, fmt.Errorf("epd: %w", err)
	}
	var failures []PerftFailure
	for i, depth := range pc.Depths {
		got := core.Perft(pos, depth)
		if got != pc.Counts[i] {
			failures = append(failures, PerftFailure{FEN: pc.FEN, Depth: depth, Want: pc.Counts[i], Got: got})
		}
	}
	return failures, nil
}

// MoveCase is one parsed line of the "FEN_before;from to special promo;
// FEN_after" make/unmake format.
type MoveCase struct {
	Before  string
	From    core.Square
	To      core.Square
	Special string // "-", "promo", "castle", "ep"
	Promo   string // "-", "N", "B", "R", "Q"
	After   string
}

var promoFromLetter = map[string]core.PieceType{
	"N": core.Knight, "B": core.Bishop, "R": core.Rook, "Q": core.Queen,
}

// ParseMoveCase parses a single make/unmake EPD line.
func ParseMoveCase(line string) (MoveCase, error) {
	parts := strings.Split(line, ";")
	if len(parts) != 3 {
		return MoveCase{}, fmt.Errorf("epd: malformed move line %q", line)
	}
	fields := strings.Fields(parts[1])
	if len(fields) != 4 {
		return MoveCase{}, fmt.Errorf("epd: malformed move field %q", parts[1])
	}
	from, err := squareFromAlgebraic(fields[0])
	if err != nil {
		return MoveCase{}, err
	}
	to, err := squareFromAlgebraic(fields[1])
	if err != nil {
		return MoveCase{}, err
	}
	return MoveCase{
		Before:  strings.TrimSpace(parts[0]),
		From:    from,
		To:      to,
		Special: fields[2],
		Promo:   fields[3],
		After:   strings.TrimSpace(parts[2]),
	}, nil
}

// isMoveField reports whether a line's middle ';'-separated field looks like
// a move-case's "from to special promo" field rather than a perft-case's
// "D<depth> <count>" field, so RunFile can tell the two formats apart even
// though both can produce exactly 3 ';'-separated fields.
func isMoveField(field string) bool {
	return len(field) > 0 && field[0] != 'D'
}

func squareFromAlgebraic(s string) (core.Square, error) {
	if len(s) != 2 {
		return core.NoSquare, fmt.Errorf("epd: invalid square %q", s)
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return core.NoSquare, fmt.Errorf("epd: square out of range %q", s)
	}
	return core.MakeSquare(int(file-'a'), int(rank-'1')), nil
}

func (mc MoveCase) toMove() (core.Move, error) {
	switch mc.Special {
	case "-":
		return core.NewMove(mc.From, mc.To), nil
	case "promo":
		pt, ok := promoFromLetter[mc.Promo]
		if !ok {
			return 0, fmt.Errorf("epd: invalid promotion letter %q", mc.Promo)
		}
		return core.NewPromotion(mc.From, mc.To, pt), nil
	case "castle":
		return core.NewCastling(mc.From, mc.To), nil
	case "ep":
		return core.NewEnPassant(mc.From, mc.To), nil
	default:
		return 0, fmt.Errorf("epd: invalid special field %q", mc.Special)
	}
}

// MoveFailure describes why a MoveCase did not check out.
type MoveFailure struct {
	Case   MoveCase
	Reason string
}

func (f MoveFailure) String() string {
	return fmt.Sprintf("%s: %s", f.Case.Before, f.Reason)
}

// RunMoveCase applies the encoded move to Before and checks the resulting
// position equals After (per core.Position.Equal), then unmakes and checks
// the position is restored to Before.
func RunMoveCase(mc MoveCase) (*MoveFailure, error) {
	before, err := fen.Parse(mc.Before)
	if err != nil {
		return nil, fmt.Errorf("epd: %w", err)
	}
	wantAfter, err := fen.Parse(mc.After)
	if err != nil {
		return nil, fmt.Errorf("epd: %w", err)
	}
	m, err := mc.toMove()
	if err != nil {
		return nil, err
	}

	origDepth := before.UndoDepth()
	before.MakeMove(m)
	if !before.Equal(wantAfter) {
		return &MoveFailure{Case: mc, Reason: fmt.Sprintf("after make, got FEN %s", fen.Format(before))}, nil
	}
	before.UnmakeMove(m)
	if before.UndoDepth() != origDepth {
		return &MoveFailure{Case: mc, Reason: "undo stack depth not restored"}, nil
	}
	beforeAgain, err := fen.Parse(mc.Before)
	if err != nil {
		return nil, fmt.Errorf("epd: %w", err)
	}
	if !before.Equal(beforeAgain) {
		return &MoveFailure{Case: mc, Reason: fmt.Sprintf("after unmake, got FEN %s", fen.Format(before))}, nil
	}
	return nil, nil
}

// Report summarizes a run over an EPD file mixing perft and move-case
// lines (blank lines and lines starting with '#' are ignored).
type Report struct {
	PerftCases   int
	MoveCases    int
	PerftFails   []PerftFailure
	MoveFails    []MoveFailure
}

func (r Report) Passed() bool {
	return len(r.PerftFails) == 0 && len(r.MoveFails) == 0
}

// RunFile reads lines from r, dispatching each to the perft or move-case
// runner based on the shape of the middle ';'-separated field (a move case's
// "from to special promo" field is distinguished from a perft case's
// "D<depth> <count>" field, since both formats can produce exactly 3
// ';'-separated fields), and accumulates a Report.
func RunFile(r io.Reader) (Report, error) {
	var report Report
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) == 3 && isMoveField(strings.TrimSpace(fields[1])) {
			report.MoveCases++
			mc, err := ParseMoveCase(line)
			if err != nil {
				return report, err
			}
			fail, err := RunMoveCase(mc)
			if err != nil {
				return report, err
			}
			if fail != nil {
				report.MoveFails = append(report.MoveFails, *fail)
			}
		} else {
			report.PerftCases++
			pc, err := ParsePerftCase(line)
			if err != nil {
				return report, err
			}
			fails, err := RunPerftCase(pc)
			if err != nil {
				return report, err
			}
			report.PerftFails = append(report.PerftFails, fails...)
		}
	}
	if err := scanner.Err(); err != nil {
		return report, err
	}
	slices.SortFunc(report.PerftFails, func(a, b PerftFailure) bool {
		return a.String() < b.String()
	})
	slices.SortFunc(report.MoveFails, func(a, b MoveFailure) bool {
		return a.Case.Before < b.Case.Before
	})
	return report, nil
}
