package epd_test

import (
	"strings"
	"testing"

	"chessmg/epd"
	"chessmg/fen"
)

func TestParsePerftCase(t *testing.T) {
	line := fen.StartPos + ";D1 20;D2 400"
	pc, err := epd.ParsePerftCase(line)
	if err != nil {
		t.Fatalf("ParsePerftCase error: %v", err)
	}
	if pc.FEN != fen.StartPos {
		t.Errorf("FEN = %q, want %q", pc.FEN, fen.StartPos)
	}
	if len(pc.Depths) != 2 || pc.Depths[0] != 1 || pc.Depths[1] != 2 {
		t.Fatalf("Depths = %v, want [1 2]", pc.Depths)
	}
	if len(pc.Counts) != 2 || pc.Counts[0] != 20 || pc.Counts[1] != 400 {
		t.Fatalf("Counts = %v, want [20 400]", pc.Counts)
	}
}

func TestParsePerftCaseRejectsMalformed(t *testing.T) {
	if _, err := epd.ParsePerftCase("no-semicolon-here"); err == nil {
		t.Fatal("expected an error for a line with no ';' fields")
	}
	if _, err := epd.ParsePerftCase(fen.StartPos + ";not-a-depth-field"); err == nil {
		t.Fatal("expected an error for a malformed depth field")
	}
}

func TestRunPerftCase(t *testing.T) {
	pc, err := epd.ParsePerftCase(fen.StartPos + ";D1 20;D2 400")
	if err != nil {
		t.Fatalf("ParsePerftCase error: %v", err)
	}
	fails, err := epd.RunPerftCase(pc)
	if err != nil {
		t.Fatalf("RunPerftCase error: %v", err)
	}
	if len(fails) != 0 {
		t.Fatalf("unexpected perft failures: %v", fails)
	}
}

func TestRunPerftCaseReportsMismatch(t *testing.T) {
	pc, err := epd.ParsePerftCase(fen.StartPos + ";D1 21")
	if err != nil {
		t.Fatalf("ParsePerftCase error: %v", err)
	}
	fails, err := epd.RunPerftCase(pc)
	if err != nil {
		t.Fatalf("RunPerftCase error: %v", err)
	}
	if len(fails) != 1 {
		t.Fatalf("failures = %v, want exactly one mismatch", fails)
	}
	if fails[0].Want != 21 || fails[0].Got != 20 {
		t.Errorf("failure = %+v, want Want=21 Got=20", fails[0])
	}
}

// S5: e7->e8=Q, encoded via the "promo" move-case field.
func TestParseAndRunMoveCasePromotion(t *testing.T) {
	before := "8/4P3/8/8/8/8/8/4K2k w - - 0 1"
	after := "4Q3/8/8/8/8/8/8/4K2k b - - 0 1"
	line := before + ";e7 e8 promo Q;" + after
	mc, err := epd.ParseMoveCase(line)
	if err != nil {
		t.Fatalf("ParseMoveCase error: %v", err)
	}
	if mc.Special != "promo" || mc.Promo != "Q" {
		t.Fatalf("Special/Promo = %q/%q, want promo/Q", mc.Special, mc.Promo)
	}
	fail, err := epd.RunMoveCase(mc)
	if err != nil {
		t.Fatalf("RunMoveCase error: %v", err)
	}
	if fail != nil {
		t.Fatalf("unexpected move failure: %v", fail)
	}
}

func TestRunMoveCaseDetectsWrongAfter(t *testing.T) {
	before := "8/4P3/8/8/8/8/8/4K2k w - - 0 1"
	wrongAfter := "4Q3/8/8/8/8/8/8/4K2k w - - 0 1" // side to move should have flipped
	mc, err := epd.ParseMoveCase(before + ";e7 e8 promo Q;" + wrongAfter)
	if err != nil {
		t.Fatalf("ParseMoveCase error: %v", err)
	}
	fail, err := epd.RunMoveCase(mc)
	if err != nil {
		t.Fatalf("RunMoveCase error: %v", err)
	}
	if fail == nil {
		t.Fatal("expected a move failure for a mismatched after-FEN")
	}
}

func TestRunFileMixedCases(t *testing.T) {
	before := "8/4P3/8/8/8/8/8/4K2k w - - 0 1"
	after := "4Q3/8/8/8/8/8/8/4K2k b - - 0 1"
	input := strings.Join([]string{
		"# a comment line, and a blank line follow",
		"",
		fen.StartPos + ";D1 20;D2 400",
		before + ";e7 e8 promo Q;" + after,
	}, "\n")

	report, err := epd.RunFile(strings.NewReader(input))
	if err != nil {
		t.Fatalf("RunFile error: %v", err)
	}
	if report.PerftCases != 1 || report.MoveCases != 1 {
		t.Fatalf("case counts = perft=%d move=%d, want 1/1", report.PerftCases, report.MoveCases)
	}
	if !report.Passed() {
		t.Fatalf("report should have passed: perftFails=%v moveFails=%v", report.PerftFails, report.MoveFails)
	}
}

func TestRunFileReportsFailures(t *testing.T) {
	input := fen.StartPos + ";D1 21"
	report, err := epd.RunFile(strings.NewReader(input))
	if err != nil {
		t.Fatalf("RunFile error: %v", err)
	}
	if report.Passed() {
		t.Fatal("report should not have passed")
	}
	if len(report.PerftFails) != 1 {
		t.Fatalf("PerftFails = %v, want exactly one", report.PerftFails)
	}
}
