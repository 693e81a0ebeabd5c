// Command epdcheck runs an EPD-format test file (mixing perft-count lines
// and make/unmake round-trip lines) against the move generator and prints a
// pass-rate summary. It exits nonzero only on a usage error; test failures
// are reported but do not themselves fail the process, matching the
// reference test driver's convention.
package main

import (
	"flag"
	"fmt"
	"os"

	"chessmg/epd"
)

func main() {
	path := flag.String("file", "", "Path to an EPD test file (required)")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "-file must be set")
		os.Exit(2)
	}

	f, err := os.Open(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", *path, err)
		os.Exit(2)
	}
	defer f.Close()

	report, err := epd.RunFile(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run %s: %v\n", *path, err)
		os.Exit(2)
	}

	fmt.Printf("perft cases: %d, failures: %d\n", report.PerftCases, len(report.PerftFails))
	for _, fail := range report.PerftFails {
		fmt.Println("  FAIL", fail.String())
	}
	fmt.Printf("move cases: %d, failures: %d\n", report.MoveCases, len(report.MoveFails))
	for _, fail := range report.MoveFails {
		fmt.Println("  FAIL", fail.String())
	}

	if report.Passed() {
		fmt.Println("PASS")
	} else {
		fmt.Println("FAIL")
	}
}
