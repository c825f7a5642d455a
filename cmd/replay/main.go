// replay runs a recorded frame fixture through an in-memory engine and
// reports per-tick outcomes against the fixture's expectations.
package main

// #region imports
import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/officemates/antigravity/internal/replay"
)

// #endregion

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	verbose := flag.Bool("verbose", false, "print every tick, not just mismatches")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [--verbose]")
		os.Exit(2)
	}

	fixture, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		os.Exit(1)
	}
	if fixture.Description != "" {
		fmt.Printf("fixture: %s\n", fixture.Description)
	}

	results, summary, err := replay.Run(fixture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}

	for _, tick := range results {
		if !*verbose && len(tick.Mismatches) == 0 {
			continue
		}
		status := "ok"
		if len(tick.Mismatches) > 0 {
			status = "MISMATCH: " + strings.Join(tick.Mismatches, "; ")
		}
		fmt.Printf("tick %3d  +%-6s  distracted=%-5v  event=%-24s  intervention=%-8q  %s\n",
			tick.Index, tick.At, tick.Result.DistractionDetected,
			tick.Result.LearningEvent.EventType, tick.Result.Intervention, status)
	}

	fmt.Printf("\n%d frames: %d distracted, %d interventions, %d adaptations, %d decisions, %d mismatches (%d eval failures)\n",
		summary.TotalFrames, summary.DistractedTicks, summary.Interventions,
		summary.Adaptations, len(summary.Decisions), summary.Mismatches, summary.EvalFailures)

	if summary.Mismatches > 0 {
		os.Exit(1)
	}
}

// #endregion main
