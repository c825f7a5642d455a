// inspect prints recent decisions and learning events from an audit database.
package main

// #region imports
import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/officemates/antigravity/internal/audit"
)

// #endregion

// #region main

func main() {
	dbPath := flag.String("db", "", "path to the audit database")
	user := flag.String("user", "", "user id to inspect")
	last := flag.Int("last", 20, "show N most recent entries")
	events := flag.Bool("events", false, "show learning events instead of decisions")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" || *user == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/antigravity.db --user id [--last N] [--events] [--json]")
		os.Exit(2)
	}

	recorder, err := audit.NewSQLiteRecorder(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer recorder.Close()

	ctx := context.Background()
	if *events {
		err = printEvents(ctx, recorder, *user, *last, *jsonOut)
	} else {
		err = printDecisions(ctx, recorder, *user, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region decisions

func printDecisions(ctx context.Context, recorder *audit.SQLiteRecorder, user string, last int, jsonOut bool) error {
	decisions, err := recorder.Decisions(ctx, user, last)
	if err != nil {
		return err
	}
	if len(decisions) == 0 {
		fmt.Fprintln(os.Stderr, "no decisions found")
		return nil
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(decisions)
	}

	fmt.Printf("%-25s  %-28s  %s\n", "TIME", "ACTION", "REASON")
	fmt.Println(strings.Repeat("-", 100))
	for _, d := range decisions {
		fmt.Printf("%-25s  %-28s  %s\n",
			d.Timestamp.Format("2006-01-02T15:04:05Z"), d.Action, truncate(d.Reason, 60))
	}
	return nil
}

// #endregion decisions

// #region events

func printEvents(ctx context.Context, recorder *audit.SQLiteRecorder, user string, last int, jsonOut bool) error {
	events, err := recorder.Events(ctx, user, last)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Fprintln(os.Stderr, "no events found")
		return nil
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}

	fmt.Printf("%-25s  %-28s  %-6s  %s\n", "TIME", "EVENT", "CONF", "INTERVENTION")
	fmt.Println(strings.Repeat("-", 90))
	for _, ev := range events {
		intervention := string(ev.InterventionType)
		if intervention == "" {
			intervention = "-"
		}
		fmt.Printf("%-25s  %-28s  %-6.2f  %s\n",
			ev.Timestamp.Format("2006-01-02T15:04:05Z"), ev.EventType, ev.Confidence, intervention)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// #endregion events
