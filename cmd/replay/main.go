package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/config"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/history"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/persist"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/replay"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to adaptive_difficulty.db (DB mode)")
	userID := flag.String("user", "local", "user whose rounds to replay (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/adaptive_difficulty.db [--user id]")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath, *userID)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	sum, err := replay.NewHarness(f.Config(), nil).Run(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}
	return printSummary(sum)
}

// #endregion fixture-mode

// #region db-mode

// runDBMode rebuilds a round sequence from the audit log and replays it
// through a fresh controller, comparing the decisions each round took.
func runDBMode(dbPath, userID string) int {
	store, err := persist.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer store.Close()

	rows, err := store.DB().Query(
		`SELECT round_id, score, arousal, decision, created_at FROM round_log
		 WHERE user_id = ? ORDER BY created_at ASC`, userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "query round log: %v\n", err)
		return 2
	}
	defer rows.Close()

	var f replay.Fixture
	for rows.Next() {
		var (
			roundID, decision string
			score, arousal    float64
			createdAt         sql.NullString
		)
		if err := rows.Scan(&roundID, &score, &arousal, &decision, &createdAt); err != nil {
			fmt.Fprintf(os.Stderr, "scan row: %v\n", err)
			return 2
		}
		at := time.Time{}
		if createdAt.Valid {
			at, _ = time.Parse(time.RFC3339Nano, createdAt.String)
		}
		f.Rounds = append(f.Rounds, replay.Round{
			RoundID: roundID,
			At:      at,
			Components: history.ComponentScores{
				TaskSuccess:      score,
				TargetRatio:      score,
				ReactionTime:     score,
				ResponseDuration: score,
				TapAccuracy:      score,
			},
			Arousal: arousal,
		})
		f.Expected = append(f.Expected, replay.ExpectedRound{
			RoundID:  roundID,
			Decision: decision,
		})
	}
	if err := rows.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "iterate rows: %v\n", err)
		return 2
	}
	if len(f.Rounds) == 0 {
		fmt.Fprintf(os.Stderr, "no logged rounds for user %s\n", userID)
		return 2
	}

	sum, err := replay.NewHarness(config.Default(), nil).Run(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}
	return printSummary(sum)
}

// #endregion db-mode

// #region output

func printSummary(sum replay.Summary) int {
	fmt.Printf("%-10s| %-8s| %-10s| %-10s| %s\n", "Round", "Score", "Adaptive", "Path", "Signal")
	for _, d := range sum.Decisions {
		fmt.Printf("%-10s| %-8.3f| %-10.3f| %-10s| %+.4f\n",
			d.RoundID, d.Score, d.Adaptive, d.Path, d.Signal)
	}

	fmt.Printf("\nSummary: %d rounds, %d fallback, %d explored, %d suppressed\n",
		sum.Rounds, sum.Fallbacks, sum.Explored, sum.Suppressed)
	fmt.Print("Final positions:")
	for _, v := range sum.Final {
		fmt.Printf(" %.3f", v)
	}
	fmt.Println()

	if len(sum.Mismatches) > 0 {
		fmt.Printf("\n%d decision mismatches:\n", len(sum.Mismatches))
		for _, m := range sum.Mismatches {
			fmt.Printf("  %s\n", m)
		}
		return 1
	}
	return 0
}

// #endregion output
