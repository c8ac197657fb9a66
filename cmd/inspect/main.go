package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/persist"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to adaptive_difficulty.db")
	userID := flag.String("user", "", "show a single user's snapshot and rounds")
	last := flag.Int("last", 20, "show N most recent rounds")
	jsonOut := flag.Bool("json", false, "output as JSON instead of tables")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/adaptive_difficulty.db [--user id] [--last N] [--json]")
		os.Exit(2)
	}

	store, err := persist.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *userID != "" {
		err = runUserMode(store, *userID, *last, *jsonOut)
	} else {
		err = runListMode(store, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

func runListMode(store *persist.Store, jsonOut bool) error {
	users, err := store.Users()
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(os.Stderr, "no snapshots found")
		return nil
	}

	if jsonOut {
		return printJSON(users)
	}
	fmt.Println("Users with stored snapshots:")
	for _, u := range users {
		fmt.Printf("  %s\n", u)
	}
	return nil
}

// #endregion list-mode

// #region user-mode

type userOutput struct {
	UserID   string               `json:"user_id"`
	Snapshot *persist.Snapshot    `json:"snapshot,omitempty"`
	Corrupt  bool                 `json:"corrupt,omitempty"`
	Rounds   []persist.RoundEntry `json:"rounds"`
}

func runUserMode(store *persist.Store, userID string, last int, jsonOut bool) error {
	out := userOutput{UserID: userID}

	snap, err := store.Load(userID)
	switch {
	case err != nil:
		// Undecodable snapshots are still worth surfacing.
		out.Corrupt = true
	case snap != nil:
		out.Snapshot = snap
	}

	out.Rounds, err = store.RecentRounds(userID, last)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("User: %s\n", userID)
	switch {
	case out.Corrupt:
		fmt.Println("Snapshot: CORRUPT (will be replaced on next save)")
	case out.Snapshot == nil:
		fmt.Println("Snapshot: none")
	default:
		printSnapshot(out.Snapshot)
	}

	if len(out.Rounds) == 0 {
		fmt.Println("\nNo logged rounds.")
		return nil
	}
	fmt.Printf("\nRecent rounds (newest first):\n")
	fmt.Printf("%-10s  %-10s  %7s  %7s  %8s  %-10s  %s\n",
		"Round", "Strategy", "Score", "Arousal", "Signal", "Decision", "Time")
	for _, r := range out.Rounds {
		fmt.Printf("%-10s  %-10s  %7.3f  %7.3f  %+8.4f  %-10s  %s\n",
			shortID(r.RoundID), r.Strategy, r.Score, r.Arousal, r.Signal,
			r.Decision, r.CreatedAt.Format("2006-01-02T15:04:05Z"))
	}
	return nil
}

func printSnapshot(snap *persist.Snapshot) {
	fmt.Printf("Snapshot: v%d saved %s\n", snap.SchemaVersion,
		snap.SavedAt.Format("2006-01-02T15:04:05Z"))
	fmt.Printf("Direction: %s (stable %d rounds)\n", snap.Direction, snap.StableRounds)
	fmt.Println("Positions:")
	names := make([]string, 0, len(snap.Positions))
	for name := range snap.Positions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-17s %.3f\n", name, snap.Positions[name])
	}
	fmt.Printf("History: %d entries\n", len(snap.History))
	for name, samples := range snap.Profiles {
		fmt.Printf("Profile %-17s %d samples\n", name, len(samples))
	}
}

// #endregion user-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
