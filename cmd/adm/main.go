package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/axis"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/config"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/controller"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/history"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/persist"
)

// #region main
func main() {
	dbPath := envOr("ADM_DB", "adaptive_difficulty.db")
	userID := envOr("ADM_USER", "local")
	cfgPath := os.Getenv("ADM_CONFIG")

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		cfg, err = config.LoadFile(cfgPath)
		if err != nil {
			log.Error("load config", "path", cfgPath, "err", err)
			os.Exit(1)
		}
	}

	store, err := persist.NewStore(dbPath)
	if err != nil {
		log.Error("open store", "path", dbPath, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	snap, err := store.Load(userID)
	if err != nil {
		if errors.Is(err, persist.ErrCorruptSnapshot) {
			log.Warn("snapshot unreadable, starting fresh", "user", userID, "err", err)
		} else {
			log.Error("load snapshot", "user", userID, "err", err)
			os.Exit(1)
		}
	}

	ctrl, err := controller.New(cfg,
		controller.WithLogger(log),
		controller.WithSnapshot(snap),
	)
	if err != nil {
		log.Error("build controller", "err", err)
		os.Exit(1)
	}

	fmt.Println("Adaptive difficulty manager ready.")
	fmt.Printf("  DB: %s | user: %s | strategy: %s\n", dbPath, userID, cfg.Strategy)
	fmt.Println("Enter a round as 'score arousal' or five component scores")
	fmt.Println("plus arousal: 'success ratio reaction duration accuracy arousal'.")
	fmt.Println("Type 'positions' to inspect, 'quit' to save and exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		if line == "positions" {
			printPositions(ctrl.Positions())
			continue
		}

		out, err := parseRound(line)
		if err != nil {
			fmt.Printf("bad input: %v\n", err)
			continue
		}

		res := ctrl.ReportRound(out)
		printPositions(res.Positions)
		fmt.Printf("[round %d] score=%.3f adaptive=%.3f path=%s signal=%+.4f\n",
			res.Round, res.Score, res.AdaptiveScore, res.Path, res.GlobalSignal)
		if res.Suppressed {
			fmt.Println("  (direction reversal suppressed)")
		}

		err = store.LogRound(persist.RoundEntry{
			RoundID:   res.RoundID,
			UserID:    userID,
			Strategy:  string(cfg.Strategy),
			Score:     res.Score,
			Arousal:   out.Arousal,
			Signal:    res.GlobalSignal,
			Decision:  res.Path,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			log.Warn("log round", "err", err)
		}
	}

	if err := store.Save(ctrl.Snapshot(), userID); err != nil {
		log.Error("save snapshot", "user", userID, "err", err)
		os.Exit(1)
	}
	log.Info("session saved", "user", userID, "rounds", ctrl.Round())
}

// #endregion main

// #region helpers

// parseRound accepts either "score arousal" or five component scores
// followed by arousal.
func parseRound(line string) (controller.Outcome, error) {
	fields := strings.Fields(line)
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return controller.Outcome{}, fmt.Errorf("parse %q: %w", f, err)
		}
		vals[i] = v
	}

	switch len(vals) {
	case 2:
		return controller.Outcome{
			Components: history.ComponentScores{
				TaskSuccess:      vals[0],
				TargetRatio:      vals[0],
				ReactionTime:     vals[0],
				ResponseDuration: vals[0],
				TapAccuracy:      vals[0],
			},
			Arousal: vals[1],
		}, nil
	case 6:
		return controller.Outcome{
			Components: history.ComponentScores{
				TaskSuccess:      vals[0],
				TargetRatio:      vals[1],
				ReactionTime:     vals[2],
				ResponseDuration: vals[3],
				TapAccuracy:      vals[4],
			},
			Arousal: vals[5],
		}, nil
	default:
		return controller.Outcome{}, fmt.Errorf("want 2 or 6 values, got %d", len(vals))
	}
}

func printPositions(pos axis.Vector) {
	for _, a := range axis.All() {
		fmt.Printf("  %-17s %.3f\n", a.String(), pos[a])
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
