package persist

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielpatrickdp/adaptive-difficulty/internal/history"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/hysteresis"
	"github.com/danielpatrickdp/adaptive-difficulty/internal/profile"
)

// SchemaVersion is the current snapshot schema. Version 1 predates per-axis
// profiles and convergence counters.
const SchemaVersion = 2

// #region snapshot

// Snapshot is the versioned cross-session state of the difficulty manager.
// Maps are keyed by canonical axis name so older schema versions and axes
// added later migrate field by field instead of failing.
type Snapshot struct {
	SchemaVersion int                         `json:"schema_version"`
	Positions     map[string]float64          `json:"positions"`
	Direction     string                      `json:"direction"`
	StableRounds  int                         `json:"stable_rounds"`
	History       []history.Entry             `json:"history"`
	Profiles      map[string][]profile.Sample `json:"profiles"`
	Convergence   map[string]int              `json:"convergence"`
	SavedAt       time.Time                   `json:"saved_at"`
}

// #endregion snapshot

// #region migrate

// decodeSnapshot unmarshals a stored payload and migrates it to the current
// schema. Older versions gain newly introduced fields as empty defaults; a
// payload from a future schema is rejected.
func decodeSnapshot(raw []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("snapshot schema v%d is newer than supported v%d", snap.SchemaVersion, SchemaVersion)
	}

	if snap.SchemaVersion < 2 {
		// v1 had no per-axis profiles or convergence counters.
		snap.Profiles = map[string][]profile.Sample{}
		snap.Convergence = map[string]int{}
		snap.SchemaVersion = 2
	}

	// Field-by-field defaults for partially written payloads.
	if snap.Positions == nil {
		snap.Positions = map[string]float64{}
	}
	if snap.Profiles == nil {
		snap.Profiles = map[string][]profile.Sample{}
	}
	if snap.Convergence == nil {
		snap.Convergence = map[string]int{}
	}
	if snap.Direction == "" {
		snap.Direction = hysteresis.Stable.String()
	}
	if _, err := hysteresis.ParseDirection(snap.Direction); err != nil {
		snap.Direction = hysteresis.Stable.String()
		snap.StableRounds = 0
	}

	return &snap, nil
}

// #endregion migrate
