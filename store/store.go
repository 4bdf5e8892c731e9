// Package store persists the whole core state (instruments, lots,
// transactions, liquidity verdicts, sizing configuration) as one JSON
// snapshot. Decimal fields round-trip losslessly; unknown fields in a
// snapshot are rejected rather than silently dropped.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rustyeddy/etfdesk/ledger"
	"github.com/rustyeddy/etfdesk/sizing"
	"github.com/rustyeddy/etfdesk/volume"
)

type Snapshot struct {
	SavedAt time.Time     `json:"saved_at"`
	Ledger  ledger.State  `json:"ledger"`
	Volume  volume.State  `json:"volume"`
	Sizing  sizing.Config `json:"sizing"`
}

// Save writes the snapshot atomically: a temp file in the same
// directory, then rename.
func Save(path string, snap Snapshot) error {
	snap.SavedAt = time.Now()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load reads and validates a snapshot. Unknown fields fail the load.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var snap Snapshot
	if err := dec.Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot: %w", err)
	}
	return snap, nil
}

// Exists reports whether a snapshot file is present.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
