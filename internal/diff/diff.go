// Package diff detects records newly present between two snapshots.
package diff

import "sheetwatch/internal/model"

// NewRecords returns, in current's order, every record whose identity key
// is absent from previous. With an empty previous snapshot the whole of
// current is reported, which covers initial population. Inputs are never
// mutated.
func NewRecords(previous, current model.Snapshot, nameColumn string) model.Snapshot {
	seen := make(map[string]struct{}, len(previous))
	for _, r := range previous {
		seen[r.Key(nameColumn)] = struct{}{}
	}

	var fresh model.Snapshot
	for _, r := range current {
		if _, ok := seen[r.Key(nameColumn)]; !ok {
			fresh = append(fresh, r)
		}
	}
	return fresh
}
