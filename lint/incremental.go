package lint

import (
	"encoding/json"
	"sort"
)

// computeChanged reprocesses only the lines whose text has no unique match
// in the cached snapshot, re-anchors the cached findings for everything
// else, and merges the two sets into one consistent Result.
func (e *Engine) computeChanged(req Request, fps resultFingerprints) (*Result, error) {
	cachedIndex := BuildIndex(req.Cached.Lines)
	currentIndex := BuildIndex(req.Lines)

	// A line must be reprocessed when its text has no entry in the cached
	// index (new or edited text, or text that repeated in the old file) or
	// no entry in the current index (text now duplicated, so any cached
	// finding for it cannot be anchored to one occurrence).
	changed := make([]Line, 0)
	for _, line := range req.Lines {
		if _, inCached := cachedIndex[line.Text]; !inCached {
			changed = append(changed, line)
			continue
		}
		if _, inCurrent := currentIndex[line.Text]; !inCurrent {
			changed = append(changed, line)
		}
	}

	reanchored := Reanchor(req.Cached.FlaggedLines, currentIndex)

	fresh, err := e.Process(req.Checks, changed, req.Parallel)
	if err != nil {
		return nil, err
	}

	merged := mergeFlagged(fresh, reanchored)
	e.logger.Debugw("incremental recompute",
		"file", req.File,
		"changed_lines", len(changed),
		"reused_findings", len(merged)-len(fresh),
	)
	return newResult(req, fps, merged), nil
}

// mergeFlagged concatenates fresh and re-anchored findings, drops entries
// that could not be anchored, deduplicates by full value equality, and
// restores top-to-bottom reading order. The fresh and cached sets are
// disjoint in practice; the dedup is a safety net so an overlap cannot
// corrupt the output (first occurrence wins).
func mergeFlagged(fresh, reanchored []Line) []Line {
	merged := make([]Line, 0, len(fresh)+len(reanchored))
	seen := make(map[string]struct{}, len(fresh)+len(reanchored))
	for _, line := range append(fresh, reanchored...) {
		if line.Number == UnanchoredLine {
			continue
		}
		key := lineKey(line)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, line)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Number < merged[j].Number
	})
	return merged
}

// lineKey is a canonical encoding of the full line value, issues included.
func lineKey(line Line) string {
	encoded, err := json.Marshal(line)
	if err != nil {
		// Line contains only marshalable fields; this cannot fail.
		panic(err)
	}
	return string(encoded)
}
