// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package recommend

// diversify greedily selects up to m candidates from a ranked list. When the
// head of the list belongs to a region (or distillery) that already fills
// its cap, the next under-cap candidate scoring at least MinRetentionScore
// is promoted instead and the head waits. A head already deferred
// MaxRankDrop places is taken as is. When no candidate qualifies the head
// is taken, so a pool with too few regions still fills the list.
func diversify(ranked []candidate, m int, cfg DiversityConfig) []candidate {
	if m > len(ranked) {
		m = len(ranked)
	}
	if m <= 0 {
		return nil
	}
	if !cfg.Enabled {
		out := make([]candidate, m)
		copy(out, ranked[:m])
		return out
	}

	regions := make(map[string]int)
	distilleries := make(map[string]int)
	underCap := func(c *candidate) bool {
		if regions[c.bottle.Region] >= cfg.RegionCap {
			return false
		}
		if cfg.DistilleryCap > 0 && distilleries[c.bottle.Distillery] >= cfg.DistilleryCap {
			return false
		}
		return true
	}

	// remaining holds indices into ranked, which are the original ranks
	remaining := make([]int, len(ranked))
	for i := range remaining {
		remaining[i] = i
	}

	selected := make([]candidate, 0, m)
	for len(selected) < m && len(remaining) > 0 {
		head := remaining[0]
		pick := 0

		if !underCap(&ranked[head]) && !exceedsRankDrop(head, len(selected), cfg.MaxRankDrop) {
			for j := 1; j < len(remaining); j++ {
				c := &ranked[remaining[j]]
				if c.score < cfg.MinRetentionScore {
					// ranked is score-descending; nothing later qualifies
					break
				}
				if underCap(c) {
					pick = j
					break
				}
			}
		}

		chosen := ranked[remaining[pick]]
		selected = append(selected, chosen)
		regions[chosen.bottle.Region]++
		distilleries[chosen.bottle.Distillery]++
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}

	return selected
}

// exceedsRankDrop reports whether deferring the entry ranked origRank past
// position pos would push it more than maxDrop places down.
func exceedsRankDrop(origRank, pos, maxDrop int) bool {
	if maxDrop <= 0 {
		return false
	}
	return pos+1-origRank > maxDrop
}
