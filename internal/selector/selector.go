// Package selector picks the subset of scored chunks that fits a reading
// time budget. It is a greedy best-effort bin packing, not an optimal
// knapsack: chunks are taken in score order while they fit, and a chunk that
// overflows the remaining budget is skipped rather than ending the scan,
// since a smaller lower-scored chunk may still fit.
package selector

import (
	"fmt"
	"sort"

	"github.com/snapreads/studypack/internal/document"
)

// Selection warnings and notes surfaced to the caller.
const (
	// excludedNoteThreshold is the excluded-content fraction above which a
	// processing note is added.
	excludedNoteThreshold = 0.70
)

// Select chooses chunks whose cumulative reading time fits budgetMinutes,
// maximizing total importance greedily. Selection order is by score;
// presentation order is by document position — the returned chunks are
// re-sorted into document order.
func Select(chunks []document.Chunk, budgetMinutes float64) document.Selection {
	sel := document.Selection{CandidateCount: len(chunks)}
	if len(chunks) == 0 {
		return sel
	}

	// Score-descending scan order; stable so equal scores keep document order.
	order := make([]int, len(chunks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return chunks[order[a]].Score > chunks[order[b]].Score
	})

	taken := make([]bool, len(chunks))
	total := 0.0
	count := 0
	for _, i := range order {
		if total+chunks[i].ReadingMinutes > budgetMinutes {
			continue // a smaller chunk later in the scan may still fit
		}
		taken[i] = true
		total += chunks[i].ReadingMinutes
		count++
	}

	if count == 0 {
		// Even the smallest chunk overflows the budget: deliver that one
		// alone rather than an empty pack, overshooting as little as possible.
		smallest := 0
		for i := range chunks {
			if chunks[i].ReadingMinutes < chunks[smallest].ReadingMinutes {
				smallest = i
			}
		}
		taken[smallest] = true
		total = chunks[smallest].ReadingMinutes
		count = 1
		sel.Warnings = append(sel.Warnings, fmt.Sprintf(
			"The %.0f-minute budget is smaller than the smallest content section (%.1f minutes); that section was included anyway.",
			budgetMinutes, chunks[smallest].ReadingMinutes))
	}

	// Presentation order: original document position.
	sel.Chunks = make([]document.Chunk, 0, count)
	for i, c := range chunks {
		if taken[i] {
			sel.Chunks = append(sel.Chunks, c)
			sel.TotalWords += c.WordCount
		}
	}
	sel.TotalMinutes = total

	if excluded := float64(len(chunks)-count) / float64(len(chunks)); excluded > excludedNoteThreshold {
		sel.Warnings = append(sel.Warnings, fmt.Sprintf(
			"Only %d of %d sections fit the %.0f-minute budget; consider a longer reading time for fuller coverage.",
			count, len(chunks), budgetMinutes))
	}

	return sel
}
