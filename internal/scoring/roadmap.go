package scoring

import "sort"

// roadmapEntry tags a missing signal's remediation with its point impact and
// the priority of its dimension.
type roadmapEntry struct {
	remediation string
	points      int
	dimPriority int
}

// BuildRoadmap derives a prioritized remediation list from the dimension
// results: every missing signal is tagged with its point value, sorted by
// impact descending, ties broken by the fixed dimension priority order
// (Testing > Architecture > GitHygiene > Documentation > Metadata), capped
// at roadmapLimit. Identical inputs always yield an identical roadmap.
func BuildRoadmap(results []DimensionResult) []string {
	priority := make(map[Dimension]int, len(dimensionOrder))
	for i, dim := range dimensionOrder {
		priority[dim] = i
	}

	entries := make([]roadmapEntry, 0, 8)
	for _, res := range results {
		missing := make(map[string]bool, len(res.SignalsMissing))
		for _, rem := range res.SignalsMissing {
			missing[rem] = true
		}
		// Walk the table, not the result slice, so ordering never depends
		// on how a scorer happened to append its missing signals.
		for _, sig := range signalTable[res.Name] {
			if missing[sig.Remediation] {
				entries = append(entries, roadmapEntry{
					remediation: sig.Remediation,
					points:      sig.Points,
					dimPriority: priority[res.Name],
				})
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].points != entries[j].points {
			return entries[i].points > entries[j].points
		}
		return entries[i].dimPriority < entries[j].dimPriority
	})

	if len(entries) > roadmapLimit {
		entries = entries[:roadmapLimit]
	}

	roadmap := make([]string, len(entries))
	for i, e := range entries {
		roadmap[i] = e.remediation
	}
	return roadmap
}
