package entities

import "sort"

// CategoryGroup holds one category's probe results split by accessibility.
// Both lists are in manifest order.
type CategoryGroup struct {
	Category     string        `json:"category"`
	Accessible   []ProbeResult `json:"accessible"`
	Inaccessible []ProbeResult `json:"inaccessible"`
}

// AccessTotals are the summary counts of one access-check pass.
type AccessTotals struct {
	Checked      int `json:"checked"`
	Accessible   int `json:"accessible"`
	Inaccessible int `json:"inaccessible"`
}

// AccessReport is the categorized aggregation of a probe pass. Groups are
// ordered by each category's first appearance in the manifest.
type AccessReport struct {
	Groups []CategoryGroup `json:"groups"`
	Totals AccessTotals    `json:"totals"`
}

// AllAccessible reports whether every probed entry was reachable.
func (r *AccessReport) AllAccessible() bool {
	return r.Totals.Inaccessible == 0
}

// AggregateAccess groups probe results by category then manifest order. It
// is a pure function of its input: any permutation of the same results
// produces an identical report, because ordering comes from the entries'
// manifest indices, not from completion order.
func AggregateAccess(results []ProbeResult) AccessReport {
	ordered := make([]ProbeResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Entry.Index < ordered[j].Entry.Index
	})

	var report AccessReport
	groupIdx := make(map[string]int)

	for _, result := range ordered {
		category := result.Entry.Category
		idx, ok := groupIdx[category]
		if !ok {
			idx = len(report.Groups)
			groupIdx[category] = idx
			report.Groups = append(report.Groups, CategoryGroup{Category: category})
		}

		group := &report.Groups[idx]
		if result.Accessible {
			group.Accessible = append(group.Accessible, result)
			report.Totals.Accessible++
		} else {
			group.Inaccessible = append(group.Inaccessible, result)
			report.Totals.Inaccessible++
		}
		report.Totals.Checked++
	}

	return report
}

// FilterByCategory returns the entries whose category matches. The result
// keeps manifest order; an unknown category yields an empty slice.
func FilterByCategory(entries []DependencyEntry, category string) []DependencyEntry {
	if category == "" {
		return entries
	}
	var filtered []DependencyEntry
	for _, entry := range entries {
		if entry.Category == category {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// KnownCategories returns the distinct categories present in the manifest,
// in first-appearance order.
func KnownCategories(entries []DependencyEntry) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, entry := range entries {
		if !seen[entry.Category] {
			seen[entry.Category] = true
			categories = append(categories, entry.Category)
		}
	}
	return categories
}
