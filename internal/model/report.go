package model

import "time"

// Report holds the resolutions produced by one scan.
type Report struct {
	ID          string       `yaml:"id"`
	GeneratedAt time.Time    `yaml:"generated_at"`
	SearchPaths []Path       `yaml:"search_paths,omitempty"`
	Entries     []Resolution `yaml:"entries"`
}

// Summary aggregates resolution outcomes.
type Summary struct {
	Total      int
	Resolved   int
	Unresolved int
	ByStrategy map[Strategy]int
}

// Summarize counts the report entries per outcome and strategy.
func (r Report) Summarize() Summary {
	summary := Summary{ByStrategy: map[Strategy]int{}}

	for _, entry := range r.Entries {
		summary.Total++
		summary.ByStrategy[entry.Strategy]++

		if entry.Exists {
			summary.Resolved++
		} else {
			summary.Unresolved++
		}
	}

	return summary
}

// Unresolved returns the entries that did not resolve to an existing file.
func (r Report) Unresolved() []Resolution {
	var unresolved []Resolution

	for _, entry := range r.Entries {
		if !entry.Exists {
			unresolved = append(unresolved, entry)
		}
	}

	return unresolved
}
