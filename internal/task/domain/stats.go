package domain

import (
	"math"
	"time"
)

// Stats summarizes the task collection.
type Stats struct {
	Total                int64              `json:"total"`
	Completed            int64              `json:"completed"`
	Pending              int64              `json:"pending"`
	CompletionPercentage int                `json:"completion_percentage"`
	Overdue              int64              `json:"overdue"`
	ByPriority           map[Priority]int64 `json:"by_priority"`
	ByCategory           map[Category]int64 `json:"by_category"`
}

// ComputeStats reduces tasks to Stats as of now. Every priority and
// category key is present, zero-filled.
func ComputeStats(tasks []*Task, now time.Time) Stats {
	stats := Stats{
		ByPriority: make(map[Priority]int64, len(Priorities)),
		ByCategory: make(map[Category]int64, len(Categories)),
	}
	for _, p := range Priorities {
		stats.ByPriority[p] = 0
	}
	for _, c := range Categories {
		stats.ByCategory[c] = 0
	}

	for _, t := range tasks {
		stats.Total++
		if t.Completed {
			stats.Completed++
		}
		if IsOverdue(t, now) {
			stats.Overdue++
		}
		stats.ByPriority[t.Priority]++
		stats.ByCategory[t.Category]++
	}

	stats.Pending = stats.Total - stats.Completed
	stats.CompletionPercentage = Percentage(stats.Completed, stats.Total)
	return stats
}

// Percentage is round(100*part/total), or 0 when total is 0.
func Percentage(part, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
