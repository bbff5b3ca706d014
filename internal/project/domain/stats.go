package domain

import "math"

// Stats summarizes the project collection.
type Stats struct {
	Total                   int64              `json:"total"`
	ByStatus                map[Status]int64   `json:"by_status"`
	AverageProgressByStatus map[Status]float64 `json:"average_progress_by_status"`
}

// ComputeStats reduces projects to Stats. Every status is present in both
// maps, zero-filled; averages are rounded to two decimals.
func ComputeStats(projects []*Project) Stats {
	stats := Stats{
		ByStatus:                make(map[Status]int64, len(Statuses)),
		AverageProgressByStatus: make(map[Status]float64, len(Statuses)),
	}
	sums := make(map[Status]int64, len(Statuses))
	for _, s := range Statuses {
		stats.ByStatus[s] = 0
		stats.AverageProgressByStatus[s] = 0
	}

	for _, p := range projects {
		stats.Total++
		stats.ByStatus[p.Status]++
		sums[p.Status] += int64(p.Meta.Progress)
	}

	for s, count := range stats.ByStatus {
		if count == 0 {
			continue
		}
		avg := float64(sums[s]) / float64(count)
		stats.AverageProgressByStatus[s] = math.Round(avg*100) / 100
	}
	return stats
}
