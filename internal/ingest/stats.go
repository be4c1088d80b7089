package ingest

import "slices"

// Statistics aggregates counts over every job the registry retains.
type Statistics struct {
	TotalJobs      int            `json:"total_jobs"`
	ByStatus       map[Status]int `json:"by_status"`
	ByKind         map[Kind]int   `json:"by_kind"`
	ItemsProcessed int            `json:"items_processed"`
	ItemsFailed    int            `json:"items_failed"`
	// SuccessRate is processed / (processed + failed); zero when no item
	// has finished yet.
	SuccessRate float64 `json:"success_rate"`
}

// Statistics computes the aggregate view across all known jobs.
func (o *Orchestrator) Statistics() Statistics {
	stats := Statistics{
		ByStatus: make(map[Status]int),
		ByKind:   make(map[Kind]int),
	}
	for _, job := range o.store.All() {
		snap := job.Snapshot()
		stats.TotalJobs++
		stats.ByStatus[snap.Status]++
		stats.ByKind[snap.Kind]++
		stats.ItemsProcessed += snap.Processed
		stats.ItemsFailed += snap.Failed
	}
	if done := stats.ItemsProcessed + stats.ItemsFailed; done > 0 {
		stats.SuccessRate = float64(stats.ItemsProcessed) / float64(done)
	}
	return stats
}

func sortByStartDesc(snaps []Snapshot) {
	slices.SortFunc(snaps, func(a, b Snapshot) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
}
