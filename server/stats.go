package server

import (
	"sort"
	"sync"
	"time"
)

// StatsTracker counts tool invocations per outcome. It is safe for
// concurrent use; overlapping tool calls record independently.
type StatsTracker struct {
	succeededTotal  int64
	failedTotal     int64
	succeededByTool map[string]int64
	failedByTool    map[string]int64

	startTime time.Time
	mu        sync.RWMutex
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	Timestamp      int64            `json:"timestamp"`
	SucceededTotal int64            `json:"succeeded_total"`
	FailedTotal    int64            `json:"failed_total"`
	TotalCalls     int64            `json:"total_calls"`
	FailureRate    float64          `json:"failure_rate"`
	TopTools       []ToolCount      `json:"top_tools"`
	FailedByTool   map[string]int64 `json:"failed_by_tool"`
	Uptime         float64          `json:"uptime_seconds"`
}

type ToolCount struct {
	Tool  string `json:"tool"`
	Count int64  `json:"count"`
}

func NewStatsTracker() *StatsTracker {
	return &StatsTracker{
		succeededByTool: make(map[string]int64),
		failedByTool:    make(map[string]int64),
		startTime:       time.Now(),
	}
}

func (st *StatsTracker) RecordSuccess(tool string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.succeededTotal++
	st.succeededByTool[tool]++
}

func (st *StatsTracker) RecordFailure(tool string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.failedTotal++
	st.failedByTool[tool]++
}

// Snapshot returns the current aggregate statistics.
func (st *StatsTracker) Snapshot() StatsSnapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()

	total := st.succeededTotal + st.failedTotal
	failureRate := 0.0
	if total > 0 {
		failureRate = float64(st.failedTotal) / float64(total) * 100
	}

	return StatsSnapshot{
		Timestamp:      time.Now().Unix(),
		SucceededTotal: st.succeededTotal,
		FailedTotal:    st.failedTotal,
		TotalCalls:     total,
		FailureRate:    failureRate,
		TopTools:       topTools(st.succeededByTool, 5),
		FailedByTool:   copyCounts(st.failedByTool),
		Uptime:         time.Since(st.startTime).Seconds(),
	}
}

func copyCounts(src map[string]int64) map[string]int64 {
	dst := make(map[string]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func topTools(counts map[string]int64, n int) []ToolCount {
	all := make([]ToolCount, 0, len(counts))
	for tool, count := range counts {
		all = append(all, ToolCount{Tool: tool, Count: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Tool < all[j].Tool
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}
