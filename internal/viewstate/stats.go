package viewstate

import "github.com/nordvik/glance/internal/recall"

// StatsRequest correlates a stats fetch with the state that issued it.
type StatsRequest struct {
	Gen uint64
}

// StatsModel owns the one-shot aggregate statistics view. No polling, no
// pagination: a successful fetch replaces state wholesale.
type StatsModel struct {
	Stats   *recall.SystemStats
	Loading bool
	Err     error

	gen uint64
}

// Start begins a stats fetch, superseding any in-flight one.
func (m *StatsModel) Start() StatsRequest {
	m.gen++
	m.Loading = true
	m.Err = nil
	return StatsRequest{Gen: m.gen}
}

// Apply applies a completion and reports whether it was current.
func (m *StatsModel) Apply(req StatsRequest, stats *recall.SystemStats, err error) bool {
	if req.Gen != m.gen {
		return false
	}
	m.Loading = false
	if err != nil {
		m.Err = err
		return true
	}
	m.Stats = stats
	m.Err = nil
	return true
}
