package game

import "sync"

// MemoryStatsRepo is an in-memory StatsRepo for tests.
type MemoryStatsRepo struct {
	mu    sync.Mutex
	stats GameStats
	has   bool
}

func NewMemoryStatsRepo() *MemoryStatsRepo {
	return &MemoryStatsRepo{}
}

func (r *MemoryStatsRepo) Load() (GameStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.has {
		return DefaultStats(), nil
	}
	return r.stats.Normalize(), nil
}

func (r *MemoryStatsRepo) Save(s GameStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.Achievements = append([]string(nil), s.Achievements...)
	r.stats = s
	r.has = true
	return nil
}
