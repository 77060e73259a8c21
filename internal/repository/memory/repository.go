package memory

import (
	"sync"

	"github.com/MizunoPK/FantasyFootballHelperScripts-sub005/internal/accuracy"
)

// Repository holds the latest finished sweep for the bot and status API.
type Repository struct {
	summary *accuracy.Summary
	runs    int
	mu      sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) SaveSummary(summary *accuracy.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary = summary
	r.runs++
}

func (r *Repository) GetSummary() *accuracy.Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.summary
}

// Runs counts summaries saved since start.
func (r *Repository) Runs() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.runs
}
