package portfolio

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
)

// MemoryRepository is a process-local Repository.
type MemoryRepository struct {
	mu         sync.RWMutex
	portfolios map[string]Portfolio
	holdings   map[string]map[string]Holding // portfolio ID -> holding ID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		portfolios: make(map[string]Portfolio),
		holdings:   make(map[string]map[string]Holding),
	}
}

func (r *MemoryRepository) CreatePortfolio(_ context.Context, p Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.portfolios[p.ID]; ok {
		return fmt.Errorf("portfolio %s: %w: already exists", p.ID, ErrInvalidInput)
	}
	r.portfolios[p.ID] = p
	r.holdings[p.ID] = make(map[string]Holding)
	return nil
}

func (r *MemoryRepository) GetPortfolio(_ context.Context, id string) (Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.portfolios[id]
	if !ok {
		return Portfolio{}, fmt.Errorf("portfolio %s: %w", id, ErrNotFound)
	}
	return p, nil
}

func (r *MemoryRepository) ListPortfolios(_ context.Context) ([]Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Portfolio, 0, len(r.portfolios))
	for _, p := range r.portfolios {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Portfolio) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *MemoryRepository) DeletePortfolio(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.portfolios[id]; !ok {
		return fmt.Errorf("portfolio %s: %w", id, ErrNotFound)
	}
	delete(r.portfolios, id)
	delete(r.holdings, id)
	return nil
}

func (r *MemoryRepository) SaveHolding(_ context.Context, h Holding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	hs, ok := r.holdings[h.PortfolioID]
	if !ok {
		return fmt.Errorf("portfolio %s: %w", h.PortfolioID, ErrNotFound)
	}
	hs[h.ID] = h
	return nil
}

func (r *MemoryRepository) DeleteHolding(_ context.Context, portfolioID, holdingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	hs, ok := r.holdings[portfolioID]
	if !ok {
		return fmt.Errorf("portfolio %s: %w", portfolioID, ErrNotFound)
	}
	if _, ok := hs[holdingID]; !ok {
		return fmt.Errorf("holding %s: %w", holdingID, ErrNotFound)
	}
	delete(hs, holdingID)
	return nil
}

func (r *MemoryRepository) ListHoldings(_ context.Context, portfolioID string) ([]Holding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hs, ok := r.holdings[portfolioID]
	if !ok {
		return nil, fmt.Errorf("portfolio %s: %w", portfolioID, ErrNotFound)
	}
	out := make([]Holding, 0, len(hs))
	for _, h := range hs {
		out = append(out, h)
	}
	slices.SortFunc(out, func(a, b Holding) int {
		return cmp.Or(cmp.Compare(a.Symbol, b.Symbol), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}
