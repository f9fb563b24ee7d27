package repository

import (
	"sync"

	"loan-ledger/domain"
)

// CalculationRepositoryMemory is an in-memory implementation of
// CalculationRepository. Storage of finished calculations is incidental,
// nothing reads it back through the core flow.
type CalculationRepositoryMemory struct {
	mu   sync.Mutex
	data []domain.CalculationResult
}

// NewCalculationRepositoryMemory creates a new in-memory calculation repository.
func NewCalculationRepositoryMemory() *CalculationRepositoryMemory {
	return &CalculationRepositoryMemory{
		data: []domain.CalculationResult{},
	}
}

// Save stores the calculation result in memory.
func (r *CalculationRepositoryMemory) Save(
	terms domain.LoanTerms,
	result domain.CalculationResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, result)
	return nil
}

// Len reports how many calculations were stored.
func (r *CalculationRepositoryMemory) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}
