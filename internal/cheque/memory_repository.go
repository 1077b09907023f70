package cheque

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/meridian-pay/meridian_pay/internal/partner"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Deposit
}

// NewMemoryRepository constructs an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Deposit)}
}

func (r *memoryRepository) Create(_ context.Context, deposit Deposit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[deposit.ID]; exists {
		return errors.New("deposit exists")
	}
	r.storage[deposit.ID] = deposit
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Deposit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	deposit, ok := r.storage[id]
	if !ok {
		return Deposit{}, errors.New("deposit not found")
	}
	return deposit, nil
}

func (r *memoryRepository) GetByPartnerPayinID(_ context.Context, partnerPayinID int64) (Deposit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, deposit := range r.storage {
		if deposit.PartnerPayinID == partnerPayinID {
			return deposit, nil
		}
	}
	return Deposit{}, errors.New("deposit not found")
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id string, status partner.DepositStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	deposit, ok := r.storage[id]
	if !ok {
		return errors.New("deposit not found")
	}
	deposit.Status = status
	deposit.UpdatedAt = time.Now().UTC()
	r.storage[id] = deposit
	return nil
}
