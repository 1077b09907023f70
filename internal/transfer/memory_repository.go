package transfer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/meridian-pay/meridian_pay/internal/partner"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Payout
}

// NewMemoryRepository constructs an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Payout)}
}

func (r *memoryRepository) Create(_ context.Context, payout Payout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[payout.ID]; exists {
		return errors.New("payout exists")
	}
	r.storage[payout.ID] = payout
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Payout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payout, ok := r.storage[id]
	if !ok {
		return Payout{}, errors.New("payout not found")
	}
	return payout, nil
}

func (r *memoryRepository) GetByPartnerPayoutID(_ context.Context, partnerPayoutID int64) (Payout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, payout := range r.storage {
		if payout.PartnerPayoutID == partnerPayoutID {
			return payout, nil
		}
	}
	return Payout{}, errors.New("payout not found")
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id string, status partner.TransferStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	payout, ok := r.storage[id]
	if !ok {
		return errors.New("payout not found")
	}
	payout.Status = status
	payout.UpdatedAt = time.Now().UTC()
	r.storage[id] = payout
	return nil
}
