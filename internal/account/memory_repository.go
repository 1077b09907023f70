package account

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Account
}

// NewMemoryRepository constructs an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Account)}
}

func (r *memoryRepository) Create(_ context.Context, account Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[account.ID]; exists {
		return errors.New("account exists")
	}
	r.storage[account.ID] = account
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.storage[id]
	if !ok {
		return Account{}, errors.New("account not found")
	}
	return account, nil
}

func (r *memoryRepository) GetByPartnerWalletID(_ context.Context, partnerWalletID int64) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, account := range r.storage {
		if account.PartnerWalletID == partnerWalletID {
			return account, nil
		}
	}
	return Account{}, errors.New("account not found")
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.storage[id]
	if !ok {
		return errors.New("account not found")
	}
	account.Status = status
	r.storage[id] = account
	return nil
}
