package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jawa0111/horeo-foodapp/internal/models"
)

var ErrAttemptNotFound = errors.New("checkout attempt not found")

// Attempt carries one checkout across the payment and confirmation pages.
// Pages receive only the attempt id and load the rest from the store, so a
// reload recovers its context instead of losing it.
type Attempt struct {
	ID           string          `json:"id"`
	Order        models.Order    `json:"order"`
	Total        decimal.Decimal `json:"total"` // cart total plus service charge
	CartTotal    decimal.Decimal `json:"cartTotal"`
	ClientSecret string          `json:"clientSecret,omitempty"`
	Flow         Flow            `json:"flow"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func NewAttempt(order models.Order, total, cartTotal decimal.Decimal) *Attempt {
	return &Attempt{
		ID:        uuid.NewString(),
		Order:     order,
		Total:     total,
		CartTotal: cartTotal,
		Flow:      Flow{State: StateIdle},
		CreatedAt: time.Now(),
	}
}

// AttemptStore persists attempts for the lifetime of a checkout.
type AttemptStore interface {
	// Save writes the attempt, overwriting any previous version.
	Save(ctx context.Context, attempt *Attempt) error

	// Get returns the attempt or ErrAttemptNotFound.
	Get(ctx context.Context, id string) (*Attempt, error)
}

// MemoryAttemptStore keeps attempts in process memory. It backs tests and
// single-instance deployments running without Redis; entries past the TTL are
// dropped on read.
type MemoryAttemptStore struct {
	mu       sync.RWMutex
	attempts map[string]*Attempt
	ttl      time.Duration
}

func NewMemoryAttemptStore(ttl time.Duration) *MemoryAttemptStore {
	return &MemoryAttemptStore{
		attempts: make(map[string]*Attempt),
		ttl:      ttl,
	}
}

func (s *MemoryAttemptStore) Save(ctx context.Context, attempt *Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *attempt
	s.attempts[attempt.ID] = &copied
	return nil
}

func (s *MemoryAttemptStore) Get(ctx context.Context, id string) (*Attempt, error) {
	s.mu.RLock()
	attempt, ok := s.attempts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrAttemptNotFound
	}
	if s.ttl > 0 && time.Since(attempt.CreatedAt) > s.ttl {
		s.mu.Lock()
		delete(s.attempts, id)
		s.mu.Unlock()
		return nil, ErrAttemptNotFound
	}
	copied := *attempt
	return &copied, nil
}
