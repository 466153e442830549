package store

import (
	"context"
	"sync"

	models "github.com/nampd/membership-portal-go/models"
)

// MemoryStore keeps both collections in process memory. It backs local
// development when no MongoDB is configured, and the service tests.
type MemoryStore struct {
	mu       sync.RWMutex
	members  []models.MemberProfile
	payments []models.Payment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewSeededMemoryStore returns a MemoryStore preloaded with the demo dataset.
func NewSeededMemoryStore() *MemoryStore {
	return &MemoryStore{
		members:  SeedMembers(),
		payments: SeedPayments(),
	}
}

func (s *MemoryStore) GetMember(ctx context.Context, id string) (models.MemberProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.ID == id {
			return m, nil
		}
	}
	return models.MemberProfile{}, ErrMemberNotFound
}

func (s *MemoryStore) GetMemberByEmail(ctx context.Context, email string) (models.MemberProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.Email == email {
			return m, nil
		}
	}
	return models.MemberProfile{}, ErrMemberNotFound
}

func (s *MemoryStore) ListMembers(ctx context.Context) ([]models.MemberProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MemberProfile, len(s.members))
	copy(out, s.members)
	return out, nil
}

func (s *MemoryStore) InsertMember(ctx context.Context, m models.MemberProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.members {
		if existing.ID == m.ID {
			return ErrMemberExists
		}
	}
	s.members = append(s.members, m)
	return nil
}

func (s *MemoryStore) UpdateMember(ctx context.Context, m models.MemberProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.members {
		if existing.ID == m.ID {
			s.members[i] = m
			return nil
		}
	}
	return ErrMemberNotFound
}

func (s *MemoryStore) InsertPayment(ctx context.Context, p models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// newest first, matching ListPayments ordering
	s.payments = append([]models.Payment{p}, s.payments...)
	return nil
}

func (s *MemoryStore) ListPayments(ctx context.Context) ([]models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Payment, len(s.payments))
	copy(out, s.payments)
	return out, nil
}
