package store

import (
	"context"
	"sync"
	"time"

	"github.com/AnshRaj112/captionly-backend/internal/models"
	"github.com/google/uuid"
)

// MemoryAccountStore keeps accounts in process memory. For local runs
// without a database, and for tests.
type MemoryAccountStore struct {
	mu       sync.Mutex
	accounts map[string]models.UserAccount
}

func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{accounts: make(map[string]models.UserAccount)}
}

func (s *MemoryAccountStore) SetAccessCode(_ context.Context, phoneNumber, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.accounts[phoneNumber]
	acc.PhoneNumber = phoneNumber
	acc.AccessCode = code
	acc.UpdatedAt = time.Now().UTC()
	s.accounts[phoneNumber] = acc
	return nil
}

func (s *MemoryAccountStore) GetAccount(_ context.Context, phoneNumber string) (*models.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[phoneNumber]
	if !ok {
		return nil, ErrNotFound
	}
	return &acc, nil
}

func (s *MemoryAccountStore) ConsumeAccessCode(_ context.Context, phoneNumber, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[phoneNumber]
	if !ok || acc.AccessCode != code {
		return false, nil
	}
	acc.AccessCode = ""
	acc.UpdatedAt = time.Now().UTC()
	s.accounts[phoneNumber] = acc
	return true, nil
}

type MemoryContentStore struct {
	mu       sync.Mutex
	contents map[string]models.GeneratedContent
}

func NewMemoryContentStore() *MemoryContentStore {
	return &MemoryContentStore{contents: make(map[string]models.GeneratedContent)}
}

func (s *MemoryContentStore) Create(_ context.Context, c *models.GeneratedContent) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.Data == nil {
		c.Data = []string{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *c
	stored.Data = append([]string(nil), c.Data...)
	s.contents[c.ID] = stored
	return nil
}

func (s *MemoryContentStore) ListByPhoneNumber(_ context.Context, phoneNumber string) ([]models.GeneratedContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.GeneratedContent{}
	for _, c := range s.contents {
		if c.PhoneNumber == phoneNumber {
			c.Data = append([]string{}, c.Data...)
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *MemoryContentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contents, id)
	return nil
}
