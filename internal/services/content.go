package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/AnshRaj112/captionly-backend/internal/models"
)

type ContentStore interface {
	Create(ctx context.Context, c *models.GeneratedContent) error
	ListByPhoneNumber(ctx context.Context, phoneNumber string) ([]models.GeneratedContent, error)
	Delete(ctx context.Context, id string) error
}

// ContentService saves, lists and removes generated content. The phone
// number is whatever the client claims; it is not checked against a session.
type ContentService struct {
	store ContentStore
}

func NewContentService(store ContentStore) *ContentService {
	return &ContentService{store: store}
}

func (s *ContentService) Save(ctx context.Context, phoneNumber, topic string, data []string) (*models.GeneratedContent, error) {
	if strings.TrimSpace(phoneNumber) == "" {
		return nil, fmt.Errorf("%w: phone_number header is required", ErrValidation)
	}

	c := &models.GeneratedContent{
		PhoneNumber: phoneNumber,
		Topic:       topic,
		Data:        data,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContentService) ListForUser(ctx context.Context, phoneNumber string) ([]models.GeneratedContent, error) {
	if strings.TrimSpace(phoneNumber) == "" {
		return nil, fmt.Errorf("%w: phone_number is required", ErrValidation)
	}
	return s.store.ListByPhoneNumber(ctx, phoneNumber)
}

// Remove deletes the record with id. Unknown ids are not an error.
func (s *ContentService) Remove(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: captionId is required", ErrValidation)
	}
	return s.store.Delete(ctx, id)
}
