package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/AnshRaj112/captionly-backend/internal/models"
	"github.com/AnshRaj112/captionly-backend/internal/store"
)

const (
	accessCodeMin   = 100000
	accessCodeRange = 900000 // codes fall in [100000, 999999]
)

type AccountStore interface {
	SetAccessCode(ctx context.Context, phoneNumber, code string) error
	GetAccount(ctx context.Context, phoneNumber string) (*models.UserAccount, error)
	ConsumeAccessCode(ctx context.Context, phoneNumber, code string) (bool, error)
}

type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// AccessCodeService issues one-time access codes over SMS and validates them.
type AccessCodeService struct {
	accounts    AccountStore
	sms         SMSSender
	countryCode string
	newCode     func() (string, error)
}

func NewAccessCodeService(accounts AccountStore, sms SMSSender, countryCode string) *AccessCodeService {
	return &AccessCodeService{
		accounts:    accounts,
		sms:         sms,
		countryCode: countryCode,
		newCode:     GenerateAccessCode,
	}
}

// GenerateAccessCode returns a uniformly random six digit code.
func GenerateAccessCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(accessCodeRange))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+accessCodeMin, 10), nil
}

// Issue stores a fresh code for phoneNumber, replacing any previous one, and
// texts it to the user. A failed send leaves the stored code in place.
func (s *AccessCodeService) Issue(ctx context.Context, phoneNumber string) (string, error) {
	if strings.TrimSpace(phoneNumber) == "" {
		return "", fmt.Errorf("%w: phoneNumber is required", ErrValidation)
	}

	code, err := s.newCode()
	if err != nil {
		return "", fmt.Errorf("generate access code: %w", err)
	}

	if err := s.accounts.SetAccessCode(ctx, phoneNumber, code); err != nil {
		return "", err
	}

	body := fmt.Sprintf("Your access code is: %s", code)
	if err := s.sms.Send(ctx, s.countryCode+phoneNumber, body); err != nil {
		return "", err
	}

	return code, nil
}

// Validate consumes the stored code when it equals accessCode.
func (s *AccessCodeService) Validate(ctx context.Context, phoneNumber, accessCode string) error {
	if strings.TrimSpace(phoneNumber) == "" {
		return fmt.Errorf("%w: phoneNumber is required", ErrValidation)
	}

	acc, err := s.accounts.GetAccount(ctx, phoneNumber)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return err
	}

	if acc.AccessCode == "" || acc.AccessCode != accessCode {
		return ErrInvalidAccessCode
	}

	// Another request may have consumed the code since the read above.
	ok, err := s.accounts.ConsumeAccessCode(ctx, phoneNumber, accessCode)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidAccessCode
	}
	return nil
}
