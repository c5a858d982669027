package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library_lending/models"
	"library_lending/rules"
)

// ReaderService registers and authenticates readers. Registration applies
// the account-sharing rule: a new reader on an account that already has a
// staff member inherits staff status, one-directionally.
type ReaderService struct {
	readers ReaderRepo
}

func NewReaderService(readers ReaderRepo) *ReaderService {
	return &ReaderService{readers: readers}
}

type RegisterReaderInput struct {
	FirstName      string
	LastName       string
	Address        string
	Phone          string
	Email          string
	Password       string
	IsLibraryStaff bool
	AccountID      string
}

func (s *ReaderService) Register(ctx context.Context, in RegisterReaderInput) (*models.Reader, error) {
	if in.Phone == "" && in.Email == "" {
		return nil, fmt.Errorf("at least one of phone or email is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	staff := in.IsLibraryStaff
	if in.AccountID != "" {
		shared, err := s.readers.ReadersByAccountID(ctx, in.AccountID)
		if err != nil {
			return nil, err
		}
		for _, r := range shared {
			if r.IsLibraryStaff {
				staff = true
				break
			}
		}
	}

	reader := &models.Reader{
		ID:             uuid.NewString(),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Address:        in.Address,
		Phone:          in.Phone,
		Email:          in.Email,
		PasswordHash:   string(hash),
		IsLibraryStaff: staff,
		AccountID:      in.AccountID,
	}
	if err := s.readers.CreateReader(ctx, reader); err != nil {
		return nil, err
	}
	return reader, nil
}

func (s *ReaderService) Get(ctx context.Context, id string) (*models.Reader, error) {
	return s.readers.ReaderByID(ctx, id)
}

func (s *ReaderService) List(ctx context.Context) ([]models.Reader, error) {
	return s.readers.Readers(ctx)
}

// Authenticate verifies a reader's email/password pair.
func (s *ReaderService) Authenticate(ctx context.Context, email, password string) (*models.Reader, error) {
	reader, err := s.readers.ReaderByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", rules.ErrNotFound)
	}
	if bcrypt.CompareHashAndPassword([]byte(reader.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("invalid credentials: %w", rules.ErrNotFound)
	}
	return reader, nil
}
