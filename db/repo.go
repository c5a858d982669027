package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"library_lending/models"
	"library_lending/rules"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

// notFound translates gorm's record-not-found into the domain error kind;
// anything else propagates unchanged.
func notFound(err error, kind, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, rules.ErrNotFound)
	}
	return err
}

// Readers

func (r *Repo) ReaderByID(ctx context.Context, id string) (*models.Reader, error) {
	var reader models.Reader
	if err := r.DB.WithContext(ctx).First(&reader, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "reader", id)
	}
	return &reader, nil
}

func (r *Repo) ReaderByEmail(ctx context.Context, email string) (*models.Reader, error) {
	var reader models.Reader
	if err := r.DB.WithContext(ctx).First(&reader, "email = ?", email).Error; err != nil {
		return nil, notFound(err, "reader", email)
	}
	return &reader, nil
}

func (r *Repo) ReadersByAccountID(ctx context.Context, accountID string) ([]models.Reader, error) {
	var readers []models.Reader
	err := r.DB.WithContext(ctx).Where("account_id = ?", accountID).Find(&readers).Error
	return readers, err
}

func (r *Repo) Readers(ctx context.Context) ([]models.Reader, error) {
	var readers []models.Reader
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&readers).Error
	return readers, err
}

func (r *Repo) CreateReader(ctx context.Context, reader *models.Reader) error {
	return r.DB.WithContext(ctx).Create(reader).Error
}
