package db

import (
	"context"

	"gorm.io/gorm"

	"library_lending/models"
)

// Domains

func (r *Repo) Domains(ctx context.Context) ([]models.Domain, error) {
	var domains []models.Domain
	err := r.DB.WithContext(ctx).Order("name").Find(&domains).Error
	return domains, err
}

func (r *Repo) DomainByID(ctx context.Context, id string) (*models.Domain, error) {
	var d models.Domain
	if err := r.DB.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "domain", id)
	}
	return &d, nil
}

func (r *Repo) CreateDomain(ctx context.Context, d *models.Domain) error {
	return r.DB.WithContext(ctx).Create(d).Error
}

func (r *Repo) UpdateDomainParent(ctx context.Context, id string, parentID *string) error {
	res := r.DB.WithContext(ctx).Model(&models.Domain{}).
		Where("id = ?", id).
		Update("parent_id", parentID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "domain", id)
	}
	return nil
}

// Authors

func (r *Repo) Authors(ctx context.Context) ([]models.Author, error) {
	var authors []models.Author
	err := r.DB.WithContext(ctx).Order("name").Find(&authors).Error
	return authors, err
}

func (r *Repo) CreateAuthor(ctx context.Context, a *models.Author) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

// Books

func (r *Repo) BookByID(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	err := r.DB.WithContext(ctx).
		Preload("Authors").
		Preload("ExplicitDomains").
		Preload("Editions").
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "book", id)
	}
	return &b, nil
}

func (r *Repo) Books(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := r.DB.WithContext(ctx).
		Preload("Authors").
		Preload("ExplicitDomains").
		Order("title").
		Find(&books).Error
	return books, err
}

func (r *Repo) BooksByDomainIDs(ctx context.Context, domainIDs []string) ([]models.Book, error) {
	if len(domainIDs) == 0 {
		return nil, nil
	}
	var books []models.Book
	err := r.DB.WithContext(ctx).
		Distinct("lib_books.*").
		Joins("JOIN lib_book_domains bd ON bd.book_id = lib_books.id").
		Where("bd.domain_id IN ?", domainIDs).
		Preload("ExplicitDomains").
		Order("lib_books.title").
		Find(&books).Error
	return books, err
}

func (r *Repo) CreateBook(ctx context.Context, b *models.Book, authorIDs, domainIDs []string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		if len(authorIDs) > 0 {
			var authors []models.Author
			if err := tx.Find(&authors, "id IN ?", authorIDs).Error; err != nil {
				return err
			}
			if err := tx.Model(b).Association("Authors").Append(&authors); err != nil {
				return err
			}
		}
		if len(domainIDs) > 0 {
			var domains []models.Domain
			if err := tx.Find(&domains, "id IN ?", domainIDs).Error; err != nil {
				return err
			}
			if err := tx.Model(b).Association("ExplicitDomains").Append(&domains); err != nil {
				return err
			}
		}
		return nil
	})
}

// Editions

func (r *Repo) EditionByID(ctx context.Context, id string) (*models.Edition, error) {
	var e models.Edition
	err := r.DB.WithContext(ctx).
		Preload("Book").
		Preload("Book.ExplicitDomains").
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "edition", id)
	}
	return &e, nil
}

func (r *Repo) CreateEdition(ctx context.Context, e *models.Edition) error {
	return r.DB.WithContext(ctx).Create(e).Error
}
