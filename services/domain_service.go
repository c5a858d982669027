package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"library_lending/models"
	"library_lending/rules"
)

// DomainService manages the categorization tree. Parent changes that would
// introduce a cycle are refused.
type DomainService struct {
	domains DomainRepo
}

func NewDomainService(domains DomainRepo) *DomainService {
	return &DomainService{domains: domains}
}

func (s *DomainService) Create(ctx context.Context, name string, parentID *string) (*models.Domain, error) {
	if parentID != nil {
		if _, err := s.domains.DomainByID(ctx, *parentID); err != nil {
			return nil, err
		}
	}
	d := &models.Domain{ID: uuid.NewString(), Name: name, ParentID: parentID}
	if err := s.domains.CreateDomain(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DomainService) List(ctx context.Context) ([]models.Domain, error) {
	return s.domains.Domains(ctx)
}

// Reparent moves a domain under a new parent (or to the root when parentID
// is nil) after checking the move cannot close a cycle.
func (s *DomainService) Reparent(ctx context.Context, id string, parentID *string) error {
	if _, err := s.domains.DomainByID(ctx, id); err != nil {
		return err
	}
	if parentID != nil {
		all, err := s.domains.Domains(ctx)
		if err != nil {
			return err
		}
		h := rules.NewHierarchy(all)
		if _, ok := h.Domain(*parentID); !ok {
			return fmt.Errorf("domain %s: %w", *parentID, rules.ErrNotFound)
		}
		cyclic, err := h.WouldCycle(id, *parentID)
		if err != nil {
			return err
		}
		if cyclic {
			return fmt.Errorf("reparenting %s under %s: %w", id, *parentID, rules.ErrDomainCycle)
		}
	}
	return s.domains.UpdateDomainParent(ctx, id, parentID)
}
