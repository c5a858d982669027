package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"library_lending/models"
	"library_lending/rules"
)

// BookService handles cataloguing: new books must respect the max-domain
// count and the ancestor/descendant exclusivity rules before anything is
// persisted.
type BookService struct {
	books    BookRepo
	domains  DomainRepo
	settings rules.Settings
}

func NewBookService(books BookRepo, domains DomainRepo, settings rules.Settings) *BookService {
	return &BookService{books: books, domains: domains, settings: settings}
}

type AddBookInput struct {
	Title     string
	AuthorIDs []string
	DomainIDs []string
}

func (s *BookService) Add(ctx context.Context, in AddBookInput) (*models.Book, error) {
	all, err := s.domains.Domains(ctx)
	if err != nil {
		return nil, err
	}
	h := rules.NewHierarchy(all)
	for _, id := range in.DomainIDs {
		if _, ok := h.Domain(id); !ok {
			return nil, fmt.Errorf("domain %s: %w", id, rules.ErrNotFound)
		}
	}
	if err := rules.ValidateCataloguing(h, in.DomainIDs, s.settings.Domenii); err != nil {
		return nil, err
	}

	book := &models.Book{ID: uuid.NewString(), Title: in.Title}
	if err := s.books.CreateBook(ctx, book, in.AuthorIDs, in.DomainIDs); err != nil {
		return nil, err
	}
	return s.books.BookByID(ctx, book.ID)
}

func (s *BookService) Get(ctx context.Context, id string) (*models.Book, error) {
	return s.books.BookByID(ctx, id)
}

func (s *BookService) List(ctx context.Context) ([]models.Book, error) {
	return s.books.Books(ctx)
}

// ByDomain lists books explicitly catalogued under the domain or any of its
// descendants.
func (s *BookService) ByDomain(ctx context.Context, domainID string) ([]models.Book, error) {
	all, err := s.domains.Domains(ctx)
	if err != nil {
		return nil, err
	}
	h := rules.NewHierarchy(all)
	if _, ok := h.Domain(domainID); !ok {
		return nil, fmt.Errorf("domain %s: %w", domainID, rules.ErrNotFound)
	}
	ids := append(h.DescendantIDs(domainID), domainID)
	return s.books.BooksByDomainIDs(ctx, ids)
}

type AddEditionInput struct {
	BookID               string
	Publisher            string
	Year                 int
	EditionNumber        string
	PageCount            int
	BookType             string
	InitialStock         int
	ReadingRoomOnlyCount int
}

func (s *BookService) AddEdition(ctx context.Context, in AddEditionInput) (*models.Edition, error) {
	if _, err := s.books.BookByID(ctx, in.BookID); err != nil {
		return nil, err
	}
	if in.InitialStock <= 0 {
		return nil, fmt.Errorf("initial stock must be positive")
	}
	if in.ReadingRoomOnlyCount < 0 || in.ReadingRoomOnlyCount > in.InitialStock {
		return nil, fmt.Errorf("reading-room count must be between 0 and the initial stock")
	}

	e := &models.Edition{
		ID:                   uuid.NewString(),
		BookID:               in.BookID,
		Publisher:            in.Publisher,
		Year:                 in.Year,
		EditionNumber:        in.EditionNumber,
		PageCount:            in.PageCount,
		BookType:             in.BookType,
		InitialStock:         in.InitialStock,
		CurrentStock:         in.InitialStock,
		ReadingRoomOnlyCount: in.ReadingRoomOnlyCount,
	}
	if err := s.books.CreateEdition(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
