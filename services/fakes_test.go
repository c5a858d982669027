package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"library_lending/models"
	"library_lending/rules"
)

// memStore is an in-memory stand-in for db.Repo implementing every
// repository interface the services depend on.
type memStore struct {
	readers    map[string]*models.Reader
	domains    map[string]*models.Domain
	books      map[string]*models.Book
	editions   map[string]*models.Edition
	loans      map[string]*models.Loan
	extensions []*models.LoanExtension
}

func newMemStore() *memStore {
	return &memStore{
		readers:  map[string]*models.Reader{},
		domains:  map[string]*models.Domain{},
		books:    map[string]*models.Book{},
		editions: map[string]*models.Edition{},
		loans:    map[string]*models.Loan{},
	}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, rules.ErrNotFound)
}

// --- ReaderRepo ---

func (m *memStore) ReaderByID(_ context.Context, id string) (*models.Reader, error) {
	r, ok := m.readers[id]
	if !ok {
		return nil, notFound("reader", id)
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) ReaderByEmail(_ context.Context, email string) (*models.Reader, error) {
	for _, r := range m.readers {
		if r.Email == email {
			cp := *r
			return &cp, nil
		}
	}
	return nil, notFound("reader", email)
}

func (m *memStore) ReadersByAccountID(_ context.Context, accountID string) ([]models.Reader, error) {
	var out []models.Reader
	for _, r := range m.readers {
		if r.AccountID == accountID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memStore) Readers(_ context.Context) ([]models.Reader, error) {
	var out []models.Reader
	for _, r := range m.readers {
		out = append(out, *r)
	}
	return out, nil
}

func (m *memStore) CreateReader(_ context.Context, r *models.Reader) error {
	m.readers[r.ID] = r
	return nil
}

// --- BookRepo ---

func (m *memStore) BookByID(_ context.Context, id string) (*models.Book, error) {
	b, ok := m.books[id]
	if !ok {
		return nil, notFound("book", id)
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) Books(_ context.Context) ([]models.Book, error) {
	var out []models.Book
	for _, b := range m.books {
		out = append(out, *b)
	}
	return out, nil
}

func (m *memStore) BooksByDomainIDs(_ context.Context, domainIDs []string) ([]models.Book, error) {
	want := map[string]struct{}{}
	for _, id := range domainIDs {
		want[id] = struct{}{}
	}
	var out []models.Book
	for _, b := range m.books {
		for _, d := range b.ExplicitDomains {
			if _, ok := want[d.ID]; ok {
				out = append(out, *b)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) CreateBook(_ context.Context, b *models.Book, _, domainIDs []string) error {
	for _, id := range domainIDs {
		if d, ok := m.domains[id]; ok {
			b.ExplicitDomains = append(b.ExplicitDomains, *d)
		}
	}
	m.books[b.ID] = b
	return nil
}

func (m *memStore) EditionByID(_ context.Context, id string) (*models.Edition, error) {
	e, ok := m.editions[id]
	if !ok {
		return nil, notFound("edition", id)
	}
	cp := *e
	if b, ok := m.books[e.BookID]; ok {
		bcp := *b
		cp.Book = &bcp
	}
	return &cp, nil
}

func (m *memStore) CreateEdition(_ context.Context, e *models.Edition) error {
	m.editions[e.ID] = e
	return nil
}

// --- DomainRepo ---

func (m *memStore) Domains(_ context.Context) ([]models.Domain, error) {
	var out []models.Domain
	for _, d := range m.domains {
		out = append(out, *d)
	}
	return out, nil
}

func (m *memStore) DomainByID(_ context.Context, id string) (*models.Domain, error) {
	d, ok := m.domains[id]
	if !ok {
		return nil, notFound("domain", id)
	}
	cp := *d
	return &cp, nil
}

func (m *memStore) CreateDomain(_ context.Context, d *models.Domain) error {
	m.domains[d.ID] = d
	return nil
}

func (m *memStore) UpdateDomainParent(_ context.Context, id string, parentID *string) error {
	d, ok := m.domains[id]
	if !ok {
		return notFound("domain", id)
	}
	d.ParentID = parentID
	return nil
}

// --- LoanRepo ---

func (m *memStore) LoanByID(_ context.Context, id string) (*models.Loan, error) {
	l, ok := m.loans[id]
	if !ok {
		return nil, notFound("loan", id)
	}
	cp := *l
	for _, e := range m.extensions {
		if e.LoanID == id {
			cp.Extensions = append(cp.Extensions, *e)
		}
	}
	return &cp, nil
}

func (m *memStore) LoansInRange(_ context.Context, readerID string, from, to time.Time) ([]models.Loan, error) {
	var out []models.Loan
	for _, l := range m.loans {
		if l.ReaderID == readerID && !l.LoanDate.Before(from) && !l.LoanDate.After(to) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memStore) LastLoanOfBook(_ context.Context, readerID, bookID string) (*models.Loan, error) {
	var last *models.Loan
	for _, l := range m.loans {
		ed, ok := m.editions[l.EditionID]
		if !ok || ed.BookID != bookID || l.ReaderID != readerID {
			continue
		}
		if last == nil || l.LoanDate.After(last.LoanDate) {
			last = l
		}
	}
	if last == nil {
		return nil, nil
	}
	cp := *last
	return &cp, nil
}

func (m *memStore) ExtensionDaysSince(_ context.Context, readerID string, since time.Time) (int, error) {
	total := 0
	for _, e := range m.extensions {
		l, ok := m.loans[e.LoanID]
		if !ok || l.ReaderID != readerID || e.ExtensionDate.Before(since) {
			continue
		}
		total += e.DaysAdded
	}
	return total, nil
}

func (m *memStore) ActiveLoans(_ context.Context, readerID string) ([]models.Loan, error) {
	var out []models.Loan
	for _, l := range m.loans {
		if l.ReaderID == readerID && l.ReturnDate == nil {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *memStore) LoansOfReader(_ context.Context, readerID string) ([]models.Loan, error) {
	var out []models.Loan
	for _, l := range m.loans {
		if l.ReaderID == readerID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoanDate.After(out[j].LoanDate) })
	return out, nil
}

func (m *memStore) CommitBorrow(_ context.Context, loans []*models.Loan) error {
	for _, loan := range loans {
		ed, ok := m.editions[loan.EditionID]
		if !ok {
			return notFound("edition", loan.EditionID)
		}
		if !rules.CanLoanFromStock(*ed) {
			return &rules.InsufficientStockError{EditionID: ed.ID}
		}
	}
	for _, loan := range loans {
		m.editions[loan.EditionID].CurrentStock--
		cp := *loan
		m.loans[loan.ID] = &cp
	}
	return nil
}

func (m *memStore) CommitExtension(_ context.Context, loan *models.Loan, ext *models.LoanExtension, _ int, _ time.Time) error {
	stored, ok := m.loans[loan.ID]
	if !ok {
		return notFound("loan", loan.ID)
	}
	cp := *ext
	m.extensions = append(m.extensions, &cp)
	stored.DueDate = stored.DueDate.AddDate(0, 0, ext.DaysAdded)
	return nil
}

func (m *memStore) CommitReturn(_ context.Context, loanID string, when time.Time) (*models.Loan, error) {
	l, ok := m.loans[loanID]
	if !ok {
		return nil, notFound("loan", loanID)
	}
	if l.ReturnDate != nil {
		return nil, fmt.Errorf("loan %s: %w", loanID, rules.ErrAlreadyReturned)
	}
	t := when
	l.ReturnDate = &t
	if ed, ok := m.editions[l.EditionID]; ok {
		ed.CurrentStock++
	}
	cp := *l
	return &cp, nil
}

// --- fixture helpers ---

func (m *memStore) addReader(id string, staff bool) *models.Reader {
	r := &models.Reader{ID: id, FirstName: "R", LastName: id, Email: id + "@lib.test", IsLibraryStaff: staff}
	m.readers[id] = r
	return r
}

func (m *memStore) addDomain(id, name, parentID string) *models.Domain {
	d := &models.Domain{ID: id, Name: name}
	if parentID != "" {
		p := parentID
		d.ParentID = &p
	}
	m.domains[id] = d
	return d
}

func (m *memStore) addBook(id, title string, domainIDs ...string) *models.Book {
	b := &models.Book{ID: id, Title: title}
	for _, did := range domainIDs {
		if d, ok := m.domains[did]; ok {
			b.ExplicitDomains = append(b.ExplicitDomains, *d)
		}
	}
	m.books[id] = b
	return b
}

func (m *memStore) addEdition(id, bookID string, initial, current, readingRoom int) *models.Edition {
	e := &models.Edition{
		ID: id, BookID: bookID, Publisher: "P",
		InitialStock: initial, CurrentStock: current, ReadingRoomOnlyCount: readingRoom,
	}
	m.editions[id] = e
	return e
}

func (m *memStore) addLoan(id, readerID, editionID string, loanDate time.Time) *models.Loan {
	l := &models.Loan{
		ID: id, ReaderID: readerID, EditionID: editionID,
		LoanDate: loanDate, DueDate: loanDate.AddDate(0, 0, StandardLoanDays),
	}
	m.loans[id] = l
	return l
}

func (m *memStore) addExtension(loanID string, date time.Time, days int) {
	m.extensions = append(m.extensions, &models.LoanExtension{
		ID: fmt.Sprintf("ext-%d", len(m.extensions)), LoanID: loanID,
		ExtensionDate: date, DaysAdded: days,
	})
}
