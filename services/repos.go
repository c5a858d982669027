package services

import (
	"context"
	"time"

	"library_lending/models"
)

// Repository contracts the services depend on. db.Repo implements all of
// them over Postgres; the tests use in-memory fakes. Lookups of absent
// entities return errors wrapping rules.ErrNotFound.

type ReaderRepo interface {
	ReaderByID(ctx context.Context, id string) (*models.Reader, error)
	ReaderByEmail(ctx context.Context, email string) (*models.Reader, error)
	ReadersByAccountID(ctx context.Context, accountID string) ([]models.Reader, error)
	Readers(ctx context.Context) ([]models.Reader, error)
	CreateReader(ctx context.Context, r *models.Reader) error
}

type BookRepo interface {
	// BookByID loads the book with its authors, explicit domains and editions.
	BookByID(ctx context.Context, id string) (*models.Book, error)
	Books(ctx context.Context) ([]models.Book, error)
	BooksByDomainIDs(ctx context.Context, domainIDs []string) ([]models.Book, error)
	CreateBook(ctx context.Context, b *models.Book, authorIDs, domainIDs []string) error

	// EditionByID loads the edition with its owning book and that book's
	// explicit domains attached.
	EditionByID(ctx context.Context, id string) (*models.Edition, error)
	CreateEdition(ctx context.Context, e *models.Edition) error
}

type DomainRepo interface {
	Domains(ctx context.Context) ([]models.Domain, error)
	DomainByID(ctx context.Context, id string) (*models.Domain, error)
	CreateDomain(ctx context.Context, d *models.Domain) error
	UpdateDomainParent(ctx context.Context, id string, parentID *string) error
}

type LoanRepo interface {
	// LoanByID loads the loan with its edition and extensions attached.
	LoanByID(ctx context.Context, id string) (*models.Loan, error)
	LoansInRange(ctx context.Context, readerID string, from, to time.Time) ([]models.Loan, error)
	LastLoanOfBook(ctx context.Context, readerID, bookID string) (*models.Loan, error)
	ExtensionDaysSince(ctx context.Context, readerID string, since time.Time) (int, error)
	ActiveLoans(ctx context.Context, readerID string) ([]models.Loan, error)
	LoansOfReader(ctx context.Context, readerID string) ([]models.Loan, error)

	// CommitBorrow creates the loans and decrements each edition's stock in
	// one transaction, holding the edition rows locked so concurrent borrows
	// serialize per edition. The 10% stock rule is re-checked under the lock
	// and fails with InsufficientStockError if another borrow won the race.
	CommitBorrow(ctx context.Context, loans []*models.Loan) error

	// CommitExtension creates the extension and pushes the loan's due date
	// forward, holding the reader row locked so concurrent extensions
	// serialize per reader. The reader-wide LIM aggregate is re-checked
	// under the lock against limitDays over extensions since the given time.
	// The due-date push must apply relative to the stored row, never as an
	// absolute value derived from the caller's loan snapshot: that snapshot
	// was read unlocked and may predate another extension's push.
	CommitExtension(ctx context.Context, loan *models.Loan, ext *models.LoanExtension, limitDays int, since time.Time) error

	// CommitReturn closes the loan and increments the edition's stock,
	// holding both rows locked. Fails with ErrAlreadyReturned if the loan
	// was closed concurrently.
	CommitReturn(ctx context.Context, loanID string, when time.Time) (*models.Loan, error)
}
