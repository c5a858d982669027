package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"library_lending/models"
	"library_lending/rules"
)

// StandardLoanDays is the fixed lending term; extensions push it forward.
const StandardLoanDays = 14

// Clock supplies "now" so tests can pin time.
type Clock func() time.Time

// LoanService sequences the lending rules against live reader, edition and
// loan state and commits the resulting state transition. Every rule
// violation aborts before any persistent change.
type LoanService struct {
	loans    LoanRepo
	readers  ReaderRepo
	books    BookRepo
	domains  DomainRepo
	settings rules.Settings
	now      Clock
}

func NewLoanService(loans LoanRepo, readers ReaderRepo, books BookRepo, domains DomainRepo, settings rules.Settings, now Clock) *LoanService {
	if now == nil {
		now = time.Now
	}
	return &LoanService{loans: loans, readers: readers, books: books, domains: domains, settings: settings, now: now}
}

// Borrow lends one edition to one reader. Checks run in order and fail
// fast: stock rule, daily cap, period cap, re-borrow cooldown.
func (s *LoanService) Borrow(ctx context.Context, readerID, editionID string) (*models.Loan, error) {
	reader, err := s.readers.ReaderByID(ctx, readerID)
	if err != nil {
		return nil, err
	}
	edition, err := s.books.EditionByID(ctx, editionID)
	if err != nil {
		return nil, err
	}

	eff := s.settings.ForReader(reader.IsLibraryStaff)
	now := s.now()

	if err := s.checkBorrowRules(ctx, reader.ID, edition, eff, now, 1); err != nil {
		return nil, err
	}

	loan := s.newLoan(reader.ID, edition.ID, now)
	if err := s.loans.CommitBorrow(ctx, []*models.Loan{loan}); err != nil {
		return nil, err
	}
	return loan, nil
}

// BorrowMany lends several editions in one request, applying the C
// threshold and the category-diversity rule before any per-edition checks.
// All loans commit in one transaction or none do.
func (s *LoanService) BorrowMany(ctx context.Context, readerID string, editionIDs []string) ([]*models.Loan, error) {
	reader, err := s.readers.ReaderByID(ctx, readerID)
	if err != nil {
		return nil, err
	}

	editions := make([]*models.Edition, 0, len(editionIDs))
	books := make([]models.Book, 0, len(editionIDs))
	for _, id := range editionIDs {
		ed, err := s.books.EditionByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if ed.Book == nil {
			return nil, fmt.Errorf("edition %s: book %s not loaded", ed.ID, ed.BookID)
		}
		editions = append(editions, ed)
		books = append(books, *ed.Book)
	}

	eff := s.settings.ForReader(reader.IsLibraryStaff)
	now := s.now()

	all, err := s.domains.Domains(ctx)
	if err != nil {
		return nil, err
	}
	h := rules.NewHierarchy(all)
	ok, err := rules.IsValidLoanRequest(h, books, eff.MaxPerRequest)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &rules.LoanRuleViolationError{
			Rule:    rules.RuleC,
			Message: fmt.Sprintf("a request must contain 1 to %d books, and 3 or more must span at least 2 categories", eff.MaxPerRequest),
		}
	}

	for _, ed := range editions {
		if !rules.CanLoanFromStock(*ed) {
			return nil, &rules.InsufficientStockError{EditionID: ed.ID}
		}
	}
	// the daily and period caps account for the whole request at once
	if err := s.checkBorrowRules(ctx, reader.ID, nil, eff, now, len(editions)); err != nil {
		return nil, err
	}
	for _, ed := range editions {
		if err := s.checkCooldown(ctx, reader.ID, ed.BookID, eff, now); err != nil {
			return nil, err
		}
	}

	loans := make([]*models.Loan, len(editions))
	for i, ed := range editions {
		loans[i] = s.newLoan(reader.ID, ed.ID, now)
	}
	// deterministic lock order inside the commit
	sort.Slice(loans, func(i, j int) bool { return loans[i].EditionID < loans[j].EditionID })
	if err := s.loans.CommitBorrow(ctx, loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// checkBorrowRules runs the stock, daily-cap and period-cap checks for a
// request of the given size. edition may be nil when the stock rule was
// already applied by the caller.
func (s *LoanService) checkBorrowRules(ctx context.Context, readerID string, edition *models.Edition, eff rules.Effective, now time.Time, requestSize int) error {
	if edition != nil {
		if !rules.CanLoanFromStock(*edition) {
			return &rules.InsufficientStockError{EditionID: edition.ID}
		}
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.loans.LoansInRange(ctx, readerID, dayStart, now)
	if err != nil {
		return err
	}
	if len(today)+requestSize > eff.DailyCap {
		return &rules.LoanRuleViolationError{
			Rule:    rules.RuleNCZ,
			Message: fmt.Sprintf("at most %d loans per day", eff.DailyCap),
		}
	}

	periodStart := now.AddDate(0, 0, -eff.PerDays)
	inPeriod, err := s.loans.LoansInRange(ctx, readerID, periodStart, now)
	if err != nil {
		return err
	}
	if len(inPeriod)+requestSize > eff.NMC {
		return &rules.LoanRuleViolationError{
			Rule:    rules.RuleNMC,
			Message: fmt.Sprintf("at most %d loans in the last %d days", eff.NMC, eff.PerDays),
		}
	}

	if edition != nil {
		return s.checkCooldown(ctx, readerID, edition.BookID, eff, now)
	}
	return nil
}

// checkCooldown applies the DELTA rule: the same book may not be borrowed
// again before the cooldown elapses.
func (s *LoanService) checkCooldown(ctx context.Context, readerID, bookID string, eff rules.Effective, now time.Time) error {
	last, err := s.loans.LastLoanOfBook(ctx, readerID, bookID)
	if err != nil {
		return err
	}
	if last != nil && now.Sub(last.LoanDate) < time.Duration(eff.DeltaDays)*24*time.Hour {
		return &rules.LoanRuleViolationError{
			Rule:    rules.RuleDelta,
			Message: fmt.Sprintf("the same book may be borrowed again only after %d days", eff.DeltaDays),
		}
	}
	return nil
}

func (s *LoanService) newLoan(readerID, editionID string, now time.Time) *models.Loan {
	return &models.Loan{
		ID:        uuid.NewString(),
		ReaderID:  readerID,
		EditionID: editionID,
		LoanDate:  now,
		DueDate:   now.AddDate(0, 0, StandardLoanDays),
	}
}

// Extend grants daysRequested more days on a loan, capped by the LIM
// aggregate: the reader's total extension days across all loans within the
// trailing three months, doubled for staff. Landing exactly on the cap is
// allowed.
func (s *LoanService) Extend(ctx context.Context, loanID string, daysRequested int) (*models.LoanExtension, error) {
	loan, err := s.loans.LoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	reader, err := s.readers.ReaderByID(ctx, loan.ReaderID)
	if err != nil {
		return nil, err
	}

	effLim := s.settings.Lim
	if reader.IsLibraryStaff {
		effLim *= 2
	}

	now := s.now()
	since := now.AddDate(0, -3, 0)
	total, err := s.loans.ExtensionDaysSince(ctx, reader.ID, since)
	if err != nil {
		return nil, err
	}
	if total+daysRequested > effLim {
		return nil, &rules.LoanRuleViolationError{
			Rule:    rules.RuleLim,
			Message: fmt.Sprintf("extensions may total at most %d days over the last 3 months", effLim),
		}
	}

	ext := &models.LoanExtension{
		ID:            uuid.NewString(),
		LoanID:        loan.ID,
		ExtensionDate: now,
		DaysAdded:     daysRequested,
	}
	if err := s.loans.CommitExtension(ctx, loan, ext, effLim, since); err != nil {
		return nil, err
	}
	return ext, nil
}

// Return closes a loan and puts the copy back in stock.
func (s *LoanService) Return(ctx context.Context, loanID string) (*models.Loan, error) {
	loan, err := s.loans.LoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Returned() {
		return nil, fmt.Errorf("loan %s: %w", loanID, rules.ErrAlreadyReturned)
	}
	return s.loans.CommitReturn(ctx, loan.ID, s.now())
}

// LoansOf lists a reader's loans, newest first.
func (s *LoanService) LoansOf(ctx context.Context, readerID string) ([]models.Loan, error) {
	return s.loans.LoansOfReader(ctx, readerID)
}

// ActiveLoansOf lists a reader's open loans.
func (s *LoanService) ActiveLoansOf(ctx context.Context, readerID string) ([]models.Loan, error) {
	return s.loans.ActiveLoans(ctx, readerID)
}
