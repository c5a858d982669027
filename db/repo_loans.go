package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"library_lending/models"
	"library_lending/rules"
)

func (r *Repo) LoanByID(ctx context.Context, id string) (*models.Loan, error) {
	var l models.Loan
	err := r.DB.WithContext(ctx).
		Preload("Edition").
		Preload("Extensions").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "loan", id)
	}
	return &l, nil
}

func (r *Repo) LoansInRange(ctx context.Context, readerID string, from, to time.Time) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.DB.WithContext(ctx).
		Where("reader_id = ? AND loan_date >= ? AND loan_date <= ?", readerID, from, to).
		Find(&loans).Error
	return loans, err
}

// LastLoanOfBook finds the reader's most recent loan of any edition of the
// book; nil without error when there is none.
func (r *Repo) LastLoanOfBook(ctx context.Context, readerID, bookID string) (*models.Loan, error) {
	var l models.Loan
	err := r.DB.WithContext(ctx).
		Joins(fmt.Sprintf("JOIN %s e ON e.id = %s.edition_id", models.EditionTable, models.LoanTable)).
		Where(models.LoanTable+".reader_id = ? AND e.book_id = ?", readerID, bookID).
		Order(models.LoanTable + ".loan_date DESC").
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repo) ExtensionDaysSince(ctx context.Context, readerID string, since time.Time) (int, error) {
	return extensionDaysSince(r.DB.WithContext(ctx), readerID, since)
}

func extensionDaysSince(tx *gorm.DB, readerID string, since time.Time) (int, error) {
	var total int64
	err := tx.Model(&models.LoanExtension{}).
		Joins(fmt.Sprintf("JOIN %s l ON l.id = %s.loan_id", models.LoanTable, models.ExtensionTable)).
		Where("l.reader_id = ? AND "+models.ExtensionTable+".extension_date >= ?", readerID, since).
		Select("COALESCE(SUM(days_added), 0)").
		Scan(&total).Error
	return int(total), err
}

func (r *Repo) ActiveLoans(ctx context.Context, readerID string) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.DB.WithContext(ctx).
		Preload("Edition").
		Preload("Extensions").
		Where("reader_id = ? AND return_date IS NULL", readerID).
		Order("loan_date DESC").
		Find(&loans).Error
	return loans, err
}

func (r *Repo) LoansOfReader(ctx context.Context, readerID string) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.DB.WithContext(ctx).
		Preload("Edition").
		Preload("Extensions").
		Where("reader_id = ?", readerID).
		Order("loan_date DESC").
		Find(&loans).Error
	return loans, err
}

// CommitBorrow creates the loans and decrements stock atomically. Each
// edition row is locked for update, so concurrent borrows of the same
// edition serialize; the 10% rule is re-checked under the lock.
func (r *Repo) CommitBorrow(ctx context.Context, loans []*models.Loan) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, loan := range loans {
			var ed models.Edition
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&ed, "id = ?", loan.EditionID).Error; err != nil {
				return notFound(err, "edition", loan.EditionID)
			}
			if !rules.CanLoanFromStock(ed) {
				return &rules.InsufficientStockError{EditionID: ed.ID}
			}
			if err := tx.Model(&models.Edition{}).
				Where("id = ?", ed.ID).
				Update("current_stock", gorm.Expr("current_stock - 1")).Error; err != nil {
				return err
			}
			if err := tx.Create(loan).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CommitExtension records the extension and pushes the due date forward.
// The reader row is locked for update so the reader-wide LIM aggregate
// cannot be raced past its cap; it is re-checked under the lock.
func (r *Repo) CommitExtension(ctx context.Context, loan *models.Loan, ext *models.LoanExtension, limitDays int, since time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reader models.Reader
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reader, "id = ?", loan.ReaderID).Error; err != nil {
			return notFound(err, "reader", loan.ReaderID)
		}

		total, err := extensionDaysSince(tx, loan.ReaderID, since)
		if err != nil {
			return err
		}
		if total+ext.DaysAdded > limitDays {
			return &rules.LoanRuleViolationError{
				Rule:    rules.RuleLim,
				Message: fmt.Sprintf("extensions may total at most %d days over the last 3 months", limitDays),
			}
		}

		if err := tx.Create(ext).Error; err != nil {
			return err
		}
		// relative push: the caller's loan snapshot was read unlocked, so an
		// absolute write would drop a concurrent extension's days
		return tx.Model(&models.Loan{}).
			Where("id = ?", loan.ID).
			Update("due_date", gorm.Expr("due_date + make_interval(days => ?)", ext.DaysAdded)).Error
	})
}

// CommitReturn closes the loan and puts the copy back. Loan and edition
// rows are locked; a concurrent return of the same loan fails with
// ErrAlreadyReturned instead of double-incrementing stock.
func (r *Repo) CommitReturn(ctx context.Context, loanID string, when time.Time) (*models.Loan, error) {
	var l models.Loan
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&l, "id = ?", loanID).Error; err != nil {
			return notFound(err, "loan", loanID)
		}
		if l.ReturnDate != nil {
			return fmt.Errorf("loan %s: %w", loanID, rules.ErrAlreadyReturned)
		}
		if err := tx.Model(&models.Loan{}).
			Where("id = ?", loanID).
			Update("return_date", when).Error; err != nil {
			return err
		}
		l.ReturnDate = &when
		return tx.Model(&models.Edition{}).
			Where("id = ?", l.EditionID).
			Update("current_stock", gorm.Expr("current_stock + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}
