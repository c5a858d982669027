package rules

import (
	"time"

	"library_lending/models"
)

// DomainBorrowCount counts the reader's loans dated within the trailing
// windowMonths whose edition's book's full domain set contains the target
// domain. Loans missing their edition or book snapshot are skipped.
func DomainBorrowCount(h *Hierarchy, readerID, targetDomainID string, pastLoans []models.Loan, now time.Time, windowMonths int) (int, error) {
	since := now.AddDate(0, -windowMonths, 0)
	count := 0
	for _, l := range pastLoans {
		if l.ReaderID != readerID || l.LoanDate.Before(since) {
			continue
		}
		if l.Edition == nil || l.Edition.Book == nil {
			continue
		}
		all, err := h.AllDomainIDs(*l.Edition.Book)
		if err != nil {
			return 0, err
		}
		if _, ok := all[targetDomainID]; ok {
			count++
		}
	}
	return count, nil
}

// CanBorrowFromDomain applies the D threshold: at most maxPerDomain loans
// touching one domain within the trailing windowMonths.
func CanBorrowFromDomain(h *Hierarchy, readerID, targetDomainID string, pastLoans []models.Loan, now time.Time, maxPerDomain, windowMonths int) (bool, error) {
	n, err := DomainBorrowCount(h, readerID, targetDomainID, pastLoans, now, windowMonths)
	if err != nil {
		return false, err
	}
	return n < maxPerDomain, nil
}

// IsValidLoanRequest applies the C threshold to a multi-book request. An
// empty request or one exceeding maxBooks is invalid. Requests of three or
// more books must additionally span at least two distinct domains across
// the union of the books' full domain sets; one or two books bypass the
// diversity check.
func IsValidLoanRequest(h *Hierarchy, books []models.Book, maxBooks int) (bool, error) {
	if len(books) == 0 || len(books) > maxBooks {
		return false, nil
	}
	if len(books) >= 3 {
		union := make(map[string]struct{})
		for _, b := range books {
			all, err := h.AllDomainIDs(b)
			if err != nil {
				return false, err
			}
			for id := range all {
				union[id] = struct{}{}
			}
		}
		if len(union) < 2 {
			return false, nil
		}
	}
	return true, nil
}

// CanExtendLoan sums daysAdded over this one loan's extensions dated within
// the trailing three months and allows a further extension while the sum is
// strictly below limitDays. The reader-wide aggregate is a separate check
// applied at orchestration time.
func CanExtendLoan(loan models.Loan, now time.Time, limitDays int) bool {
	since := now.AddDate(0, -3, 0)
	total := 0
	for _, e := range loan.Extensions {
		if !e.ExtensionDate.Before(since) {
			total += e.DaysAdded
		}
	}
	return total < limitDays
}

// CanLoanFromStock applies the 10% stock-reservation rule: lending is
// allowed while the loanable copies (current stock minus reading-room-only
// copies) amount to at least 10% of the initial stock. Exactly 10% still
// allows the loan.
func CanLoanFromStock(e models.Edition) bool {
	available := e.LoanableCopies()
	if available <= 0 {
		return false
	}
	return float64(available) >= float64(e.InitialStock)*0.10
}
