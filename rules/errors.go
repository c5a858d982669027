package rules

import (
	"errors"
	"fmt"
)

// Rule names carried by LoanRuleViolationError.
const (
	RuleNCZ   = "NCZ"
	RuleNMC   = "NMC"
	RuleDelta = "DELTA"
	RuleLim   = "LIM"
	RuleC     = "C"
)

var (
	// ErrNotFound wraps lookups of readers, editions, loans and domains
	// that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyReturned rejects a return on a loan that is already closed.
	ErrAlreadyReturned = errors.New("loan already returned")

	// ErrDomainCycle reports a parent chain that revisits a domain. The
	// hierarchy is supposed to be a tree; walks fail loudly instead of
	// looping.
	ErrDomainCycle = errors.New("domain hierarchy contains a cycle")
)

// DomainConstraintError reports a book assigned more explicit domains than
// the DOMENII threshold allows.
type DomainConstraintError struct {
	Count int
	Max   int
}

func (e *DomainConstraintError) Error() string {
	return fmt.Sprintf("a book may have at most %d domains, got %d", e.Max, e.Count)
}

// DomainHierarchyError reports two assigned domains in ancestor/descendant
// relation.
type DomainHierarchyError struct {
	Ancestor   string
	Descendant string
}

func (e *DomainHierarchyError) Error() string {
	return fmt.Sprintf("domains %q and %q are in ancestor/descendant relation", e.Ancestor, e.Descendant)
}

// InsufficientStockError reports the 10%% stock-reservation rule blocking a
// loan.
type InsufficientStockError struct {
	EditionID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("edition %s: at least 10%% of the initial stock must remain loanable", e.EditionID)
}

// LoanRuleViolationError carries which named lending threshold was exceeded.
type LoanRuleViolationError struct {
	Rule    string
	Message string
}

func (e *LoanRuleViolationError) Error() string {
	return fmt.Sprintf("loan rule %s violated: %s", e.Rule, e.Message)
}

// IsRuleViolation reports whether err is a LoanRuleViolationError for the
// given named rule.
func IsRuleViolation(err error, rule string) bool {
	var v *LoanRuleViolationError
	return errors.As(err, &v) && v.Rule == rule
}
