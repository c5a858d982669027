package models

import "time"

const (
	LoanTable      = "lib_loans"
	ExtensionTable = "lib_loan_extensions"
)

type Loan struct {
	ID        string   `gorm:"type:uuid;primaryKey" json:"id"`
	ReaderID  string   `gorm:"type:uuid;index;not null" json:"readerId"`
	EditionID string   `gorm:"type:uuid;index;not null" json:"editionId"`
	Edition   *Edition `json:"edition,omitempty"`

	LoanDate time.Time `gorm:"index;not null" json:"loanDate"`
	DueDate  time.Time `gorm:"not null" json:"dueDate"`

	// ReturnDate is nil while the copy is still out; set exactly once.
	ReturnDate *time.Time `gorm:"index" json:"returnDate,omitempty"`

	Extensions []LoanExtension `gorm:"foreignKey:LoanID" json:"extensions,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoanExtension records one granted due-date extension. Never mutated.
type LoanExtension struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	LoanID string `gorm:"type:uuid;index;not null" json:"loanId"`

	ExtensionDate time.Time `gorm:"index;not null" json:"extensionDate"`
	DaysAdded     int       `gorm:"not null" json:"daysAdded"`

	CreatedAt time.Time `json:"createdAt"`
}

// Returned reports whether the loan is closed.
func (l Loan) Returned() bool { return l.ReturnDate != nil }

func (Loan) TableName() string          { return LoanTable }
func (LoanExtension) TableName() string { return ExtensionTable }
