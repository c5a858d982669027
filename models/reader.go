package models

import "time"

const ReaderTable = "lib_readers"

type Reader struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Address   string `gorm:"size:255" json:"address,omitempty"`

	// At least one of Phone/Email is required; enforced at the request layer.
	Phone string `gorm:"size:45" json:"phone,omitempty"`
	Email string `gorm:"size:255;uniqueIndex" json:"email,omitempty"`

	PasswordHash string `gorm:"size:255" json:"-"`

	// IsLibraryStaff switches the lending thresholds to the staff variants.
	IsLibraryStaff bool `gorm:"not null;default:false" json:"isLibraryStaff"`

	// AccountID groups readers sharing one library account. A new reader
	// registered on an account that already has a staff member inherits
	// staff status.
	AccountID string `gorm:"size:64;index" json:"accountId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Reader) TableName() string { return ReaderTable }
