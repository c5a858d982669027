package models

import "time"

const (
	AuthorTable    = "lib_authors"
	DomainTable    = "lib_domains"
	BookTable      = "lib_books"
	EditionTable   = "lib_editions"
	BookAuthorJoin = "lib_book_authors"
	BookDomainJoin = "lib_book_domains"
)

type Author struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Domain is one node of the categorization tree. The parent side owns the
// relation; children are always derived by query, never stored.
type Domain struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	ParentID  *string   `gorm:"type:uuid;index" json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Book struct {
	ID    string `gorm:"type:uuid;primaryKey" json:"id"`
	Title string `gorm:"size:255;not null" json:"title"`

	Authors []Author `gorm:"many2many:lib_book_authors" json:"authors,omitempty"`

	// ExplicitDomains are the domains a cataloguer assigned directly,
	// not including inherited ancestors.
	ExplicitDomains []Domain `gorm:"many2many:lib_book_domains" json:"domains,omitempty"`

	Editions []Edition `gorm:"foreignKey:BookID" json:"editions,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Edition is the unit that carries physical stock.
type Edition struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	BookID string `gorm:"type:uuid;index;not null" json:"bookId"`
	Book   *Book  `json:"book,omitempty"`

	Publisher     string `gorm:"size:255;not null" json:"publisher"`
	Year          int    `json:"year"`
	EditionNumber string `gorm:"size:50" json:"editionNumber,omitempty"`
	PageCount     int    `json:"pageCount"`
	BookType      string `gorm:"size:50" json:"bookType,omitempty"`

	// InitialStock is the count of copies ever acquired; CurrentStock
	// fluctuates with loans and returns.
	InitialStock         int `gorm:"not null" json:"initialStock"`
	CurrentStock         int `gorm:"not null" json:"currentStock"`
	ReadingRoomOnlyCount int `gorm:"not null;default:0" json:"readingRoomOnlyCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoanableCopies is the number of copies that may leave the building.
func (e Edition) LoanableCopies() int { return e.CurrentStock - e.ReadingRoomOnlyCount }

// EntirelyReadingRoom reports whether no copy of this edition ever circulates.
func (e Edition) EntirelyReadingRoom() bool { return e.ReadingRoomOnlyCount >= e.InitialStock }

func (Author) TableName() string  { return AuthorTable }
func (Domain) TableName() string  { return DomainTable }
func (Book) TableName() string    { return BookTable }
func (Edition) TableName() string { return EditionTable }
