package entities

import "time"

// DefaultQuantity is applied to new books that do not specify a quantity.
const DefaultQuantity = 1

// Genre is a named category assigned to zero or more books.
type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Books     []Book    `gorm:"foreignKey:GenreID" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Shelf is a physical storage location holding zero or more books.
type Shelf struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    int       `gorm:"uniqueIndex;not null" json:"number"`
	Location  string    `gorm:"size:255;not null" json:"location"`
	Books     []Book    `gorm:"foreignKey:ShelfID" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Book is a single inventory record. GenreID and ShelfID stay nullable until
// the book is assigned; Genre and Shelf are only populated when preloaded.
type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"index;size:255;not null" json:"title"`
	Author    string    `gorm:"index;size:255;not null" json:"author"`
	Publisher string    `gorm:"size:255;not null" json:"publisher"`
	Year      *int      `json:"year"`
	Price     Price     `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	GenreID   *uint     `gorm:"index" json:"GenreId"`
	Genre     *Genre    `gorm:"foreignKey:GenreID" json:"Genre,omitempty"`
	ShelfID   *uint     `gorm:"index" json:"ShelfId"`
	Shelf     *Shelf    `gorm:"foreignKey:ShelfID" json:"Shelf,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Genre) TableName() string {
	return "genres"
}

func (Shelf) TableName() string {
	return "shelves"
}

func (Book) TableName() string {
	return "books"
}
