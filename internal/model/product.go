package model

import "time"

const (
	NewCollectionSize = 8
	PopularSize       = 4
	PopularCategory   = "women"
)

// Product is a catalog entry. ID is the business id shown to clients; the
// storage key never leaves the repository.
type Product struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Category  string    `json:"category"`
	NewPrice  float64   `json:"new_price"`
	OldPrice  float64   `json:"old_price"`
	Date      time.Time `json:"date"`
	Available bool      `json:"available"`
}

type ProductInput struct {
	Name     string
	Image    string
	Category string
	NewPrice float64
	OldPrice float64
}
