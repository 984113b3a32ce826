package model

import (
	"strconv"
	"strings"
	"time"
)

// Product is one catalog record. The collection of products is the single
// source of truth for everything the service renders.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	IsActive    bool      `json:"isActive"`
}

// SearchText returns the lowercased haystack the query engine matches
// search terms against: every displayed field of the record, space joined.
func (p Product) SearchText() string {
	parts := []string{
		strconv.FormatInt(p.ID, 10),
		p.Name,
		p.Category,
		strconv.FormatFloat(p.Price, 'f', -1, 64),
		strconv.Itoa(p.Stock),
		p.Description,
		p.CreatedAt.Format(time.RFC3339),
		strings.Join(p.Tags, " "),
	}
	return strings.ToLower(strings.Join(parts, " "))
}
