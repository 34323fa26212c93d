package domain

import "time"

type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type Product struct {
	ID             string            `json:"id"`
	Key            string            `json:"key,omitempty"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	PriceCents     int64             `json:"priceCents"`
	Currency       string            `json:"currency"`
	Image          string            `json:"image,omitempty"`
	Category       string            `json:"category"`
	Subcategory    string            `json:"subcategory,omitempty"`
	Stock          int               `json:"stock"`
	Featured       bool              `json:"featured"`
	Specifications map[string]string `json:"specifications,omitempty"`
	CompatibleWith []string          `json:"compatibleWith,omitempty"`
	Rating         float64           `json:"rating,omitempty"`
	Reviews        []Review          `json:"reviews,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
