package models

import "time"

// Item is a stock-keeping unit as served by /items/.
type Item struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Price             Money      `json:"price"`
	Quantity          *int       `json:"quantity"`
	LowStockThreshold *int       `json:"low_stock_threshold"`
	Category          *int64     `json:"category"`
	Supplier          *int64     `json:"supplier"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// Category groups items.
type Category struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Supplier is where items are sourced from.
type Supplier struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	ContactEmail string     `json:"contact_email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Address      string     `json:"address,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// IntPtr is a convenience for optional integer fields.
func IntPtr(v int) *int { return &v }

// IDPtr is a convenience for optional foreign keys.
func IDPtr(v int64) *int64 { return &v }
