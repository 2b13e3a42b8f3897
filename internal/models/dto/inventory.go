package dto

import "github.com/hongminglow/stockroom/internal/models"

// ItemInput is the create/update payload for /items/.
type ItemInput struct {
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	Price             models.Money `json:"price"`
	Quantity          int          `json:"quantity"`
	LowStockThreshold int          `json:"low_stock_threshold"`
	Category          *int64       `json:"category"`
	Supplier          *int64       `json:"supplier"`
}

// FromItem copies the editable fields of an existing item.
func FromItem(item models.Item) ItemInput {
	in := ItemInput{
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		Supplier:    item.Supplier,
	}
	if item.Quantity != nil {
		in.Quantity = *item.Quantity
	}
	if item.LowStockThreshold != nil {
		in.LowStockThreshold = *item.LowStockThreshold
	}
	return in
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type SupplierInput struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
}
