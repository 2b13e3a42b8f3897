package views

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/stockroom/internal/models/dto"
)

// MinPasswordLength applies to signup and password changes.
const MinPasswordLength = 8

// ValidationError is raised locally before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateSignup checks the confirmation matches and the password is long
// enough.
func ValidateSignup(password, confirm string) error {
	if password != confirm {
		return &ValidationError{Field: "confirm_password", Message: "Passwords do not match"}
	}
	if len(password) < MinPasswordLength {
		return &ValidationError{Field: "password", Message: "Password must be at least 8 characters long"}
	}
	return nil
}

// ValidatePasswordChange checks a new password pair.
func ValidatePasswordChange(newPassword, confirm string) error {
	if newPassword != confirm {
		return &ValidationError{Field: "confirm_password", Message: "New passwords do not match"}
	}
	if len(newPassword) < MinPasswordLength {
		return &ValidationError{Field: "new_password", Message: "Password must be at least 8 characters long"}
	}
	return nil
}

// ValidateItem rejects inputs the API would refuse anyway.
func ValidateItem(in dto.ItemInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Message: "Name is required"}
	}
	price, err := decimal.NewFromString(strings.TrimSpace(string(in.Price)))
	if err != nil {
		return &ValidationError{Field: "price", Message: "Price must be a number"}
	}
	if price.IsNegative() {
		return &ValidationError{Field: "price", Message: "Price cannot be negative"}
	}
	if in.Quantity < 0 {
		return &ValidationError{Field: "quantity", Message: "Quantity cannot be negative"}
	}
	if in.LowStockThreshold < 0 {
		return &ValidationError{Field: "low_stock_threshold", Message: "Low stock threshold cannot be negative"}
	}
	return nil
}
