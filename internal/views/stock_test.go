package views

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/hongminglow/stockroom/internal/models"
)

func item(price string, qty, threshold *int) models.Item {
	return models.Item{Price: models.Money(price), Quantity: qty, LowStockThreshold: threshold}
}

func TestIsLowStock(t *testing.T) {
	p := models.IntPtr
	assert.True(t, IsLowStock(item("", p(5), p(10))))
	assert.True(t, IsLowStock(item("", p(10), p(10))))
	assert.False(t, IsLowStock(item("", p(11), p(10))))
	assert.False(t, IsLowStock(item("", nil, p(10))))
	assert.False(t, IsLowStock(item("", p(0), nil)))
}

func TestIsLowStockMonotonic(t *testing.T) {
	threshold := 7
	for q := 0; q <= 20; q++ {
		got := IsLowStock(item("", models.IntPtr(q), &threshold))
		assert.Equal(t, q <= threshold, got, "quantity %d", q)
	}
}

func TestTotalValue(t *testing.T) {
	p := models.IntPtr
	items := []models.Item{
		item("2.50", p(2), nil),
		item("1.00", p(3), nil),
	}
	assert.True(t, TotalValue(items).Equal(decimal.RequireFromString("8.00")))

	items = append(items, item("abc", p(4), nil), item("3", nil, nil), item("0.10", p(3), nil))
	assert.Equal(t, "8.30", TotalValue(items).StringFixed(2))
	assert.True(t, TotalValue(nil).IsZero())
}

func TestRecentItems(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var items []models.Item
	for i := 0; i < 8; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		items = append(items, models.Item{ID: int64(i), CreatedAt: &at})
	}
	items = append(items, models.Item{ID: 99})

	recent := RecentItems(items, RecentLimit)
	ids := []int64{}
	for _, it := range recent {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []int64{7, 6, 5, 4, 3}, ids)
	assert.Len(t, items, 9, "input untouched")
	assert.Empty(t, RecentItems([]models.Item{{ID: 1}}, 5))
}

func TestPagination(t *testing.T) {
	cases := []struct{ count, want int }{{0, 0}, {1, 1}, {20, 1}, {21, 2}, {40, 2}, {41, 3}}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TotalPages(tc.count, PageSize), "count %d", tc.count)
	}
	assert.Equal(t, 0, Offset(1, PageSize))
	assert.Equal(t, 40, Offset(3, PageSize))
	assert.Equal(t, 0, Offset(0, PageSize))
}

func TestValidation(t *testing.T) {
	assert.EqualError(t, ValidateSignup("abcdefgh", "abcdefgX"), "Passwords do not match")
	assert.EqualError(t, ValidateSignup("short", "short"), "Password must be at least 8 characters long")
	assert.NoError(t, ValidateSignup("abcdefgh", "abcdefgh"))

	err := ValidatePasswordChange("abcdefgh", "nope")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "confirm_password", verr.Field)
	assert.NoError(t, ValidatePasswordChange("longenough", "longenough"))
}
