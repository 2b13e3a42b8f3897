package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"9.99"`, "9.99"},
		{`12.5`, "12.5"},
		{`null`, "0"},
		{`"n/a"`, "0"},
		{`""`, "0"},
	}
	for _, tc := range cases {
		var m Money
		require.NoError(t, json.Unmarshal([]byte(tc.in), &m), tc.in)
		assert.True(t, m.Decimal().Equal(decimal.RequireFromString(tc.want)), "%s -> %s", tc.in, m.Decimal())
	}
}

func TestMoneyMarshalsAsString(t *testing.T) {
	b, err := json.Marshal(struct {
		Price Money `json:"price"`
	}{MoneyFromDecimal(decimal.NewFromFloat(2.5))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":"2.50"}`, string(b))
}

func TestPageShapes(t *testing.T) {
	var paged Page[Category]
	require.NoError(t, json.Unmarshal([]byte(`{"count":42,"next":"http://x/?offset=20","results":[{"id":1,"name":"A"}]}`), &paged))
	assert.Equal(t, 42, paged.Count)
	assert.Len(t, paged.Results, 1)
	require.NotNil(t, paged.Next)

	var bare Page[Category]
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1},{"id":2},{"id":3}]`), &bare))
	assert.Equal(t, 3, bare.Count)

	var noCount Page[Category]
	require.NoError(t, json.Unmarshal([]byte(`{"results":[{"id":1}]}`), &noCount))
	assert.Equal(t, 1, noCount.Count)

	var empty Page[Category]
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.Empty(t, empty.Results)
}

func TestItemDecode(t *testing.T) {
	var item Item
	require.NoError(t, json.Unmarshal([]byte(`{"id":5,"name":"Widget","price":"9.99","quantity":5,"low_stock_threshold":10,"category":null,"created_at":"2024-05-01T10:00:00Z"}`), &item))
	require.NotNil(t, item.Quantity)
	assert.Equal(t, 5, *item.Quantity)
	assert.Nil(t, item.Category)
	require.NotNil(t, item.CreatedAt)
	assert.Equal(t, 2024, item.CreatedAt.Year())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace", Email: "a@x"}.DisplayName())
	assert.Equal(t, "a@x", User{Email: "a@x"}.DisplayName())
	assert.Equal(t, "ada", User{Username: "ada"}.DisplayName())
}
