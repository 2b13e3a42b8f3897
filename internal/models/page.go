package models

import (
	"bytes"
	"encoding/json"
)

// Page is one page of a list endpoint. Count is the server total across all
// pages, not len(Results).
type Page[T any] struct {
	Results  []T     `json:"results"`
	Count    int     `json:"count"`
	Next     *string `json:"next,omitempty"`
	Previous *string `json:"previous,omitempty"`
}

// UnmarshalJSON accepts the paged object form and a bare array. A bare array
// is treated as a single page whose count is its length.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = Page[T]{}
		return nil
	}
	if trimmed[0] == '[' {
		var results []T
		if err := json.Unmarshal(trimmed, &results); err != nil {
			return err
		}
		*p = Page[T]{Results: results, Count: len(results)}
		return nil
	}

	var wire struct {
		Results  []T     `json:"results"`
		Count    *int    `json:"count"`
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
	}
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return err
	}
	*p = Page[T]{Results: wire.Results, Count: len(wire.Results), Next: wire.Next, Previous: wire.Previous}
	if wire.Count != nil {
		p.Count = *wire.Count
	}
	return nil
}
