package api

import (
	"fmt"
	"net/url"
	"reflect"
)

// Params are list filters. Nil and empty-string values are left out of the
// query string.
type Params map[string]any

// Query encodes params as "?k=v&..." with keys sorted, or "" when nothing
// survives filtering.
func Query(params Params) string {
	values := url.Values{}
	for key, value := range params {
		s, ok := paramString(value)
		if !ok || s == "" {
			continue
		}
		values.Set(key, s)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// paramString reports false for nil and nil pointers of any type. Non-nil
// pointers are encoded as the value they point to.
func paramString(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	if s, ok := value.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	return fmt.Sprint(rv.Interface()), true
}
