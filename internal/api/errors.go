package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// HTTPError is a non-2xx response. Message is the server's detail/message
// field when present, otherwise "HTTP <status>".
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NetworkError means the request never produced a response.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is an HTTPError with the given status code.
func IsStatus(err error, status int) bool {
	var herr *HTTPError
	return errors.As(err, &herr) && herr.Status == status
}

func newHTTPError(status int, body []byte) *HTTPError {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		payload = map[string]any{}
	}
	for _, key := range []string{"detail", "message"} {
		if msg, ok := errorText(payload[key]); ok {
			return &HTTPError{Status: status, Message: msg}
		}
	}
	return &HTTPError{Status: status, Message: fmt.Sprintf("HTTP %d", status)}
}

// errorText renders a detail/message value. Strings are used as is; objects
// and lists keep their JSON form. Empty strings, null, false and 0 are
// treated as missing.
func errorText(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case bool:
		if !v {
			return "", false
		}
	case float64:
		if v == 0 {
			return "", false
		}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value), true
	}
	return string(raw), true
}
