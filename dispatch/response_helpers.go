package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

var nullBody = []byte("null")

// String returns the response body as a string.
func (r *Response) String() string {
	if r == nil || r.Data == nil {
		return ""
	}
	return string(r.Data)
}

// HasBody reports whether the response carries a payload other than JSON
// null.
func (r *Response) HasBody() bool {
	if r == nil {
		return false
	}
	trimmed := bytes.TrimSpace(r.Data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, nullBody)
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v interface{}) error {
	if r == nil {
		return fmt.Errorf("response is nil")
	}

	if len(r.Data) == 0 {
		return fmt.Errorf("response body is empty")
	}

	if v == nil {
		return fmt.Errorf("destination variable is nil")
	}

	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// Result unmarshals the body into v when the request succeeded and returns
// a *ResponseError otherwise. An empty body leaves v untouched.
func (r *Response) Result(v interface{}) error {
	if r == nil {
		return fmt.Errorf("response is nil")
	}

	if !r.success {
		return &ResponseError{Response: r}
	}

	if v == nil || len(r.Data) == 0 {
		return nil
	}

	if contentType := r.Header("Content-Type"); contentType != "" && !strings.Contains(contentType, "json") {
		return fmt.Errorf("unexpected content type %q", contentType)
	}

	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to unmarshal JSON result: %w", err)
	}

	return nil
}

// IsSuccess returns true if the HTTP status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	if r == nil {
		return false
	}
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the HTTP status code is in the 4xx or 5xx range.
func (r *Response) IsError() bool {
	if r == nil {
		return false
	}
	return r.StatusCode >= 400 && r.StatusCode < 600
}

func (r *Response) IsClientError() bool {
	if r == nil {
		return false
	}
	return r.StatusCode >= 400 && r.StatusCode < 500
}

func (r *Response) IsServerError() bool {
	if r == nil {
		return false
	}
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// Header returns a response header value, or "" when absent.
func (r *Response) Header(key string) string {
	if r == nil || r.RawResponse == nil || r.RawResponse.Header == nil {
		return ""
	}
	return r.RawResponse.Header.Get(key)
}
