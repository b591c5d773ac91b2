package dispatch

import (
	"net/http"
)

// Response is a completed HTTP exchange. It is read-only once returned.
type Response struct {
	Data        []byte
	StatusCode  int
	request     *Request
	RawRequest  *http.Request
	RawResponse *http.Response
	success     bool
}

// Success reports whether ValidateStatus accepted the response.
func (r *Response) Success() bool {
	if r == nil {
		return false
	}
	return r.success
}

// Request returns the request this response answers.
func (r *Response) Request() *Request {
	if r == nil {
		return nil
	}
	return r.request
}

func (r *Response) RequestFailedError() error {
	if r.Success() {
		return nil
	}

	return &ResponseError{
		Response: r,
	}
}
