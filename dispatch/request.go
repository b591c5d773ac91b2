package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
)

// Request is a request under construction. Interceptors may mutate it
// before it is sent; all accessors are guarded by an internal mutex.
type Request struct {
	mu        sync.RWMutex
	baseURL   string
	url       *url.URL
	method    string
	params    map[string]any
	headers   map[string]string
	data      interface{}
	transform RequestTransformFunc
	rawReq    *http.Request
}

// SetParam adds or updates a query parameter and rebuilds the URL.
func (r *Request) SetParam(key string, value any) error {
	if key == "" {
		return fmt.Errorf("param key cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.params == nil {
		r.params = make(map[string]any)
	}
	r.params[key] = value
	return r.refreshUrlUnsafe()
}

// SetHeader adds or updates a header after validating its name and value.
func (r *Request) SetHeader(key, value string) error {
	if err := validateHeaderName(key); err != nil {
		return fmt.Errorf("invalid header name %q: %w", key, err)
	}
	if err := validateHeaderValue(value); err != nil {
		return fmt.Errorf("invalid header value for %q: %w", key, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.headers == nil {
		r.headers = make(map[string]string)
	}
	r.headers[key] = value
	return nil
}

func (r *Request) refreshUrl() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshUrlUnsafe()
}

func (r *Request) refreshUrlUnsafe() error {
	fullUrl, err := getUrlInstance(r.baseURL, r.params)
	if err != nil {
		return err
	}

	r.url = fullUrl
	return nil
}

// BaseUrl returns the URL the request was built with, before query params.
func (r *Request) BaseUrl() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.baseURL
}

// FullUrl returns the URL that will be requested, including query params.
func (r *Request) FullUrl() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.url == nil {
		return r.baseURL
	}
	return r.url.String()
}

func (r *Request) Host() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.url == nil {
		return ""
	}
	return r.url.Host
}

func (r *Request) Scheme() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.url == nil {
		return ""
	}
	return r.url.Scheme
}

func (r *Request) Path() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.url == nil {
		return ""
	}
	return r.url.Path
}

func (r *Request) Method() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.method
}

// Data returns the payload that will be serialized by the transform.
func (r *Request) Data() interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data
}

// Headers returns a copy of the request headers.
func (r *Request) Headers() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	headersCopy := make(map[string]string, len(r.headers))
	for k, v := range r.headers {
		headersCopy[k] = v
	}
	return headersCopy
}

// Params returns a copy of the query parameters.
func (r *Request) Params() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paramsCopy := make(map[string]any, len(r.params))
	for k, v := range r.params {
		paramsCopy[k] = v
	}
	return paramsCopy
}

// RawRequest returns the *http.Request built for the last send, or nil.
func (r *Request) RawRequest() *http.Request {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rawReq
}

func (r *Request) toHTTPRequest(ctx context.Context) (*http.Request, error) {
	transform := r.transform
	if transform == nil {
		transform = ApplicationJsonReqTransformer
	}

	body, err := transform(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	target := r.baseURL
	if r.url != nil {
		target = r.url.String()
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.method, target, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	for key, value := range r.headers {
		httpReq.Header.Set(key, value)
	}

	r.rawReq = httpReq
	return httpReq, nil
}
