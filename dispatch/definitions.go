package dispatch

import (
	"context"
	"net/http"
	"time"
)

type CertificateConfig struct {
	Cert string
	Key  string
}

type AdapterFunc func(req *Request) (res *Response, err error)

type RequestTransformFunc func(req *Request) (data []byte, err error)

type ValidateStatusFunc func(res *Response) bool

// RequestMetrics describes a single finished request.
type RequestMetrics struct {
	Method string

	// URL is host + path, without the query string.
	URL string

	Duration time.Duration

	// StatusCode is 0 when no response was received.
	StatusCode int

	Error error

	RequestSize  int64
	ResponseSize int64

	// Success reflects ValidateStatus.
	Success bool
}

// MetricsCollector receives one RecordRequest call per executed request.
// Implementations must be safe for concurrent use.
type MetricsCollector interface {
	RecordRequest(ctx context.Context, metrics RequestMetrics)
}

type Config struct {
	BaseURL             string
	Timeout             time.Duration
	Headers             map[string]string
	Certificates        []CertificateConfig
	HTTPTransport       *http.Transport
	Adapter             AdapterFunc
	RequestTransform    RequestTransformFunc
	ValidateStatus      ValidateStatusFunc
	InsecureSkipVerify  bool
	Logger              Logger
	MetricsCollector    MetricsCollector
	MaxResponseBodySize int64

	// TokenScheme prefixes Parameters.Token in the Authorization header.
	// Defaults to "Token".
	TokenScheme string
}

type Client interface {
	Do(ctx context.Context, req *Request) (res *Response, err error)
}

type RequestOptions struct {
	Data             interface{}
	Headers          map[string]string
	Params           map[string]any
	RequestTransform RequestTransformFunc
}

// Callback holds the two continuations of SendRequest. Exactly one of them
// runs, exactly once.
type Callback struct {
	OnSuccess func(res *Response)
	OnError   func(failure *Failure)
}

// Parameters describes a single request issued through SendRequest.
type Parameters struct {
	URL      string
	Method   string
	Token    string
	Data     interface{}
	Headers  map[string]string
	Callback Callback
}
