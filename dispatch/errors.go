package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
)

type ResponseError struct {
	Response *Response
	Err      error
}

func (e *ResponseError) Error() string {
	if e.Response == nil {
		if e.Err != nil {
			return fmt.Sprintf("request failed: %v", e.Err)
		}
		return "request failed"
	}

	msg := fmt.Sprintf("request failed: %d", e.Response.StatusCode)
	if len(e.Response.Data) > 0 {
		msg += fmt.Sprintf(" - %s", e.Response.Data)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}

	return msg
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// FailureKind classifies why SendRequest called OnError.
type FailureKind int

const (
	// FailureTransport: no response, or a response without a body.
	FailureTransport FailureKind = iota
	// FailureFields: the body maps field names to validation messages.
	FailureFields
	// FailureGeneric: the body exists but carries no field messages.
	FailureGeneric
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureFields:
		return "fields"
	case FailureGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Failure is what OnError receives. Response is nil for transport
// failures that never produced one.
type Failure struct {
	Kind     FailureKind
	Response *Response
	Fields   map[string][]string
	Err      error
}

func (f *Failure) Error() string {
	switch f.Kind {
	case FailureFields:
		return fmt.Sprintf("request rejected: %d field error(s)", len(f.Fields))
	case FailureGeneric:
		if f.Response == nil {
			return "request rejected"
		}
		return fmt.Sprintf("request rejected: %d - %s", f.Response.StatusCode, f.Response.Data)
	default:
		var resErr *ResponseError
		if errors.As(f.Err, &resErr) {
			return f.Err.Error()
		}
		if f.Err != nil {
			return fmt.Sprintf("request failed: %v", f.Err)
		}
		if f.Response != nil {
			return fmt.Sprintf("request failed: %d", f.Response.StatusCode)
		}
		return "request failed"
	}
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// FirstMessage returns the first message recorded for field, if any.
func (f *Failure) FirstMessage(field string) (string, bool) {
	if f == nil {
		return "", false
	}
	messages := f.Fields[field]
	if len(messages) == 0 {
		return "", false
	}
	return messages[0], true
}

func transportFailure(res *Response, err error) *Failure {
	return &Failure{Kind: FailureTransport, Response: res, Err: err}
}

// classifyFailure inspects an unsuccessful response once so callers never
// have to sniff the body shape themselves.
func classifyFailure(res *Response) *Failure {
	if !res.HasBody() {
		return transportFailure(res, res.RequestFailedError())
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(res.Data, &raw); err != nil {
		return &Failure{Kind: FailureGeneric, Response: res, Err: res.RequestFailedError()}
	}

	fields := make(map[string][]string, len(raw))
	for name, value := range raw {
		var messages []string
		if err := json.Unmarshal(value, &messages); err != nil || len(messages) == 0 {
			continue
		}
		fields[name] = messages
	}

	if len(fields) == 0 {
		return &Failure{Kind: FailureGeneric, Response: res, Err: res.RequestFailedError()}
	}

	return &Failure{Kind: FailureFields, Response: res, Fields: fields, Err: res.RequestFailedError()}
}
