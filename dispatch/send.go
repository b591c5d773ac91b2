package dispatch

import (
	"context"
	"fmt"
	"sync"
)

// SendRequest executes params and hands the outcome to exactly one of
// params.Callback.OnSuccess or params.Callback.OnError, exactly once, on
// the calling goroutine. Invalid parameters and transport errors are
// reported through OnError as FailureTransport.
func (d *Dispatcher) SendRequest(ctx context.Context, params Parameters) {
	var once sync.Once
	succeed := func(res *Response) {
		once.Do(func() { d.runCallback(ctx, params, func() { callOnSuccess(params.Callback, res) }) })
	}
	fail := func(failure *Failure) {
		once.Do(func() { d.runCallback(ctx, params, func() { callOnError(params.Callback, failure) }) })
	}

	if err := validateParameters(params); err != nil {
		d.logger.Warn(ctx, "invalid request parameters", map[string]interface{}{
			"url":    params.URL,
			"method": params.Method,
			"error":  err.Error(),
		})
		fail(transportFailure(nil, fmt.Errorf("invalid request parameters: %w", err)))
		return
	}

	headers := cloneHeaders(params.Headers)
	if auth := authorizationValue(d.config.TokenScheme, params.Token); auth != "" {
		if headers == nil {
			headers = make(map[string]string, 1)
		}
		headers[authorizationHeader] = auth
	}

	res, err := d.Request(ctx, params.URL, params.Method, &RequestOptions{
		Data:    params.Data,
		Headers: headers,
	})
	if err != nil {
		fail(transportFailure(nil, err))
		return
	}

	if res == nil {
		fail(transportFailure(nil, fmt.Errorf("no response received")))
		return
	}

	if res.Success() {
		succeed(res)
		return
	}

	failure := classifyFailure(res)
	if !d.logger.IsNoop() {
		d.logger.Warn(ctx, "request rejected", map[string]interface{}{
			"url":         res.Request().FullUrl(),
			"status_code": res.StatusCode,
			"failure":     failure.Kind.String(),
		})
	}
	fail(failure)
}

func (d *Dispatcher) runCallback(ctx context.Context, params Parameters, cb func()) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error(ctx, "panic in request callback", map[string]interface{}{
				"panic":  fmt.Sprintf("%v", r),
				"url":    params.URL,
				"method": params.Method,
			})
		}
	}()
	cb()
}

func callOnSuccess(cb Callback, res *Response) {
	if cb.OnSuccess != nil {
		cb.OnSuccess(res)
	}
}

func callOnError(cb Callback, failure *Failure) {
	if cb.OnError != nil {
		cb.OnError(failure)
	}
}
