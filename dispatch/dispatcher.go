package dispatch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"dario.cat/mergo"
)

// Dispatcher is the HTTP client the profile controller sends its requests
// through.
//
// Thread Safety: a Dispatcher is safe for concurrent use once configured.
// Interceptors must be registered before the first request.
type Dispatcher struct {
	config       Config
	client       Client
	logger       Logger
	Interceptors interceptorCollectionWrapper
}

func defaultConfig() Config {
	return Config{
		Timeout: time.Second * 30,
		Headers: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		ValidateStatus: func(res *Response) bool {
			if res == nil {
				return false
			}

			return res.StatusCode >= 200 && res.StatusCode < 300
		},
		TokenScheme: "Token",
	}
}

func New(config Config) (d *Dispatcher, err error) {
	config.Headers = cloneHeaders(config.Headers)
	if err = mergo.Merge(&config, defaultConfig()); err != nil {
		return nil, err
	}

	if err = validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	instance := Dispatcher{
		config: config,
	}

	if config.Logger == nil {
		instance.logger = newNoopLogger()
	} else {
		instance.logger = config.Logger
	}

	err = instance.setHttpClient()
	if err != nil {
		return nil, err
	}

	return &instance, nil
}

func (d *Dispatcher) Post(ctx context.Context, url string, options *RequestOptions) (res *Response, err error) {
	return d.Request(ctx, url, http.MethodPost, options)
}

func (d *Dispatcher) Patch(ctx context.Context, url string, options *RequestOptions) (res *Response, err error) {
	return d.Request(ctx, url, http.MethodPatch, options)
}

func (d *Dispatcher) Put(ctx context.Context, url string, options *RequestOptions) (res *Response, err error) {
	return d.Request(ctx, url, http.MethodPut, options)
}

func (d *Dispatcher) Get(ctx context.Context, url string, options *RequestOptions) (res *Response, err error) {
	return d.Request(ctx, url, http.MethodGet, options)
}

func (d *Dispatcher) Delete(ctx context.Context, url string, options *RequestOptions) (res *Response, err error) {
	return d.Request(ctx, url, http.MethodDelete, options)
}

// Request builds and executes a request relative to Config.BaseURL.
// A non-2xx status is not an error: check Response.Success.
func (d *Dispatcher) Request(ctx context.Context, url string, method string, options *RequestOptions) (res *Response, err error) {
	request, err := d.newRequest(url, method, options)
	if err != nil {
		d.logger.Error(ctx, "failed to create request", map[string]interface{}{
			"url":    url,
			"method": method,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	d.logger.Debug(ctx, "request created", map[string]interface{}{
		"url":    request.FullUrl(),
		"method": request.Method(),
	})

	if d.config.Adapter != nil {
		res, err = d.config.Adapter(request)
		if err != nil {
			return nil, err
		}
		if res != nil {
			res.request = request
			res.success = d.config.ValidateStatus(res)
		}
		return res, nil
	}

	request, err = d.interceptRequest(ctx, request)
	if err != nil {
		d.logger.Error(ctx, "request interceptor failed", map[string]interface{}{
			"url":   request.FullUrl(),
			"error": err.Error(),
		})
		return nil, fmt.Errorf("request interceptor failed: %w", err)
	}

	startTime := time.Now()
	res, err = d.client.Do(ctx, request)
	if err != nil {
		d.logger.Error(ctx, "http request failed", map[string]interface{}{
			"url":    request.FullUrl(),
			"method": request.Method(),
			"error":  err.Error(),
		})
		d.recordMetrics(ctx, request, nil, time.Since(startTime), err)
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	d.logger.Info(ctx, "request completed", map[string]interface{}{
		"url":         request.FullUrl(),
		"method":      request.Method(),
		"status_code": res.StatusCode,
	})

	res.success = d.config.ValidateStatus(res)
	d.recordMetrics(ctx, request, res, time.Since(startTime), nil)

	resultRes, err := d.interceptResponse(ctx, res)
	if err != nil {
		d.logger.Error(ctx, "response interceptor failed", map[string]interface{}{
			"url":         request.FullUrl(),
			"status_code": res.StatusCode,
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("response interceptor failed: %w", err)
	}

	return resultRes, nil
}

func (d *Dispatcher) interceptRequest(ctx context.Context, req *Request) (resultReq *Request, err error) {
	resultReq = req
	for _, interceptor := range d.Interceptors.Request.interceptors {
		resultReq, err = interceptor(ctx, resultReq)
		if err != nil {
			return req, err
		}
	}

	return resultReq, nil
}

func (d *Dispatcher) interceptResponse(ctx context.Context, res *Response) (resultRes *Response, err error) {
	if res == nil {
		return res, nil
	}

	resultRes = res
	for _, interceptor := range d.Interceptors.Response.interceptors {
		resultRes, err = interceptor(ctx, resultRes)
		if err != nil {
			return resultRes, err
		}
	}

	return resultRes, nil
}

func (d *Dispatcher) newRequest(urlStr string, method string, options *RequestOptions) (*Request, error) {
	reqOptions := RequestOptions{}
	if options != nil {
		reqOptions = *options
	}

	fullUrlStr := joinURL(d.config.BaseURL, urlStr)

	builder := newRequestBuilder(fullUrlStr, method).
		SetHeaders(d.config.Headers).
		SetHeaders(reqOptions.Headers).
		SetData(reqOptions.Data).
		SetTransform(ApplicationJsonReqTransformer)

	if d.config.RequestTransform != nil {
		builder.SetTransform(d.config.RequestTransform)
	}

	if reqOptions.RequestTransform != nil {
		builder.SetTransform(reqOptions.RequestTransform)
	}

	for key, value := range reqOptions.Params {
		builder.SetParam(key, value)
	}

	req, err := builder.Build()
	if err != nil {
		return nil, err
	}

	return req, nil
}

func (d *Dispatcher) setHttpClient() (err error) {
	client, err := newDefaultClient(d)
	if err != nil {
		return err
	}

	d.client = client

	return nil
}
