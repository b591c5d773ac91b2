package dispatch

import (
	"context"
	"time"
)

func (d *Dispatcher) recordMetrics(ctx context.Context, req *Request, res *Response, duration time.Duration, err error) {
	if d.config.MetricsCollector == nil {
		return
	}

	metrics := RequestMetrics{
		Duration: duration,
		Error:    err,
	}

	if req != nil {
		metrics.Method = req.Method()
		metrics.URL = normalizeURL(req)

		if raw := req.RawRequest(); raw != nil && raw.ContentLength > 0 {
			metrics.RequestSize = raw.ContentLength
		}
	}

	if res != nil {
		metrics.StatusCode = res.StatusCode
		metrics.ResponseSize = int64(len(res.Data))
		metrics.Success = res.success
	}

	d.config.MetricsCollector.RecordRequest(ctx, metrics)
}

// normalizeURL drops the query string so metrics labels stay bounded.
func normalizeURL(req *Request) string {
	host := req.Host()
	path := req.Path()

	if host == "" {
		return path
	}

	return req.Scheme() + "://" + host + path
}
