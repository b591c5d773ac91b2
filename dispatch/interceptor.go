package dispatch

import "context"

type ReqInterceptorFunc func(ctx context.Context, req *Request) (resultReq *Request, err error)
type ResInterceptorFunc func(ctx context.Context, res *Response) (resultRes *Response, err error)

type interceptorCollectionWrapper struct {
	Request  reqInterceptorCollection
	Response resInterceptorCollection
}

type reqInterceptorCollection struct {
	interceptors []ReqInterceptorFunc
}

// Use appends interceptor; interceptors run in registration order.
func (c *reqInterceptorCollection) Use(interceptor ReqInterceptorFunc) {
	c.interceptors = append(c.interceptors, interceptor)
}

type resInterceptorCollection struct {
	interceptors []ResInterceptorFunc
}

func (c *resInterceptorCollection) Use(interceptor ResInterceptorFunc) {
	c.interceptors = append(c.interceptors, interceptor)
}

// HeaderInterceptor sets header on every request to the value returned by
// value. Used to stamp request ids.
func HeaderInterceptor(header string, value func() string) ReqInterceptorFunc {
	return func(ctx context.Context, req *Request) (*Request, error) {
		if err := req.SetHeader(header, value()); err != nil {
			return req, err
		}
		return req, nil
	}
}
