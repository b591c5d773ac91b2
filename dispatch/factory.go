package dispatch

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"time"
)

const defaultIdleConnTimeout = 50 * time.Second

func newDefaultClient(d *Dispatcher) (Client, error) {
	httpClient, err := newHTTPClient(d.config)
	if err != nil {
		return nil, err
	}

	return &DefaultClient{
		client:              httpClient,
		maxResponseBodySize: d.config.MaxResponseBodySize,
	}, nil
}

// newHTTPClient prefers Config.HTTPTransport; otherwise it builds a
// transport carrying the configured client certificates.
func newHTTPClient(config Config) (http.Client, error) {
	transport := config.HTTPTransport
	if transport == nil {
		tlsConfig, err := tlsConfigFor(config)
		if err != nil {
			return http.Client{}, err
		}

		transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: tlsConfig,
			IdleConnTimeout: defaultIdleConnTimeout,
		}
	}

	return http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}, nil
}

func tlsConfigFor(config Config) (*tls.Config, error) {
	if len(config.Certificates) == 0 {
		if !config.InsecureSkipVerify {
			return nil, nil
		}
		return &tls.Config{InsecureSkipVerify: true}, nil
	}

	pool := x509.NewCertPool()
	certificates := make([]tls.Certificate, 0, len(config.Certificates))

	for _, certConfig := range config.Certificates {
		if ok := pool.AppendCertsFromPEM([]byte(certConfig.Cert)); !ok {
			return nil, fmt.Errorf("failed to append certificate to pool")
		}

		cert, err := tls.X509KeyPair([]byte(certConfig.Cert), []byte(certConfig.Key))
		if err != nil {
			return nil, fmt.Errorf("failed to load X509 key pair: %w", err)
		}

		certificates = append(certificates, cert)
	}

	return &tls.Config{
		RootCAs:            pool,
		Certificates:       certificates,
		InsecureSkipVerify: config.InsecureSkipVerify,
	}, nil
}
