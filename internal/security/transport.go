package security

import (
	"crypto/tls"
	"net/http"
	"strings"
	"time"
)

const maxResponseBytes = 1024 * 1024

// GoogleHosts are the only hosts the authorization flow talks to.
var GoogleHosts = []string{
	"oauth2.googleapis.com",
	"accounts.google.com",
	"www.googleapis.com",
}

// NewHTTPClient returns a client restricted to allowedHosts with TLS 1.2+,
// no redirects and a bounded JSON response size.
func NewHTTPClient(allowedHosts ...string) *http.Client {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		TLSClientConfig:       tlsConfig,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	allowed := make(map[string]bool, len(allowedHosts))
	for _, h := range allowedHosts {
		allowed[strings.ToLower(h)] = true
	}

	return &http.Client{
		Transport: &guardedTransport{base: base, allowed: allowed},
		Timeout:   30 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type guardedTransport struct {
	base    http.RoundTripper
	allowed map[string]bool
}

func (t *guardedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	host := strings.ToLower(req.URL.Hostname())
	if !t.allowed[host] {
		return nil, NewTransportError("request", host, "host not allowed")
	}

	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", "take-a-break/1.0")
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if err := validateResponse(resp); err != nil {
		_ = resp.Body.Close()
		return nil, NewTransportError("response", host, err.Error())
	}

	return resp, nil
}

type responseError string

func (e responseError) Error() string { return string(e) }

func validateResponse(resp *http.Response) error {
	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode == http.StatusOK && !strings.HasPrefix(contentType, "application/json") {
		return responseError("unexpected content type: " + contentType)
	}

	if resp.ContentLength > maxResponseBytes {
		return responseError("response too large")
	}

	return nil
}
