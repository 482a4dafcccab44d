// Package testkit holds test doubles shared across packages. MockTransport
// intercepts outgoing HTTP so gateway tests never touch the network.
package testkit

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// MockTransport implements http.RoundTripper. It matches outgoing requests
// against registered stubs and returns synthetic responses.
//
// Install it on the shared client before the test:
//
//	mt := testkit.NewMockTransport()
//	mt.Stub("https://api.razorpay.com/v1/orders", 200, `{"id":"order_x"}`)
//	http.DefaultClient.Transport = mt
//	defer http.ResetTransport()
//	// ... run test ...
//	require.NoError(t, mt.AssertAllCalled())
type MockTransport struct {
	mu    sync.Mutex
	stubs []*stub
}

type stub struct {
	urlPrefix string
	status    int
	body      string
	handler   func(*http.Request) (*http.Response, error)
	calls     int
}

// NewMockTransport returns an empty transport. Unstubbed calls fail loudly.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Stub registers a canned response for requests whose URL starts with
// urlPrefix. An empty prefix matches any request.
func (mt *MockTransport) Stub(urlPrefix string, status int, body string) *MockTransport {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.stubs = append(mt.stubs, &stub{urlPrefix: urlPrefix, status: status, body: body})
	return mt
}

// StubFunc registers a handler that inspects the request and builds the
// response itself. Useful for asserting request bodies and auth headers.
func (mt *MockTransport) StubFunc(urlPrefix string, fn func(*http.Request) (*http.Response, error)) *MockTransport {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.stubs = append(mt.stubs, &stub{urlPrefix: urlPrefix, handler: fn})
	return mt
}

// RoundTrip intercepts the outgoing request and returns a synthetic response.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for _, s := range mt.stubs {
		if s.urlPrefix != "" && !strings.HasPrefix(req.URL.String(), s.urlPrefix) {
			continue
		}
		s.calls++
		if s.handler != nil {
			return s.handler(req)
		}
		return Response(req, s.status, s.body), nil
	}

	return nil, fmt.Errorf("testkit: unexpected outgoing HTTP call to %s, no matching stub", req.URL)
}

// Calls returns how many requests matched the stub for urlPrefix.
func (mt *MockTransport) Calls(urlPrefix string) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	for _, s := range mt.stubs {
		if s.urlPrefix == urlPrefix {
			return s.calls
		}
	}
	return 0
}

// AssertAllCalled verifies that every stub was triggered at least once.
func (mt *MockTransport) AssertAllCalled() error {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	for _, s := range mt.stubs {
		if s.calls == 0 {
			return fmt.Errorf("testkit: stub for %q was never called", s.urlPrefix)
		}
	}
	return nil
}

// Response builds a synthetic *http.Response with a JSON content type.
func Response(req *http.Request, status int, body string) *http.Response {
	if status == 0 {
		status = http.StatusOK
	}
	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}
