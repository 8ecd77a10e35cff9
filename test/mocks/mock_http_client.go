package mocks

import (
	"bytes"
	"io"
	"net/http"
)

// MockHTTPClient is a mock implementation of HTTPClient for testing
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
	Calls  []*http.Request
	Bodies []string // Request bodies, in call order
}

// NewMockHTTPClient creates a new mock HTTP client
func NewMockHTTPClient(doFunc func(req *http.Request) (*http.Response, error)) *MockHTTPClient {
	return &MockHTTPClient{
		DoFunc: doFunc,
		Calls:  []*http.Request{},
	}
}

// RespondWith returns a mock that answers every request with the given status and XML body
func RespondWith(statusCode int, body string) *MockHTTPClient {
	return NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return XMLResponse(statusCode, body), nil
	})
}

// FailWith returns a mock whose requests all fail with err
func FailWith(err error) *MockHTTPClient {
	return NewMockHTTPClient(func(req *http.Request) (*http.Response, error) {
		return nil, err
	})
}

// XMLResponse builds an *http.Response carrying an XML body
func XMLResponse(statusCode int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/xml")
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     header,
	}
}

// Do captures the call and its body, then executes the mock function
func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.Calls = append(m.Calls, req)
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(body))
		m.Bodies = append(m.Bodies, string(body))
	} else {
		m.Bodies = append(m.Bodies, "")
	}

	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	// Default: a gateway ERROR document
	return XMLResponse(http.StatusOK, `<?xml version="1.0" encoding="UTF-8"?><ERROR><ERRORSTRING>NO MOCK RESPONSE</ERRORSTRING></ERROR>`), nil
}

// LastBody returns the most recent request body
func (m *MockHTTPClient) LastBody() string {
	if len(m.Bodies) == 0 {
		return ""
	}
	return m.Bodies[len(m.Bodies)-1]
}
