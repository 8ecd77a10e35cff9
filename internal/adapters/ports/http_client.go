package ports

import "net/http"

// HTTPClient is the transport collaborator used to POST XML documents to the gateway.
// *http.Client satisfies it; tests inject a scripted mock.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
