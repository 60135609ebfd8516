package scim

import (
	"net/http"

	"golang.org/x/oauth2"
)

var (
	BuildURL        = buildURL
	ResolveID       = resolveID
	PayloadDocument = payloadDocument
)

// BaseTransport returns the transport the bearer token transport delegates to.
func BaseTransport(c *Client) http.RoundTripper {
	return c.httpClient.Transport.(*oauth2.Transport).Base
}
