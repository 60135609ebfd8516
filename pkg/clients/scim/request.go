package scim

import (
	"net/http"
	"net/url"
)

// Request describes a single call to the SCIM API. When JSONBody is set it
// takes precedence over BodyParams as the request body. GET requests never
// carry a body; their BodyParams are sent as query parameters instead.
type Request struct {
	Method      string
	URL         string
	Headers     http.Header
	QueryParams url.Values
	BodyParams  url.Values
	JSONBody    Document
}
