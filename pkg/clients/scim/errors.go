package scim

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingID     = errors.New("resource id is missing")
	ErrInvalidParams = errors.New("invalid client parameters")
	ErrSendRequest   = errors.New("failed to send request to the SCIM API")
	ErrBuildRequest  = errors.New("failed to build SCIM API request")
)

// APIError is returned for every response whose status is 300 or above.
// Errors holds the "Errors" object of the body, or an empty document when the
// body carried none.
type APIError struct {
	Status  int
	Headers http.Header
	Errors  Document
}

// NewAPIError builds the error for an unsuccessful response. Bodies that are
// not JSON objects are tolerated.
func NewAPIError(resp *Response) *APIError {
	apiErr := &APIError{
		Status:  resp.Status,
		Headers: resp.Headers,
		Errors:  Document{},
	}

	if resp.Body == "" {
		return apiErr
	}

	body, err := ParseDocument(resp.Body)
	if err != nil {
		return apiErr
	}

	if detail, ok := toObject(body["Errors"]); ok {
		apiErr.Errors = detail
	}

	return apiErr
}

// Code returns errors.code when the provider sent an integral one.
func (e *APIError) Code() (int, bool) {
	v, ok := e.Errors["code"]
	if !ok {
		return 0, false
	}

	return toInt(v)
}

// Description returns errors.description or an empty string.
func (e *APIError) Description() string {
	s, _ := e.Errors["description"].(string)
	return s
}

func (e *APIError) Error() string {
	code, ok := e.Code()
	if !ok {
		return fmt.Sprintf("SCIM API error: status %d", e.Status)
	}

	return fmt.Sprintf("SCIM API error: status %d, code %d: %s", e.Status, code, e.Description())
}
