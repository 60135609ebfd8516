package scim

import "net/http"

// Response is the raw outcome of a call. Body is already decoded to UTF-8
// and is empty when the server sent no content.
type Response struct {
	Status  int
	Reason  string
	Headers http.Header
	Body    string
}

func (r *Response) IsSuccess() bool {
	return r.Status < http.StatusMultipleChoices
}
