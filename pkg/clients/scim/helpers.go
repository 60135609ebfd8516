package scim

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/openkcm/slack-scim/pkg/utils/errs"
)

// SearchParams narrow a search. An empty Filter and nil numbers are left out
// of the query.
type SearchParams struct {
	Filter     string
	Count      *int
	StartIndex *int
}

func (p SearchParams) values() url.Values {
	query := url.Values{}
	if p.Filter != "" {
		query.Set("filter", p.Filter)
	}

	if p.Count != nil {
		query.Set("count", strconv.Itoa(*p.Count))
	}

	if p.StartIndex != nil {
		query.Set("startIndex", strconv.Itoa(*p.StartIndex))
	}

	return query
}

// buildURL appends the query to rawURL. GET requests carry their form
// parameters in the query as well.
func buildURL(rawURL, method string, query, form url.Values) string {
	params := url.Values{}
	for key, values := range query {
		params[key] = append(params[key], values...)
	}

	if method == http.MethodGet {
		for key, values := range form {
			params[key] = append(params[key], values...)
		}
	}

	if len(params) == 0 {
		return rawURL
	}

	if strings.Contains(rawURL, "?") {
		return rawURL + "&" + params.Encode()
	}

	return rawURL + "?" + params.Encode()
}

// encodeBody returns the serialized body and its content type. The body is
// nil for GET and whenever there is nothing to send.
func encodeBody(method string, r *Request) ([]byte, string, error) {
	if len(r.JSONBody) > 0 {
		if method == http.MethodGet {
			return nil, ContentTypeJSON, nil
		}

		doc, err := canonical(r.JSONBody)
		if err != nil {
			return nil, "", err
		}

		data, err := json.Marshal(StripNulls(doc))
		if err != nil {
			return nil, "", errs.Wrap(ErrEncodeDocument, err)
		}

		return data, ContentTypeJSON, nil
	}

	if method == http.MethodGet || len(r.BodyParams) == 0 {
		return nil, ContentTypeForm, nil
	}

	return []byte(r.BodyParams.Encode()), ContentTypeForm, nil
}

// resolveID prefers the explicit id and falls back to the payload's "id".
func resolveID(id string, payload Payload) (string, error) {
	if id != "" {
		return id, nil
	}

	if payload != nil {
		if s, ok := payload.ToDocument()["id"].(string); ok && s != "" {
			return s, nil
		}
	}

	return "", ErrMissingID
}

// payloadDocument converts a payload into the body of a mutating call with
// the schemas attribute overwritten. Empty payloads produce no body.
func payloadDocument(payload Payload) Document {
	if payload == nil {
		return nil
	}

	doc := payload.ToDocument()
	if len(doc) == 0 {
		return nil
	}

	doc["schemas"] = []any{SchemaCore, SchemaEnterprise}

	return doc
}

func (c *Client) resourceURL(basePath, id string) string {
	return c.baseURL + basePath + "/" + url.PathEscape(id)
}

// call runs req and decodes a successful body with decode. A successful
// response without a body yields nil and no error.
func call[T any](ctx context.Context, c *Client, req *Request, decode func(Document) (*T, error)) (*T, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, NewAPIError(resp)
	}

	if resp.Body == "" {
		return nil, nil //nolint:nilnil
	}

	doc, err := ParseDocument(resp.Body)
	if err != nil {
		return nil, err
	}

	return decode(doc)
}

// formatHeaders renders headers one per line in key order with the
// Authorization value hidden.
func formatHeaders(header http.Header) string {
	keys := make([]string, 0, len(header))
	for key := range header {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	var sb strings.Builder

	for _, key := range keys {
		value := strings.Join(header[key], ", ")
		if strings.EqualFold(key, HeaderAuthorization) {
			value = redacted
		}

		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	return sb.String()
}
