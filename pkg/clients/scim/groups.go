package scim

import (
	"context"
	"net/http"
)

func (c *Client) CreateGroup(ctx context.Context, group Payload) (*Group, error) {
	return call(ctx, c, &Request{
		Method:   http.MethodPost,
		URL:      c.baseURL + BasePathGroups,
		JSONBody: payloadDocument(group),
	}, GroupFromDocument)
}

func (c *Client) ReadGroup(ctx context.Context, id string) (*Group, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	return call(ctx, c, &Request{
		Method: http.MethodGet,
		URL:    c.resourceURL(BasePathGroups, id),
	}, GroupFromDocument)
}

func (c *Client) SearchGroups(ctx context.Context, params SearchParams) (*GroupList, error) {
	return call(ctx, c, &Request{
		Method:      http.MethodGet,
		URL:         c.baseURL + BasePathGroups,
		QueryParams: params.values(),
	}, GroupListFromDocument)
}

// PatchGroup partially updates a group, for instance to add members. The id
// falls back to the payload's id.
func (c *Client) PatchGroup(ctx context.Context, id string, group Payload) (*Group, error) {
	return c.writeGroup(ctx, http.MethodPatch, id, group)
}

func (c *Client) UpdateGroup(ctx context.Context, id string, group Payload) (*Group, error) {
	return c.writeGroup(ctx, http.MethodPut, id, group)
}

func (c *Client) DeleteGroup(ctx context.Context, id string) error {
	return c.deleteResource(ctx, BasePathGroups, id)
}

func (c *Client) writeGroup(ctx context.Context, method, id string, group Payload) (*Group, error) {
	id, err := resolveID(id, group)
	if err != nil {
		return nil, err
	}

	return call(ctx, c, &Request{
		Method:   method,
		URL:      c.resourceURL(BasePathGroups, id),
		JSONBody: payloadDocument(group),
	}, GroupFromDocument)
}
