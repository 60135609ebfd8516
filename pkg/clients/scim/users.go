package scim

import (
	"context"
	"net/http"
)

// CreateUser provisions a new user. Keys of a Document payload must use the
// camelCase wire names.
func (c *Client) CreateUser(ctx context.Context, user Payload) (*User, error) {
	return call(ctx, c, &Request{
		Method:   http.MethodPost,
		URL:      c.baseURL + BasePathUsers,
		JSONBody: payloadDocument(user),
	}, UserFromDocument)
}

func (c *Client) ReadUser(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	return call(ctx, c, &Request{
		Method: http.MethodGet,
		URL:    c.resourceURL(BasePathUsers, id),
	}, UserFromDocument)
}

func (c *Client) SearchUsers(ctx context.Context, params SearchParams) (*UserList, error) {
	return call(ctx, c, &Request{
		Method:      http.MethodGet,
		URL:         c.baseURL + BasePathUsers,
		QueryParams: params.values(),
	}, UserListFromDocument)
}

// PatchUser partially updates a user. The id falls back to the payload's id.
func (c *Client) PatchUser(ctx context.Context, id string, user Payload) (*User, error) {
	return c.writeUser(ctx, http.MethodPatch, id, user)
}

// UpdateUser overwrites a user. The id falls back to the payload's id.
func (c *Client) UpdateUser(ctx context.Context, id string, user Payload) (*User, error) {
	return c.writeUser(ctx, http.MethodPut, id, user)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.deleteResource(ctx, BasePathUsers, id)
}

func (c *Client) writeUser(ctx context.Context, method, id string, user Payload) (*User, error) {
	id, err := resolveID(id, user)
	if err != nil {
		return nil, err
	}

	return call(ctx, c, &Request{
		Method:   method,
		URL:      c.resourceURL(BasePathUsers, id),
		JSONBody: payloadDocument(user),
	}, UserFromDocument)
}

func (c *Client) deleteResource(ctx context.Context, basePath, id string) error {
	if id == "" {
		return ErrMissingID
	}

	resp, err := c.Do(ctx, &Request{
		Method: http.MethodDelete,
		URL:    c.resourceURL(basePath, id),
	})
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return NewAPIError(resp)
	}

	return nil
}

// GetServiceProviderConfigs reads the provider's capability descriptor.
func (c *Client) GetServiceProviderConfigs(ctx context.Context) (*ServiceProviderConfigs, error) {
	return call(ctx, c, &Request{
		Method: http.MethodGet,
		URL:    c.baseURL + PathServiceProviderConfigs,
	}, ServiceProviderConfigsFromDocument)
}
