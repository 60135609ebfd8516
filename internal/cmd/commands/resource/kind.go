package resource

import (
	"context"

	"github.com/openkcm/slack-scim/pkg/clients/scim"
)

// Kind binds the generic commands to the client operations of one resource
// type.
type Kind struct {
	Name     string
	Singular string

	create func(context.Context, *scim.Client, scim.Payload) (scim.Payload, error)
	read   func(context.Context, *scim.Client, string) (scim.Payload, error)
	search func(context.Context, *scim.Client, scim.SearchParams) (scim.Payload, error)
	patch  func(context.Context, *scim.Client, string, scim.Payload) (scim.Payload, error)
	update func(context.Context, *scim.Client, string, scim.Payload) (scim.Payload, error)
	remove func(context.Context, *scim.Client, string) error
}

var Users = Kind{
	Name:     "users",
	Singular: "user",
	create: func(ctx context.Context, c *scim.Client, p scim.Payload) (scim.Payload, error) {
		return c.CreateUser(ctx, p)
	},
	read: func(ctx context.Context, c *scim.Client, id string) (scim.Payload, error) {
		return c.ReadUser(ctx, id)
	},
	search: func(ctx context.Context, c *scim.Client, params scim.SearchParams) (scim.Payload, error) {
		return c.SearchUsers(ctx, params)
	},
	patch: func(ctx context.Context, c *scim.Client, id string, p scim.Payload) (scim.Payload, error) {
		return c.PatchUser(ctx, id, p)
	},
	update: func(ctx context.Context, c *scim.Client, id string, p scim.Payload) (scim.Payload, error) {
		return c.UpdateUser(ctx, id, p)
	},
	remove: func(ctx context.Context, c *scim.Client, id string) error {
		return c.DeleteUser(ctx, id)
	},
}

var Groups = Kind{
	Name:     "groups",
	Singular: "group",
	create: func(ctx context.Context, c *scim.Client, p scim.Payload) (scim.Payload, error) {
		return c.CreateGroup(ctx, p)
	},
	read: func(ctx context.Context, c *scim.Client, id string) (scim.Payload, error) {
		return c.ReadGroup(ctx, id)
	},
	search: func(ctx context.Context, c *scim.Client, params scim.SearchParams) (scim.Payload, error) {
		return c.SearchGroups(ctx, params)
	},
	patch: func(ctx context.Context, c *scim.Client, id string, p scim.Payload) (scim.Payload, error) {
		return c.PatchGroup(ctx, id, p)
	},
	update: func(ctx context.Context, c *scim.Client, id string, p scim.Payload) (scim.Payload, error) {
		return c.UpdateGroup(ctx, id, p)
	},
	remove: func(ctx context.Context, c *scim.Client, id string) error {
		return c.DeleteGroup(ctx, id)
	},
}
