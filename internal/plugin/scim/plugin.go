package scim

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hashicorp/go-hclog"
	"github.com/openkcm/plugin-sdk/pkg/hclog2slog"
	"github.com/samber/oops"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gopkg.in/yaml.v3"

	idmangv1 "github.com/openkcm/plugin-sdk/proto/plugin/identity_management/v1"
	configv1 "github.com/openkcm/plugin-sdk/proto/service/common/config/v1"

	"github.com/openkcm/slack-scim/pkg/clients/scim"
	"github.com/openkcm/slack-scim/pkg/config"
	"github.com/openkcm/slack-scim/pkg/utils/errs"
)

var (
	ErrID               = oops.In("Identity management Plugin")
	ErrNoScimClient     = errors.New("no scim client exists")
	ErrGetAllGroups     = errors.New("failed to get all groups")
	ErrGetGroupsForUser = errors.New("failed to get groups for user")
	ErrGetUsersForGroup = errors.New("failed to get users for group")
	ErrNoID             = errors.New("no filter id provided")
	ErrNotFound         = errors.New("no resource matches the filter")
)

// Config is the YAML configuration handed over by the plugin host. When an
// attribute is set, lookups search by that attribute instead of reading the
// resource by id.
type Config struct {
	config.Config `yaml:",inline"`

	GroupAttribute string `yaml:"groupAttribute"`
	UserAttribute  string `yaml:"userAttribute"`
}

type Params struct {
	GroupAttribute string
	UserAttribute  string
}

// Plugin serves Slack workspace groups and their members to the identity
// management host.
type Plugin struct {
	idmangv1.UnimplementedIdentityManagementServiceServer
	configv1.UnimplementedConfigServer

	logger     hclog.Logger
	scimClient *scim.Client
	params     Params
}

var (
	_ idmangv1.IdentityManagementServiceServer = (*Plugin)(nil)
	_ configv1.ConfigServer                    = (*Plugin)(nil)
)

func NewPlugin() *Plugin {
	return &Plugin{}
}

func (p *Plugin) SetLogger(logger hclog.Logger) {
	p.logger = logger // Keep a copy of the logger for client creation
	slog.SetDefault(hclog2slog.New(logger))
}

func (p *Plugin) Configure(
	_ context.Context,
	req *configv1.ConfigureRequest,
) (*configv1.ConfigureResponse, error) {
	slog.Info("Configuring plugin")

	cfg := Config{}

	err := yaml.Unmarshal([]byte(req.GetYamlConfiguration()), &cfg)
	if err != nil {
		return nil, ErrID.Wrapf(err, "Failed to get yaml Configuration")
	}

	if cfg.Debug && p.logger != nil {
		p.logger.SetLevel(hclog.Debug)
	}

	client, err := scim.NewClientFromConfig(&cfg.Config, p.logger)
	if err != nil {
		return nil, ErrID.Wrapf(err, "Failed creating SCIM client")
	}

	p.scimClient = client
	p.params = Params{GroupAttribute: cfg.GroupAttribute, UserAttribute: cfg.UserAttribute}

	return &configv1.ConfigureResponse{}, nil
}

// GetAllGroups pages through the workspace groups by startIndex until the
// announced totalResults are collected or the provider returns an empty page.
func (p *Plugin) GetAllGroups(
	ctx context.Context,
	_ *idmangv1.GetAllGroupsRequest,
) (*idmangv1.GetAllGroupsResponse, error) {
	if p.scimClient == nil {
		return nil, ErrNoScimClient
	}

	responseGroups := []*idmangv1.Group{}
	params := scim.SearchParams{}

	for {
		groups, err := p.scimClient.SearchGroups(ctx, params)
		if err != nil {
			return nil, toStatus(ErrGetAllGroups, err)
		}

		if groups == nil || len(groups.Resources) == 0 {
			break
		}

		for _, group := range groups.Resources {
			responseGroups = append(responseGroups, &idmangv1.Group{
				Id:   deref(group.ID),
				Name: deref(group.DisplayName),
			})
		}

		if groups.TotalResults == nil || len(responseGroups) >= *groups.TotalResults {
			break
		}

		next := len(responseGroups) + 1
		params.StartIndex = &next
	}

	return &idmangv1.GetAllGroupsResponse{Groups: responseGroups}, nil
}

func (p *Plugin) GetUsersForGroup(
	ctx context.Context,
	request *idmangv1.GetUsersForGroupRequest,
) (*idmangv1.GetUsersForGroupResponse, error) {
	if p.scimClient == nil {
		return nil, ErrNoScimClient
	}

	if request.GetGroupId() == "" {
		return nil, toStatus(ErrGetUsersForGroup, ErrNoID)
	}

	group, err := p.findGroup(ctx, request.GetGroupId())
	if errors.Is(err, ErrNotFound) {
		return &idmangv1.GetUsersForGroupResponse{Users: []*idmangv1.User{}}, nil
	}

	if err != nil {
		return nil, toStatus(ErrGetUsersForGroup, err)
	}

	responseUsers := make([]*idmangv1.User, len(group.Members))

	for i, member := range group.Members {
		responseUsers[i] = &idmangv1.User{Id: deref(member.Value), Name: deref(member.Display)}
	}

	return &idmangv1.GetUsersForGroupResponse{Users: responseUsers}, nil
}

func (p *Plugin) GetGroupsForUser(
	ctx context.Context,
	request *idmangv1.GetGroupsForUserRequest,
) (*idmangv1.GetGroupsForUserResponse, error) {
	if p.scimClient == nil {
		return nil, ErrNoScimClient
	}

	if request.GetUserId() == "" {
		return nil, toStatus(ErrGetGroupsForUser, ErrNoID)
	}

	user, err := p.findUser(ctx, request.GetUserId())
	if errors.Is(err, ErrNotFound) {
		return &idmangv1.GetGroupsForUserResponse{Groups: []*idmangv1.Group{}}, nil
	}

	if err != nil {
		return nil, toStatus(ErrGetGroupsForUser, err)
	}

	responseGroups := make([]*idmangv1.Group, len(user.Groups))

	for i, group := range user.Groups {
		responseGroups[i] = &idmangv1.Group{Id: deref(group.Value), Name: deref(group.Display)}
	}

	return &idmangv1.GetGroupsForUserResponse{Groups: responseGroups}, nil
}

func (p *Plugin) findGroup(ctx context.Context, value string) (*scim.Group, error) {
	if p.params.GroupAttribute == "" {
		group, err := p.scimClient.ReadGroup(ctx, value)
		if err != nil {
			return nil, err
		}

		if group == nil {
			return nil, ErrNotFound
		}

		return group, nil
	}

	groups, err := p.scimClient.SearchGroups(ctx, searchParams(p.params.GroupAttribute, value))
	if err != nil {
		return nil, err
	}

	if groups == nil || len(groups.Resources) == 0 {
		return nil, ErrNotFound
	}

	return &groups.Resources[0], nil
}

func (p *Plugin) findUser(ctx context.Context, value string) (*scim.User, error) {
	if p.params.UserAttribute == "" {
		user, err := p.scimClient.ReadUser(ctx, value)
		if err != nil {
			return nil, err
		}

		if user == nil {
			return nil, ErrNotFound
		}

		return user, nil
	}

	users, err := p.scimClient.SearchUsers(ctx, searchParams(p.params.UserAttribute, value))
	if err != nil {
		return nil, err
	}

	if users == nil || len(users.Resources) == 0 {
		return nil, ErrNotFound
	}

	return &users.Resources[0], nil
}

func searchParams(attribute, value string) scim.SearchParams {
	count := 1
	filter := scim.FilterComparison{
		Attribute: attribute,
		Operator:  scim.FilterOperatorEqual,
		Value:     value,
	}

	return scim.SearchParams{Filter: filter.String(), Count: &count}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// statusError carries a gRPC code for the plugin host while keeping the
// underlying error chain intact.
type statusError struct {
	code codes.Code
	err  error
}

func (e *statusError) Error() string {
	return e.err.Error()
}

func (e *statusError) Unwrap() error {
	return e.err
}

func (e *statusError) GRPCStatus() *status.Status {
	return status.New(e.code, e.err.Error())
}

func toStatus(base, err error) error {
	return &statusError{code: codeFor(err), err: errs.Wrap(base, err)}
}

func codeFor(err error) codes.Code {
	var apiErr *scim.APIError
	if errors.As(err, &apiErr) {
		return codeForStatus(apiErr.Status)
	}

	switch {
	case errors.Is(err, ErrNoID), errors.Is(err, scim.ErrMissingID):
		return codes.InvalidArgument
	case errors.Is(err, scim.ErrSendRequest), errors.Is(err, context.DeadlineExceeded):
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

func codeForStatus(httpStatus int) codes.Code {
	switch {
	case httpStatus == http.StatusBadRequest:
		return codes.InvalidArgument
	case httpStatus == http.StatusUnauthorized:
		return codes.Unauthenticated
	case httpStatus == http.StatusForbidden:
		return codes.PermissionDenied
	case httpStatus == http.StatusNotFound:
		return codes.NotFound
	case httpStatus == http.StatusConflict:
		return codes.AlreadyExists
	case httpStatus == http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case httpStatus >= http.StatusInternalServerError:
		return codes.Unavailable
	default:
		return codes.Unknown
	}
}
