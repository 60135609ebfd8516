package scim

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/openkcm/slack-scim/pkg/config"
	"github.com/openkcm/slack-scim/pkg/utils/errs"
	"github.com/openkcm/slack-scim/pkg/utils/httpclient"
)

const (
	ProductionBaseURL = "https://api.slack.com/scim/v1"

	SchemaCore       = "urn:scim:schemas:core:1.0"
	SchemaEnterprise = EnterpriseExtensionKey

	BasePathUsers              = "/Users"
	BasePathGroups             = "/Groups"
	PathServiceProviderConfigs = "/ServiceProviderConfigs"

	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"

	ContentTypeJSON = "application/json;charset=utf-8"
	ContentTypeForm = "application/x-www-form-urlencoded;charset=utf-8"

	redacted = "(redacted)"
)

// Params configure a Client. BaseURL defaults to ProductionBaseURL and
// HTTPClient to a plain http.Client.
type Params struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func (p Params) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Token, validation.Required),
		validation.Field(&p.BaseURL, is.URL),
	)
}

// Client talks to the Slack SCIM 1.1 API. It holds no mutable state and is
// safe for concurrent use.
type Client struct {
	logger     hclog.Logger
	httpClient *http.Client
	baseURL    string
}

func NewClient(params Params, logger hclog.Logger) (*Client, error) {
	err := params.Validate()
	if err != nil {
		return nil, errs.Wrap(ErrInvalidParams, err)
	}

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = ProductionBaseURL
	}

	base := params.HTTPClient
	if base == nil {
		base = &http.Client{}
	}

	httpClient := *base
	httpClient.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: params.Token,
			TokenType:   "Bearer",
		}),
		Base: base.Transport,
	}

	return &Client{
		logger:     logger,
		httpClient: &httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}, nil
}

// NewClientFromConfig resolves cfg and builds a client, honouring its TLS
// section.
func NewClientFromConfig(cfg *config.Config, logger hclog.Logger) (*Client, error) {
	params, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{}
	if params.TLS != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = params.TLS
		httpClient.Transport = transport
	}

	return NewClient(Params{
		BaseURL:    params.BaseURL,
		Token:      params.Token,
		HTTPClient: httpClient,
	}, logger)
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) String() string {
	return fmt.Sprintf("scim.Client{token: %s, baseURL: %s}", redacted, c.baseURL)
}

func (c *Client) GoString() string {
	return c.String()
}

// Do performs a single round trip. Unsuccessful statuses are returned as a
// Response and not as an error; only failures to reach the server or to read
// its answer are errors.
//
// A transport fault is never retried nor turned into an APIError. It is
// returned wrapped in ErrSendRequest with the original *url.Error kept in the
// chain, so errors.As still reaches it.
func (c *Client) Do(ctx context.Context, r *Request) (*Response, error) {
	method := strings.ToUpper(r.Method)
	if method == "" {
		method = http.MethodGet
	}

	target := buildURL(r.URL, method, r.QueryParams, r.BodyParams)

	body, contentType, err := encodeBody(method, r)
	if err != nil {
		return nil, errs.Wrap(ErrBuildRequest, err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errs.Wrap(ErrBuildRequest, err)
	}

	for key, values := range r.Headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	req.Header.Set(HeaderContentType, contentType)

	if req.Header.Get(HeaderAccept) == "" {
		req.Header.Set(HeaderAccept, "application/json")
	}

	c.logRequest(req, body)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to send a request to the SCIM API", "method", method, "error", err)
		return nil, errs.Wrap(ErrSendRequest, err)
	}

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	text, err := httpclient.ReadBody(resp)
	if err != nil {
		return nil, err
	}

	out := &Response{
		Status:  resp.StatusCode,
		Reason:  strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "),
		Headers: resp.Header,
		Body:    text,
	}

	c.logResponse(req, out)

	return out, nil
}

func (c *Client) logRequest(req *http.Request, body []byte) {
	if !c.logger.IsDebug() {
		return
	}

	headers := req.Header.Clone()
	headers.Set(HeaderAuthorization, redacted)

	c.logger.Debug("SCIM API request",
		"method", req.Method,
		"url", req.URL.String(),
		"headers", formatHeaders(headers),
		"body", string(body),
	)
}

func (c *Client) logResponse(req *http.Request, resp *Response) {
	if !c.logger.IsDebug() {
		return
	}

	c.logger.Debug("SCIM API response",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.Status,
		"reason", resp.Reason,
		"headers", formatHeaders(resp.Headers),
		"body", resp.Body,
	)
}
