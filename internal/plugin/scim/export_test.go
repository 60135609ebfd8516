package scim

import (
	"google.golang.org/grpc/codes"

	"github.com/openkcm/slack-scim/pkg/clients/scim"
)

var CodeForStatus = codeForStatus

func (p *Plugin) Client() *scim.Client {
	return p.scimClient
}

func (p *Plugin) Params() Params {
	return p.params
}

func StatusCode(err error) codes.Code {
	return codeFor(err)
}
