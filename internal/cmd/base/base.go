package base

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/openkcm/common-sdk/pkg/commoncfg"

	"github.com/openkcm/slack-scim/pkg/clients/scim"
	"github.com/openkcm/slack-scim/pkg/config"
)

const (
	EnvToken   = "SLACK_SCIM_TOKEN"
	EnvBaseURL = "SLACK_SCIM_BASE_URL"
)

var ErrNoToken = errors.New("a token is required (-token, " + EnvToken + " or -config)")

// Command carries what every subcommand shares.
type Command struct {
	UI       cli.Ui
	Log      hclog.Logger
	LogLevel *slog.LevelVar
	Stdin    io.Reader
}

// FlagSet adds help rendering to flag.FlagSet.
type FlagSet struct {
	*flag.FlagSet
}

func NewFlagSet(f *flag.FlagSet) *FlagSet {
	return &FlagSet{FlagSet: f}
}

func (f *FlagSet) Help() string {
	var sb strings.Builder

	sb.WriteString("\n\nOptions:\n\n")
	f.SetOutput(&sb)
	f.PrintDefaults()
	f.SetOutput(nil)

	return sb.String()
}

// ClientFlags are the connection options accepted by every API command.
type ClientFlags struct {
	Config  string
	BaseURL string
	Token   string
	Debug   bool
}

func (cf *ClientFlags) Register(f *FlagSet) {
	f.StringVar(&cf.Config, "config", "", "Path to a YAML configuration file")
	f.StringVar(&cf.BaseURL, "base-url", "",
		"["+EnvBaseURL+"] SCIM API base URL, defaults to "+scim.ProductionBaseURL)
	f.StringVar(&cf.Token, "token", "", "["+EnvToken+"] OAuth token with the admin scope")
	f.BoolVar(&cf.Debug, "debug", false, "Log requests and responses")
}

// Client builds a SCIM client. Flags override the configuration file and
// the environment fills in what neither provides.
func (c *Command) Client(cf *ClientFlags) (*scim.Client, error) {
	cfg := &config.Config{}

	if cf.Config != "" {
		loaded, err := config.Load(cf.Config)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if cf.Debug || cfg.Debug {
		c.LogLevel.Set(slog.LevelDebug)
	}

	switch {
	case cf.BaseURL != "":
		ref := embedded(cf.BaseURL)
		cfg.BaseURL = &ref
	case cfg.BaseURL == nil && os.Getenv(EnvBaseURL) != "":
		ref := embedded(os.Getenv(EnvBaseURL))
		cfg.BaseURL = &ref
	}

	switch {
	case cf.Token != "":
		cfg.Token = embedded(cf.Token)
	case cf.Config == "" && os.Getenv(EnvToken) != "":
		cfg.Token = embedded(os.Getenv(EnvToken))
	case cf.Config == "":
		return nil, ErrNoToken
	}

	return scim.NewClientFromConfig(cfg, c.Log)
}

// Print writes v as indented JSON.
func (c *Command) Print(v any) int {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		c.UI.Error(fmt.Sprintf("error encoding output: %v", err))
		return 1
	}

	c.UI.Output(string(out))

	return 0
}

// Fail reports err and returns the exit code.
func (c *Command) Fail(action string, err error) int {
	var apiErr *scim.APIError
	if errors.As(err, &apiErr) {
		c.UI.Error(fmt.Sprintf("error %s: status %d: %s", action, apiErr.Status, apiErr.Description()))
		return 2
	}

	c.UI.Error(fmt.Sprintf("error %s: %v", action, err))

	return 1
}

func embedded(value string) commoncfg.SourceRef {
	return commoncfg.SourceRef{
		Source: commoncfg.EmbeddedSourceValue,
		Value:  value,
	}
}
