package config

import (
	"crypto/tls"
	"errors"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/openkcm/slack-scim/pkg/utils/tlsconfig"
)

var (
	ErrConfig     = oops.In("Slack SCIM Config")
	ErrEmptyValue = errors.New("value is empty")
)

type TLS struct {
	CAPath     string `yaml:"caPath"`
	MinVersion string `yaml:"minVersion"`
}

// Config describes how to reach the SCIM API. BaseURL may be left unset to
// target the production endpoint.
type Config struct {
	BaseURL *commoncfg.SourceRef `yaml:"baseURL"`
	Token   commoncfg.SourceRef  `yaml:"token"`
	TLS     *TLS                 `yaml:"tls"`
	Debug   bool                 `yaml:"debug"`
}

// Params are the resolved values of a Config.
type Params struct {
	BaseURL string
	Token   string
	TLS     *tls.Config
}

// Load reads and parses the YAML configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrConfig.With("path", path).Wrapf(err, "Failed reading configuration")
	}

	return Parse(data)
}

// Parse decodes a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}

	err := yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, ErrConfig.Wrapf(err, "Failed to get yaml Configuration")
	}

	return cfg, nil
}

// Resolve loads every source reference and validates the result.
func (c *Config) Resolve() (*Params, error) {
	params := &Params{}

	if c.BaseURL != nil {
		baseURL, err := loadString(*c.BaseURL)
		if err != nil {
			return nil, ErrConfig.Wrapf(err, "Failed loading base URL")
		}

		params.BaseURL = baseURL
	}

	token, err := loadString(c.Token)
	if err != nil {
		return nil, ErrConfig.Wrapf(err, "Failed loading token")
	}

	params.Token = token

	if c.TLS != nil {
		var opts []tlsconfig.Option
		if c.TLS.CAPath != "" {
			opts = append(opts, tlsconfig.WithCAFile(c.TLS.CAPath))
		}

		opts = append(opts, tlsconfig.WithMinVersion(c.TLS.MinVersion))

		params.TLS, err = tlsconfig.New(opts...)
		if err != nil {
			return nil, ErrConfig.Wrapf(err, "Failed building TLS configuration")
		}
	}

	err = params.Validate()
	if err != nil {
		return nil, ErrConfig.Wrapf(err, "Invalid configuration")
	}

	return params, nil
}

func (p *Params) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.BaseURL, is.URL),
		validation.Field(&p.Token, validation.Required),
	)
}

// loadString loads a reference and accepts both raw and JSON quoted values.
func loadString(ref commoncfg.SourceRef) (string, error) {
	raw, err := commoncfg.LoadValueFromSourceRef(ref)
	if err != nil {
		return "", err
	}

	value := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(value); err == nil {
		value = unquoted
	}

	if value == "" {
		return "", ErrEmptyValue
	}

	return value, nil
}
