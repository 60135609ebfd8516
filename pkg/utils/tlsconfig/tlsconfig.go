package tlsconfig

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"os"

	"github.com/openkcm/slack-scim/pkg/utils/errs"
)

var (
	ErrCaLoading            = errors.New("ca could not be loaded")
	ErrFailedToAppendCACert = errors.New("failed to append CA certificate to the pool")
	ErrUnknownTLSVersion    = errors.New("unknown TLS version")
)

var versions = map[string]uint16{
	"1.2": tls.VersionTLS12,
	"1.3": tls.VersionTLS13,
}

type Option func(*tls.Config) error

// WithCAFile trusts the PEM encoded certificates in caPath in addition to the
// ones already present in the pool.
func WithCAFile(caPath string) Option {
	return func(c *tls.Config) error {
		pemData, err := os.ReadFile(caPath)
		if err != nil {
			return errs.Wrap(ErrCaLoading, err)
		}

		return WithCAPEM(pemData)(c)
	}
}

// WithCAPEM trusts the given PEM encoded certificates.
func WithCAPEM(pemData []byte) Option {
	return func(c *tls.Config) error {
		if c.RootCAs == nil {
			pool, err := x509.SystemCertPool()
			if err != nil || pool == nil {
				pool = x509.NewCertPool()
			}

			c.RootCAs = pool
		}

		if !c.RootCAs.AppendCertsFromPEM(pemData) {
			return ErrFailedToAppendCACert
		}

		return nil
	}
}

// WithMinVersion sets the minimum protocol version from its dotted name ("1.2", "1.3").
func WithMinVersion(version string) Option {
	return func(c *tls.Config) error {
		if version == "" {
			return nil
		}

		v, ok := versions[version]
		if !ok {
			return errs.Wrapf(ErrUnknownTLSVersion, "%q", version)
		}

		c.MinVersion = v

		return nil
	}
}

func New(opts ...Option) (*tls.Config, error) {
	config := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	for _, opt := range opts {
		err := opt(config)
		if err != nil {
			return nil, err
		}
	}

	return config, nil
}
