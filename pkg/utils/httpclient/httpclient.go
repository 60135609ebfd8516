package httpclient

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/openkcm/slack-scim/pkg/utils/errs"
)

const defaultCharset = "utf-8"

var (
	ErrReadBody           = errors.New("failed to read response body")
	ErrUnsupportedCharset = errors.New("unsupported response charset")
)

// ReadBody reads the whole response body and converts it to UTF-8 using the
// charset announced in the Content-Type header. An empty body yields an empty
// string. Bodies of unsuccessful responses never fail on their charset: when
// it is unknown or the bytes do not match it, invalid UTF-8 sequences are
// replaced instead.
func ReadBody(resp *http.Response) (string, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.Wrap(ErrReadBody, err)
	}

	if len(raw) == 0 {
		return "", nil
	}

	decoded, err := decode(raw, Charset(resp.Header))
	if err != nil {
		if resp.StatusCode >= http.StatusMultipleChoices {
			return strings.ToValidUTF8(string(raw), string(utf8.RuneError)), nil
		}

		return "", err
	}

	return decoded, nil
}

func decode(raw []byte, charset string) (string, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", errs.Wrap(ErrUnsupportedCharset, err)
	}

	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", errs.Wrap(ErrReadBody, err)
	}

	return string(decoded), nil
}

// Charset returns the charset parameter of the Content-Type header,
// defaulting to UTF-8.
func Charset(header http.Header) string {
	contentType := header.Get("Content-Type")
	if contentType == "" {
		return defaultCharset
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil || params["charset"] == "" {
		return defaultCharset
	}

	return params["charset"]
}
