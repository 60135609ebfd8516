package errs_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openkcm/slack-scim/pkg/utils/errs"
)

var errBase = errors.New("base")

func TestWrap(t *testing.T) {
	t.Run("Should keep both errors in the chain", func(t *testing.T) {
		cause := &url.Error{Op: "Get", URL: "http://localhost", Err: errors.New("refused")}
		wrapped := errs.Wrap(errBase, cause)

		assert.ErrorIs(t, wrapped, errBase)

		var urlErr *url.Error
		assert.ErrorAs(t, wrapped, &urlErr)
		assert.Equal(t, "base: Get \"http://localhost\": refused", wrapped.Error())
	})
}

func TestWrapf(t *testing.T) {
	t.Run("Should format the message", func(t *testing.T) {
		wrapped := errs.Wrapf(errBase, "field %s at %d", "userName", 3)
		assert.ErrorIs(t, wrapped, errBase)
		assert.Equal(t, "base: field userName at 3", wrapped.Error())
	})
}
