package httpclient_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkcm/slack-scim/pkg/utils/httpclient"
)

func TestReadBody(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		contentType   string
		responseBody  []byte
		expectedBody  string
		expectError   bool
		errorContains string
	}{
		{
			name:         "UTF-8 JSON",
			contentType:  "application/json;charset=utf-8",
			responseBody: []byte(`{"displayName":"Zoë"}`),
			expectedBody: `{"displayName":"Zoë"}`,
		},
		{
			name:         "Latin-1 body",
			contentType:  "application/json; charset=ISO-8859-1",
			responseBody: []byte{'"', 'Z', 'o', 0xEB, '"'},
			expectedBody: `"Zoë"`,
		},
		{
			name:         "No content type",
			responseBody: []byte(`{}`),
			expectedBody: `{}`,
		},
		{
			name:         "Empty body",
			contentType:  "application/json;charset=utf-8",
			responseBody: nil,
			expectedBody: "",
		},
		{
			name:          "Unknown charset",
			contentType:   "application/json;charset=klingon",
			responseBody:  []byte(`{}`),
			expectError:   true,
			errorContains: "unsupported response charset",
		},
		{
			name:         "Unknown charset on an error response",
			status:       http.StatusBadGateway,
			contentType:  "text/html; charset=x-bogus",
			responseBody: []byte("<html>Bad Gateway</html>"),
			expectedBody: "<html>Bad Gateway</html>",
		},
		{
			name:         "Invalid bytes on an error response",
			status:       http.StatusServiceUnavailable,
			contentType:  "text/plain; charset=x-bogus",
			responseBody: []byte{'d', 'o', 'w', 'n', 0xFF},
			expectedBody: "down\uFFFD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}

				status := tt.status
				if status == 0 {
					status = http.StatusOK
				}

				w.WriteHeader(status)
				_, err := w.Write(tt.responseBody)
				assert.NoError(t, err)
			}))
			defer server.Close()

			req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, server.URL, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)

			defer resp.Body.Close()

			body, err := httpclient.ReadBody(resp)

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}

func TestCharset(t *testing.T) {
	header := http.Header{}
	assert.Equal(t, "utf-8", httpclient.Charset(header))

	header.Set("Content-Type", "text/html; charset=Shift_JIS")
	assert.Equal(t, "Shift_JIS", httpclient.Charset(header))

	header.Set("Content-Type", "not a media type;;")
	assert.Equal(t, "utf-8", httpclient.Charset(header))
}
