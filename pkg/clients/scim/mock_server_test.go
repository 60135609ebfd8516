package scim_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openkcm/slack-scim/pkg/clients/scim"
)

const (
	testToken = "xoxp-123-123"

	unauthorizedBody = `{"Errors":{"description":"invalid_authentication","code":401}}`
)

type recordedRequest struct {
	Method        string
	RequestURI    string
	RawQuery      string
	ContentType   string
	Authorization string
	Body          []byte
}

// mockServer imitates the provider with the fixtures under testdata. Only
// tokens starting with "xoxp-" are accepted.
type mockServer struct {
	*httptest.Server

	t        *testing.T
	mu       sync.Mutex
	requests []recordedRequest
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()

	m := &mockServer{t: t}
	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.Close)

	return m
}

func (m *mockServer) client(t *testing.T, token string) *scim.Client {
	t.Helper()

	client, err := scim.NewClient(scim.Params{BaseURL: m.URL, Token: token}, nil)
	require.NoError(t, err)

	return client
}

func (m *mockServer) recorded() []recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]recordedRequest(nil), m.requests...)
}

func (m *mockServer) last() recordedRequest {
	m.t.Helper()

	requests := m.recorded()
	require.NotEmpty(m.t, requests)

	return requests[len(requests)-1]
}

func (m *mockServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	m.mu.Lock()
	m.requests = append(m.requests, recordedRequest{
		Method:        r.Method,
		RequestURI:    r.RequestURI,
		RawQuery:      r.URL.RawQuery,
		ContentType:   r.Header.Get("Content-Type"),
		Authorization: r.Header.Get("Authorization"),
		Body:          body,
	})
	m.mu.Unlock()

	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer xoxp-") {
		m.write(w, http.StatusUnauthorized, unauthorizedBody)
		return
	}

	switch r.URL.Path {
	case "/Users/BROKEN":
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>Bad Gateway</html>"))

		return
	case "/Users/GONE":
		m.write(w, http.StatusNotFound, `{"Errors":{"description":"user_not_found","code":404}}`)
		return
	case "/Users/MALFORMED":
		m.write(w, http.StatusOK, `{"id":1,"active":"yes","userName":"ok"}`)
		return
	case "/Groups/NOCONTENT":
		w.WriteHeader(http.StatusNoContent)
		return
	}

	switch r.Method {
	case http.MethodGet:
		m.write(w, http.StatusOK, m.fixtureFor(r))
	case http.MethodPost, http.MethodPatch, http.MethodPut:
		m.write(w, http.StatusOK, m.echo(r.URL.Path, body))
	case http.MethodDelete:
		w.Header().Set("Content-Type", "application/json;charset=utf-8")
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (m *mockServer) write(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json;charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (m *mockServer) fixtureFor(r *http.Request) string {
	secondPage := strings.Contains(r.URL.RawQuery, "startIndex=2")

	switch r.URL.Path {
	case "/ServiceProviderConfigs":
		return m.fixture("v1_service_provider_configs.json")
	case "/Users":
		if secondPage {
			return m.fixture("v1_users_2.json")
		}

		return m.fixture("v1_users_1.json")
	case "/Users/W111":
		return m.fixture("v1_user_1.json")
	case "/Users/W222":
		return m.fixture("v1_user_2.json")
	case "/Groups":
		if secondPage {
			return m.fixture("v1_groups_2.json")
		}

		return m.fixture("v1_groups_1.json")
	case "/Groups/S111":
		return m.fixture("v1_group_1.json")
	case "/Groups/S222":
		return m.fixture("v1_group_2.json")
	case "/Groups/S333":
		return m.fixture("v1_group_3.json")
	default:
		return "{}"
	}
}

// echo answers a mutating call with a fixture updated from the request body.
func (m *mockServer) echo(path string, body []byte) string {
	var (
		base   string
		id     string
		fields []string
	)

	switch path {
	case "/Users", "/Users/W111":
		base, id, fields = "v1_user_1.json", "W111", []string{"emails", "name", "userName"}
	case "/Groups", "/Groups/S111":
		base, id, fields = "v1_group_1.json", "S111", []string{"displayName", "members"}
	default:
		return "{}"
	}

	var input, out map[string]any

	require.NoError(m.t, json.Unmarshal(body, &input))
	require.NoError(m.t, json.Unmarshal([]byte(m.fixture(base)), &out))

	out["id"] = id

	for _, field := range fields {
		if v, ok := input[field]; ok {
			out[field] = v
		}
	}

	data, err := json.Marshal(out)
	require.NoError(m.t, err)

	return string(data)
}

func (m *mockServer) fixture(name string) string {
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(m.t, err)

	return string(data)
}

func loadFixture(t *testing.T, name string) scim.Document {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	doc, err := scim.ParseDocument(string(data))
	require.NoError(t, err)

	return doc
}
