package content

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{ProjectID: "proj", Dataset: "production", Token: token, BaseURL: srv.URL})
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresProject(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestClientHost(t *testing.T) {
	tests := []struct {
		cfg  Config
		want string
	}{
		{Config{ProjectID: "p"}, "https://p.api.sanity.io/v2024-01-01/data/query/production"},
		{Config{ProjectID: "p", UseCDN: true}, "https://p.apicdn.sanity.io/v2024-01-01/data/query/production"},
		{Config{ProjectID: "p", UseCDN: true, Token: "t"}, "https://p.api.sanity.io/v2024-01-01/data/query/production"},
		{Config{ProjectID: "p", Dataset: "dev", APIVersion: "v2023-05-03"}, "https://p.api.sanity.io/v2023-05-03/data/query/dev"},
	}
	for _, tt := range tests {
		c, err := NewClient(tt.cfg)
		require.NoError(t, err)
		assert.Equal(t, tt.want, c.endpoint("query"))
	}
}

func TestFetchSendsQueryAndParams(t *testing.T) {
	var gotQuery, gotSlug, gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2024-01-01/data/query/production", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		gotSlug = r.URL.Query().Get("$slug")
		gotAuth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `{"ms":3,"query":"x","result":{"_id":"evt-1","title":"Demo Day"}}`)
	}, "")

	var dest struct {
		ID    string `json:"_id"`
		Title string `json:"title"`
	}
	err := c.Fetch(context.Background(), EventBySlug("demo-day"), &dest)
	require.NoError(t, err)
	assert.Equal(t, "evt-1", dest.ID)
	assert.Equal(t, "Demo Day", dest.Title)
	assert.Equal(t, EventBySlug("demo-day").GROQ(), gotQuery)
	assert.Equal(t, `"demo-day"`, gotSlug)
	assert.Empty(t, gotAuth)
}

func TestFetchRawNullResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"ms":1,"result":null}`)
	}, "")
	raw, err := c.FetchRaw(context.Background(), PostBySlug("missing"))
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}

func TestFetchRemoteError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"description":"expected ']'","type":"queryParseError"}}`)
	}, "")
	_, err := c.FetchRaw(context.Background(), AllEvents())
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusBadRequest, remote.Status)
	assert.Equal(t, "queryParseError", remote.Type)
	assert.Equal(t, "expected ']'", remote.Description)
	assert.Equal(t, "allEvents", remote.Query)
}

func TestFetchRemoteErrorStringBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"Unauthorized","message":"Session not found"}`)
	}, "")
	_, err := c.FetchRaw(context.Background(), ContactSubmissions())
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "Unauthorized", remote.Description)
}

func TestFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()
	c, err := NewClient(Config{ProjectID: "proj", BaseURL: url})
	require.NoError(t, err)

	_, err = c.FetchRaw(context.Background(), AllSponsors())
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "allSponsors", netErr.Query)
}

func TestFetchCanceledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"result":[]}`)
	}, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.FetchRaw(ctx, AllEvents())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFetchLongQueryUsesPost(t *testing.T) {
	var method string
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"result":[]}`)
	}, "")
	q := PostBySlug(strings.Repeat("x", maxGetURL))
	_, err := c.FetchRaw(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, q.GROQ(), body["query"])
}

func TestCreate(t *testing.T) {
	var auth string
	var body struct {
		Mutations []map[string]map[string]any `json:"mutations"`
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2024-01-01/data/mutate/production", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("returnIds"))
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"transactionId":"tx1","results":[{"id":"sub-42","operation":"create"}]}`)
	}, "secret")

	id, err := c.Create(context.Background(), map[string]any{"_type": "contactSubmission", "name": "Asha"})
	require.NoError(t, err)
	assert.Equal(t, "sub-42", id)
	assert.Equal(t, "Bearer secret", auth)
	require.Len(t, body.Mutations, 1)
	assert.Equal(t, "Asha", body.Mutations[0]["create"]["name"])
}

func TestCreateRequiresToken(t *testing.T) {
	c, err := NewClient(Config{ProjectID: "proj"})
	require.NoError(t, err)
	_, err = c.Create(context.Background(), map[string]any{})
	assert.ErrorIs(t, err, ErrNoToken)
}
