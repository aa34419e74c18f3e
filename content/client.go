// Package content talks to the Sanity content store: it holds the query
// catalog, the HTTP client that executes it, the image URL builder, and the
// decoders that turn raw documents into view models.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxGetURL is the longest query URL sent with GET; longer queries are POSTed.
const maxGetURL = 11264

// Fetcher executes catalog queries and returns the raw result member.
type Fetcher interface {
	FetchRaw(ctx context.Context, q Query) (json.RawMessage, error)
}

// Creator stores new documents.
type Creator interface {
	Create(ctx context.Context, doc any) (string, error)
}

// ReadWriter is a store that can both query and create documents.
type ReadWriter interface {
	Fetcher
	Creator
}

// Config configures a Client.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	UseCDN     bool
	// Token is sent as a bearer credential. A client with a token always uses
	// the live API host.
	Token      string
	HTTPClient *http.Client
	// BaseURL overrides the computed API host, e.g. "http://127.0.0.1:8080".
	BaseURL string
}

func (c *Config) setDefaults() {
	if c.Dataset == "" {
		c.Dataset = "production"
	}
	if c.APIVersion == "" {
		c.APIVersion = "2024-01-01"
	}
	c.APIVersion = strings.TrimPrefix(c.APIVersion, "v")
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
}

// Client is a configured connection to one project and dataset. It is safe
// for concurrent use.
type Client struct {
	cfg Config
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("content: project id is required")
	}
	cfg.setDefaults()
	return &Client{cfg: cfg}, nil
}

// ProjectID returns the configured project.
func (c *Client) ProjectID() string { return c.cfg.ProjectID }

// Dataset returns the configured dataset.
func (c *Client) Dataset() string { return c.cfg.Dataset }

func (c *Client) host() string {
	if c.cfg.BaseURL != "" {
		return strings.TrimRight(c.cfg.BaseURL, "/")
	}
	api := "api"
	if c.cfg.UseCDN && c.cfg.Token == "" {
		api = "apicdn"
	}
	return "https://" + c.cfg.ProjectID + "." + api + ".sanity.io"
}

func (c *Client) endpoint(kind string) string {
	return c.host() + "/v" + c.cfg.APIVersion + "/data/" + kind + "/" + url.PathEscape(c.cfg.Dataset)
}

type queryResponse struct {
	Ms     int             `json:"ms"`
	Query  string          `json:"query"`
	Result json.RawMessage `json:"result"`
}

type errorBody struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

type errorDetail struct {
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Fetch executes q and decodes its result into dest.
func (c *Client) Fetch(ctx context.Context, q Query, dest any) error {
	raw, err := c.FetchRaw(ctx, q)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("content: decode %s result: %w", q.Name, err)
	}
	return nil
}

// FetchRaw executes q and returns the undecoded result member. A query that
// matches nothing yields the JSON literal null for single-document queries
// and an empty array for lists.
func (c *Client) FetchRaw(ctx context.Context, q Query) (json.RawMessage, error) {
	values := url.Values{}
	values.Set("query", q.GROQ())
	for name, v := range q.Params {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("content: encode param %s: %w", name, err)
		}
		values.Set("$"+name, string(b))
	}

	target := c.endpoint("query") + "?" + values.Encode()
	var req *http.Request
	var err error
	if len(target) <= maxGetURL {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	} else {
		body, merr := json.Marshal(map[string]any{"query": q.GROQ(), "params": q.Params})
		if merr != nil {
			return nil, fmt.Errorf("content: encode query %s: %w", q.Name, merr)
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("query"), bytes.NewReader(body))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("content: build request: %w", err)
	}

	var out queryResponse
	if err := c.do(req, q.Name, &out); err != nil {
		return nil, err
	}
	if len(out.Result) == 0 {
		return json.RawMessage("null"), nil
	}
	return out.Result, nil
}

type mutateResponse struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID        string `json:"id"`
		Operation string `json:"operation"`
	} `json:"results"`
}

// Create stores doc as a new document and returns its id. Creating requires
// a token.
func (c *Client) Create(ctx context.Context, doc any) (string, error) {
	if c.cfg.Token == "" {
		return "", ErrNoToken
	}
	body, err := json.Marshal(map[string]any{
		"mutations": []any{map[string]any{"create": doc}},
	})
	if err != nil {
		return "", fmt.Errorf("content: encode mutation: %w", err)
	}
	target := c.endpoint("mutate") + "?returnIds=true&visibility=sync"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("content: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out mutateResponse
	if err := c.do(req, "create", &out); err != nil {
		return "", err
	}
	if len(out.Results) == 0 {
		return "", fmt.Errorf("content: create returned no document id")
	}
	return out.Results[0].ID, nil
}

func (c *Client) do(req *http.Request, name string, dest any) error {
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return &NetworkError{Query: name, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Query: name, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteError(name, resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("content: decode %s response: %w", name, err)
	}
	return nil
}

func remoteError(name string, status int, body []byte) *RemoteError {
	re := &RemoteError{Query: name, Status: status}
	var eb errorBody
	if json.Unmarshal(body, &eb) != nil {
		return re
	}
	var detail errorDetail
	if json.Unmarshal(eb.Error, &detail) == nil {
		re.Type = detail.Type
		re.Description = detail.Description
	} else {
		var s string
		if json.Unmarshal(eb.Error, &s) == nil {
			re.Description = s
		}
	}
	if re.Description == "" {
		re.Description = eb.Message
	}
	return re
}
