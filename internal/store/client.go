// Package store provides a read-only REST client for the remote
// document database: collection discovery and bounded document
// listing, authenticated with a caller-supplied bearer credential.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dbsmedya/docscan/internal/wire"
)

// DefaultBaseURL is the default endpoint for the document store API.
const DefaultBaseURL = "https://docstore.googleapis.com"

// DefaultDatabase is the database identifier used when none is
// configured.
const DefaultDatabase = "(default)"

// Client is a stateless document store API client. All requests carry
// the bearer credential supplied at construction time.
type Client struct {
	baseURL    string
	project    string
	database   string
	token      string
	httpClient *http.Client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithDatabase selects a database other than the default.
func WithDatabase(database string) Option {
	return func(c *Client) {
		c.database = database
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client for the given project using the given bearer
// credential.
func New(project, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		project:    project,
		database:   DefaultDatabase,
		token:      token,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Document is one stored document: its full resource name and its
// wire-tagged field values.
type Document struct {
	Name   string                `json:"name"`
	Fields map[string]wire.Value `json:"fields"`
}

// ID returns the document identifier, the last segment of the
// document's resource name.
func (d Document) ID() string {
	idx := strings.LastIndex(d.Name, "/")
	if idx < 0 {
		return d.Name
	}
	return d.Name[idx+1:]
}

// StatusError is returned for any non-success response from the
// store. It carries the HTTP status and the raw response body.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("store returned status %d: %s", e.StatusCode, e.Body)
}

// documentsRoot is the base resource path all collection paths hang
// off of.
func (c *Client) documentsRoot() string {
	return fmt.Sprintf("%s/v1/projects/%s/databases/%s/documents",
		c.baseURL, c.project, url.PathEscape(c.database))
}

// ListCollectionIDs returns the immediate sub-collection identifiers
// under the given parent document path. An empty parentPath lists the
// root-level collections.
func (c *Client) ListCollectionIDs(ctx context.Context, parentPath string) ([]string, error) {
	endpoint := c.documentsRoot()
	if parentPath != "" {
		endpoint += "/" + parentPath
	}
	endpoint += ":listCollectionIds"

	var result struct {
		CollectionIDs []string `json:"collectionIds"`
	}
	if err := c.post(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("failed to list collections under %q: %w", parentPath, err)
	}
	return result.CollectionIDs, nil
}

// ListDocuments returns up to pageSize documents from the given
// collection path. Only a single page is fetched; larger collections
// are sampled, not enumerated.
func (c *Client) ListDocuments(ctx context.Context, collectionPath string, pageSize int) ([]Document, error) {
	endpoint := c.documentsRoot() + "/" + collectionPath

	query := url.Values{}
	query.Set("pageSize", strconv.Itoa(pageSize))

	var result struct {
		Documents []Document `json:"documents"`
	}
	if err := c.get(ctx, endpoint, query, &result); err != nil {
		return nil, fmt.Errorf("failed to list documents in %q: %w", collectionPath, err)
	}
	return result.Documents, nil
}

// get performs an authenticated GET request and decodes the JSON
// response.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = query.Encode()

	return c.do(req, result)
}

// post performs an authenticated POST request with an empty JSON body
// and decodes the JSON response.
func (c *Client) post(ctx context.Context, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader([]byte("{}")))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result any) error {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
