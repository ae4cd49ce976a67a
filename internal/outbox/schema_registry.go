package outbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	registryContentType    = "application/vnd.schemaregistry.v1+json"
	defaultRegistryTimeout = 10 * time.Second
)

// SchemaRegistryClient resolves JSON schema ids for the training topics and
// remembers them per subject so steady-state delivery never leaves the process.
type SchemaRegistryClient struct {
	baseURL    string
	httpClient *http.Client

	mu  sync.RWMutex
	ids map[string]registeredSchema
}

type registeredSchema struct {
	schema string
	id     int
}

// NewSchemaRegistryClient constructs a client; a non-positive timeout selects ten seconds.
func NewSchemaRegistryClient(baseURL string, timeout time.Duration) *SchemaRegistryClient {
	if timeout <= 0 {
		timeout = defaultRegistryTimeout
	}
	return &SchemaRegistryClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		ids:        make(map[string]registeredSchema),
	}
}

// EnsureSchema returns the id of schema under subject, registering it when
// the registry does not know it yet.
func (c *SchemaRegistryClient) EnsureSchema(ctx context.Context, subject string, schema string) (int, error) {
	if id, ok := c.cached(subject, schema); ok {
		registryLookups.WithLabelValues(subject, "cached").Inc()
		return id, nil
	}

	id, found, err := c.lookup(ctx, subject, schema)
	if err != nil {
		registryLookups.WithLabelValues(subject, "error").Inc()
		return 0, err
	}
	outcome := "found"
	if !found {
		if id, err = c.register(ctx, subject, schema); err != nil {
			registryLookups.WithLabelValues(subject, "error").Inc()
			return 0, err
		}
		outcome = "registered"
	}
	registryLookups.WithLabelValues(subject, outcome).Inc()

	c.mu.Lock()
	c.ids[subject] = registeredSchema{schema: schema, id: id}
	c.mu.Unlock()
	return id, nil
}

func (c *SchemaRegistryClient) cached(subject, schema string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.ids[subject]
	if !ok || entry.schema != schema {
		return 0, false
	}
	return entry.id, true
}

// lookup asks whether this exact schema is already a version of subject.
func (c *SchemaRegistryClient) lookup(ctx context.Context, subject, schema string) (int, bool, error) {
	resp, err := c.post(ctx, "/subjects/"+url.PathEscape(subject), schema)
	if err != nil {
		return 0, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, false, nil
	}
	id, err := decodeSchemaID(resp, "lookup", subject)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (c *SchemaRegistryClient) register(ctx context.Context, subject, schema string) (int, error) {
	resp, err := c.post(ctx, "/subjects/"+url.PathEscape(subject)+"/versions", schema)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return decodeSchemaID(resp, "register", subject)
}

func (c *SchemaRegistryClient) post(ctx context.Context, path, schema string) (*http.Response, error) {
	body, err := json.Marshal(map[string]any{
		"schemaType": "JSON",
		"schema":     schema,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", registryContentType)
	req.Header.Set("Accept", registryContentType)

	return c.httpClient.Do(req)
}

func decodeSchemaID(resp *http.Response, op, subject string) (int, error) {
	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return 0, fmt.Errorf("schema registry %s %s: status %d: %s", op, subject, resp.StatusCode, bytes.TrimSpace(data))
	}

	var payload struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("schema registry %s %s: decode response: %w", op, subject, err)
	}
	return payload.ID, nil
}
