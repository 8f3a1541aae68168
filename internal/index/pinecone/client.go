// Package pinecone implements the index client against the Pinecone
// integrated-records API: records carry raw text and the service performs
// embedding, retrieval, and reranking server-side.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/parcelam/docdex/internal/domain"
	"github.com/parcelam/docdex/internal/domain/document"
	"github.com/parcelam/docdex/internal/index"
	"github.com/parcelam/docdex/internal/metrics"
)

const (
	driverName = "pinecone"
	apiVersion = "2025-01"

	defaultControlURL = "https://api.pinecone.io"
	defaultTimeout    = 30 * time.Second
)

// Compile-time check: Client implements index.Client.
var _ index.Client = (*Client)(nil)

// Config holds connection parameters for a Pinecone index.
type Config struct {
	APIKey     string
	IndexHost  string // data-plane host of the target index
	ControlURL string // control-plane endpoint, used by ListBackends
	Timeout    time.Duration
}

// Client talks to one Pinecone index over its data-plane host.
type Client struct {
	http       *http.Client
	apiKey     string
	indexHost  string
	controlURL string
}

// New creates a Pinecone index client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.IndexHost == "" {
		return nil, fmt.Errorf("index host is required")
	}
	controlURL := cfg.ControlURL
	if controlURL == "" {
		controlURL = defaultControlURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		http:       &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		indexHost:  cfg.IndexHost,
		controlURL: controlURL,
	}, nil
}

// Upsert writes records into a namespace as NDJSON, one record per line.
// Embedding happens server-side from the content field.
func (c *Client) Upsert(ctx context.Context, namespace string, records []document.Record) error {
	if len(records) == 0 {
		return nil
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	for i := range records {
		if err := enc.Encode(wireRecord(&records[i])); err != nil {
			return fmt.Errorf("encode record %s: %w", records[i].ID(), err)
		}
	}

	endpoint := fmt.Sprintf("%s/records/namespaces/%s/upsert", c.indexHost, url.PathEscape(namespace))

	start := time.Now()
	err := c.send(ctx, http.MethodPost, endpoint, "application/x-ndjson", &body, nil)
	metrics.ObserveIndexOp(driverName, "upsert", time.Since(start).Seconds(), err)
	if err != nil {
		return err
	}

	metrics.IndexRecordsUpserted.WithLabelValues(driverName).Add(float64(len(records)))
	return nil
}

// Search runs a semantic search with an integrated rerank pass.
func (c *Client) Search(ctx context.Context, namespace string, req index.SearchRequest) ([]index.Hit, error) {
	filter := req.Filter
	if filter == nil {
		filter = map[string]any{}
	}

	payload := searchRequest{
		Query: searchQuery{
			Inputs: searchInputs{Text: req.Query},
			TopK:   req.TopK,
			Filter: filter,
		},
		Rerank: rerankSpec{
			Model:      req.Rerank.Model,
			TopN:       req.Rerank.TopN,
			RankFields: req.Rerank.RankFields,
		},
		Fields: []string{"*"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/records/namespaces/%s/search", c.indexHost, url.PathEscape(namespace))

	var resp searchResponse
	start := time.Now()
	err = c.send(ctx, http.MethodPost, endpoint, "application/json", bytes.NewReader(body), &resp)
	metrics.ObserveIndexOp(driverName, "search", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, err
	}

	hits := make([]index.Hit, 0, len(resp.Result.Hits))
	for _, h := range resp.Result.Hits {
		hits = append(hits, index.Hit{ID: h.ID, Score: h.Score, Fields: h.Fields})
	}
	return hits, nil
}

// DeleteAll removes every record in a namespace.
func (c *Client) DeleteAll(ctx context.Context, namespace string) error {
	body, err := json.Marshal(deleteRequest{DeleteAll: true, Namespace: namespace})
	if err != nil {
		return fmt.Errorf("encode delete request: %w", err)
	}

	endpoint := c.indexHost + "/vectors/delete"

	start := time.Now()
	err = c.send(ctx, http.MethodPost, endpoint, "application/json", bytes.NewReader(body), nil)
	metrics.ObserveIndexOp(driverName, "delete_all", time.Since(start).Seconds(), err)
	return err
}

// ListBackends lists the reachable indexes via the control plane.
func (c *Client) ListBackends(ctx context.Context) ([]index.Backend, error) {
	var resp listIndexesResponse

	start := time.Now()
	err := c.send(ctx, http.MethodGet, c.controlURL+"/indexes", "", nil, &resp)
	metrics.ObserveIndexOp(driverName, "list_indexes", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, err
	}

	backends := make([]index.Backend, 0, len(resp.Indexes))
	for _, idx := range resp.Indexes {
		backends = append(backends, index.Backend{Name: idx.Name, Driver: driverName})
	}
	return backends, nil
}

// Close releases client resources. The underlying http.Client needs none.
func (c *Client) Close() {}

// send issues one HTTP request and decodes the JSON response into out (if non-nil).
// Any transport or non-2xx failure wraps domain.ErrIndexUnavailable.
func (c *Client) send(
	ctx context.Context, method, endpoint, contentType string, body io.Reader, out any,
) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("X-Pinecone-API-Version", apiVersion)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, endpoint, err, domain.ErrIndexUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: status %d: %s: %w",
			method, endpoint, resp.StatusCode, bytes.TrimSpace(detail), domain.ErrIndexUnavailable)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w: %w", err, domain.ErrIndexUnavailable)
	}
	return nil
}

// wireRecord flattens a record into the integrated-records wire form:
// {_id, content, ...fields}.
func wireRecord(rec *document.Record) map[string]any {
	m := make(map[string]any, len(rec.Fields())+2)
	for k, v := range rec.Fields() {
		m[k] = v
	}
	m[document.FieldID] = rec.ID()
	m[document.FieldContent] = rec.Content()
	return m
}
