package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vitrina/vitrina/internal/domain"
)

// RESTStore implements Store against a JSON document API.
//
// The collection lives at {base}/collections/products/documents:
// GET returns {"documents": [{"id": "...", "fields": {...}}, ...]},
// POST accepts {"fields": {...}} and returns {"id": "..."}.
// The access credential travels in the X-Api-Key header.
type RESTStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type restDocument struct {
	ID     string               `json:"id"`
	Fields domain.ProductFields `json:"fields"`
}

type restListResponse struct {
	Documents []restDocument `json:"documents"`
}

type restCreateRequest struct {
	Fields domain.ProductFields `json:"fields"`
}

type restCreateResponse struct {
	ID string `json:"id"`
}

// NewRESTStore creates a document store client for the given API base URL.
func NewRESTStore(baseURL, apiKey string) *RESTStore {
	return &RESTStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *RESTStore) collectionURL() string {
	return s.baseURL + "/collections/products/documents"
}

// ListDocuments reads every document in the products collection.
func (s *RESTStore) ListDocuments(ctx context.Context) ([]Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.collectionURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-Api-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document store error (status %d): %s", resp.StatusCode, string(body))
	}

	var result restListResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	docs := make([]Document, len(result.Documents))
	for i, d := range result.Documents {
		docs[i] = Document{ID: d.ID, Fields: d.Fields}
	}

	return docs, nil
}

// CreateDocument writes a new document and returns the store-assigned key.
func (s *RESTStore) CreateDocument(ctx context.Context, fields domain.ProductFields) (string, error) {
	payload, err := json.Marshal(restCreateRequest{Fields: fields})
	if err != nil {
		return "", fmt.Errorf("failed to marshal document payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.collectionURL(), bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("X-Api-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("document store error (status %d): %s", resp.StatusCode, string(body))
	}

	var result restCreateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if result.ID == "" {
		return "", fmt.Errorf("document store returned no document id")
	}

	return result.ID, nil
}
