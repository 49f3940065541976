package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"building-catalog-service/internal/domain"
)

const maxDocumentBytes = 8 << 20

type documentFormat int

const (
	formatJSON documentFormat = iota
	formatYAML
)

// DocumentSource loads the products document from a local file or an http(s) URL.
type DocumentSource struct {
	location string
	http     *http.Client
}

// NewDocumentSource creates a DocumentSource for the given path or URL.
func NewDocumentSource(location string, timeout time.Duration) *DocumentSource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &DocumentSource{
		location: strings.TrimSpace(location),
		http:     &http.Client{Timeout: timeout},
	}
}

// Name identifies the source in logs and health output.
func (s *DocumentSource) Name() string {
	return "document:" + s.location
}

// LoadProducts performs a single read of the document and decodes its product list.
func (s *DocumentSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	var (
		body   []byte
		format documentFormat
		err    error
	)
	if isRemote(s.location) {
		body, format, err = s.fetchRemote(ctx)
	} else {
		body, format, err = s.readFile()
	}
	if err != nil {
		return nil, err
	}
	return decodeDocument(body, format)
}

func (s *DocumentSource) fetchRemote(ctx context.Context) ([]byte, documentFormat, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, formatJSON, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, formatJSON, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, formatJSON, fmt.Errorf("%w: remote status %d", ErrSourceUnavailable, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, formatJSON, fmt.Errorf("%w: reading body: %v", ErrSourceUnavailable, err)
	}

	format := formatFromPath(req.URL.Path)
	if ct := strings.ToLower(resp.Header.Get("Content-Type")); strings.Contains(ct, "yaml") {
		format = formatYAML
	}
	return body, format, nil
}

func (s *DocumentSource) readFile() ([]byte, documentFormat, error) {
	f, err := os.Open(s.location)
	if err != nil {
		return nil, formatJSON, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	body, err := io.ReadAll(io.LimitReader(f, maxDocumentBytes))
	if err != nil {
		return nil, formatJSON, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return body, formatFromPath(s.location), nil
}

func decodeDocument(body []byte, format documentFormat) ([]domain.Product, error) {
	var doc domain.Document
	var err error
	switch format {
	case formatYAML:
		err = yaml.Unmarshal(body, &doc)
	default:
		err = json.Unmarshal(body, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.Products == nil {
		return nil, fmt.Errorf("%w: missing products list", ErrMalformedDocument)
	}
	return doc.Products, nil
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func formatFromPath(path string) documentFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}
