package domain

import (
	"context"
	"encoding/json"
	"fmt"
)

// SearchRequest carries the parameters for one hybrid search call.
// Zero-valued optional fields are omitted from the outbound request so the
// backend never sees an empty filter it could misread as an active one.
type SearchRequest struct {
	Query     string
	Size      int
	Features  []string
	Filters   []string
	Faceted   []string
	Sort      string
	MinScore  *float64
	Vectorset string
}

// Search feature flags understood by the backend.
const (
	FeatureKeyword   = "keyword"
	FeatureSemantic  = "semantic"
	FeatureRelations = "relations"
)

// SearchResult is the decoded payload returned by the search service.
// Raw preserves the exact upstream bytes for passthrough to callers.
type SearchResult struct {
	Paragraphs ParagraphBlock      `json:"paragraphs"`
	Resources  map[string]Resource `json:"resources"`

	Raw json.RawMessage `json:"-"`
}

// ParagraphBlock wraps the ordered list of passage hits.
type ParagraphBlock struct {
	Results []PassageHit `json:"results"`
}

// PassageHit is one retrieved passage. RID may reference a resource that is
// absent from the Resources map; consumers must tolerate the missing key.
type PassageHit struct {
	Text     string   `json:"text"`
	Score    *float64 `json:"score"`
	RID      string   `json:"rid"`
	Resource string   `json:"resource"`
	Field    string   `json:"field"`
	Position Position `json:"position"`
}

// ResourceID returns the provenance pointer, preferring the rid field.
func (h PassageHit) ResourceID() string {
	if h.RID != "" {
		return h.RID
	}
	return h.Resource
}

// Position locates a passage inside its source document.
type Position struct {
	PageNumber *int `json:"page_number"`
}

// Resource is the per-document metadata block. The shapes vary between
// knowledge bases, so every field is optional.
type Resource struct {
	Title    string              `json:"title"`
	Origin   Origin              `json:"origin"`
	Metadata map[string]any      `json:"metadata"`
	Link     string              `json:"link"`
	URI      string              `json:"uri"`
	Files    map[string]FileInfo `json:"files"`
}

// Origin holds the ingestion-time provenance of a resource.
type Origin struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// FileInfo describes one file attached to a resource.
type FileInfo struct {
	URI string `json:"uri"`
}

// SearchClient is the port for the external hybrid search service.
type SearchClient interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)
}

// SearchBackendError reports a non-success response from the search service.
// Body is truncated by the adapter before construction.
type SearchBackendError struct {
	Status int
	Body   string
}

func (e *SearchBackendError) Error() string {
	return fmt.Sprintf("search backend returned %d: %s", e.Status, e.Body)
}
