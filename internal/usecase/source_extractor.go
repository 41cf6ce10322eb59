package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"uvg-agent/internal/domain"
)

const untitledResource = "Documento sin título"

// SourceExtractor turns raw search hits into the citation list surfaced to
// callers. It needs the backend base URL and knowledge-base id to synthesize
// a viewer link when a resource exposes no usable URL of its own.
type SourceExtractor struct {
	apiBase string
	kb      string
}

// NewSourceExtractor constructs an extractor for one knowledge base.
func NewSourceExtractor(apiBase, kb string) *SourceExtractor {
	return &SourceExtractor{
		apiBase: strings.TrimRight(apiBase, "/"),
		kb:      kb,
	}
}

// resourceURLResolvers is the ordered fallback chain over resource metadata;
// the first resolver returning a non-empty string wins.
var resourceURLResolvers = []func(domain.Resource) string{
	urlFromOrigin,
	urlFromMetadata,
	urlFromLinkOrURI,
	urlFromFiles,
}

// Extract emits one Source per qualifying hit, in search order. It iterates
// the same truncate-then-filter window as BuildContext: the first maxChunks
// hits are considered, and hits below threshold or with empty text are
// skipped without replacement. IDs are dense and 1-based over emitted
// sources.
func (e *SourceExtractor) Extract(result *domain.SearchResult, maxChunks int, scoreThreshold float64) []domain.Source {
	hits := result.Paragraphs.Results
	if len(hits) > maxChunks {
		hits = hits[:maxChunks]
	}

	sources := make([]domain.Source, 0, len(hits))
	for _, hit := range hits {
		score := 0.0
		if hit.Score != nil {
			score = *hit.Score
		}
		if scoreThreshold > 0 && score < scoreThreshold {
			continue
		}

		text := strings.TrimSpace(hit.Text)
		if text == "" {
			continue
		}

		resourceID := hit.ResourceID()
		resource := result.Resources[resourceID]

		title := resource.Title
		if title == "" {
			title = untitledResource
		}

		resolvedURL := resolveResourceURL(resource)
		if resolvedURL == "" && resourceID != "" {
			resolvedURL = e.viewerURL(resourceID)
		}

		rounded := math.Round(score*1000) / 1000

		sources = append(sources, domain.Source{
			ID:         len(sources) + 1,
			Title:      title,
			Text:       text,
			Score:      &rounded,
			Page:       hit.Position.PageNumber,
			Field:      hit.Field,
			ResourceID: resourceID,
			URL:        resolvedURL,
			URLType:    classifyURL(resolvedURL),
			HasURL:     resolvedURL != "",
		})
	}

	return sources
}

func resolveResourceURL(resource domain.Resource) string {
	for _, resolve := range resourceURLResolvers {
		if url := resolve(resource); url != "" {
			return url
		}
	}
	return ""
}

// viewerURL synthesizes a link into the search backend's resource viewer.
func (e *SourceExtractor) viewerURL(resourceID string) string {
	return fmt.Sprintf("%s/kb/%s/resource/%s", e.apiBase, e.kb, resourceID)
}

func urlFromOrigin(r domain.Resource) string {
	if r.Origin.URL != "" {
		return r.Origin.URL
	}
	return r.Origin.Path
}

func urlFromMetadata(r domain.Resource) string {
	for _, key := range []string{"uri", "url", "source"} {
		if v := metadataString(r.Metadata, key); v != "" {
			return v
		}
	}
	return ""
}

func urlFromLinkOrURI(r domain.Resource) string {
	if r.Link != "" {
		return r.Link
	}
	return r.URI
}

// urlFromFiles takes the first attached file with a URI. File keys are
// sorted so the pick is stable across runs.
func urlFromFiles(r domain.Resource) string {
	keys := make([]string, 0, len(r.Files))
	for k := range r.Files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if uri := r.Files[k].URI; uri != "" {
			return uri
		}
	}
	return ""
}

func metadataString(metadata map[string]any, key string) string {
	if v, ok := metadata[key].(string); ok {
		return v
	}
	return ""
}

// classifyURL tags a resolved URL: the backend's own domains count as
// nuclia, any other absolute HTTP(S) URL as external, and a bare identifier
// as resource.
func classifyURL(url string) domain.URLKind {
	if url == "" {
		return domain.URLKindNone
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		if strings.Contains(url, "nuclia") || strings.Contains(url, "rag.progress.cloud") {
			return domain.URLKindNuclia
		}
		return domain.URLKindExternal
	}
	return domain.URLKindResource
}
