package usecase

import (
	"fmt"
	"strings"

	"uvg-agent/internal/domain"
)

// contextSeparator visually segments passages inside the generation prompt.
const contextSeparator = "\n\n---\n\n"

// BuildContext formats search hits into the grounding block handed to the
// generation prompt. The max_chunks window is applied before score and
// empty-text filtering, so a filtered hit is not replaced by a later
// candidate; callers rely on this exact behavior.
//
// Returns "" when no hit qualifies; the orchestrator handles that case
// explicitly instead of prompting with a blank section.
func BuildContext(result *domain.SearchResult, maxChunks int, includeMetadata bool, scoreThreshold float64) string {
	hits := result.Paragraphs.Results
	if len(hits) > maxChunks {
		hits = hits[:maxChunks]
	}

	var blocks []string
	for _, hit := range hits {
		score := 1.0
		if hit.Score != nil {
			score = *hit.Score
		}
		if score < scoreThreshold {
			continue
		}

		text := strings.TrimSpace(hit.Text)
		if text == "" {
			continue
		}

		if !includeMetadata {
			blocks = append(blocks, text)
			continue
		}

		resource := result.Resources[hit.ResourceID()]
		header := buildMetadataHeader(resource.Title, hit.Field, hit.Position.PageNumber)
		if header == "" {
			blocks = append(blocks, text)
		} else {
			blocks = append(blocks, header+"\n"+text)
		}
	}

	return strings.Join(blocks, contextSeparator)
}

// buildMetadataHeader labels a passage with its document title (or field
// name as fallback) and page. Empty when nothing is known about the hit.
func buildMetadataHeader(title, field string, page *int) string {
	var parts []string
	if title != "" {
		parts = append(parts, "📄 "+title)
	} else if field != "" {
		parts = append(parts, "Fuente: "+field)
	}
	if page != nil {
		parts = append(parts, fmt.Sprintf("(página %d)", *page))
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, " ") + "]"
}
