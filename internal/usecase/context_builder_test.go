package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"uvg-agent/internal/domain"
	"uvg-agent/internal/usecase"
)

func hit(text string, score float64, rid string) domain.PassageHit {
	return domain.PassageHit{Text: text, Score: floatPtr(score), RID: rid}
}

func TestBuildContext_MetadataHeaders(t *testing.T) {
	result := &domain.SearchResult{
		Paragraphs: domain.ParagraphBlock{Results: []domain.PassageHit{
			{
				Text:     "Las becas cubren hasta el 100%.",
				Score:    floatPtr(0.9),
				RID:      "r1",
				Field:    "file",
				Position: domain.Position{PageNumber: intPtr(3)},
			},
		}},
		Resources: map[string]domain.Resource{
			"r1": {Title: "Guía de becas"},
		},
	}

	got := usecase.BuildContext(result, 20, true, 0.0)
	assert.Equal(t, "[📄 Guía de becas (página 3)]\nLas becas cubren hasta el 100%.", got)
}

func TestBuildContext_FieldFallbackWhenNoTitle(t *testing.T) {
	result := &domain.SearchResult{
		Paragraphs: domain.ParagraphBlock{Results: []domain.PassageHit{
			{Text: "Texto del pasaje.", Score: floatPtr(0.5), RID: "r1", Field: "a/file"},
		}},
		Resources: map[string]domain.Resource{},
	}

	got := usecase.BuildContext(result, 20, true, 0.0)
	assert.Equal(t, "[Fuente: a/file]\nTexto del pasaje.", got)
}

func TestBuildContext_BareTextWhenNoMetadataAtAll(t *testing.T) {
	result := &domain.SearchResult{
		Paragraphs: domain.ParagraphBlock{Results: []domain.PassageHit{
			{Text: "Pasaje sin metadatos.", Score: floatPtr(0.5), RID: "missing"},
		}},
	}

	got := usecase.BuildContext(result, 20, true, 0.0)
	assert.Equal(t, "Pasaje sin metadatos.", got, "no header may be emitted without title, field, or page")
}

func TestBuildContext_SeparatorBetweenBlocks(t *testing.T) {
	result := &domain.SearchResult{
		Paragraphs: domain.ParagraphBlock{Results: []domain.PassageHit{
			hit("primero", 0.9, ""),
			hit("segundo", 0.8, ""),
		}},
	}

	got := usecase.BuildContext(result, 20, true, 0.0)
	assert.Equal(t, "primero\n\n---\n\nsegundo", got)
}

func TestBuildContext_TruncateThenFilter(t *testing.T) {
	// Window of 2: the low-score second hit is skipped without being
	// replaced by the qualifying third hit outside the window.
	result := &domain.SearchResult{
		Paragraphs: domain.ParagraphBlock{Results: []domain.PassageHit{
			hit("alto uno", 0.9, ""),
			hit("bajo", 0.1, ""),
			hit("alto dos", 0.9, ""),
		}},
	}

	got := usecase.BuildContext(result, 2, true, 0.5)
	assert.Equal(t, "alto uno", got)
	assert.False(t, strings.Contains(got, "alto dos"))
}

func TestBuildContext_SkipsEmptyText(t *testing.T) {
	result := &domain.SearchResult{
		Paragraphs: domain.ParagraphBlock{Results: []domain.PassageHit{
			hit("   ", 0.9, ""),
			hit("con contenido", 0.9, ""),
		}},
	}

	got := usecase.BuildContext(result, 20, true, 0.0)
	assert.Equal(t, "con contenido", got)
}

func TestBuildContext_MissingScoreCountsAsRelevant(t *testing.T) {
	result := &domain.SearchResult{
		Paragraphs: domain.ParagraphBlock{Results: []domain.PassageHit{
			{Text: "sin score", RID: "r1"},
		}},
	}

	got := usecase.BuildContext(result, 20, true, 0.8)
	assert.Equal(t, "sin score", got)
}

func TestBuildContext_EmptyResult(t *testing.T) {
	assert.Equal(t, "", usecase.BuildContext(&domain.SearchResult{}, 20, true, 0.0))
}

func TestBuildContext_WithoutMetadata(t *testing.T) {
	result := &domain.SearchResult{
		Paragraphs: domain.ParagraphBlock{Results: []domain.PassageHit{
			{
				Text:     "solo texto",
				Score:    floatPtr(0.9),
				RID:      "r1",
				Position: domain.Position{PageNumber: intPtr(2)},
			},
		}},
		Resources: map[string]domain.Resource{"r1": {Title: "Título"}},
	}

	got := usecase.BuildContext(result, 20, false, 0.0)
	assert.Equal(t, "solo texto", got)
}
