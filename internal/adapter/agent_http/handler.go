package agent_http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"uvg-agent/internal/domain"
	"uvg-agent/internal/usecase"
)

// Handler exposes the orchestrator over HTTP.
type Handler struct {
	ask   usecase.AskAgentUsecase
	model string
	kb    string
}

// NewHandler builds the HTTP handler. model and kb are echoed back in
// responses so the frontend can display what served the answer.
func NewHandler(ask usecase.AskAgentUsecase, model, kb string) *Handler {
	return &Handler{
		ask:   ask,
		model: model,
		kb:    kb,
	}
}

type askRequest struct {
	Query       string   `json:"query"`
	Size        *int     `json:"size"`
	MaxChunks   *int     `json:"max_chunks"`
	UseSemantic *bool    `json:"use_semantic"`
	MinScore    *float64 `json:"min_score"`
}

type askParams struct {
	Size        int     `json:"size"`
	MaxChunks   int     `json:"max_chunks"`
	UseSemantic bool    `json:"use_semantic"`
	MinScore    float64 `json:"min_score"`
}

type askResponse struct {
	Answer        string          `json:"answer"`
	Sources       []domain.Source `json:"sources"`
	SearchResults json.RawMessage `json:"search_results"`
	Model         string          `json:"model"`
	NucliaKB      string          `json:"nuclia_kb"`
	Params        askParams       `json:"params"`
}

// rawSearchResults passes the upstream search payload through untouched. The
// short-circuit branches never call search, so they serialize as an empty
// object rather than null.
func rawSearchResults(result *domain.SearchResult) json.RawMessage {
	if result == nil || len(result.Raw) == 0 {
		return json.RawMessage(`{}`)
	}
	return result.Raw
}

// Ask handles POST /ask.
func (h *Handler) Ask(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid request"})
	}

	if req.Query == "" {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": "El campo 'query' es requerido."})
	}
	if n := utf8.RuneCountInString(req.Query); n < 2 || n > 2000 {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": "El campo 'query' debe tener entre 2 y 2000 caracteres."})
	}

	params := askParams{
		Size:        usecase.DefaultSize,
		MaxChunks:   usecase.DefaultMaxChunks,
		UseSemantic: true,
		MinScore:    0.0,
	}
	if req.Size != nil {
		if *req.Size < 1 || *req.Size > 100 {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": "'size' debe estar entre 1 y 100."})
		}
		params.Size = *req.Size
	}
	if req.MaxChunks != nil {
		if *req.MaxChunks < 1 || *req.MaxChunks > 50 {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": "'max_chunks' debe estar entre 1 y 50."})
		}
		params.MaxChunks = *req.MaxChunks
	}
	if req.UseSemantic != nil {
		params.UseSemantic = *req.UseSemantic
	}
	if req.MinScore != nil {
		if *req.MinScore < 0 || *req.MinScore > 1 {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": "'min_score' debe estar entre 0.0 y 1.0."})
		}
		params.MinScore = *req.MinScore
	}

	output, err := h.ask.Execute(c.Request().Context(), usecase.AskInput{
		Question:    req.Query,
		Size:        params.Size,
		MaxChunks:   params.MaxChunks,
		UseSemantic: params.UseSemantic,
		MinScore:    params.MinScore,
	})
	if err != nil {
		var backendErr *domain.SearchBackendError
		if errors.As(err, &backendErr) {
			return c.JSON(http.StatusBadGateway, map[string]string{
				"detail": fmt.Sprintf("Error consultando Nuclia (%d): %s", backendErr.Status, backendErr.Body),
			})
		}
		return c.JSON(http.StatusBadGateway, map[string]string{
			"detail": fmt.Sprintf("Error llamando a Claude: %v", err),
		})
	}

	return c.JSON(http.StatusOK, askResponse{
		Answer:        output.Answer,
		Sources:       output.Sources,
		SearchResults: rawSearchResults(output.SearchResult),
		Model:         h.model,
		NucliaKB:      h.kb,
		Params:        params,
	})
}

// Health handles GET /health.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
