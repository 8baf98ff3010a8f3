package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clearpath-legal/sponsorag/internal/api"
	"github.com/clearpath-legal/sponsorag/internal/domain"
	"github.com/clearpath-legal/sponsorag/internal/prompt"
	"github.com/clearpath-legal/sponsorag/internal/service"
)

type GenerationService interface {
	Generate(ctx context.Context, input service.GenerateInput) (*service.GenerateResult, error)
}

type GenerateHandler struct {
	generator GenerationService
	retriever service.Retriever
	registry  *prompt.Registry
}

func NewGenerateHandler(generator GenerationService, retriever service.Retriever, registry *prompt.Registry) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		retriever: retriever,
		registry:  registry,
	}
}

type GenerateRequest struct {
	Query   string `json:"query"`
	UseCase string `json:"use_case,omitempty"`
}

type MatchResponse struct {
	PageContent string  `json:"page_content"`
	Source      string  `json:"source"`
	Score       float32 `json:"score"`
}

type GenerateResponse struct {
	Answer            string          `json:"answer"`
	UseCase           string          `json:"use_case"`
	Matches           []MatchResponse `json:"matches"`
	RetrievalDegraded bool            `json:"retrieval_degraded"`
}

type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

type SearchResponse struct {
	Matches           []MatchResponse `json:"matches"`
	RetrievalDegraded bool            `json:"retrieval_degraded"`
}

type UseCaseItemResponse struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UseCaseResponse struct {
	UseCases []UseCaseItemResponse `json:"use_cases"`
	Default  string                `json:"default"`
}

// Generate answers a query for the selected use case.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Query == "" {
		api.Error(w, http.StatusBadRequest, "query is required")
		return
	}

	result, err := h.generator.Generate(r.Context(), service.GenerateInput{
		Query:   req.Query,
		UseCase: domain.UseCase(req.UseCase),
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, GenerateResponse{
		Answer:            result.Answer,
		UseCase:           string(result.UseCase),
		Matches:           toMatchResponses(result.Matches),
		RetrievalDegraded: result.RetrievalDegraded,
	})
}

// Search returns the nearest stored chunks for a query without generating
// an answer.
func (h *GenerateHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Query == "" {
		api.Error(w, http.StatusBadRequest, "query is required")
		return
	}

	if req.TopK < 0 {
		api.Error(w, http.StatusBadRequest, "top_k must not be negative")
		return
	}

	result, err := h.retriever.RetrieveTopK(r.Context(), req.Query, req.TopK)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, SearchResponse{
		Matches:           toMatchResponses(result.Matches),
		RetrievalDegraded: result.Degraded,
	})
}

// UseCases lists the registered prompt use cases.
func (h *GenerateHandler) UseCases(w http.ResponseWriter, r *http.Request) {
	templates := h.registry.List()
	items := make([]UseCaseItemResponse, len(templates))
	for i, t := range templates {
		items[i] = UseCaseItemResponse{
			Name:        string(t.UseCase),
			Description: t.Description,
		}
	}

	api.Success(w, http.StatusOK, UseCaseResponse{
		UseCases: items,
		Default:  string(domain.DefaultUseCase),
	})
}

func toMatchResponses(matches []domain.RetrievedMatch) []MatchResponse {
	responses := make([]MatchResponse, len(matches))
	for i, m := range matches {
		responses[i] = MatchResponse{
			PageContent: m.PageContent,
			Source:      m.Source,
			Score:       m.Score,
		}
	}
	return responses
}
