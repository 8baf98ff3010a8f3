package service

import (
	"context"
	"strings"
	"time"

	"github.com/clearpath-legal/sponsorag/internal/domain"
	"github.com/clearpath-legal/sponsorag/internal/prompt"
	"github.com/clearpath-legal/sponsorag/internal/telemetry"
)

// contextDelimiter joins retrieved chunk text in retrieval order.
const contextDelimiter = "\n\n"

// CompletionClient defines the completion-service boundary
type CompletionClient interface {
	GenerateCompletion(ctx context.Context, prompt string) (string, error)
}

// GenerateInput is one generation request.
type GenerateInput struct {
	Query string
	// UseCase selects the prompt template; empty means domain.DefaultUseCase.
	UseCase domain.UseCase
}

// GenerateResult is the outcome of one generation request.
type GenerateResult struct {
	Answer  string
	UseCase domain.UseCase
	// Matches are the retrieved chunks the answer was grounded on, in
	// retrieval order.
	Matches []domain.RetrievedMatch
	// RetrievalDegraded is set when the vector store failed and the answer
	// was generated with empty context.
	RetrievalDegraded bool
}

// GenerationService assembles context from retrieved chunks, fills the
// selected template and invokes the completion service. One request in, one
// response out, fully synchronous; no retries, no post-processing.
type GenerationService struct {
	retriever         Retriever
	registry          *prompt.Registry
	completion        CompletionClient
	completionTimeout time.Duration
}

// NewGenerationService creates a GenerationService.
func NewGenerationService(retriever Retriever, registry *prompt.Registry, completion CompletionClient) *GenerationService {
	return NewGenerationServiceWithTimeout(retriever, registry, completion, 0)
}

// NewGenerationServiceWithTimeout creates a GenerationService with a bounded
// completion call.
func NewGenerationServiceWithTimeout(
	retriever Retriever,
	registry *prompt.Registry,
	completion CompletionClient,
	completionTimeout time.Duration,
) *GenerationService {
	return &GenerationService{
		retriever:         retriever,
		registry:          registry,
		completion:        completion,
		completionTimeout: completionTimeout,
	}
}

// Generate answers a user query for the selected use case.
//
// Failure policy: embedding and unknown-use-case errors abort immediately;
// a retrieval failure degrades to empty context and is reported through
// RetrievalDegraded; a completion failure aborts and is surfaced.
func (s *GenerationService) Generate(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	if input.Query == "" {
		return nil, domain.ErrEmptyQuery
	}

	useCase := input.UseCase
	if useCase == "" {
		useCase = domain.DefaultUseCase
	}

	ctx, span := telemetry.StartSpan(ctx, "GenerationService.Generate", telemetry.SpanAttributes{
		UseCase:   string(useCase),
		Operation: "generate",
	})
	defer span.End()

	// Resolve the template before spending network calls on retrieval.
	tmpl, err := s.registry.Get(useCase)
	if err != nil {
		return nil, err
	}

	retrieval, err := s.retriever.Retrieve(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	contextText := buildContext(retrieval.Matches)
	filled := tmpl.Fill(contextText, input.Query)

	completionCtx, cancel := withTimeout(ctx, s.completionTimeout)
	defer cancel()

	answer, err := s.completion.GenerateCompletion(completionCtx, filled)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return &GenerateResult{
		Answer:            answer,
		UseCase:           useCase,
		Matches:           retrieval.Matches,
		RetrievalDegraded: retrieval.Degraded,
	}, nil
}

func buildContext(matches []domain.RetrievedMatch) string {
	if len(matches) == 0 {
		return ""
	}
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, m.PageContent)
	}
	return strings.Join(parts, contextDelimiter)
}
