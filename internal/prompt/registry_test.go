package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearpath-legal/sponsorag/internal/domain"
)

func TestNewRegistry_ContainsAllUseCases(t *testing.T) {
	registry, err := NewRegistry()
	require.NoError(t, err)

	for _, u := range domain.AllUseCases() {
		tmpl, err := registry.Get(u)
		assert.NoError(t, err, "use case %s should be registered", u)
		assert.Equal(t, u, tmpl.UseCase)
		assert.NotEmpty(t, tmpl.Description)
	}

	assert.Len(t, registry.List(), len(domain.AllUseCases()))
}

func TestRegistry_Get_UnknownUseCase(t *testing.T) {
	registry := MustNewRegistry()

	_, err := registry.Get("nonexistent_case")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownUseCase))

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrCodeUnknownUseCase, domainErr.Code)
	assert.Contains(t, domainErr.Message, "nonexistent_case")
}

func TestNewRegistry_RejectsMalformedTemplates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing context placeholder", "Question: {user_query}"},
		{"missing query placeholder", "Docs: {retrieved_chunks}"},
		{"duplicated context placeholder", "{retrieved_chunks} {retrieved_chunks} {user_query}"},
		{"duplicated query placeholder", "{retrieved_chunks} {user_query} {user_query}"},
		{"no placeholders", "static prompt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newRegistry([]Template{{
				UseCase: domain.UseCaseGeneralComplianceQA,
				Body:    tt.body,
			}})
			assert.Error(t, err)
		})
	}
}

func TestNewRegistry_RejectsUnknownUseCase(t *testing.T) {
	_, err := newRegistry([]Template{{
		UseCase: "made_up",
		Body:    "{retrieved_chunks} {user_query}",
	}})
	assert.Error(t, err)
}

func TestNewRegistry_RejectsDuplicateRegistration(t *testing.T) {
	tmpl := Template{
		UseCase: domain.UseCaseComplianceChecklist,
		Body:    "{retrieved_chunks} {user_query}",
	}
	_, err := newRegistry([]Template{tmpl, tmpl})
	assert.Error(t, err)
}

func TestTemplate_Fill_ReplacesBothPlaceholdersExactlyOnce(t *testing.T) {
	registry := MustNewRegistry()
	tmpl, err := registry.Get(domain.UseCaseCoverLetterDrafting)
	require.NoError(t, err)

	context := "Sample template referencing SOC code and genuine vacancy requirement"
	query := "We are a 25-person fintech startup in London needing to sponsor a software engineer"

	filled := tmpl.Fill(context, query)

	assert.Contains(t, filled, context)
	assert.Contains(t, filled, query)
	assert.NotContains(t, filled, ContextPlaceholder)
	assert.NotContains(t, filled, QueryPlaceholder)
}

func TestTemplate_Fill_Idempotent(t *testing.T) {
	tmpl, err := MustNewRegistry().Get(domain.UseCaseGeneralComplianceQA)
	require.NoError(t, err)

	first := tmpl.Fill("guidance text", "question")
	second := tmpl.Fill("guidance text", "question")

	assert.Equal(t, first, second)
}

func TestTemplate_Fill_EmptyContextNotice(t *testing.T) {
	tmpl, err := MustNewRegistry().Get(domain.UseCaseGeneralComplianceQA)
	require.NoError(t, err)

	for _, context := range []string{"", "   ", "\n\n"} {
		filled := tmpl.Fill(context, "What is a certificate of sponsorship?")
		assert.Contains(t, filled, EmptyContextNotice)
		assert.NotContains(t, filled, ContextPlaceholder)
	}
}

func TestTemplate_Fill_UserContentWithPlaceholderTokens(t *testing.T) {
	tmpl, err := MustNewRegistry().Get(domain.UseCaseGeneralComplianceQA)
	require.NoError(t, err)

	// Placeholder tokens inside retrieved or user content must survive as
	// literals rather than being substituted again.
	context := "doc mentions {user_query} literally"
	query := "query mentions {retrieved_chunks} literally"

	filled := tmpl.Fill(context, query)

	assert.Contains(t, filled, context)
	assert.Contains(t, filled, query)
	assert.Equal(t, 1, strings.Count(filled, context))
	assert.Equal(t, 1, strings.Count(filled, query))
}
