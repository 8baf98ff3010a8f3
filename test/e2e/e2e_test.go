//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearpath-legal/sponsorag/internal/api/handlers"
	"github.com/clearpath-legal/sponsorag/internal/service"
)

type successEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func postJSON(t *testing.T, env *E2EEnv, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, env.Server.URL+path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func getJSON(t *testing.T, env *E2EEnv, path, token string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, env.Server.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeData(t *testing.T, raw []byte, out interface{}) {
	t.Helper()
	var envelope successEnvelope
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestE2E_Pipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	completion := &stubCompletion{Answer: "Dear Hiring Manager, the role meets the genuine vacancy requirement."}
	env := SetupE2EEnv(t, completion)

	// Distinct axes keep nearest-neighbor ordering deterministic.
	env.Embedder.MapText("reporting duties", 1)
	env.Embedder.MapText("certificate of sponsorship", 2)

	docs := []service.Document{
		{Name: "reporting-duties.txt", Data: []byte("Sponsors must meet their reporting duties within 10 working days.")},
		{Name: "cos-guidance.txt", Data: []byte("A certificate of sponsorship must be assigned before a visa application.")},
	}
	stats, err := env.IngestSvc.IngestDocuments(env.Ctx, docs)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Ingested)
	require.Equal(t, 2, stats.Chunks)
	require.Empty(t, stats.Failed)

	t.Run("Health", func(t *testing.T) {
		resp, _ := getJSON(t, env, "/health", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("AuthRequired", func(t *testing.T) {
		resp, raw := postJSON(t, env, "/search", "", handlers.SearchRequest{Query: "anything"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var envelope errorEnvelope
		require.NoError(t, json.Unmarshal(raw, &envelope))
		assert.Equal(t, "missing authorization header", envelope.Error)

		resp, _ = postJSON(t, env, "/search", "wrong-token", handlers.SearchRequest{Query: "anything"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Search", func(t *testing.T) {
		resp, raw := postJSON(t, env, "/search", testAPIToken, handlers.SearchRequest{
			Query: "what are my reporting duties as a sponsor",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result handlers.SearchResponse
		decodeData(t, raw, &result)

		require.NotEmpty(t, result.Matches)
		assert.False(t, result.RetrievalDegraded)
		top := result.Matches[0]
		assert.Equal(t, "reporting-duties.txt", top.Source)
		assert.Contains(t, top.PageContent, "reporting duties")
		assert.InDelta(t, 1.0, top.Score, 0.001)
	})

	t.Run("SearchTopK", func(t *testing.T) {
		resp, raw := postJSON(t, env, "/search", testAPIToken, handlers.SearchRequest{
			Query: "what are my reporting duties as a sponsor",
			TopK:  1,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result handlers.SearchResponse
		decodeData(t, raw, &result)
		assert.Len(t, result.Matches, 1)
	})

	t.Run("SearchMissingQuery", func(t *testing.T) {
		resp, _ := postJSON(t, env, "/search", testAPIToken, handlers.SearchRequest{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Generate", func(t *testing.T) {
		resp, raw := postJSON(t, env, "/generate", testAPIToken, handlers.GenerateRequest{
			Query:   "draft a cover letter about the certificate of sponsorship",
			UseCase: "cover_letter_drafting",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result handlers.GenerateResponse
		decodeData(t, raw, &result)

		assert.Equal(t, completion.Answer, result.Answer)
		assert.Equal(t, "cover_letter_drafting", result.UseCase)
		assert.False(t, result.RetrievalDegraded)
		require.NotEmpty(t, result.Matches)
		assert.Equal(t, "cos-guidance.txt", result.Matches[0].Source)

		// The completion model saw both the retrieved context and the query.
		assert.Contains(t, completion.LastPrompt, "certificate of sponsorship must be assigned")
		assert.Contains(t, completion.LastPrompt, "draft a cover letter about the certificate of sponsorship")
	})

	t.Run("GenerateDefaultsUseCase", func(t *testing.T) {
		resp, raw := postJSON(t, env, "/generate", testAPIToken, handlers.GenerateRequest{
			Query: "how do I report a change of circumstances",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result handlers.GenerateResponse
		decodeData(t, raw, &result)
		assert.Equal(t, "cover_letter_drafting", result.UseCase)
	})

	t.Run("GenerateUnknownUseCase", func(t *testing.T) {
		resp, raw := postJSON(t, env, "/generate", testAPIToken, handlers.GenerateRequest{
			Query:   "anything",
			UseCase: "nonexistent_use_case",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var envelope errorEnvelope
		require.NoError(t, json.Unmarshal(raw, &envelope))
		assert.Contains(t, envelope.Error, "nonexistent_use_case")
	})

	t.Run("UseCases", func(t *testing.T) {
		resp, raw := getJSON(t, env, "/usecases", testAPIToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result handlers.UseCaseResponse
		decodeData(t, raw, &result)

		assert.Equal(t, "cover_letter_drafting", result.Default)
		var names []string
		for _, uc := range result.UseCases {
			names = append(names, uc.Name)
		}
		assert.ElementsMatch(t, []string{
			"general_compliance_qa",
			"cover_letter_drafting",
			"compliance_checklist",
			"risk_breach_assessment",
		}, names)
	})

	t.Run("ReingestSkipsUnchanged", func(t *testing.T) {
		stats, err := env.IngestSvc.IngestDocuments(env.Ctx, docs)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Ingested)
		assert.Equal(t, 2, stats.Skipped)
	})

	t.Run("ReingestReplacesChanged", func(t *testing.T) {
		env.Embedder.MapText("right to work checks", 3)

		updated := []service.Document{
			{Name: "reporting-duties.txt", Data: []byte("Sponsors must also complete right to work checks for every worker.")},
		}
		stats, err := env.IngestSvc.IngestDocuments(env.Ctx, updated)
		require.NoError(t, err)
		require.Equal(t, 1, stats.Ingested)

		resp, raw := postJSON(t, env, "/search", testAPIToken, handlers.SearchRequest{
			Query: "tell me about right to work checks",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result handlers.SearchResponse
		decodeData(t, raw, &result)
		require.NotEmpty(t, result.Matches)
		assert.Equal(t, "reporting-duties.txt", result.Matches[0].Source)
		assert.Contains(t, result.Matches[0].PageContent, "right to work checks")

		// The replaced chunk is gone, not duplicated.
		for i, m := range result.Matches {
			if i == 0 {
				continue
			}
			assert.NotEqual(t, "reporting-duties.txt", m.Source,
				fmt.Sprintf("stale chunk for replaced source at position %d: %q", i, m.PageContent))
		}
	})
}

func TestE2E_ChunkingLongDocument(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	completion := &stubCompletion{Answer: "ok"}
	env := SetupE2EEnv(t, completion)

	// A document well past the chunk size splits into multiple stored chunks.
	long := strings.Repeat("The sponsor licence guidance explains record keeping obligations. ", 200)
	stats, err := env.IngestSvc.IngestDocuments(env.Ctx, []service.Document{
		{Name: "long-guidance.txt", Data: []byte(long)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Ingested)
	assert.Greater(t, stats.Chunks, 1)
}
