package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"teammatch/config"
	"teammatch/logger"
	"teammatch/utils"
)

// ErrEmbeddingUnavailable means the embedding service could not produce a
// vector. Generation has no local fallback, unlike similarity comparison,
// so callers surface this to the client as retryable.
var ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

type embedResp struct {
	Embedding []float64 `json:"embedding"`
}

type similarityResp struct {
	Similarity float64 `json:"similarity"`
}

func embeddingClient(cfg *config.Config) *http.Client {
	timeout := time.Duration(cfg.Embedding.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func postEmbeddingService(cfg *config.Config, path string, payload interface{}) ([]byte, error) {
	b, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", cfg.Embedding.URL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("accept", "application/json")
	if cfg.Embedding.APIKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", cfg.Embedding.APIKey))
	}

	resp, err := embeddingClient(cfg).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding service returned HTTP %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// EmbedText asks the embedding service for a vector representing text.
// Any failure is reported as ErrEmbeddingUnavailable; an empty vector is never
// silently substituted, since a half-written profile embedding is worse than a
// rejected update.
func EmbedText(cfg *config.Config, text string) ([]float64, error) {
	body, err := postEmbeddingService(cfg, "/embed", map[string]any{"text": text})
	if err != nil {
		logger.Error("Embedding request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}

	var er embedResp
	if err := json.Unmarshal(body, &er); err != nil {
		logger.Error("Failed to parse embedding response", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}
	if len(er.Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding returned", ErrEmbeddingUnavailable)
	}
	return er.Embedding, nil
}

// Similarity compares two existing embedding vectors. The remote endpoint is
// preferred so scoring stays consistent with how the vectors were produced;
// on any failure it logs at warn and falls back to the local cosine
// computation, so non-empty vectors always get a usable value.
func Similarity(cfg *config.Config, vecA, vecB []float64) float64 {
	if len(vecA) == 0 || len(vecB) == 0 {
		return 0
	}

	body, err := postEmbeddingService(cfg, "/similarity", map[string]any{
		"vec1": vecA,
		"vec2": vecB,
	})
	if err != nil {
		logger.Warn("Similarity service unavailable, using local fallback", "error", err)
		return utils.CosineSimilarity(vecA, vecB)
	}

	var sr similarityResp
	if err := json.Unmarshal(body, &sr); err != nil {
		logger.Warn("Failed to parse similarity response, using local fallback", "error", err)
		return utils.CosineSimilarity(vecA, vecB)
	}
	return sr.Similarity
}
