// Package advisor produces the guardian-fairy chatter shown after each
// settlement. The engine treats it as an opaque string generator; when
// the remote service is slow or down the caller falls back to a canned
// line, and settlement is never re-run on its account.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"skyland/internal/game"
)

// HTTPGenerator calls an external commentary service (typically a thin
// LLM proxy) with the prompt context and returns whatever text comes
// back.
type HTTPGenerator struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPGenerator(baseURL, apiKey string) *HTTPGenerator {
	return &HTTPGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type generateResponse struct {
	Text string `json:"text"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, pc game.PromptContext) (string, error) {
	body, err := json.Marshal(pc)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/commentary", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("advisor request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("advisor status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode advisor response: %w", err)
	}
	return strings.TrimSpace(out.Text), nil
}
