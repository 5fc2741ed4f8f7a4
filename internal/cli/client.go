package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"skyland/internal/game"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) CreateSession(ctx context.Context, mode string, autoAdvance bool) (game.Session, error) {
	var out game.Session
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/sessions", map[string]any{
		"mode":         mode,
		"auto_advance": autoAdvance,
	}, &out)
	return out, err
}

func (c *Client) Session(ctx context.Context, id string) (game.Session, error) {
	var out game.Session
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/sessions/"+url.PathEscape(id)+"/", nil, &out)
	return out, err
}

func (c *Client) ApplyAllocation(ctx context.Context, id string, allocs []game.AllocationInput) (game.ApplyResult, error) {
	var out game.ApplyResult
	err := c.jsonRequest(ctx, http.MethodPut, "/v1/sessions/"+url.PathEscape(id)+"/allocations", map[string]any{
		"allocations": allocs,
	}, &out)
	return out, err
}

func (c *Client) AdvanceDay(ctx context.Context, id string) (game.DayResult, error) {
	var out game.DayResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/sessions/"+url.PathEscape(id)+"/advance", nil, &out)
	return out, err
}

// CardAnswer is the accept/decline response: the status the card ended
// up with plus the refreshed state.
type CardAnswer struct {
	Status game.CardStatus `json:"status"`
	State  game.GameState  `json:"state"`
}

func (c *Client) AcceptCard(ctx context.Context, id, instanceID string) (CardAnswer, error) {
	var out CardAnswer
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/sessions/"+url.PathEscape(id)+"/cards/"+url.PathEscape(instanceID)+"/accept", nil, &out)
	return out, err
}

func (c *Client) DeclineCard(ctx context.Context, id, instanceID string) (CardAnswer, error) {
	var out CardAnswer
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/sessions/"+url.PathEscape(id)+"/cards/"+url.PathEscape(instanceID)+"/decline", nil, &out)
	return out, err
}

func (c *Client) Achievements(ctx context.Context, id string) (game.AchievementSummary, error) {
	var out game.AchievementSummary
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/sessions/"+url.PathEscape(id)+"/achievements", nil, &out)
	return out, err
}

func (c *Client) LevelProgress(ctx context.Context, id string) (game.LevelProgress, error) {
	var out game.LevelProgress
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/sessions/"+url.PathEscape(id)+"/level", nil, &out)
	return out, err
}

func (c *Client) History(ctx context.Context, id string) ([]game.PerformancePoint, error) {
	var out struct {
		History []game.PerformancePoint `json:"history"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/sessions/"+url.PathEscape(id)+"/history", nil, &out)
	return out.History, err
}

func (c *Client) TriggerCard(ctx context.Context, id, cardID string) (game.Card, error) {
	var out game.Card
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/sessions/"+url.PathEscape(id)+"/debug/cards/"+url.PathEscape(cardID), nil, &out)
	return out, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
