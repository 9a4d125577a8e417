// Package ai talks to an OpenAI-compatible chat completions endpoint.
// Every method returns a usable fallback value alongside its error, so
// callers can degrade to the traditional path without special-casing.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/D4rk1d3/study/internal/common"
	"github.com/D4rk1d3/study/internal/entity"
)

// maxStructureInput caps how much document text is sent on the
// structure-oriented calls. Enough for the model to see the shape of the
// document without burning tokens on the tail.
const maxStructureInput = 3000

// Client is a minimal chat-completions client. A nil Client or an empty
// API key means the assistant is disabled.
type Client struct {
	cfg    common.AIConfig
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg common.AIConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Enabled reports whether the assistant can be called at all.
func (c *Client) Enabled() bool {
	return c != nil && c.cfg.APIKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float32       `json:"temperature"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// chat performs one completion round trip. jsonMode asks the endpoint for
// a JSON object response.
func (c *Client) chat(ctx context.Context, op string, system, user string, jsonMode bool) (string, error) {
	if !c.Enabled() {
		return "", common.E(common.KindAI, op, "assistant disabled", common.ErrAIDisabled)
	}

	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.cfg.Temperature,
	}
	if jsonMode {
		reqBody.ResponseFormat = &respFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", common.E(common.KindAI, op, "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", common.E(common.KindAI, op, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", common.E(common.KindAI, op, "http round trip", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", common.E(common.KindAI, op, "read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		var ae apiError
		_ = json.Unmarshal(body, &ae)
		msg := ae.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		if resp.StatusCode == http.StatusTooManyRequests || ae.Error.Code == "insufficient_quota" {
			return "", common.E(common.KindAIQuota, op, msg, common.ErrQuotaExhausted)
		}
		return "", common.E(common.KindAI, op, msg, fmt.Errorf("api error: %s", ae.Error.Type))
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", common.E(common.KindAI, op, "decode response", err)
	}
	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return "", common.E(common.KindAI, op, "empty completion", nil)
	}

	c.logger.Debug("ai.chat.ok", "op", op, "model", c.cfg.Model,
		"took", time.Since(start).String())
	return cr.Choices[0].Message.Content, nil
}

// Rewrite reworks text at the given aggressiveness level. On any failure
// the original text comes back untouched.
func (c *Client) Rewrite(ctx context.Context, text string, level int) (string, error) {
	out, err := c.chat(ctx, "ai.rewrite", rewriteSystemPrompt(level), text, false)
	if err != nil {
		return text, err
	}
	return out, nil
}

// Summarize produces a model summary targeting the level's length. On
// failure the input text comes back so the caller can summarize locally.
func (c *Client) Summarize(ctx context.Context, text string, level int) (string, error) {
	out, err := c.chat(ctx, "ai.summarize", summarizeSystemPrompt(level), text, false)
	if err != nil {
		return text, err
	}
	return out, nil
}

// GenerateHeadings asks the model for the document's heading structure as
// a JSON object, validated against a schema before use.
func (c *Client) GenerateHeadings(ctx context.Context, text string) ([]entity.Heading, error) {
	out, err := c.chat(ctx, "ai.headings", headingsSystemPrompt, truncate(text, maxStructureInput), true)
	if err != nil {
		return nil, err
	}

	if err := validateJSON("headings", out); err != nil {
		return nil, common.E(common.KindAI, "ai.headings", "schema validation", err)
	}

	var parsed struct {
		Headings []entity.Heading `json:"headings"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return nil, common.E(common.KindAI, "ai.headings", "decode headings", err)
	}
	return parsed.Headings, nil
}

// GenerateGlossary asks the model for term definitions grounded in the
// document, hinting with locally extracted keywords.
func (c *Client) GenerateGlossary(ctx context.Context, text string, keywords []string) ([]entity.GlossaryEntry, error) {
	user := fmt.Sprintf("Candidate terms: %s\n\nDocument:\n%s",
		joinComma(keywords), truncate(text, maxStructureInput))

	out, err := c.chat(ctx, "ai.glossary", glossarySystemPrompt, user, true)
	if err != nil {
		return nil, err
	}

	if err := validateJSON("glossary", out); err != nil {
		return nil, common.E(common.KindAI, "ai.glossary", "schema validation", err)
	}

	var parsed struct {
		Glossary []entity.GlossaryEntry `json:"glossary"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return nil, common.E(common.KindAI, "ai.glossary", "decode glossary", err)
	}
	return parsed.Glossary, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func joinComma(items []string) string {
	var b bytes.Buffer
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(it)
	}
	return b.String()
}
