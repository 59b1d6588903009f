// Package anthropic provides the Anthropic Messages API integration
// used for dish name translation and tag suggestion.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	model          = "claude-3-haiku-20240307"

	translateMaxTokens = 100
	tagMaxTokens       = 200
)

// Client talks to the Anthropic Messages API. It implements both the
// Translator and TagSuggester outbound ports. With an empty API key
// every call reports the client as disabled.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a new Anthropic client. An empty apiKey disables
// the client without failing startup.
func NewClient(apiKey string, logger *zap.Logger) *Client {
	if apiKey == "" {
		logger.Info("Anthropic API key not configured, AI features disabled")
	} else {
		logger.Info("Anthropic client initialized")
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.Named("anthropic"),
	}
}

// Enabled reports whether an API key is configured
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Anthropic Messages API structures

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// TranslateDishName translates a German dish name to an English image
// search phrase. On any failure the original name is returned so the
// caller can fall back to the dictionary translation.
func (c *Client) TranslateDishName(ctx context.Context, name string) (string, error) {
	if !c.Enabled() {
		return name, nil
	}

	prompt := fmt.Sprintf(`Translate this German recipe/food name to English for an image search. Return ONLY the English translation, nothing else. Keep it short and focused on visual food terms.

German: "%s"

English translation:`, name)

	text, err := c.complete(ctx, prompt, translateMaxTokens)
	if err != nil {
		c.logger.Warn("Dish name translation failed", zap.Error(err))
		return name, nil
	}

	translated := strings.TrimSpace(text)
	translated = strings.Trim(translated, `"'`)
	if translated == "" {
		return name, nil
	}
	return translated, nil
}

// SuggestTags asks the model for 3-6 short German tags describing the
// recipe. The response is a comma separated list.
func (c *Client) SuggestTags(ctx context.Context, recipeName string, ingredientNames []string) ([]string, error) {
	if !c.Enabled() {
		return nil, nil
	}

	if len(ingredientNames) > 10 {
		ingredientNames = ingredientNames[:10]
	}

	prompt := fmt.Sprintf(`Generate 3-6 relevant tags for this recipe. Tags should be short (1-2 words), in German, and describe:
- Main dish type (e.g., Suppe, Auflauf, Salat, Pasta)
- Main ingredient category (e.g., Fleisch, Vegetarisch, Fisch)
- Cuisine style if applicable (e.g., Italienisch, Asiatisch)
- Meal type (e.g., Hauptgericht, Beilage, Dessert)
- Special dietary info (e.g., Vegan, Low-Carb, Schnell)

Recipe name: "%s"
Main ingredients: %s

Return ONLY the tags as a comma-separated list, nothing else. Example: Vegetarisch, Pasta, Italienisch, Schnell`,
		recipeName, strings.Join(ingredientNames, ", "))

	text, err := c.complete(ctx, prompt, tagMaxTokens)
	if err != nil {
		return nil, err
	}
	return ParseTagList(text), nil
}

// ParseTagList splits a comma separated model response into tags.
func ParseTagList(text string) []string {
	parts := strings.Split(text, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" || len([]rune(tag)) > 25 {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == 8 {
			break
		}
	}
	return tags
}

// complete sends a single user message and returns the text of the
// first content block.
func (c *Client) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	reqBody := messagesRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call anthropic api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic api status %d: %s", resp.StatusCode, string(body))
	}

	var parsed messagesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}
