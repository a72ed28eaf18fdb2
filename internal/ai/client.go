package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// Ошибки шлюза, которые обработчик отдаёт клиенту с отдельными кодами.
var (
	ErrRateLimited   = errors.New("ai: превышен лимит запросов к шлюзу")
	ErrQuotaExceeded = errors.New("ai: кредиты генерации исчерпаны")
)

// Message — одна реплика диалога chat/completions.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client — клиент OpenAI-совместимого шлюза генерации текста.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient создаёт экземпляр клиента.
func NewClient(baseURL, apiKey, model string) *Client {
	if apiKey == "" {
		apiKey = os.Getenv("AI_API_KEY")
	}
	if model == "" {
		model = "google/gemini-2.5-flash"
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// streamChunk — кадр потокового ответа шлюза.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Generate собирает подсказки для типа генерации и стримит результат в onDelta.
func (c *Client) Generate(ctx context.Context, promptType string, promptContext map[string]any, onDelta func(chunk string) error) error {
	messages, err := BuildMessages(promptType, promptContext)
	if err != nil {
		return err
	}
	return c.StreamChat(ctx, messages, onDelta)
}

// StreamChat выполняет запрос chat/completions со stream=true и передаёт
// текстовые дельты в onDelta по мере поступления. Строки вида ":" и пустые
// строки SSE пропускаются, сигнал [DONE] завершает поток.
func (c *Client) StreamChat(ctx context.Context, messages []Message, onDelta func(chunk string) error) error {
	if c.baseURL == "" {
		return fmt.Errorf("ai: baseURL не задан")
	}

	payload := map[string]any{
		"model":    c.model,
		"messages": messages,
		"stream":   true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return ErrQuotaExceeded
	case resp.StatusCode >= 400:
		var errorBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("ai: код ответа %d: %v", resp.StatusCode, errorBody)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		if !strings.HasPrefix(line, "data:") {
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}
		if data == "[DONE]" {
			return nil
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Нераспознанные служебные кадры шлюза не прерывают поток.
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if text := chunk.Choices[0].Delta.Content; text != "" {
			if err := onDelta(text); err != nil {
				return err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("ai: чтение потока: %w", err)
	}

	return nil
}
