package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasFJU/portfolio-flow-ai/internal/ai"
	"github.com/LucasFJU/portfolio-flow-ai/internal/http/middleware"
)

// newAIRouter собирает маршрут генерации с подменой авторизации.
func newAIRouter(client *ai.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewAIHandler(client)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, uuid.New())
		c.Next()
	})
	r.POST("/ai/generate", handler.Generate)
	return r
}

// collectDeltas разбирает SSE ответ так же, как это делает фронтенд:
// каждый кадр data — JSON чанка chat/completions, [DONE] завершает поток.
func collectDeltas(t *testing.T, body string) string {
	t.Helper()

	var sb strings.Builder
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			break
		}

		var chunk struct {
			Choices []struct {
				Delta struct {
					Content string `json:"content"`
				} `json:"delta"`
			} `json:"choices"`
		}
		require.NoError(t, json.Unmarshal([]byte(data), &chunk), "кадр должен быть валидным JSON: %s", data)
		if len(chunk.Choices) > 0 {
			sb.WriteString(chunk.Choices[0].Delta.Content)
		}
	}
	return sb.String()
}

func TestAIHandler_Generate_StreamsChatCompletionFrames(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(`data: {"choices":[{"delta":{"content":"Hel"}}]}` + "\n\n"))
		_, _ = w.Write([]byte(`data: {"choices":[{"delta":{"content":"lo"}}]}` + "\n\n"))
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer upstream.Close()

	router := newAIRouter(ai.NewClient(upstream.URL, "k", "m"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/generate", strings.NewReader(`{"type":"profile"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")

	body := w.Body.String()
	assert.Equal(t, "Hello", collectDeltas(t, body))
	assert.Contains(t, body, "data: [DONE]")
}

func TestAIHandler_Generate_EscapesNewlinesInDeltas(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`data: {"choices":[{"delta":{"content":"linha um\nlinha dois"}}]}` + "\n\n"))
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer upstream.Close()

	router := newAIRouter(ai.NewClient(upstream.URL, "k", "m"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/generate", strings.NewReader(`{"type":"profile"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// Перевод строки внутри дельты не должен разрывать кадр SSE.
	assert.Equal(t, "linha um\nlinha dois", collectDeltas(t, w.Body.String()))
}

func TestAIHandler_Generate_UpstreamStatusesBeforeStream(t *testing.T) {
	cases := []struct {
		name     string
		upstream int
		want     int
	}{
		{"лимит запросов", http.StatusTooManyRequests, http.StatusTooManyRequests},
		{"кредиты исчерпаны", http.StatusPaymentRequired, http.StatusPaymentRequired},
		{"прочие ошибки", http.StatusBadGateway, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.upstream)
			}))
			defer upstream.Close()

			router := newAIRouter(ai.NewClient(upstream.URL, "k", "m"))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/ai/generate", strings.NewReader(`{"type":"profile"}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestAIHandler_Generate_UnknownType(t *testing.T) {
	router := newAIRouter(ai.NewClient("http://localhost:0", "k", "m"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/generate", strings.NewReader(`{"type":"haiku"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
