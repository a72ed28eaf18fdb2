package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LucasFJU/portfolio-flow-ai/internal/ai"
	"github.com/LucasFJU/portfolio-flow-ai/internal/http/handlers/common"
)

// Сообщения для клиента повторяют тексты интерфейса, поэтому они на португальском.
const (
	msgAIRateLimited  = "Limite de requisições excedido. Tente novamente em alguns segundos."
	msgAIQuotaExhaust = "Créditos de IA esgotados. Adicione mais créditos na sua conta."
	msgAIFailed       = "Erro ao gerar conteúdo com IA."
)

// AIHandler проксирует генерацию текстов к AI шлюзу с ретрансляцией SSE потока.
type AIHandler struct {
	client *ai.Client
}

// NewAIHandler создаёт хэндлер.
func NewAIHandler(client *ai.Client) *AIHandler {
	return &AIHandler{client: client}
}

// Generate обрабатывает POST /ai/generate.
// Ответ приходит чанками в формате SSE, завершается кадром [DONE].
func (h *AIHandler) Generate(c *gin.Context) {
	if _, err := common.CurrentUserID(c); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if h.client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI сервис недоступен"})
		return
	}

	var req struct {
		Type    string         `json:"type" binding:"required"`
		Context map[string]any `json:"context"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !ai.ValidPromptType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неизвестный тип генерации"})
		return
	}

	if req.Context == nil {
		req.Context = make(map[string]any)
	}

	// SSE заголовки
	c.Writer.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "стриминг не поддерживается"})
		return
	}

	streamed := false
	err := h.client.Generate(c.Request.Context(), req.Type, req.Context, func(chunk string) error {
		streamed = true
		frame, marshalErr := deltaFrame(chunk)
		if marshalErr != nil {
			return marshalErr
		}
		if _, writeErr := writeSSEData(c.Writer, frame); writeErr != nil {
			return writeErr
		}
		flusher.Flush()
		return nil
	})

	if err != nil {
		// Если поток ещё не начался, статус и сообщение можно отдать обычным JSON.
		switch {
		case errors.Is(err, ai.ErrRateLimited):
			h.fail(c, flusher, streamed, http.StatusTooManyRequests, msgAIRateLimited)
		case errors.Is(err, ai.ErrQuotaExceeded):
			h.fail(c, flusher, streamed, http.StatusPaymentRequired, msgAIQuotaExhaust)
		default:
			h.fail(c, flusher, streamed, http.StatusInternalServerError, msgAIFailed)
		}
		return
	}

	_, _ = writeSSEData(c.Writer, "[DONE]")
	flusher.Flush()
}

// deltaFrame упаковывает текстовую дельту в кадр формата chat/completions,
// в котором поток отдаёт шлюз и который разбирает фронтенд. Сериализация
// экранирует переводы строк, иначе они ломали бы разбивку SSE на кадры.
func deltaFrame(chunk string) (string, error) {
	frame, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"delta": map[string]string{"content": chunk}},
		},
	})
	if err != nil {
		return "", err
	}
	return string(frame), nil
}

// fail отправляет ошибку JSON-ом до начала потока или SSE событием после.
func (h *AIHandler) fail(c *gin.Context, flusher http.Flusher, streamed bool, status int, message string) {
	if !streamed && !c.Writer.Written() {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.JSON(status, gin.H{"error": message})
		return
	}
	_, _ = writeSSEEvent(c.Writer, "error", message)
	flusher.Flush()
}
