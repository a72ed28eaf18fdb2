package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamChatCollectsDeltas(t *testing.T) {
	var gotPath string
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "text/event-stream")
		// Комментарии и пустые строки SSE не должны попадать в результат.
		_, _ = w.Write([]byte(": keep-alive\n\n"))
		_, _ = w.Write([]byte(`data: {"choices":[{"delta":{"content":"Hel"}}]}` + "\n\n"))
		_, _ = w.Write([]byte(`data: {"choices":[{"delta":{"content":"lo"}}]}` + "\n\n"))
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
		// Кадры после [DONE] игнорируются.
		_, _ = w.Write([]byte(`data: {"choices":[{"delta":{"content":"мусор"}}]}` + "\n\n"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-model")

	var sb strings.Builder
	err := client.StreamChat(context.Background(), []Message{{Role: "user", Content: "oi"}}, func(chunk string) error {
		sb.WriteString(chunk)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello", sb.String())
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestStreamChatSkipsEmptyDeltas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`data: {"choices":[{"delta":{"role":"assistant"}}]}` + "\n\n"))
		_, _ = w.Write([]byte(`data: {"choices":[{"delta":{"content":"ok"}}]}` + "\n\n"))
		_, _ = w.Write([]byte(`data: {"choices":[{"delta":{},"finish_reason":"stop"}]}` + "\n\n"))
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", "m")

	var chunks []string
	err := client.StreamChat(context.Background(), nil, func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, chunks)
}

func TestStreamChatGatewayStatuses(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"лимит запросов", http.StatusTooManyRequests, ErrRateLimited},
		{"кредиты исчерпаны", http.StatusPaymentRequired, ErrQuotaExceeded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "k", "m")
			err := client.StreamChat(context.Background(), nil, func(string) error { return nil })
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestStreamChatGenericUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", "m")
	err := client.StreamChat(context.Background(), nil, func(string) error { return nil })
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
	assert.NotErrorIs(t, err, ErrQuotaExceeded)
}

func TestBuildMessagesDefaults(t *testing.T) {
	messages, err := BuildMessages(PromptProfile, map[string]any{})
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, "system", messages[0].Role)
	assert.Contains(t, messages[0].Content, "posicionamento profissional")
	assert.Equal(t, "user", messages[1].Role)
	assert.Contains(t, messages[1].Content, "Nome: Profissional")
	assert.Contains(t, messages[1].Content, "Nicho: Generalista")
}

func TestBuildMessagesInterpolation(t *testing.T) {
	messages, err := BuildMessages(PromptProjectNarrative, map[string]any{
		"title":        "Rebranding Acme",
		"briefing":     "Marca antiga",
		"technologies": []any{"Figma", "Illustrator"},
	})
	require.NoError(t, err)

	user := messages[1].Content
	assert.Contains(t, user, "Título: Rebranding Acme")
	assert.Contains(t, user, "Briefing: Marca antiga")
	assert.Contains(t, user, "Tecnologias: Figma, Illustrator")
	assert.Contains(t, user, "Desafio: Não informado")
}

func TestBuildMessagesNumericContext(t *testing.T) {
	// Числа из JSON приходят как float64.
	messages, err := BuildMessages(PromptPortfolioStructure, map[string]any{"projectCount": float64(7)})
	require.NoError(t, err)
	assert.Contains(t, messages[1].Content, "Número de projetos: 7")

	messages, err = BuildMessages(PromptProposalJustification, map[string]any{"totalValue": 1500.5})
	require.NoError(t, err)
	assert.Contains(t, messages[1].Content, "Valor total: R$ 1500.50")
}

func TestBuildMessagesUnknownType(t *testing.T) {
	_, err := BuildMessages("haiku", nil)
	assert.ErrorIs(t, err, ErrUnknownPromptType)

	assert.True(t, ValidPromptType(PromptProposalClosing))
	assert.False(t, ValidPromptType("haiku"))
}
