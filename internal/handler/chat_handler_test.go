package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/internal/service"
	"github.com/renktt/rresume/pkg/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChatService 回显固定回答，记录收到的参数。
type fakeChatService struct {
	gotMessage string
	gotSession string
}

func (f *fakeChatService) Chat(ctx context.Context, sessionID, message, pageContext string, clientHistory []model.ChatMessage) service.Answer {
	f.gotMessage = message
	f.gotSession = sessionID
	if sessionID == "" {
		sessionID = "generated"
	}
	return service.Answer{
		Response:       "canned answer",
		Sources:        []model.RetrievalResult{{Kind: model.RetrievalKindResume, Title: "skills: Frontend", Content: "React", Score: 11}},
		ConversationID: sessionID,
		Timestamp:      time.Now(),
	}
}

func (f *fakeChatService) Voice(ctx context.Context, message, pageContext string) string {
	return "spoken answer"
}

func (f *fakeChatService) StreamChat(ctx context.Context, sessionID, message, pageContext string, writer llm.ChunkWriter) error {
	return writer.WriteChunk("chunked")
}

func setupChatRouter(svc service.ChatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewChatHandler(svc)
	r.POST("/api/chat", h.Chat)
	r.POST("/api/voice", h.Voice)
	return r
}

func TestChatEndpointRejectsMissingMessage(t *testing.T) {
	r := setupChatRouter(&fakeChatService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"sessionId":"s1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "message is required")
}

func TestChatEndpointReturnsAnswer(t *testing.T) {
	svc := &fakeChatService{}
	r := setupChatRouter(svc)

	w := httptest.NewRecorder()
	body := `{"message":"What are your skills?","sessionId":"s1","context":"resume"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "What are your skills?", svc.gotMessage)
	assert.Equal(t, "s1", svc.gotSession)

	var resp struct {
		Response       string                  `json:"response"`
		Sources        []model.RetrievalResult `json:"sources"`
		ConversationID string                  `json:"conversationId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "canned answer", resp.Response)
	assert.Equal(t, "s1", resp.ConversationID)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, model.RetrievalKindResume, resp.Sources[0].Kind)
}

func TestVoiceEndpoint(t *testing.T) {
	r := setupChatRouter(&fakeChatService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/voice", strings.NewReader(`{"message":"introduce yourself"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "spoken answer")
}

func TestVoiceEndpointRejectsMissingMessage(t *testing.T) {
	r := setupChatRouter(&fakeChatService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/voice", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
