// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/internal/service"
	"github.com/renktt/rresume/pkg/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源
	},
}

// ChatHandler 负责处理数字分身的对话类请求。
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler 创建一个新的 ChatHandler 实例。
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// ChatRequest 定义了聊天 API 的请求体结构。
type ChatRequest struct {
	Message             string              `json:"message" binding:"required"`
	SessionID           string              `json:"sessionId"`
	Context             string              `json:"context"`
	ConversationHistory []model.ChatMessage `json:"conversationHistory"`
}

// Chat 处理一轮文字对话。只要请求体合法，本接口总是返回 200：
// 补全后端的故障在服务层被降级吸收，不会体现为 HTTP 错误。
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Chat: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	answer := h.chatService.Chat(c.Request.Context(), req.SessionID, req.Message, req.Context, req.ConversationHistory)

	c.JSON(http.StatusOK, gin.H{
		"response":       answer.Response,
		"sources":        answer.Sources,
		"conversationId": answer.ConversationID,
		"timestamp":      answer.Timestamp,
	})
}

// VoiceRequest 定义了语音对话 API 的请求体结构。
type VoiceRequest struct {
	Message string `json:"message" binding:"required"`
	Context string `json:"context"`
}

// Voice 处理一轮语音对话，返回适合 TTS 朗读的纯文本。
func (h *ChatHandler) Voice(c *gin.Context) {
	var req VoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Voice: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	response := h.chatService.Voice(c.Request.Context(), req.Message, req.Context)
	c.JSON(http.StatusOK, gin.H{"response": response})
}

// wsChunkWriter 把补全分片封装成 JSON 帧写入 WebSocket 连接。
type wsChunkWriter struct {
	conn *websocket.Conn
}

func (w *wsChunkWriter) WriteChunk(content string) error {
	return w.conn.WriteJSON(gin.H{"chunk": content})
}

// wsMessage 是 WebSocket 上每条入站帧的结构。
type wsMessage struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
	Context   string `json:"context"`
}

// HandleWS 处理一个传入的 WebSocket 连接。每收到一条消息就执行一轮
// 流式对话，分片以 {"chunk": "..."} 帧推送，结束时推送 {"done": true}。
func (h *ChatHandler) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket 升级失败", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket 连接已建立")

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Warnf("从 WebSocket 读取消息失败: %v", err)
			break
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Message == "" {
			if werr := conn.WriteJSON(gin.H{"error": "message is required"}); werr != nil {
				break
			}
			continue
		}

		writer := &wsChunkWriter{conn: conn}
		if err := h.chatService.StreamChat(c.Request.Context(), msg.SessionID, msg.Message, msg.Context, writer); err != nil {
			log.Error("流式对话失败", err)
			if werr := conn.WriteJSON(gin.H{"error": "stream failed"}); werr != nil {
				break
			}
			continue
		}

		if err := conn.WriteJSON(gin.H{"done": true, "sessionId": msg.SessionID}); err != nil {
			break
		}
	}
}
