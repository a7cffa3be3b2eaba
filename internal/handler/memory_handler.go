package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/internal/service"
	"github.com/renktt/rresume/pkg/log"
)

// MemoryHandler 负责会话记忆的查询、写入与清除。
type MemoryHandler struct {
	conversationService service.ConversationService
}

// NewMemoryHandler 创建一个新的 MemoryHandler 实例。
func NewMemoryHandler(conversationService service.ConversationService) *MemoryHandler {
	return &MemoryHandler{conversationService: conversationService}
}

// GetMemory 返回指定会话的消息历史与最近的记忆摘要。
func (h *MemoryHandler) GetMemory(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	memory, err := h.conversationService.GetMemory(c.Request.Context(), sessionID, limit)
	if err != nil {
		log.Error("读取会话记忆失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session memory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"messages":  memory.Messages,
		"memory":    memory.Memories,
	})
}

// AppendMemoryRequest 定义了写入会话记忆 API 的请求体结构。
// message 与 memory 至少要带一个。
type AppendMemoryRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Message   *struct {
		Role    string `json:"role" binding:"required"`
		Content string `json:"content" binding:"required"`
	} `json:"message"`
	Memory *struct {
		Topic   string `json:"topic" binding:"required"`
		Content string `json:"content" binding:"required"`
	} `json:"memory"`
}

// AppendMemory 向会话追加一条消息和/或一条记忆摘要。
func (h *MemoryHandler) AppendMemory(c *gin.Context) {
	var req AppendMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("AppendMemory: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})
		return
	}
	if req.Message == nil && req.Memory == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message or memory is required"})
		return
	}

	now := time.Now()
	if req.Message != nil {
		err := h.conversationService.AppendTurn(c.Request.Context(), req.SessionID, model.ChatMessage{
			Role:      req.Message.Role,
			Content:   req.Message.Content,
			Timestamp: now,
		})
		if err != nil {
			log.Error("写入会话消息失败", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to append message"})
			return
		}
	}
	if req.Memory != nil {
		err := h.conversationService.AppendMemory(c.Request.Context(), req.SessionID, model.MemoryRecord{
			Topic:           req.Memory.Topic,
			Content:         req.Memory.Content,
			LastInteraction: now,
		})
		if err != nil {
			log.Error("写入记忆摘要失败", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to append memory"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": req.SessionID, "saved": true})
}

// ClearMemory 清除指定会话的全部消息与记忆。
func (h *MemoryHandler) ClearMemory(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})
		return
	}

	if err := h.conversationService.Clear(c.Request.Context(), sessionID); err != nil {
		log.Error("清除会话记忆失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear session memory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "cleared": true})
}
