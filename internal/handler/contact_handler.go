package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/internal/service"
	"github.com/renktt/rresume/pkg/log"
)

// ContactHandler 负责访客留言的提交与查阅请求。
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler 创建一个新的 ContactHandler 实例。
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// SubmitContactRequest 定义了提交留言 API 的请求体结构。
type SubmitContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Submit 保存一条访客留言。
func (h *ContactHandler) Submit(c *gin.Context) {
	var req SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("SubmitContact: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and message are required"})
		return
	}

	message, err := h.contactService.Submit(c.Request.Context(), model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		log.Error("保存访客留言失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save message"})
		return
	}
	c.JSON(http.StatusCreated, message)
}

// List 返回全部留言，最新的在前。仅管理员可见。
func (h *ContactHandler) List(c *gin.Context) {
	messages, err := h.contactService.List(c.Request.Context())
	if err != nil {
		log.Error("读取访客留言失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}
