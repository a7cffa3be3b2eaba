package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/internal/repository"
	"github.com/renktt/rresume/internal/service"
	"github.com/renktt/rresume/pkg/log"
)

// ResumeHandler 负责简历条目的增删改查请求。
type ResumeHandler struct {
	resumeService service.ResumeService
}

// NewResumeHandler 创建一个新的 ResumeHandler 实例。
func NewResumeHandler(resumeService service.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumeService: resumeService}
}

// List 返回全部简历条目，按区块和显示顺序排序。
func (h *ResumeHandler) List(c *gin.Context) {
	items, err := h.resumeService.List(c.Request.Context())
	if err != nil {
		log.Error("读取简历条目失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load resume items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateResumeRequest 定义了新增简历条目 API 的请求体结构。
type CreateResumeRequest struct {
	Section     string `json:"section" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DateRange   string `json:"dateRange"`
	Order       int    `json:"order"`
}

// Create 新增一条简历条目。
func (h *ResumeHandler) Create(c *gin.Context) {
	var req CreateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("CreateResume: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "section and title are required"})
		return
	}

	item, err := h.resumeService.Create(c.Request.Context(), model.ResumeItem{
		Section:     req.Section,
		Title:       req.Title,
		Description: req.Description,
		DateRange:   req.DateRange,
		Order:       req.Order,
	})
	if err != nil {
		log.Error("创建简历条目失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create resume item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateResumeRequest 定义了更新简历条目 API 的请求体结构。
// 所有字段可选，缺省字段保持原值。
type UpdateResumeRequest struct {
	Section     *string `json:"section"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DateRange   *string `json:"dateRange"`
	Order       *int    `json:"order"`
}

// Update 按补丁语义更新一条简历条目。
func (h *ResumeHandler) Update(c *gin.Context) {
	var req UpdateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("UpdateResume: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	item, err := h.resumeService.Update(c.Request.Context(), c.Param("id"), model.ResumeItemPatch{
		Section:     req.Section,
		Title:       req.Title,
		Description: req.Description,
		DateRange:   req.DateRange,
		Order:       req.Order,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "resume item not found"})
			return
		}
		log.Error("更新简历条目失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update resume item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete 删除一条简历条目。
func (h *ResumeHandler) Delete(c *gin.Context) {
	if err := h.resumeService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "resume item not found"})
			return
		}
		log.Error("删除简历条目失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete resume item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
