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

// LMSHandler 负责学习板块的课程与进度请求。
type LMSHandler struct {
	lmsService service.LMSService
}

// NewLMSHandler 创建一个新的 LMSHandler 实例。
func NewLMSHandler(lmsService service.LMSService) *LMSHandler {
	return &LMSHandler{lmsService: lmsService}
}

// ListCourses 返回全部课程，最新创建的在前。
func (h *LMSHandler) ListCourses(c *gin.Context) {
	courses, err := h.lmsService.ListCourses(c.Request.Context())
	if err != nil {
		log.Error("读取课程失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load courses"})
		return
	}
	c.JSON(http.StatusOK, courses)
}

// CreateCourseRequest 定义了新增课程 API 的请求体结构。
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Level       string `json:"level"`
}

// CreateCourse 新增一门课程。
func (h *LMSHandler) CreateCourse(c *gin.Context) {
	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("CreateCourse: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	course, err := h.lmsService.CreateCourse(c.Request.Context(), model.Course{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		Level:       req.Level,
	})
	if err != nil {
		log.Error("创建课程失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create course"})
		return
	}
	c.JSON(http.StatusCreated, course)
}

// UpdateProgressRequest 定义了更新课程进度 API 的请求体结构。
type UpdateProgressRequest struct {
	CourseID string `json:"courseId" binding:"required"`
	Progress *int   `json:"progress" binding:"required"`
}

// UpdateProgress 更新一门课程的学习进度。
func (h *LMSHandler) UpdateProgress(c *gin.Context) {
	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("UpdateProgress: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "courseId and progress are required"})
		return
	}

	course, err := h.lmsService.UpdateProgress(c.Request.Context(), req.CourseID, *req.Progress)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		log.Error("更新课程进度失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update progress"})
		return
	}
	c.JSON(http.StatusOK, course)
}

// CompleteCourseRequest 定义了标记课程完成 API 的请求体结构。
type CompleteCourseRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}

// CompleteCourse 把一门课程标记为已完成。
func (h *LMSHandler) CompleteCourse(c *gin.Context) {
	var req CompleteCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("CompleteCourse: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "courseId is required"})
		return
	}

	course, err := h.lmsService.CompleteCourse(c.Request.Context(), req.CourseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		log.Error("标记课程完成失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete course"})
		return
	}
	c.JSON(http.StatusOK, course)
}
