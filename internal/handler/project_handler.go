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

// ProjectHandler 负责项目的增删改查与封面图上传请求。
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler 创建一个新的 ProjectHandler 实例。
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List 返回全部项目，最新创建的在前。
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context())
	if err != nil {
		log.Error("读取项目失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load projects"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

// CreateProjectRequest 定义了新增项目 API 的请求体结构。
type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	TechStack   string `json:"techStack"`
	GithubLink  string `json:"githubLink"`
	DemoLink    string `json:"demoLink"`
	Featured    bool   `json:"featured"`
}

// Create 新增一个项目。
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("CreateProject: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), model.Project{
		Title:       req.Title,
		Description: req.Description,
		TechStack:   req.TechStack,
		GithubLink:  req.GithubLink,
		DemoLink:    req.DemoLink,
		Featured:    req.Featured,
	})
	if err != nil {
		log.Error("创建项目失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}
	c.JSON(http.StatusCreated, project)
}

// UpdateProjectRequest 定义了更新项目 API 的请求体结构。
type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	TechStack   *string `json:"techStack"`
	GithubLink  *string `json:"githubLink"`
	DemoLink    *string `json:"demoLink"`
	Featured    *bool   `json:"featured"`
}

// Update 按补丁语义更新一个项目。
func (h *ProjectHandler) Update(c *gin.Context) {
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("UpdateProject: Invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), c.Param("id"), model.ProjectPatch{
		Title:       req.Title,
		Description: req.Description,
		TechStack:   req.TechStack,
		GithubLink:  req.GithubLink,
		DemoLink:    req.DemoLink,
		Featured:    req.Featured,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		log.Error("更新项目失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update project"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// Delete 删除一个项目。
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projectService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		log.Error("删除项目失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// UploadImage 接收 multipart 表单里的 image 文件，上传到对象存储
// 并把访问地址回填到项目上。
func (h *ProjectHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("打开上传文件失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	project, err := h.projectService.UploadImage(c.Request.Context(), c.Param("id"), fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		log.Error("上传项目封面图失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload project image"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// ImageLink 把访客重定向到项目封面图的限时访问链接。
func (h *ProjectHandler) ImageLink(c *gin.Context) {
	url, err := h.projectService.ImageLink(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project image not found"})
			return
		}
		log.Error("生成封面图访问链接失败", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate image link"})
		return
	}
	c.Redirect(http.StatusFound, url)
}
