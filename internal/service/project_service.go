package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/renktt/rresume/internal/config"
	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/internal/repository"
	"github.com/renktt/rresume/pkg/storage"
)

// imageLinkExpiry 是预签名封面图链接的有效期。
const imageLinkExpiry = 15 * time.Minute

// ProjectService 暴露项目的增删改查与封面图上传能力。
type ProjectService interface {
	List(ctx context.Context) ([]model.Project, error)
	Create(ctx context.Context, project model.Project) (model.Project, error)
	Update(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error)
	Delete(ctx context.Context, id string) error
	// UploadImage 把封面图写入对象存储，并把访问地址回填到项目上。
	UploadImage(ctx context.Context, id, filename string, reader io.Reader, size int64, contentType string) (model.Project, error)
	// ImageLink 返回项目封面图的可访问链接；桶内对象换成限时预签名地址。
	ImageLink(ctx context.Context, id string) (string, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService 创建一个新的 ProjectService 实例。
func NewProjectService(projectRepo repository.ProjectRepository) ProjectService {
	return &projectService{projectRepo: projectRepo}
}

func (s *projectService) List(ctx context.Context) ([]model.Project, error) {
	return s.projectRepo.List(ctx)
}

func (s *projectService) Create(ctx context.Context, project model.Project) (model.Project, error) {
	return s.projectRepo.Create(ctx, project)
}

func (s *projectService) Update(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error) {
	return s.projectRepo.Update(ctx, id, patch)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.projectRepo.Delete(ctx, id)
}

// UploadImage 先上传对象再回填项目，对象名带日期前缀便于清理。
// 项目不存在时不会产生孤儿对象以外的副作用，调用方据 ErrNotFound 返回 404。
func (s *projectService) UploadImage(ctx context.Context, id, filename string, reader io.Reader, size int64, contentType string) (model.Project, error) {
	cfg := config.Conf.MinIO
	objectName := fmt.Sprintf("projects/%s/%s%s", time.Now().Format("2006-01-02"), uuid.NewString(), path.Ext(filename))

	if err := storage.PutObject(ctx, cfg.BucketName, objectName, reader, size, contentType); err != nil {
		return model.Project{}, fmt.Errorf("failed to upload project image: %w", err)
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	imageURL := fmt.Sprintf("%s://%s/%s/%s", scheme, cfg.Endpoint, cfg.BucketName, objectName)

	return s.projectRepo.Update(ctx, id, model.ProjectPatch{ImageURL: &imageURL})
}

// ImageLink 按 id 找到项目并返回封面图链接。项目或封面图不存在时返回
// ErrNotFound；手工配置的外链图片原样返回，不做预签名。
func (s *projectService) ImageLink(ctx context.Context, id string) (string, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range projects {
		if p.ID != id {
			continue
		}
		if p.ImageURL == "" {
			return "", repository.ErrNotFound
		}
		cfg := config.Conf.MinIO
		objectName, ok := bucketObjectName(p.ImageURL, cfg)
		if !ok {
			return p.ImageURL, nil
		}
		return storage.GetPresignedURL(cfg.BucketName, objectName, imageLinkExpiry)
	}
	return "", repository.ErrNotFound
}

// bucketObjectName 从上传时拼出的直链里还原桶内对象名；
// 不属于本桶的地址返回 false。
func bucketObjectName(imageURL string, cfg config.MinIOConfig) (string, bool) {
	for _, scheme := range []string{"https", "http"} {
		prefix := fmt.Sprintf("%s://%s/%s/", scheme, cfg.Endpoint, cfg.BucketName)
		if strings.HasPrefix(imageURL, prefix) {
			return strings.TrimPrefix(imageURL, prefix), true
		}
	}
	return "", false
}
