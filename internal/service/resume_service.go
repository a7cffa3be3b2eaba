package service

import (
	"context"

	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/internal/repository"
)

// ResumeService 暴露简历条目的增删改查能力。
type ResumeService interface {
	List(ctx context.Context) ([]model.ResumeItem, error)
	Create(ctx context.Context, item model.ResumeItem) (model.ResumeItem, error)
	Update(ctx context.Context, id string, patch model.ResumeItemPatch) (model.ResumeItem, error)
	Delete(ctx context.Context, id string) error
}

type resumeService struct {
	resumeRepo repository.ResumeRepository
}

// NewResumeService 创建一个新的 ResumeService 实例。
func NewResumeService(resumeRepo repository.ResumeRepository) ResumeService {
	return &resumeService{resumeRepo: resumeRepo}
}

func (s *resumeService) List(ctx context.Context) ([]model.ResumeItem, error) {
	return s.resumeRepo.List(ctx)
}

func (s *resumeService) Create(ctx context.Context, item model.ResumeItem) (model.ResumeItem, error) {
	return s.resumeRepo.Create(ctx, item)
}

func (s *resumeService) Update(ctx context.Context, id string, patch model.ResumeItemPatch) (model.ResumeItem, error) {
	return s.resumeRepo.Update(ctx, id, patch)
}

func (s *resumeService) Delete(ctx context.Context, id string) error {
	return s.resumeRepo.Delete(ctx, id)
}
