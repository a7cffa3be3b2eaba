package service

import (
	"context"

	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/internal/repository"
)

// LMSService 暴露学习板块的课程与进度能力。
type LMSService interface {
	ListCourses(ctx context.Context) ([]model.Course, error)
	CreateCourse(ctx context.Context, course model.Course) (model.Course, error)
	// UpdateProgress 更新课程进度，进度被夹在 [0,100]；到 100 时自动标记完成。
	UpdateProgress(ctx context.Context, id string, progress int) (model.Course, error)
	// CompleteCourse 直接把课程标记为已完成。
	CompleteCourse(ctx context.Context, id string) (model.Course, error)
}

type lmsService struct {
	courseRepo repository.CourseRepository
}

// NewLMSService 创建一个新的 LMSService 实例。
func NewLMSService(courseRepo repository.CourseRepository) LMSService {
	return &lmsService{courseRepo: courseRepo}
}

func (s *lmsService) ListCourses(ctx context.Context) ([]model.Course, error) {
	return s.courseRepo.List(ctx)
}

func (s *lmsService) CreateCourse(ctx context.Context, course model.Course) (model.Course, error) {
	return s.courseRepo.Create(ctx, course)
}

func (s *lmsService) UpdateProgress(ctx context.Context, id string, progress int) (model.Course, error) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return s.courseRepo.UpdateProgress(ctx, id, progress, progress == 100)
}

func (s *lmsService) CompleteCourse(ctx context.Context, id string) (model.Course, error) {
	return s.courseRepo.UpdateProgress(ctx, id, 100, true)
}
