package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/renktt/rresume/internal/model"
	"gorm.io/gorm"
)

// CourseRepository 定义了课程的数据操作方法。
type CourseRepository interface {
	List(ctx context.Context) ([]model.Course, error)
	Create(ctx context.Context, course model.Course) (model.Course, error)
	// UpdateProgress 更新课程进度；completed 为 true 时同时标记完成。
	UpdateProgress(ctx context.Context, id string, progress int, completed bool) (model.Course, error)
}

type gormCourseRepository struct {
	db *gorm.DB
}

// NewCourseRepository 创建一个基于 MySQL 的 CourseRepository 实例。
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &gormCourseRepository{db: db}
}

// List 按创建时间倒序返回全部课程。
func (r *gormCourseRepository) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.WithContext(ctx).Find(&courses).Error; err != nil {
		return nil, err
	}
	model.SortCourses(courses)
	return courses, nil
}

// Create 插入一门新课程，分配 id 与时间戳。
func (r *gormCourseRepository) Create(ctx context.Context, course model.Course) (model.Course, error) {
	now := time.Now()
	course.ID = uuid.NewString()
	course.CreatedAt = now
	course.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(&course).Error; err != nil {
		return model.Course{}, err
	}
	return course, nil
}

// UpdateProgress 更新指定课程的进度。课程不存在时返回 ErrNotFound。
func (r *gormCourseRepository) UpdateProgress(ctx context.Context, id string, progress int, completed bool) (model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Course{}, ErrNotFound
		}
		return model.Course{}, err
	}
	course.Progress = progress
	if completed {
		course.Completed = true
	}
	course.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Save(&course).Error; err != nil {
		return model.Course{}, err
	}
	return course, nil
}
