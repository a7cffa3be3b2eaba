package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/renktt/rresume/internal/model"
	"gorm.io/gorm"
)

// ProjectRepository 定义了项目条目的数据操作方法。
// 列表始终按创建时间倒序返回。
type ProjectRepository interface {
	List(ctx context.Context) ([]model.Project, error)
	Create(ctx context.Context, project model.Project) (model.Project, error)
	Update(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error)
	Delete(ctx context.Context, id string) error
}

type gormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository 创建一个基于 MySQL 的 ProjectRepository 实例。
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &gormProjectRepository{db: db}
}

// List 从数据库中检索全部项目并按约定顺序返回。
func (r *gormProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.WithContext(ctx).Find(&projects).Error; err != nil {
		return nil, err
	}
	model.SortProjects(projects)
	return projects, nil
}

// Create 插入一个新项目，分配 id 与时间戳。
func (r *gormProjectRepository) Create(ctx context.Context, project model.Project) (model.Project, error) {
	now := time.Now()
	project.ID = uuid.NewString()
	project.CreatedAt = now
	project.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(&project).Error; err != nil {
		return model.Project{}, err
	}
	return project, nil
}

// Update 对指定项目做部分字段合并更新。项目不存在时返回 ErrNotFound。
func (r *gormProjectRepository) Update(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Project{}, ErrNotFound
		}
		return model.Project{}, err
	}
	patch.Apply(&project)
	if err := r.db.WithContext(ctx).Save(&project).Error; err != nil {
		return model.Project{}, err
	}
	return project, nil
}

// Delete 按 id 删除一个项目。项目不存在时返回 ErrNotFound。
func (r *gormProjectRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
