package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/renktt/rresume/internal/model"
	"gorm.io/gorm"
)

// ResumeRepository 定义了简历条目的数据操作方法。
// 列表始终按 (section 升序, order 升序) 返回，与底层存储顺序无关。
type ResumeRepository interface {
	List(ctx context.Context) ([]model.ResumeItem, error)
	Create(ctx context.Context, item model.ResumeItem) (model.ResumeItem, error)
	Update(ctx context.Context, id string, patch model.ResumeItemPatch) (model.ResumeItem, error)
	Delete(ctx context.Context, id string) error
}

type gormResumeRepository struct {
	db *gorm.DB
}

// NewResumeRepository 创建一个基于 MySQL 的 ResumeRepository 实例。
func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &gormResumeRepository{db: db}
}

// List 从数据库中检索全部简历条目并按约定顺序返回。
func (r *gormResumeRepository) List(ctx context.Context) ([]model.ResumeItem, error) {
	var items []model.ResumeItem
	if err := r.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	model.SortResumeItems(items)
	return items, nil
}

// Create 插入一个新的简历条目，分配 id 与时间戳并归一化 section。
func (r *gormResumeRepository) Create(ctx context.Context, item model.ResumeItem) (model.ResumeItem, error) {
	now := time.Now()
	item.ID = uuid.NewString()
	item.Section = model.NormalizeSection(item.Section)
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return model.ResumeItem{}, err
	}
	return item, nil
}

// Update 对指定条目做部分字段合并更新。条目不存在时返回 ErrNotFound。
func (r *gormResumeRepository) Update(ctx context.Context, id string, patch model.ResumeItemPatch) (model.ResumeItem, error) {
	var item model.ResumeItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ResumeItem{}, ErrNotFound
		}
		return model.ResumeItem{}, err
	}
	patch.Apply(&item)
	if err := r.db.WithContext(ctx).Save(&item).Error; err != nil {
		return model.ResumeItem{}, err
	}
	return item, nil
}

// Delete 按 id 删除一个条目。条目不存在时返回 ErrNotFound。
func (r *gormResumeRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.ResumeItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
