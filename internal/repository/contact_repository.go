package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/renktt/rresume/internal/model"
	"gorm.io/gorm"
)

// ContactRepository 定义了访客留言的数据操作方法。
type ContactRepository interface {
	List(ctx context.Context) ([]model.ContactMessage, error)
	Create(ctx context.Context, message model.ContactMessage) (model.ContactMessage, error)
}

type gormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository 创建一个基于 MySQL 的 ContactRepository 实例。
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &gormContactRepository{db: db}
}

// List 按创建时间倒序返回全部留言。
func (r *gormContactRepository) List(ctx context.Context) ([]model.ContactMessage, error) {
	var messages []model.ContactMessage
	if err := r.db.WithContext(ctx).Find(&messages).Error; err != nil {
		return nil, err
	}
	model.SortContactMessages(messages)
	return messages, nil
}

// Create 保存一条新留言，分配 id 与创建时间。
func (r *gormContactRepository) Create(ctx context.Context, message model.ContactMessage) (model.ContactMessage, error) {
	message.ID = uuid.NewString()
	message.Read = false
	message.CreatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(&message).Error; err != nil {
		return model.ContactMessage{}, err
	}
	return message, nil
}
