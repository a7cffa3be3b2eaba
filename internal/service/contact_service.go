package service

import (
	"context"

	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/internal/repository"
)

// ContactService 暴露访客留言的提交与查阅能力。
type ContactService interface {
	// Submit 保存一条访客留言。
	Submit(ctx context.Context, message model.ContactMessage) (model.ContactMessage, error)
	// List 返回全部留言，最新的在前。
	List(ctx context.Context) ([]model.ContactMessage, error)
}

type contactService struct {
	contactRepo repository.ContactRepository
}

// NewContactService 创建一个新的 ContactService 实例。
func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) Submit(ctx context.Context, message model.ContactMessage) (model.ContactMessage, error) {
	return s.contactRepo.Create(ctx, message)
}

func (s *contactService) List(ctx context.Context) ([]model.ContactMessage, error) {
	return s.contactRepo.List(ctx)
}
