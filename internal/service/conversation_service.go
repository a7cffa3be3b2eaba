package service

import (
	"context"

	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/internal/repository"
)

// recentMemoryLimit 是对外返回的记忆摘要条数上限。
const recentMemoryLimit = 5

// SessionMemory 是一个会话的可见状态：消息按时间升序，
// 记忆摘要取最近几条。
type SessionMemory struct {
	Messages []model.ChatMessage
	Memories []model.MemoryRecord
}

// ConversationService 暴露会话记忆的读写与清除能力。
type ConversationService interface {
	// GetMemory 返回会话的消息历史与最近的记忆摘要。
	// limit > 0 时只返回最近 limit 条消息（仍按时间升序）。
	GetMemory(ctx context.Context, sessionID string, limit int) (SessionMemory, error)
	// AppendTurn 追加一条消息到会话历史。
	AppendTurn(ctx context.Context, sessionID string, message model.ChatMessage) error
	// AppendMemory 追加一条记忆摘要。
	AppendMemory(ctx context.Context, sessionID string, record model.MemoryRecord) error
	// Clear 删除会话的全部消息与记忆。
	Clear(ctx context.Context, sessionID string) error
}

type conversationService struct {
	conversationRepo repository.ConversationRepository
}

// NewConversationService 创建一个新的 ConversationService 实例。
func NewConversationService(conversationRepo repository.ConversationRepository) ConversationService {
	return &conversationService{conversationRepo: conversationRepo}
}

func (s *conversationService) GetMemory(ctx context.Context, sessionID string, limit int) (SessionMemory, error) {
	messages, err := s.conversationRepo.GetMessages(ctx, sessionID)
	if err != nil {
		return SessionMemory{}, err
	}
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	records, err := s.conversationRepo.GetMemories(ctx, sessionID)
	if err != nil {
		return SessionMemory{}, err
	}
	if len(records) > recentMemoryLimit {
		records = records[:recentMemoryLimit]
	}
	return SessionMemory{Messages: messages, Memories: records}, nil
}

func (s *conversationService) AppendTurn(ctx context.Context, sessionID string, message model.ChatMessage) error {
	return s.conversationRepo.AppendMessages(ctx, sessionID, message)
}

func (s *conversationService) AppendMemory(ctx context.Context, sessionID string, record model.MemoryRecord) error {
	return s.conversationRepo.AppendMemory(ctx, sessionID, record)
}

func (s *conversationService) Clear(ctx context.Context, sessionID string) error {
	return s.conversationRepo.ClearSession(ctx, sessionID)
}
