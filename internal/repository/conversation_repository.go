package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/renktt/rresume/internal/model"
)

// ConversationRepository 定义了会话消息与记忆摘要的操作接口。
// 消息与摘要分别带有独立的留存窗口，超期数据由 Redis TTL 负责淘汰。
type ConversationRepository interface {
	// AppendMessages 将若干条消息追加到会话尾部，并刷新留存窗口。
	AppendMessages(ctx context.Context, sessionID string, messages ...model.ChatMessage) error
	// GetMessages 返回会话内全部未过期消息，按时间戳升序。
	GetMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	// ClearSession 删除会话的消息与记忆摘要。
	ClearSession(ctx context.Context, sessionID string) error
	// AppendMemory 追加一条记忆摘要，并刷新留存窗口。
	AppendMemory(ctx context.Context, sessionID string, record model.MemoryRecord) error
	// GetMemories 返回会话的记忆摘要，按最近交互时间倒序。
	GetMemories(ctx context.Context, sessionID string) ([]model.MemoryRecord, error)
}

type redisConversationRepository struct {
	redisClient *redis.Client
	maxTurns    int
	turnTTL     time.Duration
	memoryTTL   time.Duration
}

// NewConversationRepository 创建一个新的 ConversationRepository 实例。
// maxTurns 限制单个会话保留的消息尾部长度；turnTTL/memoryTTL 分别是
// 消息与记忆摘要的留存窗口。
func NewConversationRepository(redisClient *redis.Client, maxTurns int, turnTTL, memoryTTL time.Duration) ConversationRepository {
	return &redisConversationRepository{
		redisClient: redisClient,
		maxTurns:    maxTurns,
		turnTTL:     turnTTL,
		memoryTTL:   memoryTTL,
	}
}

func messagesKey(sessionID string) string {
	return fmt.Sprintf("chat:messages:%s", sessionID)
}

func memoryKey(sessionID string) string {
	return fmt.Sprintf("ai:memory:%s", sessionID)
}

// AppendMessages 读取-追加-整体写回。两个并发写者可能互相覆盖，
// 丢一条追加是可接受的（单键读改写，以 Redis 自身的原子性为准）。
func (r *redisConversationRepository) AppendMessages(ctx context.Context, sessionID string, messages ...model.ChatMessage) error {
	history, err := r.GetMessages(ctx, sessionID)
	if err != nil {
		return err
	}
	history = append(history, messages...)

	// 只保留尾部，防止单个会话无限增长
	if r.maxTurns > 0 && len(history) > r.maxTurns {
		history = history[len(history)-r.maxTurns:]
	}

	jsonData, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation history: %w", err)
	}
	if err := r.redisClient.Set(ctx, messagesKey(sessionID), jsonData, r.turnTTL).Err(); err != nil {
		return fmt.Errorf("failed to set conversation history: %w", err)
	}
	return nil
}

// GetMessages 从 Redis 获取会话消息并按时间戳排序。
func (r *redisConversationRepository) GetMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	jsonData, err := r.redisClient.Get(ctx, messagesKey(sessionID)).Result()
	if err == redis.Nil {
		return []model.ChatMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation history: %w", err)
	}
	var messages []model.ChatMessage
	if err := json.Unmarshal([]byte(jsonData), &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation history: %w", err)
	}
	model.SortChatMessages(messages)
	return messages, nil
}

// ClearSession 删除会话的消息键与记忆键。
func (r *redisConversationRepository) ClearSession(ctx context.Context, sessionID string) error {
	if err := r.redisClient.Del(ctx, messagesKey(sessionID), memoryKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session %s: %w", sessionID, err)
	}
	return nil
}

// AppendMemory 追加一条记忆摘要并刷新 TTL。
func (r *redisConversationRepository) AppendMemory(ctx context.Context, sessionID string, record model.MemoryRecord) error {
	records, err := r.GetMemories(ctx, sessionID)
	if err != nil {
		return err
	}
	records = append(records, record)

	jsonData, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal memory records: %w", err)
	}
	if err := r.redisClient.Set(ctx, memoryKey(sessionID), jsonData, r.memoryTTL).Err(); err != nil {
		return fmt.Errorf("failed to set memory records: %w", err)
	}
	return nil
}

// GetMemories 获取会话的记忆摘要，按最近交互时间倒序返回。
func (r *redisConversationRepository) GetMemories(ctx context.Context, sessionID string) ([]model.MemoryRecord, error) {
	jsonData, err := r.redisClient.Get(ctx, memoryKey(sessionID)).Result()
	if err == redis.Nil {
		return []model.MemoryRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get memory records: %w", err)
	}
	var records []model.MemoryRecord
	if err := json.Unmarshal([]byte(jsonData), &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal memory records: %w", err)
	}
	model.SortMemoryRecords(records)
	return records, nil
}
