package model

import (
	"sort"
	"time"
)

// ChatMessage 代表一次会话中的单条消息。
type ChatMessage struct {
	Role      string    `json:"role"` // "user" 或 "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// MemoryRecord 是由问答对话派生出的记忆摘要，供后续检索使用。
type MemoryRecord struct {
	Topic           string    `json:"topic"`
	Content         string    `json:"content"`
	LastInteraction time.Time `json:"lastInteraction"`
}

// SearchText 返回记忆摘要参与关键词检索的文本（小写）。
func (m MemoryRecord) SearchText() string {
	return toLowerJoined(m.Topic, m.Content)
}

// SortChatMessages 按时间戳升序排序，保证 recent 返回的消息总是时序排列，
// 与底层存储返回的顺序无关。
func SortChatMessages(messages []ChatMessage) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
}

// SortMemoryRecords 按最近交互时间倒序排序。
func SortMemoryRecords(records []MemoryRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].LastInteraction.After(records[j].LastInteraction)
	})
}
