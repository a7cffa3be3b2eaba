package model

import "strings"

// 检索结果的来源类别。
const (
	RetrievalKindResume  = "resume"
	RetrievalKindProject = "project"
	RetrievalKindMemory  = "memory"
)

// RetrievalResult 是一次检索命中的候选条目。
// 仅在单次请求内存在，不做持久化。
type RetrievalResult struct {
	Kind    string  `json:"type"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	// Score 是关键词重合度得分，非负且没有固定上限。
	Score float64 `json:"relevance"`
}

func toLowerJoined(parts ...string) string {
	return strings.ToLower(strings.Join(parts, " "))
}
