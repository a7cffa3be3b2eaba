package service

import (
	"strings"
	"testing"
	"time"

	"github.com/renktt/rresume/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestComposeDeterministic(t *testing.T) {
	composer := NewPromptComposer(testProfile)
	retrieved := []model.RetrievalResult{
		{Kind: model.RetrievalKindResume, Title: "skills: Frontend", Content: "React", Score: 0.8},
	}
	history := []model.ChatMessage{
		{Role: "user", Content: "hi", Timestamp: time.Unix(1, 0)},
	}

	first := composer.Compose("resume", retrieved, history)
	second := composer.Compose("resume", retrieved, history)
	assert.Equal(t, first, second)
}

func TestComposeStructure(t *testing.T) {
	composer := NewPromptComposer(testProfile)
	prompt := composer.Compose("", []model.RetrievalResult{
		{Kind: model.RetrievalKindProject, Title: "Portfolio", Content: "built with React", Score: 0.5},
	}, nil)

	// 身份块在检索块之前
	identityIdx := strings.Index(prompt, testProfile.Name)
	retrievedIdx := strings.Index(prompt, "Portfolio")
	assert.GreaterOrEqual(t, identityIdx, 0)
	assert.Greater(t, retrievedIdx, identityIdx)
	assert.Contains(t, prompt, "50%")
	assert.Contains(t, prompt, "first person")
}

func TestComposeClampsRelevance(t *testing.T) {
	composer := NewPromptComposer(testProfile)
	prompt := composer.Compose("", []model.RetrievalResult{
		{Kind: model.RetrievalKindResume, Title: "skills: Frontend", Content: "React", Score: 11},
	}, nil)

	assert.Contains(t, prompt, "100%")
	assert.NotContains(t, prompt, "1100%")
}

func TestComposeTruncatesItemsAndHistory(t *testing.T) {
	composer := NewPromptComposer(testProfile)

	var retrieved []model.RetrievalResult
	for i := 0; i < 8; i++ {
		retrieved = append(retrieved, model.RetrievalResult{
			Kind:  model.RetrievalKindResume,
			Title: "item-" + string(rune('a'+i)),
			Score: 1,
		})
	}
	var history []model.ChatMessage
	for i := 0; i < 8; i++ {
		history = append(history, model.ChatMessage{
			Role:      "user",
			Content:   "turn-" + string(rune('a'+i)),
			Timestamp: time.Unix(int64(i), 0),
		})
	}

	prompt := composer.Compose("", retrieved, history)

	// 只保留前 5 条检索结果
	assert.Contains(t, prompt, "item-e")
	assert.NotContains(t, prompt, "item-f")
	// 只保留最后 5 轮历史
	assert.Contains(t, prompt, "turn-d")
	assert.NotContains(t, prompt, "turn-c")
}

func TestComposeVoice(t *testing.T) {
	composer := NewPromptComposer(testProfile)
	prompt := composer.ComposeVoice([]model.RetrievalResult{
		{Kind: model.RetrievalKindResume, Title: "skills: Frontend", Content: "React"},
	})

	assert.Contains(t, prompt, "read aloud")
	assert.Contains(t, prompt, "Frontend")
	// 语音提示词不展示相关度
	assert.NotContains(t, prompt, "relevance")
}

func TestDisplayRelevance(t *testing.T) {
	assert.Equal(t, "50%", displayRelevance(0.5))
	assert.Equal(t, "100%", displayRelevance(1))
	assert.Equal(t, "100%", displayRelevance(12))
	assert.Equal(t, "0%", displayRelevance(-1))
}
