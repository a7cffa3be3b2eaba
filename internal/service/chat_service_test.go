package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/renktt/rresume/internal/config"
	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/pkg/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// 测试不经过 config.Init，手动填入对话管线的缺省窗口
	config.Conf.Chat = config.ChatConfig{
		RetrieveLimit: 15,
		ContextLimit:  5,
		HistoryLimit:  5,
		MaxTurns:      40,
		TurnTTLHours:  24,
		MemoryTTLDays: 7,
	}
	config.Conf.LLM.Generation.VoiceMaxTokens = 150
}

type chatFixture struct {
	llmClient *fakeLLMClient
	conv      *fakeConversationRepo
	svc       ChatService
}

func newChatFixture(llmClient *fakeLLMClient, resume *fakeResumeRepo, projects *fakeProjectRepo) *chatFixture {
	if resume == nil {
		resume = &fakeResumeRepo{}
	}
	if projects == nil {
		projects = &fakeProjectRepo{}
	}
	conv := newFakeConversationRepo()
	retriever := NewRetrievalService(resume, projects, conv)
	composer := NewPromptComposer(testProfile)
	fallback := NewFallbackGenerator(testProfile, resume, projects)
	return &chatFixture{
		llmClient: llmClient,
		conv:      conv,
		svc:       NewChatService(llmClient, retriever, composer, fallback, conv),
	}
}

func TestChatHappyPath(t *testing.T) {
	resume := &fakeResumeRepo{items: []model.ResumeItem{
		{Section: "skills", Title: "Frontend", Description: "React and Next.js"},
	}}
	fx := newChatFixture(&fakeLLMClient{response: "I love working with React."}, resume, nil)

	answer := fx.svc.Chat(context.Background(), "s1", "tell me about react", "", nil)

	assert.Equal(t, "I love working with React.", answer.Response)
	assert.Equal(t, "s1", answer.ConversationID)
	assert.False(t, answer.Timestamp.IsZero())
	require.NotEmpty(t, answer.Sources)
	assert.Equal(t, model.RetrievalKindResume, answer.Sources[0].Kind)

	// 本轮对话被落盘：user + assistant 两条
	require.Len(t, fx.conv.messages["s1"], 2)
	assert.Equal(t, "user", fx.conv.messages["s1"][0].Role)
	assert.Equal(t, "assistant", fx.conv.messages["s1"][1].Role)
	// 记忆摘要带主题标签
	require.Len(t, fx.conv.memories["s1"], 1)
	assert.Equal(t, "general", fx.conv.memories["s1"][0].Topic)
}

func TestChatGeneratesSessionID(t *testing.T) {
	fx := newChatFixture(&fakeLLMClient{response: "hi"}, nil, nil)

	answer := fx.svc.Chat(context.Background(), "", "hello", "", nil)
	assert.NotEmpty(t, answer.ConversationID)
}

func TestChatFallsBackWhenLLMUnavailable(t *testing.T) {
	resume := &fakeResumeRepo{items: []model.ResumeItem{
		{Section: "skills", Title: "Frontend", Description: "React, Next.js, Tailwind CSS"},
	}}
	fx := newChatFixture(&fakeLLMClient{err: llm.ErrUnavailable}, resume, nil)

	answer := fx.svc.Chat(context.Background(), "s1", "What are your skills?", "", nil)

	// 降级回答必须包含本地存储的技能条目
	assert.Contains(t, answer.Response, "Frontend")
	assert.Contains(t, answer.Response, "React")
	// 降级回答同样要落盘
	assert.Len(t, fx.conv.messages["s1"], 2)
}

func TestChatSurvivesMemoryWriteFailure(t *testing.T) {
	fx := newChatFixture(&fakeLLMClient{response: "fine"}, nil, nil)
	fx.conv.writeErr = errStoreDown

	answer := fx.svc.Chat(context.Background(), "s1", "hello there", "", nil)
	// 落盘失败只记日志，回答照常
	assert.Equal(t, "fine", answer.Response)
}

func TestChatUsesClientHistoryWhenStoreEmpty(t *testing.T) {
	llmClient := &fakeLLMClient{response: "ok"}
	fx := newChatFixture(llmClient, nil, nil)

	history := []model.ChatMessage{
		{Role: "user", Content: "my name is Ben", Timestamp: time.Unix(1, 0)},
		{Role: "assistant", Content: "nice to meet you Ben", Timestamp: time.Unix(2, 0)},
	}
	fx.svc.Chat(context.Background(), "s1", "what is my name", "", history)

	// 客户端历史被拼进补全消息序列
	var sawHistory bool
	for _, msg := range llmClient.gotMsgs {
		if strings.Contains(msg.Content, "my name is Ben") && msg.Role == "user" {
			sawHistory = true
		}
	}
	assert.True(t, sawHistory)
}

func TestVoiceCleansResponse(t *testing.T) {
	fx := newChatFixture(&fakeLLMClient{response: "**Hello!**\n\nI teach *web development*."}, nil, nil)

	response := fx.svc.Voice(context.Background(), "introduce yourself", "")
	assert.Equal(t, "Hello!. I teach web development.", response)
}

func TestVoiceFallsBackWhenLLMUnavailable(t *testing.T) {
	fx := newChatFixture(&fakeLLMClient{err: llm.ErrUnavailable}, nil, nil)

	response := fx.svc.Voice(context.Background(), "how do I contact you", "")
	assert.Contains(t, response, testProfile.Email)
	// 语音降级回答同样经过口语化清洗
	assert.NotContains(t, response, "\n")
}

func TestStreamChatForwardsChunks(t *testing.T) {
	fx := newChatFixture(&fakeLLMClient{response: "streamed answer"}, nil, nil)
	writer := &collectWriter{}

	err := fx.svc.StreamChat(context.Background(), "s1", "hello stream", "", writer)
	require.NoError(t, err)
	assert.Equal(t, "streamed answer", strings.Join(writer.chunks, ""))
	// 全文落盘
	require.Len(t, fx.conv.messages["s1"], 2)
	assert.Equal(t, "streamed answer", fx.conv.messages["s1"][1].Content)
}

func TestStreamChatFallsBack(t *testing.T) {
	fx := newChatFixture(&fakeLLMClient{err: llm.ErrUnavailable}, nil, nil)
	writer := &collectWriter{}

	err := fx.svc.StreamChat(context.Background(), "s1", "hello stream", "", writer)
	require.NoError(t, err)
	// 降级回答作为单个分片写出
	require.Len(t, writer.chunks, 1)
	assert.NotEmpty(t, writer.chunks[0])
}

func TestExtractTopic(t *testing.T) {
	assert.Equal(t, "projects", extractTopic("tell me about your projects"))
	assert.Equal(t, "skills", extractTopic("what skills do you have"))
	assert.Equal(t, "education", extractTopic("where did you study? education?"))
	assert.Equal(t, "contact", extractTopic("what is your email"))
	assert.Equal(t, "technologies", extractTopic("which tech do you use"))
	assert.Equal(t, "general", extractTopic("hello"))
}
