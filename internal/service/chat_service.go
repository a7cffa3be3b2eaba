package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/renktt/rresume/internal/config"
	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/internal/repository"
	"github.com/renktt/rresume/pkg/llm"
	"github.com/renktt/rresume/pkg/log"
)

// Answer 是一次聊天调用的完整产出。
type Answer struct {
	Response       string
	Sources        []model.RetrievalResult
	ConversationID string
	Timestamp      time.Time
}

// ChatService 编排检索、提示词组装、补全与会话落盘。
// 对外保证：只要请求合法，Chat 一定给出回答——补全后端不可用时
// 自动切到本地降级回答，错误不向上冒泡。
type ChatService interface {
	// Chat 处理一轮文字对话。
	Chat(ctx context.Context, sessionID, message, pageContext string, clientHistory []model.ChatMessage) Answer
	// Voice 处理一轮语音对话，返回适合朗读的纯文本。
	Voice(ctx context.Context, message, pageContext string) string
	// StreamChat 以流式分片的方式处理一轮对话，分片写入 writer。
	StreamChat(ctx context.Context, sessionID, message, pageContext string, writer llm.ChunkWriter) error
}

type chatService struct {
	llmClient        llm.Client
	retriever        RetrievalService
	composer         *PromptComposer
	fallback         *FallbackGenerator
	conversationRepo repository.ConversationRepository
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(
	llmClient llm.Client,
	retriever RetrievalService,
	composer *PromptComposer,
	fallback *FallbackGenerator,
	conversationRepo repository.ConversationRepository,
) ChatService {
	return &chatService{
		llmClient:        llmClient,
		retriever:        retriever,
		composer:         composer,
		fallback:         fallback,
		conversationRepo: conversationRepo,
	}
}

// Chat 的主流程：检索 → 取历史 → 组装提示词 → 补全（失败则降级）→ 落盘。
func (s *chatService) Chat(ctx context.Context, sessionID, message, pageContext string, clientHistory []model.ChatMessage) Answer {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	results := s.retriever.Retrieve(ctx, message, sessionID, config.Conf.Chat.RetrieveLimit)
	history := s.loadHistory(ctx, sessionID, clientHistory)

	systemPrompt := s.composer.Compose(pageContext, topResults(results, config.Conf.Chat.ContextLimit), history)
	messages := buildMessages(systemPrompt, history, message)

	response, err := s.llmClient.ChatCompletion(ctx, config.Conf.LLM.Model, messages, nil)
	if err != nil {
		log.Warnf("[ChatService] 补全后端不可用，使用降级回答: %v", err)
		response = s.fallback.Generate(ctx, message, pageContext)
	}

	s.persistTurn(sessionID, message, response)

	return Answer{
		Response:       response,
		Sources:        topResults(results, maxPromptItems),
		ConversationID: sessionID,
		Timestamp:      time.Now(),
	}
}

// Voice 与 Chat 同构，但用语音模型、精简提示词与更紧的 token 上限，
// 最终回答统一做口语化清洗。语音轮次不落会话历史。
func (s *chatService) Voice(ctx context.Context, message, pageContext string) string {
	results := s.retriever.Retrieve(ctx, message, "", config.Conf.Chat.RetrieveLimit)

	systemPrompt := s.composer.ComposeVoice(topResults(results, config.Conf.Chat.ContextLimit))
	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: message},
	}

	maxTokens := config.Conf.LLM.Generation.VoiceMaxTokens
	response, err := s.llmClient.ChatCompletion(ctx, config.Conf.LLM.VoiceModel, messages, &llm.GenerationParams{MaxTokens: &maxTokens})
	if err != nil {
		log.Warnf("[ChatService] 语音补全不可用，使用降级回答: %v", err)
		response = s.fallback.Generate(ctx, message, pageContext)
	}

	return CleanForSpeech(response)
}

// StreamChat 把补全分片实时转发给 writer，同时攒出全文用于落盘。
// 补全后端不可用时，把降级回答作为单个分片写出，依然返回成功。
func (s *chatService) StreamChat(ctx context.Context, sessionID, message, pageContext string, writer llm.ChunkWriter) error {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	results := s.retriever.Retrieve(ctx, message, sessionID, config.Conf.Chat.RetrieveLimit)
	history := s.loadHistory(ctx, sessionID, nil)

	systemPrompt := s.composer.Compose(pageContext, topResults(results, config.Conf.Chat.ContextLimit), history)
	messages := buildMessages(systemPrompt, history, message)

	capture := &capturingWriter{next: writer}
	err := s.llmClient.StreamChatCompletion(ctx, config.Conf.LLM.Model, messages, nil, capture)
	response := capture.full.String()

	if err != nil {
		if !errors.Is(err, llm.ErrUnavailable) {
			return err
		}
		log.Warnf("[ChatService] 流式补全不可用，使用降级回答: %v", err)
		response = s.fallback.Generate(ctx, message, pageContext)
		if werr := writer.WriteChunk(response); werr != nil {
			return werr
		}
	}

	s.persistTurn(sessionID, message, response)
	return nil
}

// loadHistory 读取会话历史并截到最近几轮。存储读取失败时退回
// 客户端随请求带来的历史（若有），绝不让历史问题阻断回答。
func (s *chatService) loadHistory(ctx context.Context, sessionID string, clientHistory []model.ChatMessage) []model.ChatMessage {
	history, err := s.conversationRepo.GetMessages(ctx, sessionID)
	if err != nil {
		log.Warnf("[ChatService] 读取会话历史失败: %v", err)
		history = nil
	}
	if len(history) == 0 && len(clientHistory) > 0 {
		history = clientHistory
	}
	limit := config.Conf.Chat.HistoryLimit
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history
}

// persistTurn 尽力而为地落盘本轮对话与记忆摘要。写失败只记日志，
// 回答照常返回。落盘使用独立的超时上下文，避免被请求取消拖累。
func (s *chatService) persistTurn(sessionID, message, response string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	now := time.Now()
	err := s.conversationRepo.AppendMessages(ctx, sessionID,
		model.ChatMessage{Role: "user", Content: message, Timestamp: now},
		model.ChatMessage{Role: "assistant", Content: response, Timestamp: now.Add(time.Millisecond)},
	)
	if err != nil {
		log.Warnf("[ChatService] 会话历史落盘失败: %v", err)
	}

	summary := response
	if len(summary) > 200 {
		summary = summary[:200]
	}
	err = s.conversationRepo.AppendMemory(ctx, sessionID, model.MemoryRecord{
		Topic:           extractTopic(message),
		Content:         "Visitor asked: " + message + " | Answered: " + summary,
		LastInteraction: now,
	})
	if err != nil {
		log.Warnf("[ChatService] 记忆摘要落盘失败: %v", err)
	}
}

// buildMessages 组装补全请求的消息序列：系统提示词、历史、本轮问题。
func buildMessages(systemPrompt string, history []model.ChatMessage, message string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	for _, msg := range history {
		messages = append(messages, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: message})
	return messages
}

func topResults(results []model.RetrievalResult, limit int) []model.RetrievalResult {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

// capturingWriter 在转发分片的同时拼出完整回答。
type capturingWriter struct {
	next llm.ChunkWriter
	full strings.Builder
}

func (w *capturingWriter) WriteChunk(content string) error {
	w.full.WriteString(content)
	return w.next.WriteChunk(content)
}

// extractTopic 从问题中归纳一个粗粒度主题标签，用于记忆摘要分组。
func extractTopic(message string) string {
	messageLower := strings.ToLower(message)
	switch {
	case strings.Contains(messageLower, "project"):
		return "projects"
	case strings.Contains(messageLower, "skill"):
		return "skills"
	case strings.Contains(messageLower, "experience"):
		return "experience"
	case strings.Contains(messageLower, "education"):
		return "education"
	case strings.Contains(messageLower, "certification"):
		return "certifications"
	case strings.Contains(messageLower, "contact"), strings.Contains(messageLower, "email"):
		return "contact"
	case strings.Contains(messageLower, "work"):
		return "work_history"
	case strings.Contains(messageLower, "technolog"), strings.Contains(messageLower, "tech"):
		return "technologies"
	default:
		return "general"
	}
}
