package service

import (
	"context"
	"errors"

	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/pkg/llm"
)

// 本文件提供服务层测试共用的内存假件。

var errStoreDown = errors.New("store down")

type fakeResumeRepo struct {
	items []model.ResumeItem
	err   error
}

func (f *fakeResumeRepo) List(ctx context.Context) ([]model.ResumeItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeResumeRepo) Create(ctx context.Context, item model.ResumeItem) (model.ResumeItem, error) {
	f.items = append(f.items, item)
	return item, nil
}

func (f *fakeResumeRepo) Update(ctx context.Context, id string, patch model.ResumeItemPatch) (model.ResumeItem, error) {
	return model.ResumeItem{}, nil
}

func (f *fakeResumeRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeProjectRepo struct {
	projects []model.Project
	err      error
}

func (f *fakeProjectRepo) List(ctx context.Context) ([]model.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.projects, nil
}

func (f *fakeProjectRepo) Create(ctx context.Context, project model.Project) (model.Project, error) {
	f.projects = append(f.projects, project)
	return project, nil
}

func (f *fakeProjectRepo) Update(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error) {
	return model.Project{}, nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeConversationRepo struct {
	messages map[string][]model.ChatMessage
	memories map[string][]model.MemoryRecord
	readErr  error
	writeErr error
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		messages: make(map[string][]model.ChatMessage),
		memories: make(map[string][]model.MemoryRecord),
	}
}

func (f *fakeConversationRepo) AppendMessages(ctx context.Context, sessionID string, messages ...model.ChatMessage) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.messages[sessionID] = append(f.messages[sessionID], messages...)
	return nil
}

func (f *fakeConversationRepo) GetMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	msgs := append([]model.ChatMessage{}, f.messages[sessionID]...)
	model.SortChatMessages(msgs)
	return msgs, nil
}

func (f *fakeConversationRepo) ClearSession(ctx context.Context, sessionID string) error {
	delete(f.messages, sessionID)
	delete(f.memories, sessionID)
	return nil
}

func (f *fakeConversationRepo) AppendMemory(ctx context.Context, sessionID string, record model.MemoryRecord) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.memories[sessionID] = append(f.memories[sessionID], record)
	return nil
}

func (f *fakeConversationRepo) GetMemories(ctx context.Context, sessionID string) ([]model.MemoryRecord, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	records := append([]model.MemoryRecord{}, f.memories[sessionID]...)
	model.SortMemoryRecords(records)
	return records, nil
}

// fakeLLMClient 按预设返回回答或错误，并记录收到的消息序列。
type fakeLLMClient struct {
	response string
	err      error
	gotMsgs  []llm.Message
}

func (f *fakeLLMClient) ChatCompletion(ctx context.Context, model string, messages []llm.Message, gen *llm.GenerationParams) (string, error) {
	f.gotMsgs = messages
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLMClient) StreamChatCompletion(ctx context.Context, model string, messages []llm.Message, gen *llm.GenerationParams, writer llm.ChunkWriter) error {
	f.gotMsgs = messages
	if f.err != nil {
		return f.err
	}
	// 把回答拆成两段模拟流式分片
	half := len(f.response) / 2
	if err := writer.WriteChunk(f.response[:half]); err != nil {
		return err
	}
	return writer.WriteChunk(f.response[half:])
}

// collectWriter 把分片收集到切片里。
type collectWriter struct {
	chunks []string
}

func (w *collectWriter) WriteChunk(content string) error {
	w.chunks = append(w.chunks, content)
	return nil
}

// testProfile 是测试用的精简画像。
var testProfile = model.Profile{
	Name:           "Renante Marzan",
	Title:          "IT Instructor & Full-Stack Developer",
	Specialization: "web development and AI integration",
	Email:          "renante@example.com",
	Phone:          "+63 900 000 0000",
	LinkedIn:       "linkedin.com/in/renante",
	Skills: []model.SkillCategory{
		{Name: "Frontend", Skills: []string{"React", "Next.js", "TypeScript"}},
		{Name: "Backend", Skills: []string{"Go", "Node.js"}},
	},
	Interests:    []string{"teaching", "open source"},
	CurrentFocus: []string{"exploring AI-assisted education"},
}
