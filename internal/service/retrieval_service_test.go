package service

import (
	"context"
	"testing"
	"time"

	"github.com/renktt/rresume/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRetriever(resume *fakeResumeRepo, projects *fakeProjectRepo, conv *fakeConversationRepo) RetrievalService {
	if conv == nil {
		conv = newFakeConversationRepo()
	}
	return NewRetrievalService(resume, projects, conv)
}

func TestRetrieveScoring(t *testing.T) {
	resume := &fakeResumeRepo{items: []model.ResumeItem{
		{Section: "skills", Title: "React Development", Description: "Building apps with React and Next.js"},
		{Section: "education", Title: "BS Information Technology", Description: "University coursework"},
	}}
	projects := &fakeProjectRepo{projects: []model.Project{
		{Title: "Portfolio Site", Description: "Personal site built with React"},
	}}

	retriever := newTestRetriever(resume, projects, nil)
	results := retriever.Retrieve(context.Background(), "react", "", 10)

	require.Len(t, results, 2)
	// 单词问句：全句命中(10) + 词命中(1) = 11
	assert.Equal(t, float64(11), results[0].Score)
	assert.Equal(t, float64(11), results[1].Score)
	// 同分保持输入顺序：简历在项目之前
	assert.Equal(t, model.RetrievalKindResume, results[0].Kind)
	assert.Equal(t, model.RetrievalKindProject, results[1].Kind)
}

func TestRetrieveDropsShortTokens(t *testing.T) {
	resume := &fakeResumeRepo{items: []model.ResumeItem{
		{Section: "skills", Title: "Go", Description: "systems programming in go"},
	}}
	retriever := newTestRetriever(resume, &fakeProjectRepo{}, nil)

	// "go" 长度不超过 2，被丢弃；"with" 不命中 → 全句也不命中 → 空集
	results := retriever.Retrieve(context.Background(), "go with", "", 10)
	assert.Empty(t, results)
}

func TestRetrieveDistinctTokensCountedOnce(t *testing.T) {
	resume := &fakeResumeRepo{items: []model.ResumeItem{
		{Section: "skills", Title: "React", Description: "react everywhere"},
	}}
	retriever := newTestRetriever(resume, &fakeProjectRepo{}, nil)

	results := retriever.Retrieve(context.Background(), "react react react", "", 10)
	require.Len(t, results, 1)
	// 重复词只记一次：词命中 1 分，全句 "react react react" 不是子串
	assert.Equal(t, float64(1), results[0].Score)
}

func TestRetrieveRanksFullPhraseAboveTokenOverlap(t *testing.T) {
	// 低分候选放在输入顺序的前面，排序必须按得分把整句命中的候选提到首位
	resume := &fakeResumeRepo{items: []model.ResumeItem{
		{Section: "skills", Title: "Next.js", Description: "server rendered apps with react"},
	}}
	projects := &fakeProjectRepo{projects: []model.Project{
		{Title: "Teaching Portal", Description: "react development for the classroom"},
	}}
	retriever := newTestRetriever(resume, projects, nil)

	results := retriever.Retrieve(context.Background(), "react development", "", 10)
	require.Len(t, results, 2)
	// 整句命中(10) + 两个词命中(2) = 12，排在只命中一个词(1)的简历条目之前
	assert.Equal(t, model.RetrievalKindProject, results[0].Kind)
	assert.Equal(t, float64(12), results[0].Score)
	assert.Equal(t, model.RetrievalKindResume, results[1].Kind)
	assert.Equal(t, float64(1), results[1].Score)
}

func TestRetrieveIncludesSessionMemories(t *testing.T) {
	conv := newFakeConversationRepo()
	conv.memories["s1"] = []model.MemoryRecord{
		{Topic: "projects", Content: "Visitor asked about the chatbot project", LastInteraction: time.Now()},
	}
	retriever := newTestRetriever(&fakeResumeRepo{}, &fakeProjectRepo{}, conv)

	results := retriever.Retrieve(context.Background(), "chatbot project", "s1", 10)
	require.Len(t, results, 1)
	assert.Equal(t, model.RetrievalKindMemory, results[0].Kind)
	assert.Equal(t, "projects", results[0].Title)
}

func TestRetrieveLimit(t *testing.T) {
	resume := &fakeResumeRepo{}
	for i := 0; i < 8; i++ {
		resume.items = append(resume.items, model.ResumeItem{Section: "skills", Title: "React", Description: "react"})
	}
	retriever := newTestRetriever(resume, &fakeProjectRepo{}, nil)

	results := retriever.Retrieve(context.Background(), "react", "", 3)
	assert.Len(t, results, 3)
}

func TestRetrieveEmptyOnStoreError(t *testing.T) {
	retriever := newTestRetriever(&fakeResumeRepo{err: errStoreDown}, &fakeProjectRepo{}, nil)

	results := retriever.Retrieve(context.Background(), "react", "", 10)
	assert.Empty(t, results)
}

func TestQueryTokens(t *testing.T) {
	tokens := queryTokens("what are your top skills in go")
	// "in" 和 "go" 被丢弃
	assert.Equal(t, []string{"what", "are", "your", "top", "skills"}, tokens)
}
