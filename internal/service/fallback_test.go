package service

import (
	"context"
	"testing"

	"github.com/renktt/rresume/internal/model"
	"github.com/stretchr/testify/assert"
)

func newTestFallback(resume *fakeResumeRepo, projects *fakeProjectRepo) *FallbackGenerator {
	if resume == nil {
		resume = &fakeResumeRepo{}
	}
	if projects == nil {
		projects = &fakeProjectRepo{}
	}
	return NewFallbackGenerator(testProfile, resume, projects)
}

func TestFallbackGreeting(t *testing.T) {
	g := newTestFallback(nil, nil)
	response := g.Generate(context.Background(), "Hello there!", "")
	assert.Contains(t, response, "Renante")
}

func TestFallbackSkillsIncludesStoredEntries(t *testing.T) {
	resume := &fakeResumeRepo{items: []model.ResumeItem{
		{Section: "skills", Title: "Frontend", Description: "React, Next.js, Tailwind CSS"},
		{Section: "education", Title: "BSIT", Description: "should not appear"},
	}}
	g := newTestFallback(resume, nil)

	response := g.Generate(context.Background(), "What are your skills?", "")
	assert.Contains(t, response, "Frontend")
	assert.Contains(t, response, "React")
	assert.NotContains(t, response, "BSIT")
}

func TestFallbackSkillsSurvivesStoreError(t *testing.T) {
	g := newTestFallback(&fakeResumeRepo{err: errStoreDown}, nil)

	response := g.Generate(context.Background(), "tell me about your tech stack", "")
	// 仓储不可用时退回画像技能，永不失败
	assert.Contains(t, response, "Frontend")
	assert.Contains(t, response, "React")
}

func TestFallbackProjectsCountsStoredProjects(t *testing.T) {
	projects := &fakeProjectRepo{projects: []model.Project{
		{Title: "Digital Twin", Description: "AI portfolio assistant"},
		{Title: "LMS", Description: "course tracker"},
	}}
	g := newTestFallback(nil, projects)

	response := g.Generate(context.Background(), "what projects have you built", "")
	assert.Contains(t, response, "2 project")
	assert.Contains(t, response, "Digital Twin")
}

func TestFallbackContact(t *testing.T) {
	g := newTestFallback(nil, nil)
	response := g.Generate(context.Background(), "how can I contact you", "")
	assert.Contains(t, response, testProfile.Email)
}

func TestFallbackIntentPriority(t *testing.T) {
	// 同时包含 skills 与 project 关键词时，skills 规则先命中
	g := newTestFallback(nil, nil)
	response := g.Generate(context.Background(), "what skills did you use in your projects", "")
	assert.Contains(t, response, "technical skills")
}

func TestFallbackGeneric(t *testing.T) {
	g := newTestFallback(nil, nil)

	response := g.Generate(context.Background(), "what is the meaning of life", "resume")
	assert.Contains(t, response, "resume")

	response = g.Generate(context.Background(), "what is the meaning of life", "")
	assert.NotEmpty(t, response)
}

func TestFallbackAboutListsSkills(t *testing.T) {
	g := newTestFallback(nil, nil)

	response := g.Generate(context.Background(), "tell me about yourself", "")
	assert.Contains(t, response, testProfile.Name)
	// 自我介绍带上画像里拍平后的技能清单
	assert.Contains(t, response, "React")
	assert.Contains(t, response, "Node.js")
}

func TestFallbackThanksAndHelp(t *testing.T) {
	g := newTestFallback(nil, nil)
	assert.Contains(t, g.Generate(context.Background(), "thank you so much", ""), "welcome")
	assert.Contains(t, g.Generate(context.Background(), "what can you do for me", ""), "ask me")
}
