package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProjectTechTags(t *testing.T) {
	p := Project{TechStack: "Go, Gin,Redis , ,MySQL"}
	assert.Equal(t, []string{"Go", "Gin", "Redis", "MySQL"}, p.TechTags())

	assert.Empty(t, Project{}.TechTags())
}

func TestSortProjects(t *testing.T) {
	now := time.Now()
	projects := []Project{
		{ID: "old", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "new", CreatedAt: now},
		{ID: "mid", CreatedAt: now.Add(-time.Hour)},
	}
	SortProjects(projects)

	assert.Equal(t, "new", projects[0].ID)
	assert.Equal(t, "mid", projects[1].ID)
	assert.Equal(t, "old", projects[2].ID)
}

func TestSortChatMessages(t *testing.T) {
	now := time.Now()
	messages := []ChatMessage{
		{Content: "second", Timestamp: now},
		{Content: "first", Timestamp: now.Add(-time.Minute)},
	}
	SortChatMessages(messages)

	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)
}

func TestSortMemoryRecords(t *testing.T) {
	now := time.Now()
	records := []MemoryRecord{
		{Topic: "older", LastInteraction: now.Add(-time.Hour)},
		{Topic: "newest", LastInteraction: now},
	}
	SortMemoryRecords(records)

	assert.Equal(t, "newest", records[0].Topic)
}
