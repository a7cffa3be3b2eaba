package model

import (
	"sort"
	"strings"
	"time"
)

// Project 代表作品集中的一个项目。
type Project struct {
	ID          string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	// TechStack 以逗号拼接存储，展示时按逗号切分为标签列表。
	TechStack  string    `gorm:"type:varchar(512)" json:"techStack"`
	GithubLink string    `gorm:"type:varchar(512)" json:"githubLink,omitempty"`
	DemoLink   string    `gorm:"type:varchar(512)" json:"demoLink,omitempty"`
	ImageURL   string    `gorm:"type:varchar(512)" json:"imageUrl,omitempty"`
	Featured   bool      `gorm:"not null;default:false" json:"featured"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Project) TableName() string {
	return "projects"
}

// SearchText 返回参与关键词检索的拼接文本（小写）。
func (p Project) SearchText() string {
	return strings.ToLower(p.Title + " " + p.Description + " " + p.TechStack)
}

// TechTags 将 techStack 切分并去除空白，得到展示用的标签列表。
func (p Project) TechTags() []string {
	parts := strings.Split(p.TechStack, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// SortProjects 按创建时间倒序对项目排序。
func SortProjects(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
}

// ProjectPatch 描述一次部分字段更新；nil 字段保持原值。
type ProjectPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	TechStack   *string `json:"techStack"`
	GithubLink  *string `json:"githubLink"`
	DemoLink    *string `json:"demoLink"`
	ImageURL    *string `json:"imageUrl"`
	Featured    *bool   `json:"featured"`
}

// Apply 将补丁合并到项目上。无论补丁是否为空，UpdatedAt 都会前移。
func (p ProjectPatch) Apply(project *Project) {
	if p.Title != nil {
		project.Title = *p.Title
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
	if p.TechStack != nil {
		project.TechStack = *p.TechStack
	}
	if p.GithubLink != nil {
		project.GithubLink = *p.GithubLink
	}
	if p.DemoLink != nil {
		project.DemoLink = *p.DemoLink
	}
	if p.ImageURL != nil {
		project.ImageURL = *p.ImageURL
	}
	if p.Featured != nil {
		project.Featured = *p.Featured
	}
	project.UpdatedAt = time.Now()
}
