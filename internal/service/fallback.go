package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/internal/repository"
	"github.com/renktt/rresume/pkg/log"
)

// greetingPattern 匹配以问候语开头的输入。
var greetingPattern = regexp.MustCompile(`^(hi|hello|hey|greetings|good morning|good afternoon|good evening)\b`)

// FallbackGenerator 在补全后端不可用时生成降级回答。
// 回答完全由本地画像与已存储的内容拼装，任何仓储读取失败都被吞掉，
// 保证降级路径自身永不失败。
type FallbackGenerator struct {
	profile     model.Profile
	resumeRepo  repository.ResumeRepository
	projectRepo repository.ProjectRepository
}

// NewFallbackGenerator 创建一个新的 FallbackGenerator 实例。
func NewFallbackGenerator(profile model.Profile, resumeRepo repository.ResumeRepository, projectRepo repository.ProjectRepository) *FallbackGenerator {
	return &FallbackGenerator{
		profile:     profile,
		resumeRepo:  resumeRepo,
		projectRepo: projectRepo,
	}
}

// intentRule 将一组关键词绑定到一个回答函数。规则按声明顺序匹配，
// 先命中先生效，所以更具体的意图要排在前面。
type intentRule struct {
	keywords []string
	respond  func(ctx context.Context) string
}

// Generate 根据问题的意图返回本地拼装的回答。
func (g *FallbackGenerator) Generate(ctx context.Context, query, pageContext string) string {
	queryLower := strings.ToLower(strings.TrimSpace(query))

	if greetingPattern.MatchString(queryLower) {
		return g.greetingResponse()
	}

	rules := []intentRule{
		{keywords: []string{"skill", "technolog", "tech stack", "stack"}, respond: g.skillsResponse},
		{keywords: []string{"education", "school", "study", "studied", "degree", "university"}, respond: g.educationResponse},
		{keywords: []string{"project", "portfolio", "built", "created", "developed"}, respond: g.projectsResponse},
		{keywords: []string{"resume", "experience", "background", "work history"}, respond: g.resumeResponse},
		{keywords: []string{"learn", "course", "teaching", "lms"}, respond: g.learningResponse},
		{keywords: []string{"contact", "reach", "email", "phone", "hire"}, respond: g.contactResponse},
		{keywords: []string{"about", "who are you", "tell me about", "yourself"}, respond: g.aboutResponse},
		{keywords: []string{"digital twin", "how do you work", "are you ai", "are you real"}, respond: g.twinResponse},
		{keywords: []string{"thank"}, respond: g.thanksResponse},
		{keywords: []string{"help", "what can you", "capabilit"}, respond: g.helpResponse},
	}

	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(queryLower, kw) {
				return rule.respond(ctx)
			}
		}
	}

	return g.genericResponse(pageContext)
}

func (g *FallbackGenerator) greetingResponse() string {
	return fmt.Sprintf("Hello! I'm %s's digital twin. Feel free to ask me about my skills, projects, experience, or anything else on this site.", g.profile.Name)
}

// skillsResponse 列出画像中的技能分类，并补充简历 skills 区块里的条目。
func (g *FallbackGenerator) skillsResponse(ctx context.Context) string {
	var b strings.Builder
	b.WriteString("Here's an overview of my technical skills:\n")
	for _, category := range g.profile.Skills {
		fmt.Fprintf(&b, "• %s: %s\n", category.Name, strings.Join(category.Skills, ", "))
	}

	if items, err := g.resumeRepo.List(ctx); err != nil {
		log.Warnf("[FallbackGenerator] 读取简历条目失败，仅使用画像技能: %v", err)
	} else {
		for _, item := range items {
			if item.Section != "skills" {
				continue
			}
			fmt.Fprintf(&b, "• %s: %s\n", item.Title, item.Description)
		}
	}

	fmt.Fprintf(&b, "I'm always expanding this list. Right now: %s.", strings.Join(g.profile.CurrentFocus, ", "))
	return b.String()
}

func (g *FallbackGenerator) educationResponse(ctx context.Context) string {
	var lines []string
	if items, err := g.resumeRepo.List(ctx); err != nil {
		log.Warnf("[FallbackGenerator] 读取简历条目失败: %v", err)
	} else {
		for _, item := range items {
			if item.Section != "education" {
				continue
			}
			line := item.Title
			if item.DateRange != "" {
				line += " (" + item.DateRange + ")"
			}
			if item.Description != "" {
				line += " — " + item.Description
			}
			lines = append(lines, "• "+line)
		}
	}
	if len(lines) == 0 {
		return fmt.Sprintf("I'm %s, %s. You can find the details of my education on the resume page of this site.", g.profile.Name, g.profile.Title)
	}
	return "Here's my educational background:\n" + strings.Join(lines, "\n")
}

// projectsResponse 汇报项目数量并点名最近的几个项目。
func (g *FallbackGenerator) projectsResponse(ctx context.Context) string {
	projects, err := g.projectRepo.List(ctx)
	if err != nil {
		log.Warnf("[FallbackGenerator] 读取项目失败: %v", err)
		return "I've built a number of projects — you can browse them all on the projects page of this site."
	}
	if len(projects) == 0 {
		return "I'm working on adding my projects to this site — check back soon, or ask me about my skills in the meantime!"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I have %d project(s) in my portfolio. A few highlights:\n", len(projects))
	shown := 0
	for _, p := range projects {
		if shown >= 3 {
			break
		}
		fmt.Fprintf(&b, "• %s — %s\n", p.Title, p.Description)
		shown++
	}
	b.WriteString("Ask me about any of them for more detail!")
	return b.String()
}

func (g *FallbackGenerator) resumeResponse(ctx context.Context) string {
	count := 0
	if items, err := g.resumeRepo.List(ctx); err != nil {
		log.Warnf("[FallbackGenerator] 读取简历条目失败: %v", err)
	} else {
		count = len(items)
	}
	if count == 0 {
		return fmt.Sprintf("I'm %s, %s specializing in %s. The resume page of this site has the full story.", g.profile.Name, g.profile.Title, g.profile.Specialization)
	}
	return fmt.Sprintf("My resume currently lists %d entries across experience, education, skills and certifications. I'm %s. Feel free to ask about any part of my background.", count, g.profile.Title)
}

func (g *FallbackGenerator) learningResponse(ctx context.Context) string {
	return fmt.Sprintf("I'm a lifelong learner. My current focus: %s. The learning section of this site tracks the courses I'm taking and my progress through them.", strings.Join(g.profile.CurrentFocus, ", "))
}

func (g *FallbackGenerator) contactResponse(ctx context.Context) string {
	p := g.profile
	var b strings.Builder
	fmt.Fprintf(&b, "You can reach me at %s", p.Email)
	if p.Phone != "" {
		fmt.Fprintf(&b, " or by phone at %s", p.Phone)
	}
	b.WriteString(".")
	if p.LinkedIn != "" {
		fmt.Fprintf(&b, " I'm also on LinkedIn: %s.", p.LinkedIn)
	}
	b.WriteString(" Or just use the contact form on this site and your message will land in my inbox.")
	return b.String()
}

func (g *FallbackGenerator) aboutResponse(ctx context.Context) string {
	p := g.profile
	return fmt.Sprintf("I'm %s, %s specializing in %s. I work with %s. My interests include %s. Right now I'm focused on %s.",
		p.Name, p.Title, p.Specialization, strings.Join(p.AllSkills(), ", "), strings.Join(p.Interests, ", "), strings.Join(p.CurrentFocus, ", "))
}

func (g *FallbackGenerator) twinResponse(ctx context.Context) string {
	return fmt.Sprintf("I'm the digital twin of %s — an assistant trained on the contents of this portfolio. I answer in the first person using my resume, projects and what we've talked about in this conversation.", g.profile.Name)
}

func (g *FallbackGenerator) thanksResponse(ctx context.Context) string {
	return "You're very welcome! Is there anything else you'd like to know about my work?"
}

func (g *FallbackGenerator) helpResponse(ctx context.Context) string {
	return "You can ask me about my skills, projects, work experience, education, what I'm currently learning, or how to get in touch. What would you like to know?"
}

func (g *FallbackGenerator) genericResponse(pageContext string) string {
	if pageContext != "" {
		return fmt.Sprintf("That's a good question! While you're on the %s page, feel free to ask me about my skills, projects, or experience — I'm happy to go into detail.", pageContext)
	}
	return fmt.Sprintf("Thanks for asking! I'm %s's digital twin — try asking about my skills, projects, experience, or how to contact me.", g.profile.Name)
}
