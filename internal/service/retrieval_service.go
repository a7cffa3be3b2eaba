// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"sort"
	"strings"

	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/internal/repository"
	"github.com/renktt/rresume/pkg/log"
)

// RetrievalService 根据自由文本问题对站点内容做关键词相关性检索。
//
// 评分规则刻意保持为朴素的词面重合启发式，而不是向量检索：
// 完整问句作为子串命中记 10 分，每个（去重后的）问题词命中再加 1 分。
// 下游提示词的质量依赖这套排序行为，不要改动权重。
type RetrievalService interface {
	// Retrieve 返回按得分倒序、截断到 limit 的候选集。
	// 任何后端读取失败都按"没有检索到上下文"处理，返回空集而不报错。
	Retrieve(ctx context.Context, query, sessionID string, limit int) []model.RetrievalResult
}

type retrievalService struct {
	resumeRepo       repository.ResumeRepository
	projectRepo      repository.ProjectRepository
	conversationRepo repository.ConversationRepository
}

// NewRetrievalService 创建一个新的 RetrievalService 实例。
func NewRetrievalService(
	resumeRepo repository.ResumeRepository,
	projectRepo repository.ProjectRepository,
	conversationRepo repository.ConversationRepository,
) RetrievalService {
	return &retrievalService{
		resumeRepo:       resumeRepo,
		projectRepo:      projectRepo,
		conversationRepo: conversationRepo,
	}
}

// candidate 是参与打分的中间结构。
type candidate struct {
	result model.RetrievalResult
	text   string
}

// Retrieve 对简历、项目与当前会话的记忆摘要做全量扫描打分。
func (s *retrievalService) Retrieve(ctx context.Context, query, sessionID string, limit int) []model.RetrievalResult {
	queryLower := strings.ToLower(query)
	tokens := queryTokens(queryLower)

	candidates, err := s.collectCandidates(ctx, sessionID)
	if err != nil {
		log.Warnf("[RetrievalService] 候选读取失败，按无上下文处理: %v", err)
		return []model.RetrievalResult{}
	}

	scored := make([]model.RetrievalResult, 0, len(candidates))
	for _, c := range candidates {
		score := scoreCandidate(c.text, queryLower, tokens)
		if score == 0 {
			continue
		}
		c.result.Score = score
		scored = append(scored, c.result)
	}

	// 稳定排序：同分时保持候选的输入顺序（简历→项目→记忆）
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// collectCandidates 按固定顺序收集候选：简历条目、项目、会话记忆。
// 任何一路读取失败都视为整体失败，调用方据此退化为空结果。
func (s *retrievalService) collectCandidates(ctx context.Context, sessionID string) ([]candidate, error) {
	var candidates []candidate

	items, err := s.resumeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		candidates = append(candidates, candidate{
			result: model.RetrievalResult{
				Kind:    model.RetrievalKindResume,
				Title:   item.Section + ": " + item.Title,
				Content: item.Description,
			},
			text: item.SearchText(),
		})
	}

	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, project := range projects {
		candidates = append(candidates, candidate{
			result: model.RetrievalResult{
				Kind:    model.RetrievalKindProject,
				Title:   project.Title,
				Content: project.Description,
			},
			text: project.SearchText(),
		})
	}

	if sessionID != "" {
		records, err := s.conversationRepo.GetMemories(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		for _, record := range records {
			candidates = append(candidates, candidate{
				result: model.RetrievalResult{
					Kind:    model.RetrievalKindMemory,
					Title:   record.Topic,
					Content: record.Content,
				},
				text: record.SearchText(),
			})
		}
	}

	return candidates, nil
}

// queryTokens 把小写问句按空白切词，丢掉长度不超过 2 的短词，并去重。
func queryTokens(queryLower string) []string {
	fields := strings.Fields(queryLower)
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) <= 2 {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// scoreCandidate 计算单个候选的词面重合度得分。
func scoreCandidate(text, queryLower string, tokens []string) float64 {
	var score float64
	if strings.Contains(text, queryLower) {
		score += 10
	}
	for _, token := range tokens {
		if strings.Contains(text, token) {
			score++
		}
	}
	return score
}
