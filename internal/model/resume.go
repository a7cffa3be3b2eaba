// Package model 包含了应用的数据模型定义。
package model

import (
	"sort"
	"strings"
	"time"
)

// ResumeItem 代表简历中的一个条目（教育、技能、经历、证书等）。
type ResumeItem struct {
	ID          string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Section     string    `gorm:"type:varchar(64);not null;index" json:"section"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	DateRange   string    `gorm:"type:varchar(100)" json:"dateRange"`
	Order       int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (ResumeItem) TableName() string {
	return "resume_items"
}

// SearchText 返回参与关键词检索的拼接文本（小写）。
func (r ResumeItem) SearchText() string {
	return strings.ToLower(r.Section + " " + r.Title + " " + r.Description + " " + r.DateRange)
}

// NormalizeSection 在存储边界统一 section 的大小写。
// 历史数据中 "Education" 与 "education" 混用，这里一律落库为小写。
func NormalizeSection(section string) string {
	return strings.ToLower(strings.TrimSpace(section))
}

// SortResumeItems 按 (section 升序, order 升序) 对简历条目排序。
// 列表接口不依赖后端的插入顺序，每次读取时重排。
func SortResumeItems(items []ResumeItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Section != items[j].Section {
			return items[i].Section < items[j].Section
		}
		return items[i].Order < items[j].Order
	})
}

// ResumeItemPatch 描述一次部分字段更新；nil 字段保持原值。
type ResumeItemPatch struct {
	Section     *string `json:"section"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DateRange   *string `json:"dateRange"`
	Order       *int    `json:"order"`
}

// Apply 将补丁合并到条目上。无论补丁是否为空，UpdatedAt 都会前移。
func (p ResumeItemPatch) Apply(item *ResumeItem) {
	if p.Section != nil {
		item.Section = NormalizeSection(*p.Section)
	}
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.DateRange != nil {
		item.DateRange = *p.DateRange
	}
	if p.Order != nil {
		item.Order = *p.Order
	}
	item.UpdatedAt = time.Now()
}
