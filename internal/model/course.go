package model

import (
	"sort"
	"time"
)

// Course 代表学习页（LMS）中的一门课程及其进度。
type Course struct {
	ID          string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Duration    string    `gorm:"type:varchar(100)" json:"duration"`
	Level       string    `gorm:"type:varchar(64)" json:"level"`
	Progress    int       `gorm:"not null;default:0" json:"progress"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Course) TableName() string {
	return "courses"
}

// SortCourses 按创建时间倒序排序。
func SortCourses(courses []Course) {
	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].CreatedAt.After(courses[j].CreatedAt)
	})
}
