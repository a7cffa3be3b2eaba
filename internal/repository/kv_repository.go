package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/renktt/rresume/internal/model"
)

// 本文件提供内容集合的 Redis 实现：整个集合序列化为一个 JSON 数组，
// 存放在单个键下，读改写整体覆盖。适合条目量很小的个人站点数据；
// 同键并发写采用"后写覆盖"语义。

const (
	keyResumeItems     = "resume:items"
	keyProjectItems    = "projects:items"
	keyContactMessages = "contact:messages"
	keyCourses         = "lms:courses"
)

// kvCollection 将一个键下的 JSON 数组映射为内存切片。
type kvCollection[T any] struct {
	rdb *redis.Client
	key string
}

func (c kvCollection[T]) load(ctx context.Context) ([]T, error) {
	jsonData, err := c.rdb.Get(ctx, c.key).Result()
	if err == redis.Nil {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", c.key, err)
	}
	var items []T
	if err := json.Unmarshal([]byte(jsonData), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", c.key, err)
	}
	return items, nil
}

func (c kvCollection[T]) save(ctx context.Context, items []T) error {
	jsonData, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", c.key, err)
	}
	if err := c.rdb.Set(ctx, c.key, jsonData, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", c.key, err)
	}
	return nil
}

type kvResumeRepository struct {
	coll kvCollection[model.ResumeItem]
}

// NewKVResumeRepository 创建一个基于 Redis 的 ResumeRepository 实例。
func NewKVResumeRepository(rdb *redis.Client) ResumeRepository {
	return &kvResumeRepository{coll: kvCollection[model.ResumeItem]{rdb: rdb, key: keyResumeItems}}
}

func (r *kvResumeRepository) List(ctx context.Context) ([]model.ResumeItem, error) {
	items, err := r.coll.load(ctx)
	if err != nil {
		return nil, err
	}
	model.SortResumeItems(items)
	return items, nil
}

func (r *kvResumeRepository) Create(ctx context.Context, item model.ResumeItem) (model.ResumeItem, error) {
	items, err := r.coll.load(ctx)
	if err != nil {
		return model.ResumeItem{}, err
	}
	now := time.Now()
	item.ID = uuid.NewString()
	item.Section = model.NormalizeSection(item.Section)
	item.CreatedAt = now
	item.UpdatedAt = now
	items = append(items, item)
	if err := r.coll.save(ctx, items); err != nil {
		return model.ResumeItem{}, err
	}
	return item, nil
}

func (r *kvResumeRepository) Update(ctx context.Context, id string, patch model.ResumeItemPatch) (model.ResumeItem, error) {
	items, err := r.coll.load(ctx)
	if err != nil {
		return model.ResumeItem{}, err
	}
	for i := range items {
		if items[i].ID == id {
			patch.Apply(&items[i])
			if err := r.coll.save(ctx, items); err != nil {
				return model.ResumeItem{}, err
			}
			return items[i], nil
		}
	}
	return model.ResumeItem{}, ErrNotFound
}

func (r *kvResumeRepository) Delete(ctx context.Context, id string) error {
	items, err := r.coll.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items = append(items[:i], items[i+1:]...)
			return r.coll.save(ctx, items)
		}
	}
	return ErrNotFound
}

type kvProjectRepository struct {
	coll kvCollection[model.Project]
}

// NewKVProjectRepository 创建一个基于 Redis 的 ProjectRepository 实例。
func NewKVProjectRepository(rdb *redis.Client) ProjectRepository {
	return &kvProjectRepository{coll: kvCollection[model.Project]{rdb: rdb, key: keyProjectItems}}
}

func (r *kvProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	projects, err := r.coll.load(ctx)
	if err != nil {
		return nil, err
	}
	model.SortProjects(projects)
	return projects, nil
}

func (r *kvProjectRepository) Create(ctx context.Context, project model.Project) (model.Project, error) {
	projects, err := r.coll.load(ctx)
	if err != nil {
		return model.Project{}, err
	}
	now := time.Now()
	project.ID = uuid.NewString()
	project.CreatedAt = now
	project.UpdatedAt = now
	projects = append(projects, project)
	if err := r.coll.save(ctx, projects); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

func (r *kvProjectRepository) Update(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error) {
	projects, err := r.coll.load(ctx)
	if err != nil {
		return model.Project{}, err
	}
	for i := range projects {
		if projects[i].ID == id {
			patch.Apply(&projects[i])
			if err := r.coll.save(ctx, projects); err != nil {
				return model.Project{}, err
			}
			return projects[i], nil
		}
	}
	return model.Project{}, ErrNotFound
}

func (r *kvProjectRepository) Delete(ctx context.Context, id string) error {
	projects, err := r.coll.load(ctx)
	if err != nil {
		return err
	}
	for i := range projects {
		if projects[i].ID == id {
			projects = append(projects[:i], projects[i+1:]...)
			return r.coll.save(ctx, projects)
		}
	}
	return ErrNotFound
}

type kvContactRepository struct {
	coll kvCollection[model.ContactMessage]
}

// NewKVContactRepository 创建一个基于 Redis 的 ContactRepository 实例。
func NewKVContactRepository(rdb *redis.Client) ContactRepository {
	return &kvContactRepository{coll: kvCollection[model.ContactMessage]{rdb: rdb, key: keyContactMessages}}
}

func (r *kvContactRepository) List(ctx context.Context) ([]model.ContactMessage, error) {
	messages, err := r.coll.load(ctx)
	if err != nil {
		return nil, err
	}
	model.SortContactMessages(messages)
	return messages, nil
}

func (r *kvContactRepository) Create(ctx context.Context, message model.ContactMessage) (model.ContactMessage, error) {
	messages, err := r.coll.load(ctx)
	if err != nil {
		return model.ContactMessage{}, err
	}
	message.ID = uuid.NewString()
	message.Read = false
	message.CreatedAt = time.Now()
	messages = append(messages, message)
	if err := r.coll.save(ctx, messages); err != nil {
		return model.ContactMessage{}, err
	}
	return message, nil
}

type kvCourseRepository struct {
	coll kvCollection[model.Course]
}

// NewKVCourseRepository 创建一个基于 Redis 的 CourseRepository 实例。
func NewKVCourseRepository(rdb *redis.Client) CourseRepository {
	return &kvCourseRepository{coll: kvCollection[model.Course]{rdb: rdb, key: keyCourses}}
}

func (r *kvCourseRepository) List(ctx context.Context) ([]model.Course, error) {
	courses, err := r.coll.load(ctx)
	if err != nil {
		return nil, err
	}
	model.SortCourses(courses)
	return courses, nil
}

func (r *kvCourseRepository) Create(ctx context.Context, course model.Course) (model.Course, error) {
	courses, err := r.coll.load(ctx)
	if err != nil {
		return model.Course{}, err
	}
	now := time.Now()
	course.ID = uuid.NewString()
	course.CreatedAt = now
	course.UpdatedAt = now
	courses = append(courses, course)
	if err := r.coll.save(ctx, courses); err != nil {
		return model.Course{}, err
	}
	return course, nil
}

func (r *kvCourseRepository) UpdateProgress(ctx context.Context, id string, progress int, completed bool) (model.Course, error) {
	courses, err := r.coll.load(ctx)
	if err != nil {
		return model.Course{}, err
	}
	for i := range courses {
		if courses[i].ID == id {
			courses[i].Progress = progress
			if completed {
				courses[i].Completed = true
			}
			courses[i].UpdatedAt = time.Now()
			if err := r.coll.save(ctx, courses); err != nil {
				return model.Course{}, err
			}
			return courses[i], nil
		}
	}
	return model.Course{}, ErrNotFound
}
