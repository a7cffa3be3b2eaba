package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/renktt/rresume/internal/model"
	"github.com/renktt/rresume/internal/repository"
	"github.com/renktt/rresume/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResumeService 把条目存在内存切片里，按 id 查找。
type fakeResumeService struct {
	items []model.ResumeItem
}

func (f *fakeResumeService) List(ctx context.Context) ([]model.ResumeItem, error) {
	return f.items, nil
}

func (f *fakeResumeService) Create(ctx context.Context, item model.ResumeItem) (model.ResumeItem, error) {
	item.ID = "r1"
	item.Section = model.NormalizeSection(item.Section)
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	f.items = append(f.items, item)
	return item, nil
}

func (f *fakeResumeService) Update(ctx context.Context, id string, patch model.ResumeItemPatch) (model.ResumeItem, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			patch.Apply(&f.items[i])
			return f.items[i], nil
		}
	}
	return model.ResumeItem{}, repository.ErrNotFound
}

func (f *fakeResumeService) Delete(ctx context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func setupResumeRouter(svc service.ResumeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewResumeHandler(svc)
	r.GET("/api/resume", h.List)
	r.POST("/api/resume", h.Create)
	r.PUT("/api/resume/:id", h.Update)
	r.DELETE("/api/resume/:id", h.Delete)
	return r
}

func TestResumeCreateNormalizesSection(t *testing.T) {
	svc := &fakeResumeService{}
	r := setupResumeRouter(svc)

	w := httptest.NewRecorder()
	body := `{"section":"Skills","title":"Frontend","description":"React"}`
	req := httptest.NewRequest(http.MethodPost, "/api/resume", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.items, 1)
	assert.Equal(t, "skills", svc.items[0].Section)
}

func TestResumeCreateRequiresSectionAndTitle(t *testing.T) {
	r := setupResumeRouter(&fakeResumeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/resume", strings.NewReader(`{"title":"Frontend"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResumeUpdateUnknownIDReturns404(t *testing.T) {
	r := setupResumeRouter(&fakeResumeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/resume/missing", strings.NewReader(`{"title":"New"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResumeDeleteUnknownIDReturns404(t *testing.T) {
	r := setupResumeRouter(&fakeResumeService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/resume/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
