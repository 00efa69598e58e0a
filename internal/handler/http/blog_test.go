package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Molmash/molmash/internal/domain"
	"github.com/Molmash/molmash/internal/repository"
	apperrors "github.com/Molmash/molmash/pkg/errors"
	"github.com/Molmash/molmash/pkg/pagination"
)

const testBlogID = "3f2c1d34-9a0b-4c8e-b1a2-5d6e7f8a9b0c"

func sampleBlog() *domain.Blog {
	now := time.Now().UTC()
	return &domain.Blog{
		ID:        testBlogID,
		Title:     "Запуск новой линии",
		Subject:   "Производство",
		Category:  "Новости",
		Text:      "Подробности запуска.",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// multipartBody builds a multipart form with the given text fields and an
// optional image part.
func multipartBody(t *testing.T, fields map[string]string, imageName string, imageData []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imageName != "" {
		part, err := w.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write(imageData)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

// ============================================================================
// Anonymous reads
// ============================================================================

func TestBlogList_Anonymous(t *testing.T) {
	env := newTestEnv(t)

	env.blogRepo.On("List", mock.Anything, repository.ContentFilter{}, pagination.DefaultParams()).
		Return([]domain.Blog{*sampleBlog()}, 1, nil)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/blogs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var result pagination.Result[domain.Blog]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, 1, result.TotalCount)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Запуск новой линии", result.Data[0].Title)
}

func TestBlogList_SearchAndOrdering(t *testing.T) {
	env := newTestEnv(t)

	expected := repository.ContentFilter{Search: "линия", OrderBy: "-title"}
	env.blogRepo.On("List", mock.Anything, expected, pagination.Params{Page: 2, PerPage: 5, Offset: 5}).
		Return([]domain.Blog{}, 0, nil)

	rec := env.do(httptest.NewRequest(http.MethodGet,
		"/api/v1/blogs?search=%D0%BB%D0%B8%D0%BD%D0%B8%D1%8F&ordering=-title&page=2&per_page=5", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	env.blogRepo.AssertExpectations(t)
}

func TestBlogGet_Anonymous(t *testing.T) {
	env := newTestEnv(t)

	env.blogRepo.On("GetByID", mock.Anything, testBlogID).Return(sampleBlog(), nil)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/blogs/"+testBlogID, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBlogGet_NotFound(t *testing.T) {
	env := newTestEnv(t)

	env.blogRepo.On("GetByID", mock.Anything, "missing").
		Return(nil, apperrors.NotFound("blog", "missing"))

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/blogs/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ============================================================================
// Gated writes
// ============================================================================

func TestBlogCreate_AnonymousRejected(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(postJSON(t, "/api/v1/blogs", map[string]string{"title": "x"}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Учетные данные не были предоставлены.", errorMessage(t, rec))
}

func TestBlogCreate_WithoutPermissionRejected(t *testing.T) {
	env := newTestEnv(t)
	bearer := env.bearerFor(t, editorAccount())

	req := postJSON(t, "/api/v1/blogs", map[string]string{"title": "x"})
	req.Header.Set("Authorization", bearer)
	rec := env.do(req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "У вас недостаточно прав для выполнения данного действия.", errorMessage(t, rec))
}

func TestBlogCreate_JSON(t *testing.T) {
	env := newTestEnv(t)
	bearer := env.bearerFor(t, editorAccount(domain.PermAddBlog))

	env.blogRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Blog) bool {
		return b.Title == "Запуск новой линии" && b.Image == nil
	})).Return(nil)

	req := postJSON(t, "/api/v1/blogs", map[string]string{
		"title":    "Запуск новой линии",
		"subject":  "Производство",
		"category": "Новости",
		"text":     "Подробности запуска.",
	})
	req.Header.Set("Authorization", bearer)
	rec := env.do(req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	env.blogRepo.AssertExpectations(t)
}

func TestBlogCreate_MultipartWithImage(t *testing.T) {
	env := newTestEnv(t)
	bearer := env.bearerFor(t, editorAccount(domain.PermAddBlog))

	env.blogRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Blog) bool {
		return b.Title == "С картинкой" && b.Image != nil
	})).Return(nil)

	body, contentType := multipartBody(t,
		map[string]string{"title": "С картинкой", "text": "Текст."},
		"press.jpg", []byte("jpeg-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/blogs", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearer)
	rec := env.do(req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, env.store.Len())
	env.blogRepo.AssertExpectations(t)
}

func TestBlogCreate_MissingTitle(t *testing.T) {
	env := newTestEnv(t)
	bearer := env.bearerFor(t, editorAccount(domain.PermAddBlog))

	req := postJSON(t, "/api/v1/blogs", map[string]string{"text": "без заголовка"})
	req.Header.Set("Authorization", bearer)
	rec := env.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBlogPatch_PartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	bearer := env.bearerFor(t, editorAccount(domain.PermChangeBlog))

	env.blogRepo.On("GetByID", mock.Anything, testBlogID).Return(sampleBlog(), nil)
	env.blogRepo.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Blog) bool {
		return b.Title == "Новый заголовок" && b.Text == "Подробности запуска."
	})).Return(nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/blogs/"+testBlogID,
		bytes.NewReader([]byte(`{"title":"Новый заголовок"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer)
	rec := env.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env.blogRepo.AssertExpectations(t)
}

func TestBlogDelete_Success(t *testing.T) {
	env := newTestEnv(t)
	bearer := env.bearerFor(t, editorAccount(domain.PermDeleteBlog))

	env.blogRepo.On("GetByID", mock.Anything, testBlogID).Return(sampleBlog(), nil)
	env.blogRepo.On("Delete", mock.Anything, testBlogID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/blogs/"+testBlogID, nil)
	req.Header.Set("Authorization", bearer)
	rec := env.do(req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	env.blogRepo.AssertExpectations(t)
}

func TestBlogDelete_WrongPermission(t *testing.T) {
	env := newTestEnv(t)
	bearer := env.bearerFor(t, editorAccount(domain.PermAddBlog))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/blogs/"+testBlogID, nil)
	req.Header.Set("Authorization", bearer)
	rec := env.do(req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
