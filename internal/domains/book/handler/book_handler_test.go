package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditModel "bookstore-catalog/internal/domains/audit/model"
	audit "bookstore-catalog/internal/domains/audit/service"
	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/pkg/database"
)

type fakeService struct {
	books      map[int64]model.Book
	listErr    error
	createErr  error
	lastFilter model.BookFilter
	lastPatch  model.BookPatch
}

func (f *fakeService) GetBook(_ context.Context, id int64) (*model.Book, bool, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, false, nil
	}
	return &b, true, nil
}

func (f *fakeService) ListBooks(_ context.Context, filter model.BookFilter) ([]model.Book, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []model.Book{}
	for _, b := range f.books {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeService) CreateBook(_ context.Context, nb model.NewBook) (*model.Book, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	b := model.Book{ID: 99, Title: nb.Title, Price: nb.Price, AuthorID: nb.AuthorID, PublishedDate: nb.PublishedDate}
	return &b, nil
}

func (f *fakeService) UpdateBook(_ context.Context, id int64, patch model.BookPatch) (*model.Book, bool, error) {
	f.lastPatch = patch
	b, ok := f.books[id]
	if !ok {
		return nil, false, nil
	}
	return &b, true, nil
}

func (f *fakeService) DeleteBook(_ context.Context, id int64) (bool, error) {
	_, ok := f.books[id]
	delete(f.books, id)
	return ok, nil
}

type recordingAudit struct {
	mu      sync.Mutex
	userIDs []*int64
	actions []string
	details []map[string]any
}

func (r *recordingAudit) LogAction(userID *int64, action string, details map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userIDs = append(r.userIDs, userID)
	r.actions = append(r.actions, action)
	r.details = append(r.details, details)
}

type failingSink struct{}

func (failingSink) Write(context.Context, auditModel.LogEntry) error {
	return errors.New("logs table unavailable")
}

func newBooks() map[int64]model.Book {
	return map[int64]model.Book{
		1: {
			ID:            1,
			Title:         "Tehanu",
			Price:         decimal.RequireFromString("9.99"),
			AuthorID:      1,
			AuthorName:    "Le Guin",
			PublishedDate: time.Date(1990, 2, 1, 0, 0, 0, 0, time.UTC),
			Categories:    []model.CategoryLite{{ID: 10, Name: "Fantasy"}},
		},
	}
}

func setupRouter(svc *fakeService, logger audit.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc, logger).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestListBooks_DispatchesAudit(t *testing.T) {
	svc := &fakeService{books: newBooks()}
	rec := &recordingAudit{}
	r := setupRouter(svc, rec)

	w := do(r, http.MethodGet, "/api/v1/books?author_id=1&search=sea&limit=10&offset=5&user_id=42", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, int64(1), *svc.lastFilter.AuthorID)
	assert.Equal(t, 10, svc.lastFilter.Limit)
	assert.Equal(t, 5, svc.lastFilter.Offset)

	require.Len(t, rec.actions, 1)
	assert.Equal(t, auditModel.ActionSearchBooks, rec.actions[0])
	require.NotNil(t, rec.userIDs[0])
	assert.Equal(t, int64(42), *rec.userIDs[0])
	assert.Equal(t, "sea", rec.details[0]["search"])
	assert.Equal(t, 10, rec.details[0]["limit"])
}

func TestListBooks_AuditFailureDoesNotAffectResponse(t *testing.T) {
	logger := audit.NewAsyncLogger(failingSink{}, audit.Options{BufferSize: 4, Workers: 1})
	r := setupRouter(&fakeService{books: newBooks()}, logger)

	baseline := do(r, http.MethodGet, "/api/v1/books", "")
	for i := 0; i < 20; i++ {
		w := do(r, http.MethodGet, "/api/v1/books", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, baseline.Body.String(), w.Body.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, logger.Close(ctx))
	assert.Equal(t, int64(21), logger.Failed()+logger.Dropped())
}

func TestListBooks_QueryValidation(t *testing.T) {
	tests := []struct {
		query string
		code  int
	}{
		{"", http.StatusOK},
		{"?limit=100", http.StatusOK},
		{"?limit=0", http.StatusBadRequest},
		{"?limit=101", http.StatusBadRequest},
		{"?offset=-1", http.StatusBadRequest},
		{"?author_id=abc", http.StatusBadRequest},
		{"?category_id=0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := &recordingAudit{}
			w := do(setupRouter(&fakeService{books: newBooks()}, rec), http.MethodGet, "/api/v1/books"+tt.query, "")
			assert.Equal(t, tt.code, w.Code)
			if tt.code != http.StatusOK {
				assert.Empty(t, rec.actions)
			}
		})
	}
}

func TestListBooks_DefaultLimit(t *testing.T) {
	svc := &fakeService{books: newBooks()}
	do(setupRouter(svc, nil), http.MethodGet, "/api/v1/books", "")
	assert.Equal(t, model.DefaultListLimit, svc.lastFilter.Limit)
	assert.Zero(t, svc.lastFilter.Offset)
}

func TestGetBook(t *testing.T) {
	r := setupRouter(&fakeService{books: newBooks()}, nil)

	w := do(r, http.MethodGet, "/api/v1/books/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{
		"id": 1, "title": "Tehanu", "description": "", "price": 9.99,
		"author_id": 1, "author_name": "Le Guin", "published_date": "1990-02-01",
		"categories": [{"id": 10, "name": "Fantasy"}]
	}`, string(env.Data))

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/v1/books/2", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/books/x", "").Code)
}

func TestCreateBook_ErrorMapping(t *testing.T) {
	body := `{"title":"T","description":"","price":"1.00","author_id":1,"published_date":"2020-01-01","category_ids":[1]}`

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"created", nil, http.StatusCreated, ""},
		{"invalid reference", &model.InvalidReferenceError{Field: "author_id", IDs: []int64{1}}, http.StatusBadRequest, "INVALID_REFERENCE"},
		{"constraint violation", &database.ConstraintError{Code: "23505", Message: "duplicate key"}, http.StatusBadRequest, "CONSTRAINT_VIOLATION"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(setupRouter(&fakeService{createErr: tt.err}, nil), http.MethodPost, "/api/v1/books", body)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantErr != "" {
				env := decode(t, w)
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.wantErr, env.Error.Code)
			}
		})
	}
}

func TestCreateBook_ValidationFailed(t *testing.T) {
	r := setupRouter(&fakeService{}, nil)

	w := do(r, http.MethodPost, "/api/v1/books", `{"title":"","price":"1","author_id":1,"published_date":"2020-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", decode(t, w).Error.Code)

	// price và description bắt buộc phải có mặt
	w = do(r, http.MethodPost, "/api/v1/books", `{"title":"T","author_id":1,"published_date":"2020-01-01","category_ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", decode(t, w).Error.Code)

	w = do(r, http.MethodPost, "/api/v1/books", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBook(t *testing.T) {
	svc := &fakeService{books: newBooks()}
	r := setupRouter(svc, nil)

	w := do(r, http.MethodPut, "/api/v1/books/1", `{"category_ids":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.lastPatch.ReplacesCategories())
	assert.True(t, svc.lastPatch.Title.IsAbsent())

	w = do(r, http.MethodPut, "/api/v1/books/1", `{"category_ids":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, svc.lastPatch.ReplacesCategories())

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/api/v1/books/7", `{"title":"x"}`).Code)
}

func TestDeleteBook(t *testing.T) {
	r := setupRouter(&fakeService{books: newBooks()}, nil)

	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/api/v1/books/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/v1/books/1", "").Code)
}
