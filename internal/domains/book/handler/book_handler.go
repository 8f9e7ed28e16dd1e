package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	auditModel "bookstore-catalog/internal/domains/audit/model"
	audit "bookstore-catalog/internal/domains/audit/service"
	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/domains/book/service"
	"bookstore-catalog/internal/shared/response"
)

// Handler - HTTP Handler (single file)
type Handler struct {
	service service.ServiceInterface
	audit   audit.Logger
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface, auditLogger audit.Logger) *Handler {
	if auditLogger == nil {
		auditLogger = audit.Nop{}
	}
	return &Handler{
		service: service,
		audit:   auditLogger,
	}
}

// RegisterRoutes gắn các route của books vào group /api/v1
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.POST("", h.CreateBook)
		books.GET("/:id", h.GetBook)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
	}
}

// ListBooks - GET /api/v1/books
// Query params: author_id, category_id, search, limit, offset, user_id
func (h *Handler) ListBooks(c *gin.Context) {
	var q model.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	if err := q.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	filter := q.ToFilter()
	books, err := h.service.ListBooks(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// kết quả đã có; audit chạy nền, lỗi của nó không ảnh hưởng response
	h.audit.LogAction(q.UserID, auditModel.ActionSearchBooks, filter.AuditDetails())

	response.SuccessWithMeta(c, http.StatusOK, model.ToResponses(books), &response.Meta{
		Limit:  filter.Limit,
		Offset: filter.Offset,
		Count:  len(books),
	})
}

// GetBook - GET /api/v1/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	book, found, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !found {
		response.NotFound(c, model.ErrBookNotFound.Error())
		return
	}

	response.Success(c, http.StatusOK, book.ToResponse())
}

// CreateBook - POST /api/v1/books
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest

	// 1. Bind và validate request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	newBook, err := req.ToNewBook()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// 2. Service kiểm tra reference rồi mới ghi
	book, err := h.service.CreateBook(c.Request.Context(), newBook)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, book.ToResponse())
}

// UpdateBook - PUT /api/v1/books/:id
// Chỉ các field có trong body được cập nhật
func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, found, err := h.service.UpdateBook(c.Request.Context(), id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !found {
		response.NotFound(c, model.ErrBookNotFound.Error())
		return
	}

	response.Success(c, http.StatusOK, book.ToResponse())
}

// DeleteBook - DELETE /api/v1/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.service.DeleteBook(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !deleted {
		response.NotFound(c, model.ErrBookNotFound.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

// handleError - lỗi riêng của book trước, còn lại để response.FromError map
func (h *Handler) handleError(c *gin.Context, err error) {
	var refErr *model.InvalidReferenceError
	switch {
	case errors.As(err, &refErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REFERENCE", refErr.Error(), gin.H{
			"field": refErr.Field,
			"ids":   refErr.IDs,
		})
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, err.Error())
	default:
		log.Debug().Err(err).Str("path", c.FullPath()).Msg("[BookHandler] request failed")
		response.FromError(c, err)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, "invalid book id")
		return 0, false
	}
	return id, true
}
