package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookstore-catalog/internal/domains/author/model"
	"bookstore-catalog/internal/domains/author/service"
	"bookstore-catalog/internal/shared/response"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

func (h *AuthorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authors := rg.Group("/authors")
	{
		authors.POST("", h.Create)
		authors.GET("", h.List)
		authors.GET("/:id", h.GetByID)
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/v1/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, a.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// READ: GetByID - GET /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, "invalid author id")
		return
	}

	a, found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !found {
		response.NotFound(c, model.ErrAuthorNotFound.Error())
		return
	}

	response.Success(c, http.StatusOK, a.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// READ: List - GET /api/v1/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ToResponses(authors))
}
