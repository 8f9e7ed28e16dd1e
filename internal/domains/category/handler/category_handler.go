package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookstore-catalog/internal/domains/category"
	"bookstore-catalog/internal/shared/response"
)

// ============================================================
// HANDLER STRUCT
// ============================================================
type CategoryHandler struct {
	service category.CategoryService
}

func NewCategoryHandler(svc category.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: svc,
	}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.POST("", h.Create)
		categories.GET("", h.List)
		categories.GET("/:id", h.GetByID)
	}
}

// ========== CREATE: POST /api/v1/categories ==========
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, category.ToResponse(created))
}

// ========== READ: GET /api/v1/categories/:id ==========
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, "invalid category id")
		return
	}

	found, ok, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !ok {
		response.NotFound(c, category.ErrCategoryNotFound.Error())
		return
	}

	response.Success(c, http.StatusOK, category.ToResponse(found))
}

// ========== LIST: GET /api/v1/categories ==========
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, category.ToResponses(categories))
}
