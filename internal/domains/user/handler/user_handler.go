package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookstore-catalog/internal/domains/user"
	"bookstore-catalog/internal/shared/response"
	"bookstore-catalog/pkg/database"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", h.Create)
		users.GET("/:id", h.GetByID)
	}
}

// Create - POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req user.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	u, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if database.IsUniqueViolation(err) {
			response.ErrorResponse(c, http.StatusConflict, "CONFLICT", "username or email already exists")
			return
		}
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, u.ToDTO())
}

// GetByID - GET /api/v1/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, "invalid user id")
		return
	}

	u, found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !found {
		response.NotFound(c, user.ErrUserNotFound.Error())
		return
	}

	response.Success(c, http.StatusOK, u.ToDTO())
}
