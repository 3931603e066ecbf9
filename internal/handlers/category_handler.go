package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobhub_backend/internal/middleware"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/services"
	"jobhub_backend/internal/services/dto"
)

type CategoryHandler struct {
	*BaseHandler
	categoryService *services.CategoryService
}

func NewCategoryHandler(base *BaseHandler, categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler:     base,
		categoryService: categoryService,
	}
}

func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.ListApproved)
		categories.POST("", auth, h.Create)
		categories.PUT("/:categoryId/status", auth, middleware.RequireRoles(models.UserRoleAdmin), h.UpdateStatus)
	}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": category})
}

func (h *CategoryHandler) ListApproved(c *gin.Context) {
	categories, err := h.categoryService.ListApproved(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (h *CategoryHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateCategoryStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	category, err := h.categoryService.UpdateStatus(c.Request.Context(), c.Param("categoryId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": category})
}
