package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobhub_backend/internal/services"
	"jobhub_backend/internal/services/dto"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService *services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.POST("/jobs/:jobId/apply", auth, h.Apply)
	rg.GET("/jobs/:jobId/applications", auth, h.ListByJob)

	applications := rg.Group("/applications", auth)
	{
		applications.GET("/my", h.ListMy)
		applications.PUT("/:applicationId/status", h.Decide)
	}
}

// Apply - отклик на OPEN job. Повторный отклик того же пользователя - 409.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	application, err := h.applicationService.Apply(c.Request.Context(), userID, c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": application})
}

// Decide - решение владельца job по отклику: ACCEPTED или REJECTED.
func (h *ApplicationHandler) Decide(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.DecideApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.Decide(
		c.Request.Context(),
		userID,
		h.GetRole(c),
		c.Param("applicationId"),
		req.Status,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": application})
}

func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.ListByJob(c.Request.Context(), userID, h.GetRole(c), c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": applications})
}

func (h *ApplicationHandler) ListMy(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.ListByApplicant(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": applications})
}
