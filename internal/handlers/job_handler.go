package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/services"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"
)

type JobHandler struct {
	*BaseHandler
	jobService *services.JobService
}

func NewJobHandler(base *BaseHandler, jobService *services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", h.ListJobs)
		jobs.GET("/nearby", h.ListNearby)
		jobs.GET("/my", auth, h.ListMyJobs)
		jobs.GET("/:jobId", h.GetJob)
		jobs.POST("", auth, h.CreateJob)
		jobs.PUT("/:jobId", auth, h.UpdateJob)
		jobs.DELETE("/:jobId", auth, h.DeleteJob)
	}
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), userID, h.GetRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": job})
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobID := c.Param("jobId")
	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), jobID, userID, h.GetRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": job})
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(c.Request.Context(), c.Param("jobId"), userID, h.GetRole(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job cancelled"})
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": job})
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	filter := repositories.JobFilter{
		Status:   models.JobStatus(c.Query("status")),
		Page:     page,
		PageSize: pageSize,
	}

	list, err := h.jobService.ListJobs(c.Request.Context(), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *JobHandler) ListMyJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListMyJobs(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": jobs})
}

func (h *JobHandler) ListNearby(c *gin.Context) {
	lat := ParseQueryFloat(c, "lat", 0)
	lng := ParseQueryFloat(c, "lng", 0)
	if c.Query("lat") == "" || c.Query("lng") == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("lat and lng query parameters are required"))
		return
	}
	radiusKm := ParseQueryFloat(c, "radius_km", 0)

	jobs, err := h.jobService.ListNearby(c.Request.Context(), lat, lng, radiusKm)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": jobs})
}
