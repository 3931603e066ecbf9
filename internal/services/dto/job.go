package dto

import (
	"time"

	"jobhub_backend/internal/models"
)

type CreateJobRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	CategoryID  string     `json:"categoryId" binding:"required" validate:"required,uuid"`
	Budget      float64    `json:"budget" validate:"gt=0"`
	JobType     string     `json:"jobType"`
	Latitude    float64    `json:"latitude" validate:"latitude"`
	Longitude   float64    `json:"longitude" validate:"longitude"`
	Address     *string    `json:"address"`
	DueDate     *time.Time `json:"dueDate"`
	Images      []string   `json:"images"`
}

type UpdateJobRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	CategoryID  *string    `json:"categoryId" validate:"omitempty,uuid"`
	Budget      *float64   `json:"budget" validate:"omitempty,gt=0"`
	JobType     *string    `json:"jobType"`
	Latitude    *float64   `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64   `json:"longitude" validate:"omitempty,longitude"`
	Address     *string    `json:"address"`
	DueDate     *time.Time `json:"dueDate"`
	Images      []string   `json:"images"`
}

type JobResponse struct {
	ID          string           `json:"id"`
	CreatedBy   string           `json:"createdBy"`
	CategoryID  string           `json:"categoryId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Budget      float64          `json:"budget"`
	JobType     string           `json:"jobType"`
	Latitude    float64          `json:"latitude"`
	Longitude   float64          `json:"longitude"`
	Address     *string          `json:"address,omitempty"`
	DueDate     *time.Time       `json:"dueDate,omitempty"`
	Status      models.JobStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type JobListMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
	Meta JobListMeta   `json:"meta"`
}

type NearbyJobResponse struct {
	JobResponse
	DistanceMeters float64 `json:"distanceMeters"`
}

func NewJobResponse(job *models.Job) JobResponse {
	return JobResponse{
		ID:          job.ID,
		CreatedBy:   job.CreatedBy,
		CategoryID:  job.CategoryID,
		Title:       job.Title,
		Description: job.Description,
		Budget:      job.Budget,
		JobType:     job.JobType,
		Latitude:    job.Latitude,
		Longitude:   job.Longitude,
		Address:     job.Address,
		DueDate:     job.DueDate,
		Status:      job.Status,
		CreatedAt:   job.CreatedAt,
	}
}
