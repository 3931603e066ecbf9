package dto

import (
	"time"

	"jobhub_backend/internal/models"
)

type DecideApplicationRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required" validate:"required,oneof=ACCEPTED REJECTED"`
}

type ApplicationResponse struct {
	ID          string                   `json:"id"`
	JobID       string                   `json:"jobId"`
	ApplicantID string                   `json:"applicantId"`
	Status      models.ApplicationStatus `json:"status"`
	CreatedAt   time.Time                `json:"createdAt"`
	Applicant   *UserResponse            `json:"applicant,omitempty"`
	Job         *JobResponse             `json:"job,omitempty"`
}

func NewApplicationResponse(app *models.JobApplication) ApplicationResponse {
	resp := ApplicationResponse{
		ID:          app.ID,
		JobID:       app.JobID,
		ApplicantID: app.ApplicantID,
		Status:      app.Status,
		CreatedAt:   app.CreatedAt,
	}
	if app.Applicant != nil {
		resp.Applicant = NewUserResponse(app.Applicant)
	}
	if app.Job != nil {
		job := NewJobResponse(app.Job)
		resp.Job = &job
	}
	return resp
}
