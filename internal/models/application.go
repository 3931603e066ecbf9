package models

// JobApplication - отклик исполнителя на job.
// Пара (job_id, applicant_id) уникальна: повторный отклик невозможен.
type JobApplication struct {
	BaseModel
	JobID       string            `gorm:"type:uuid;not null;uniqueIndex:idx_job_applicant"`
	ApplicantID string            `gorm:"type:uuid;not null;uniqueIndex:idx_job_applicant"`
	Status      ApplicationStatus `gorm:"type:varchar(20);default:'PENDING'"`

	// Relations
	Job       *Job  `gorm:"foreignKey:JobID"`
	Applicant *User `gorm:"foreignKey:ApplicantID"`
}
