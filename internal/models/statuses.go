package models

type UserStatus string
type UserRole string
type JobStatus string
type ApplicationStatus string
type CategoryStatus string

const (
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusDeleted UserStatus = "DELETED"

	UserRolePoster UserRole = "JOB_POSTER"
	UserRolePicker UserRole = "JOB_PICKER"
	UserRoleAdmin  UserRole = "ADMIN"

	JobStatusOpen       JobStatus = "OPEN"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusCancelled  JobStatus = "CANCELLED"

	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusAccepted ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"

	CategoryStatusPending  CategoryStatus = "PENDING"
	CategoryStatusApproved CategoryStatus = "APPROVED"
	CategoryStatusRejected CategoryStatus = "REJECTED"
)
