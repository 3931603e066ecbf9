package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для доменных ошибок
(jobs, applications, chat, auth).
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Jobs ---

var ErrJobNotFound = New(
	CodeNotFound,
	"job",
	"Job not found",
	http.StatusNotFound,
)

var ErrOpenJobNotFound = New(
	CodeNotFound,
	"job",
	"Open job not found",
	http.StatusNotFound,
)

var ErrCategoryNotApproved = New(
	CodeValidationFailed,
	"job",
	"Category is not approved or does not exist",
	http.StatusBadRequest,
)

// --- Applications ---

var ErrCannotApplyToOwnJob = New(
	CodeInvalidOperation,
	"application",
	"Job owner cannot apply to own job",
	http.StatusBadRequest,
)

var ErrAlreadyApplied = New(
	CodeConflict,
	"application",
	"You already applied to this job",
	http.StatusConflict,
)

var ErrApplicationNotFound = New(
	CodeNotFound,
	"application",
	"Application not found",
	http.StatusNotFound,
)

var ErrApplicationNotPending = New(
	CodeInvalidOperation,
	"application",
	"Only pending applications can be updated",
	http.StatusBadRequest,
)

var ErrNotJobOwner = New(
	CodeForbidden,
	"application",
	"Only job owner can perform this operation",
	http.StatusForbidden,
)

// --- Chat ---

var ErrChatOnlyWithOwner = New(
	CodeForbidden,
	"chat",
	"Chat allowed only with job owner",
	http.StatusForbidden,
)

var ErrChatOnlyWithAccepted = New(
	CodeForbidden,
	"chat",
	"Chat allowed only with accepted applicant",
	http.StatusForbidden,
)

var ErrChatNotAuthorized = New(
	CodeForbidden,
	"chat",
	"Not authorized to view this chat",
	http.StatusForbidden,
)

// --- Auth & User Status ---

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email is already registered",
	http.StatusConflict,
)

var ErrPhoneAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Phone number is already registered",
	http.StatusConflict,
)

var ErrUsernameAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Username is already taken",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserNotActive = New(
	CodeUnauthorized,
	"auth",
	"User account is not active",
	http.StatusUnauthorized,
)
