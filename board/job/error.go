package job

import (
	"net/http"

	"github.com/easilyhq/easily/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeApplicantNotFound = ErrRegistry.Register("APPLICANT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Applicant not found")
	CodeNotOwner          = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Only the posting recruiter may modify this job")
	CodeInvalidJob        = ErrRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Missing or invalid job fields")
	CodeInvalidApplicant  = ErrRegistry.Register("INVALID_APPLICANT", errx.TypeValidation, http.StatusBadRequest, "Missing or invalid applicant fields")
	CodeUploadFailed      = ErrRegistry.Register("UPLOAD_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store uploaded file")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrApplicantNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicantNotFound)
}

func ErrNotOwner() *errx.Error {
	return ErrRegistry.New(CodeNotOwner)
}

func ErrInvalidJob() *errx.Error {
	return ErrRegistry.New(CodeInvalidJob)
}

func ErrInvalidApplicant() *errx.Error {
	return ErrRegistry.New(CodeInvalidApplicant)
}

func ErrUploadFailed() *errx.Error {
	return ErrRegistry.New(CodeUploadFailed)
}
