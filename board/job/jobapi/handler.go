package jobapi

import (
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/easilyhq/easily/board/job"
	"github.com/easilyhq/easily/board/job/jobquery"
	"github.com/easilyhq/easily/board/job/jobsrv"
	"github.com/easilyhq/easily/board/user"
	"github.com/easilyhq/easily/board/user/userauth"
	"github.com/easilyhq/easily/pkg/kernel"
)

// maxUploadBytes caps resume and logo uploads
const maxUploadBytes = 10 * 1024 * 1024

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ListJobs runs the listing pipeline
// GET /api/jobs?q=&date=&levels=&types=&loc=&sort=&page=&limit=
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	params := jobquery.Params{
		Query:    strings.TrimSpace(c.Query("q")),
		Window:   jobquery.ParseDateWindow(c.Query("date")),
		Levels:   parseLevels(c.Query("levels")),
		Types:    parseTypes(c.Query("types")),
		Location: c.Query("loc"),
		Sort:     jobquery.ParseSortMode(c.Query("sort")),
		Page:     parseIntOr(c.Query("page"), jobquery.DefaultPage),
		Limit:    parseIntOr(c.Query("limit"), jobquery.DefaultLimit),
	}

	jobs, err := h.service.ListJobs(c.Context(), params)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// GetJob retrieves a single job
// GET /api/jobs/:id
func (h *Handlers) GetJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	detail, err := h.service.GetJob(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(detail)
}

// CreateJob creates a new job posting owned by the session user
// POST /api/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	recruiterID, ok := userauth.GetUserID(c)
	if !ok {
		return user.ErrUnauthenticated()
	}

	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidJob().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateJob(c.Context(), req, recruiterID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateJob updates a job the session user owns
// PUT /api/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	recruiterID, ok := userauth.GetUserID(c)
	if !ok {
		return user.ErrUnauthenticated()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidJob().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateJob(c.Context(), jobID, req, recruiterID)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// DeleteJob deletes a job the session user owns
// DELETE /api/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	recruiterID, ok := userauth.GetUserID(c)
	if !ok {
		return user.ErrUnauthenticated()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteJob(c.Context(), jobID, recruiterID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Job deleted"})
}

// UploadLogo stores a company logo for a job the session user owns
// POST /api/jobs/:id/logo
func (h *Handlers) UploadLogo(c *fiber.Ctx) error {
	recruiterID, ok := userauth.GetUserID(c)
	if !ok {
		return user.ErrUnauthenticated()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	file, err := c.FormFile("logo")
	if err != nil {
		return job.ErrInvalidJob().WithDetail("logo", "file is required")
	}

	data, err := readUpload(file)
	if err != nil {
		return err
	}

	updated, err := h.service.UploadLogo(c.Context(), jobID, recruiterID, file.Filename, data)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// Apply files an application; resume upload is optional
// POST /api/jobs/:id/apply  (multipart: name, email, contact, resume)
func (h *Handlers) Apply(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	req := job.ApplyRequest{
		Name:    strings.TrimSpace(c.FormValue("name")),
		Email:   kernel.NewEmail(c.FormValue("email")),
		Contact: strings.TrimSpace(c.FormValue("contact")),
	}

	var (
		resumeName string
		resumeData []byte
	)
	if file, err := c.FormFile("resume"); err == nil && file != nil {
		data, err := readUpload(file)
		if err != nil {
			return err
		}
		resumeName = file.Filename
		resumeData = data
	}

	applicant, err := h.service.Apply(c.Context(), jobID, req, resumeName, resumeData)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(applicant)
}

// ListApplicants pages a job's applicants for the posting recruiter
// GET /api/jobs/:id/applicants
func (h *Handlers) ListApplicants(c *fiber.Ctx) error {
	recruiterID, ok := userauth.GetUserID(c)
	if !ok {
		return user.ErrUnauthenticated()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	pagination := kernel.PaginationOptions{
		Page:     parseIntOr(c.Query("page"), jobquery.DefaultPage),
		PageSize: parseIntOr(c.Query("limit"), jobquery.DefaultLimit),
	}

	applicants, err := h.service.ListApplicants(c.Context(), jobID, recruiterID, pagination)
	if err != nil {
		return err
	}

	return c.JSON(applicants)
}

// UpdateApplicant updates an applicant of a job the session user owns
// PATCH /api/jobs/:id/applicants/:applicantId
func (h *Handlers) UpdateApplicant(c *fiber.Ctx) error {
	recruiterID, ok := userauth.GetUserID(c)
	if !ok {
		return user.ErrUnauthenticated()
	}

	jobID := kernel.JobID(c.Params("id"))
	applicantID := kernel.ApplicantID(c.Params("applicantId"))
	if jobID == "" || applicantID == "" {
		return job.ErrApplicantNotFound().WithDetail("id", "missing or empty")
	}

	var req job.UpdateApplicantRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidApplicant().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateApplicant(c.Context(), jobID, applicantID, req, recruiterID)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// RemoveApplicant removes an applicant from a job the session user owns
// DELETE /api/jobs/:id/applicants/:applicantId
func (h *Handlers) RemoveApplicant(c *fiber.Ctx) error {
	recruiterID, ok := userauth.GetUserID(c)
	if !ok {
		return user.ErrUnauthenticated()
	}

	jobID := kernel.JobID(c.Params("id"))
	applicantID := kernel.ApplicantID(c.Params("applicantId"))
	if jobID == "" || applicantID == "" {
		return job.ErrApplicantNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.RemoveApplicant(c.Context(), jobID, applicantID, recruiterID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Applicant removed"})
}

// MyPostings lists the session user's own postings with their count
// GET /api/my-postings
func (h *Handlers) MyPostings(c *fiber.Ctx) error {
	recruiterID, ok := userauth.GetUserID(c)
	if !ok {
		return user.ErrUnauthenticated()
	}

	postings, err := h.service.MyPostings(c.Context(), recruiterID)
	if err != nil {
		return err
	}

	return c.JSON(postings)
}

// MyApplications lists the session user's applications across jobs
// GET /api/my-applications?q=
func (h *Handlers) MyApplications(c *fiber.Ctx) error {
	email, ok := userauth.GetUserEmail(c)
	if !ok {
		return user.ErrUnauthenticated()
	}

	applications, err := h.service.MyApplications(c.Context(), email, strings.TrimSpace(c.Query("q")))
	if err != nil {
		return err
	}

	return c.JSON(applications)
}

// RegisterRoutes mounts job routes on the app. authMiddleware gates every
// recruiter and session route; browsing and applying stay public.
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware fiber.Handler) {
	api := app.Group("/api/jobs")

	// Public routes
	api.Get("/", handlers.ListJobs)
	api.Get("/:id", handlers.GetJob)
	api.Post("/:id/apply", handlers.Apply)

	// Recruiter routes
	api.Post("/", authMiddleware, handlers.CreateJob)
	api.Put("/:id", authMiddleware, handlers.UpdateJob)
	api.Delete("/:id", authMiddleware, handlers.DeleteJob)
	api.Post("/:id/logo", authMiddleware, handlers.UploadLogo)
	api.Get("/:id/applicants", authMiddleware, handlers.ListApplicants)
	api.Patch("/:id/applicants/:applicantId", authMiddleware, handlers.UpdateApplicant)
	api.Delete("/:id/applicants/:applicantId", authMiddleware, handlers.RemoveApplicant)
	app.Get("/api/my-postings", authMiddleware, handlers.MyPostings)

	// Seeker session routes
	app.Get("/api/my-applications", authMiddleware, handlers.MyApplications)
}

// ============================================================================
// Boundary parsing
// ============================================================================

// parseIntOr parses a positive integer, falling back on any malformed value
func parseIntOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func parseLevels(raw string) []kernel.ExperienceLevel {
	var out []kernel.ExperienceLevel
	for _, part := range splitCSV(raw) {
		out = append(out, kernel.NewExperienceLevel(part))
	}
	return out
}

func parseTypes(raw string) []kernel.JobType {
	var out []kernel.JobType
	for _, part := range splitCSV(raw) {
		out = append(out, kernel.NewJobType(part))
	}
	return out
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	if file.Size > maxUploadBytes {
		return nil, job.ErrInvalidJob().WithDetail("file", "exceeds 10MB limit")
	}
	f, err := file.Open()
	if err != nil {
		return nil, job.ErrUploadFailed().WithCause(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, job.ErrUploadFailed().WithCause(err)
	}
	return data, nil
}
