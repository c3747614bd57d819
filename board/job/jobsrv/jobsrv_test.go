package jobsrv

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/easilyhq/easily/board/job"
	"github.com/easilyhq/easily/board/job/jobinfra"
	"github.com/easilyhq/easily/board/job/jobquery"
	"github.com/easilyhq/easily/board/notify/notifyinfra"
	"github.com/easilyhq/easily/pkg/errx"
	"github.com/easilyhq/easily/pkg/fsx/fsxlocal"
	"github.com/easilyhq/easily/pkg/kernel"
)

var (
	testNow   = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	recruiter = kernel.NewUserID("rec-1")
	stranger  = kernel.NewUserID("rec-2")
)

func newTestService(t *testing.T) (*JobService, *notifyinfra.MemoryMailQueue) {
	t.Helper()

	var n int
	gen := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	clock := kernel.ClockFunc(func() time.Time { return testNow })
	repo := jobinfra.NewMemoryJobRepository(gen, clock)

	files, err := fsxlocal.NewLocalFileSystem(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalFileSystem: %v", err)
	}
	queue := notifyinfra.NewMemoryMailQueue(16)

	return NewJobService(repo, files, queue, clock), queue
}

func createJob(t *testing.T, svc *JobService, req job.CreateJobRequest) *job.Job {
	t.Helper()
	created, err := svc.CreateJob(context.Background(), req, recruiter)
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	return created
}

func validCreateReq(designation string) job.CreateJobRequest {
	return job.CreateJobRequest{
		Category:    kernel.NewJobCategory("Tech"),
		Designation: kernel.NewJobDesignation(designation),
		Location:    kernel.NewJobLocation("Pune"),
		CompanyName: kernel.NewCompanyName("Acme"),
		Salary:      kernel.NewSalaryRange("₹10-18 LPA"),
	}
}

func TestCreateJobValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateJob(context.Background(), job.CreateJobRequest{
		Designation: kernel.NewJobDesignation("Backend Developer"),
	}, recruiter)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errx.IsType(err, errx.TypeValidation) {
		t.Errorf("expected validation type, got %v", err)
	}
}

func TestCreateJobDefaultsOpenings(t *testing.T) {
	svc, _ := newTestService(t)

	created := createJob(t, svc, validCreateReq("Backend Developer"))
	if created.NumberOfOpenings != 1 {
		t.Errorf("expected openings default 1, got %d", created.NumberOfOpenings)
	}
	if created.RecruiterID != recruiter {
		t.Errorf("owner not recorded: %q", created.RecruiterID)
	}
	if created.Posted != "2026-08-15" {
		t.Errorf("posting date not defaulted: %q", created.Posted)
	}
}

func TestGetJobDetailDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	created := createJob(t, svc, validCreateReq("Backend Developer"))

	detail, err := svc.GetJob(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if detail.ApplyBy != "2026-08-29" {
		t.Errorf("apply-by should default two weeks out, got %q", detail.ApplyBy)
	}
	if detail.CompanyDescription != job.DefaultCompanyBlurb {
		t.Errorf("company blurb not defaulted: %q", detail.CompanyDescription)
	}
	if detail.CompanyFoundedDisplay != job.PlaceholderValue {
		t.Errorf("founded display placeholder: %q", detail.CompanyFoundedDisplay)
	}
	if detail.Logo.String() != job.DefaultLogo {
		t.Errorf("logo not defaulted: %q", detail.Logo)
	}
}

func TestGetJobUnknown(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetJob(context.Background(), kernel.NewJobID("missing"))
	if !errx.IsType(err, errx.TypeNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestUpdateJobRequiresOwner(t *testing.T) {
	svc, _ := newTestService(t)
	created := createJob(t, svc, validCreateReq("Backend Developer"))

	salary := kernel.NewSalaryRange("₹20 LPA")
	_, err := svc.UpdateJob(context.Background(), created.ID, job.UpdateJobRequest{Salary: &salary}, stranger)
	if !errx.IsType(err, errx.TypeAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}

	updated, err := svc.UpdateJob(context.Background(), created.ID, job.UpdateJobRequest{Salary: &salary}, recruiter)
	if err != nil {
		t.Fatalf("UpdateJob as owner: %v", err)
	}
	if updated.Salary != salary {
		t.Errorf("salary not updated: %q", updated.Salary)
	}
}

func TestDeleteJobRequiresOwner(t *testing.T) {
	svc, _ := newTestService(t)
	created := createJob(t, svc, validCreateReq("Backend Developer"))

	if err := svc.DeleteJob(context.Background(), created.ID, stranger); !errx.IsType(err, errx.TypeAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
	if err := svc.DeleteJob(context.Background(), created.ID, recruiter); err != nil {
		t.Fatalf("DeleteJob as owner: %v", err)
	}
	if _, err := svc.GetJob(context.Background(), created.ID); err == nil {
		t.Fatal("job still present after delete")
	}
}

func TestListJobsRunsPipeline(t *testing.T) {
	svc, _ := newTestService(t)
	createJob(t, svc, validCreateReq("Backend Developer"))
	createJob(t, svc, validCreateReq("Frontend Developer"))
	createJob(t, svc, validCreateReq("Data Analyst"))

	page, err := svc.ListJobs(context.Background(), jobquery.Params{Query: "frontend"})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if page.Page.Total != 1 {
		t.Fatalf("expected 1 match, got %d", page.Page.Total)
	}
	if page.Items[0].Designation.String() != "Frontend Developer" {
		t.Errorf("wrong match: %q", page.Items[0].Designation)
	}
	if page.Items[0].Experience.String() != job.DefaultExperience {
		t.Errorf("cards must carry display defaults, got %q", page.Items[0].Experience)
	}
}

func TestListJobsPaginationMetadata(t *testing.T) {
	svc, _ := newTestService(t)
	for i := 0; i < 5; i++ {
		createJob(t, svc, validCreateReq(fmt.Sprintf("Role %d", i)))
	}

	page, err := svc.ListJobs(context.Background(), jobquery.Params{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(page.Items) != 2 || page.Page.Total != 5 || page.Page.Pages != 3 {
		t.Errorf("unexpected page shape: %+v", page.Page)
	}
}

func TestApplyRecordsApplicantAndQueuesEmail(t *testing.T) {
	svc, queue := newTestService(t)
	created := createJob(t, svc, validCreateReq("Backend Developer"))

	applicant, err := svc.Apply(context.Background(), created.ID, job.ApplyRequest{
		Name:    "Asha",
		Email:   kernel.NewEmail("Asha@Example.com"),
		Contact: "9999999999",
	}, "resume.pdf", []byte("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if applicant.ID.IsEmpty() {
		t.Error("applicant id not assigned")
	}
	if applicant.Email.String() != "asha@example.com" {
		t.Errorf("email not normalized: %q", applicant.Email)
	}
	if applicant.Status != job.ApplicantStatusSubmitted {
		t.Errorf("status not defaulted: %q", applicant.Status)
	}
	if applicant.ResumePath == "" {
		t.Error("resume path not recorded")
	}

	size, _ := queue.Size(context.Background())
	if size != 1 {
		t.Errorf("expected one queued email, got %d", size)
	}
}

func TestApplyWithoutResume(t *testing.T) {
	svc, _ := newTestService(t)
	created := createJob(t, svc, validCreateReq("Backend Developer"))

	applicant, err := svc.Apply(context.Background(), created.ID, job.ApplyRequest{
		Name:    "Asha",
		Email:   kernel.NewEmail("asha@example.com"),
		Contact: "9999999999",
	}, "", nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if applicant.ResumePath != "" {
		t.Errorf("no resume was uploaded, got path %q", applicant.ResumePath)
	}
}

func TestApplyValidation(t *testing.T) {
	svc, _ := newTestService(t)
	created := createJob(t, svc, validCreateReq("Backend Developer"))

	_, err := svc.Apply(context.Background(), created.ID, job.ApplyRequest{Name: "Asha"}, "", nil)
	if !errx.IsType(err, errx.TypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestApplyUnknownJob(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Apply(context.Background(), kernel.NewJobID("missing"), job.ApplyRequest{
		Name:    "Asha",
		Email:   kernel.NewEmail("asha@example.com"),
		Contact: "9999999999",
	}, "", nil)
	if !errx.IsType(err, errx.TypeNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestApplicantManagementRequiresOwner(t *testing.T) {
	svc, _ := newTestService(t)
	created := createJob(t, svc, validCreateReq("Backend Developer"))

	applicant, err := svc.Apply(context.Background(), created.ID, job.ApplyRequest{
		Name:    "Asha",
		Email:   kernel.NewEmail("asha@example.com"),
		Contact: "9999999999",
	}, "", nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	pg := kernel.PaginationOptions{Page: 1, PageSize: 10}
	if _, err := svc.ListApplicants(context.Background(), created.ID, stranger, pg); !errx.IsType(err, errx.TypeAuthorization) {
		t.Errorf("list: expected authorization error, got %v", err)
	}

	page, err := svc.ListApplicants(context.Background(), created.ID, recruiter, pg)
	if err != nil {
		t.Fatalf("ListApplicants: %v", err)
	}
	if page.Page.Total != 1 {
		t.Errorf("expected 1 applicant, got %d", page.Page.Total)
	}

	status := "Shortlisted"
	if _, err := svc.UpdateApplicant(context.Background(), created.ID, applicant.ID, job.UpdateApplicantRequest{Status: &status}, stranger); !errx.IsType(err, errx.TypeAuthorization) {
		t.Errorf("update: expected authorization error, got %v", err)
	}
	updated, err := svc.UpdateApplicant(context.Background(), created.ID, applicant.ID, job.UpdateApplicantRequest{Status: &status}, recruiter)
	if err != nil {
		t.Fatalf("UpdateApplicant: %v", err)
	}
	if updated.Status != "Shortlisted" {
		t.Errorf("status not updated: %q", updated.Status)
	}

	if err := svc.RemoveApplicant(context.Background(), created.ID, applicant.ID, stranger); !errx.IsType(err, errx.TypeAuthorization) {
		t.Errorf("remove: expected authorization error, got %v", err)
	}
	if err := svc.RemoveApplicant(context.Background(), created.ID, applicant.ID, recruiter); err != nil {
		t.Fatalf("RemoveApplicant: %v", err)
	}
}

func TestMyApplications(t *testing.T) {
	svc, _ := newTestService(t)
	backend := createJob(t, svc, validCreateReq("Backend Developer"))
	frontend := createJob(t, svc, validCreateReq("Frontend Developer"))

	apply := func(id kernel.JobID, email string) {
		t.Helper()
		_, err := svc.Apply(context.Background(), id, job.ApplyRequest{
			Name:    "Asha",
			Email:   kernel.NewEmail(email),
			Contact: "9999999999",
		}, "", nil)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}
	apply(backend.ID, "asha@example.com")
	apply(frontend.ID, "ASHA@example.com")
	apply(frontend.ID, "someone.else@example.com")

	mine, err := svc.MyApplications(context.Background(), kernel.NewEmail("asha@example.com"), "")
	if err != nil {
		t.Fatalf("MyApplications: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(mine))
	}

	filtered, err := svc.MyApplications(context.Background(), kernel.NewEmail("asha@example.com"), "backend")
	if err != nil {
		t.Fatalf("MyApplications filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].JobID != backend.ID {
		t.Errorf("expected only the backend application, got %+v", filtered)
	}
}

func TestMyPostings(t *testing.T) {
	svc, _ := newTestService(t)
	mine := createJob(t, svc, validCreateReq("Backend Developer"))

	other := validCreateReq("Frontend Developer")
	if _, err := svc.CreateJob(context.Background(), other, kernel.NewUserID("rec-2")); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	postings, err := svc.MyPostings(context.Background(), recruiter)
	if err != nil {
		t.Fatalf("MyPostings: %v", err)
	}
	if postings.Total != 1 {
		t.Errorf("Total = %d, want 1", postings.Total)
	}
	if len(postings.Jobs) != 1 || postings.Jobs[0].ID != mine.ID {
		t.Errorf("expected only the recruiter's own job, got %+v", postings.Jobs)
	}

	empty, err := svc.MyPostings(context.Background(), kernel.NewUserID("rec-none"))
	if err != nil {
		t.Fatalf("MyPostings: %v", err)
	}
	if empty.Total != 0 || len(empty.Jobs) != 0 {
		t.Errorf("expected no postings, got %+v", empty)
	}
}

func TestMyApplicationsFilterMatchesRawTextOnly(t *testing.T) {
	svc, _ := newTestService(t)

	req := validCreateReq("Software Engineer")
	req.SkillsRequired = job.SkillList{kernel.NewSkill("React")}
	reactJob := createJob(t, svc, req)
	frontJob := createJob(t, svc, validCreateReq("Front-end Developer"))

	for _, id := range []kernel.JobID{reactJob.ID, frontJob.ID} {
		if _, err := svc.Apply(context.Background(), id, job.ApplyRequest{
			Name:    "Asha",
			Email:   kernel.NewEmail("asha@example.com"),
			Contact: "9999999999",
		}, "", nil); err != nil {
			t.Fatalf("Apply: %v", err)
		}
	}

	// "front" matches designations and company names by substring; it must
	// not expand to synonyms and pull in React-skilled postings.
	mine, err := svc.MyApplications(context.Background(), kernel.NewEmail("asha@example.com"), "front")
	if err != nil {
		t.Fatalf("MyApplications: %v", err)
	}
	if len(mine) != 1 || mine[0].JobID != frontJob.ID {
		t.Errorf("expected only the front-end application, got %+v", mine)
	}
}
