package service

import (
	"context"
	"database/sql"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
	"github.com/eventra-live/eventra-admin-api/pkg/jobs"
	"github.com/eventra-live/eventra-admin-api/pkg/storage"
)

type mockExportRepo struct {
	job        *models.ExportJob
	processing int
	finished   int
	failed     int
	lastPath   string
	lastReason string
}

func (m *mockExportRepo) Create(_ context.Context, job *models.ExportJob) error {
	job.ID = "job-1"
	job.Status = models.ExportStatusQueued
	m.job = job
	return nil
}

func (m *mockExportRepo) FindByID(_ context.Context, id string) (*models.ExportJob, error) {
	if m.job == nil || m.job.ID != id {
		return nil, sql.ErrNoRows
	}
	copied := *m.job
	return &copied, nil
}

func (m *mockExportRepo) ListByUser(_ context.Context, _ string, _ int) ([]models.ExportJob, error) {
	if m.job == nil {
		return nil, nil
	}
	return []models.ExportJob{*m.job}, nil
}

func (m *mockExportRepo) MarkProcessing(_ context.Context, _ string) error {
	m.processing++
	m.job.Status = models.ExportStatusProcessing
	return nil
}

func (m *mockExportRepo) MarkFinished(_ context.Context, _ string, resultPath string) error {
	m.finished++
	m.lastPath = resultPath
	m.job.Status = models.ExportStatusFinished
	m.job.ResultPath = &resultPath
	return nil
}

func (m *mockExportRepo) MarkFailed(_ context.Context, _ string, reason string) error {
	m.failed++
	m.lastReason = reason
	m.job.Status = models.ExportStatusFailed
	return nil
}

type mockRegistrationSource struct {
	regs []models.Registration
	err  error
}

func (m *mockRegistrationSource) ListAllForEvent(_ context.Context, _ string, _ *models.PaymentStatus) ([]models.Registration, error) {
	return m.regs, m.err
}

type mockEventSource struct {
	event *models.Event
}

func (m *mockEventSource) FindByID(_ context.Context, id string) (*models.Event, error) {
	if m.event == nil || m.event.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.event, nil
}

type mockAuditSink struct {
	actions []string
}

func (m *mockAuditSink) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	m.actions = append(m.actions, log.Action)
	return nil
}

func newTestExportService(t *testing.T, repo *mockExportRepo, regs *mockRegistrationSource, events *mockEventSource) (*ExportService, *mockAuditSink) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	audit := &mockAuditSink{}
	svc := NewExportService(repo, regs, events, audit, store, signer, nil, zap.NewNop(), jobs.QueueConfig{Workers: 1})
	return svc, audit
}

func sampleRegistrations() []models.Registration {
	return []models.Registration{
		{ID: "reg-1", EventID: "ev-1", Name: "Asha", Email: "asha@example.com", Phone: "9999", Tickets: 2, Amount: 400, PaymentStatus: models.PaymentCompleted, CreatedAt: time.Now().UTC()},
		{ID: "reg-2", EventID: "ev-1", Name: "Ravi", Email: "ravi@example.com", Phone: "8888", Tickets: 1, Amount: 200, PaymentStatus: models.PaymentPending, CreatedAt: time.Now().UTC()},
	}
}

func TestExportServiceEnqueueRejectsUnknownFormat(t *testing.T) {
	svc, _ := newTestExportService(t, &mockExportRepo{}, &mockRegistrationSource{}, &mockEventSource{})

	_, err := svc.Enqueue(context.Background(), ExportRequest{EventID: "ev-1", Format: "xlsx"}, superadminActor())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceEnqueueRejectsUnknownEvent(t *testing.T) {
	svc, _ := newTestExportService(t, &mockExportRepo{}, &mockRegistrationSource{}, &mockEventSource{})

	_, err := svc.Enqueue(context.Background(), ExportRequest{EventID: "missing", Format: models.ExportFormatCSV}, superadminActor())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestExportServiceEnqueueRecordsAudit(t *testing.T) {
	repo := &mockExportRepo{}
	svc, audit := newTestExportService(t, repo, &mockRegistrationSource{}, &mockEventSource{event: &models.Event{ID: "ev-1", Title: "Conf"}})
	svc.Queue().Start(context.Background())
	defer svc.Queue().Stop()

	job, err := svc.Enqueue(context.Background(), ExportRequest{EventID: "ev-1", Format: models.ExportFormatCSV}, superadminActor())
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.ID)
	assert.Contains(t, audit.actions, models.AuditActionExportCreate)

	require.Eventually(t, func() bool {
		current, err := svc.Get(context.Background(), "job-1")
		return err == nil && current.Status == models.ExportStatusFinished
	}, 2*time.Second, 10*time.Millisecond)
}

func TestExportServiceProcessGeneratesCSV(t *testing.T) {
	repo := &mockExportRepo{job: &models.ExportJob{
		ID:     "job-1",
		Status: models.ExportStatusQueued,
		Params: models.ExportJobParams{EventID: "ev-1", Format: models.ExportFormatCSV},
	}}
	regs := &mockRegistrationSource{regs: sampleRegistrations()}
	events := &mockEventSource{event: &models.Event{ID: "ev-1", Title: "Conf"}}
	svc, _ := newTestExportService(t, repo, regs, events)

	require.NoError(t, svc.process(context.Background(), jobs.Job{ID: "job-1", Type: "registration_export"}))
	assert.Equal(t, 1, repo.processing)
	assert.Equal(t, 1, repo.finished)
	assert.True(t, strings.HasSuffix(repo.lastPath, ".csv"))

	file, job, err := svc.Download(context.Background(), mustToken(t, svc, repo))
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, models.ExportStatusFinished, job.Status)

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "asha@example.com")
	assert.Contains(t, string(content), "Payment Status")
}

func TestExportServiceProcessMarksFailure(t *testing.T) {
	repo := &mockExportRepo{job: &models.ExportJob{
		ID:     "job-1",
		Status: models.ExportStatusQueued,
		Params: models.ExportJobParams{EventID: "ev-1", Format: models.ExportFormatPDF},
	}}
	regs := &mockRegistrationSource{err: assert.AnError}
	events := &mockEventSource{event: &models.Event{ID: "ev-1", Title: "Conf"}}
	svc, _ := newTestExportService(t, repo, regs, events)

	err := svc.process(context.Background(), jobs.Job{ID: "job-1", Type: "registration_export"})
	require.Error(t, err)
	assert.Equal(t, 1, repo.failed)
	assert.Contains(t, repo.lastReason, "load registrations")
}

func TestExportServiceDownloadRejectsBadToken(t *testing.T) {
	svc, _ := newTestExportService(t, &mockExportRepo{}, &mockRegistrationSource{}, &mockEventSource{})

	_, _, err := svc.Download(context.Background(), "garbage-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func mustToken(t *testing.T, svc *ExportService, repo *mockExportRepo) string {
	t.Helper()
	require.NotNil(t, repo.job.ResultPath)
	token, _, err := svc.signer.Generate(repo.job.ID, *repo.job.ResultPath)
	require.NoError(t, err)
	return token
}
