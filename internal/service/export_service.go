package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
	"github.com/eventra-live/eventra-admin-api/pkg/export"
	"github.com/eventra-live/eventra-admin-api/pkg/jobs"
	"github.com/eventra-live/eventra-admin-api/pkg/storage"
)

const exportJobType = "registration_export"

type exportRepository interface {
	Create(ctx context.Context, job *models.ExportJob) error
	FindByID(ctx context.Context, id string) (*models.ExportJob, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.ExportJob, error)
	MarkProcessing(ctx context.Context, id string) error
	MarkFinished(ctx context.Context, id, resultPath string) error
	MarkFailed(ctx context.Context, id, reason string) error
}

type exportRegistrationSource interface {
	ListAllForEvent(ctx context.Context, eventID string, status *models.PaymentStatus) ([]models.Registration, error)
}

type exportEventSource interface {
	FindByID(ctx context.Context, id string) (*models.Event, error)
}

type exportAuditSink interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// ExportRequest carries parameters for queueing an export.
type ExportRequest struct {
	EventID       string                `json:"eventId" validate:"required"`
	Format        models.ExportFormat   `json:"format" validate:"required"`
	PaymentStatus *models.PaymentStatus `json:"paymentStatus"`
}

// ExportService queues registration exports, generates the files in the
// background and hands out signed download links.
type ExportService struct {
	repo          exportRepository
	registrations exportRegistrationSource
	events        exportEventSource
	audit         exportAuditSink

	queue   *jobs.Queue
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	storage *storage.LocalStorage
	signer  *storage.SignedURLSigner
	metrics *MetricsService
	logger  *zap.Logger
}

// NewExportService constructs an ExportService. Call Queue().Start to begin
// background processing.
func NewExportService(
	repo exportRepository,
	registrations exportRegistrationSource,
	events exportEventSource,
	audit exportAuditSink,
	store *storage.LocalStorage,
	signer *storage.SignedURLSigner,
	metrics *MetricsService,
	logger *zap.Logger,
	queueCfg jobs.QueueConfig,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ExportService{
		repo:          repo,
		registrations: registrations,
		events:        events,
		audit:         audit,
		csv:           export.NewCSVExporter(),
		pdf:           export.NewPDFExporter(),
		storage:       store,
		signer:        signer,
		metrics:       metrics,
		logger:        logger,
	}
	if queueCfg.Logger == nil {
		queueCfg.Logger = logger
	}
	s.queue = jobs.NewQueue("exports", s.process, queueCfg)
	return s
}

// Queue exposes the underlying job queue for lifecycle management.
func (s *ExportService) Queue() *jobs.Queue {
	return s.queue
}

// Enqueue validates the request, persists a queued job and schedules the
// generation.
func (s *ExportService) Enqueue(ctx context.Context, req ExportRequest, actor Actor) (*models.ExportJob, error) {
	if req.Format != models.ExportFormatCSV && req.Format != models.ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", req.Format))
	}
	if req.PaymentStatus != nil && !models.ValidPaymentStatus(*req.PaymentStatus) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown payment status %q", *req.PaymentStatus))
	}

	if _, err := s.events.FindByID(ctx, req.EventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch event")
	}

	job := &models.ExportJob{
		Params: models.ExportJobParams{
			EventID:       req.EventID,
			Format:        req.Format,
			PaymentStatus: req.PaymentStatus,
		},
		Status:    models.ExportStatusQueued,
		CreatedBy: actor.ID,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create export job")
	}

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: exportJobType}); err != nil {
		s.logger.Error("failed to enqueue export job", zap.String("jobId", job.ID), zap.Error(err))
		if markErr := s.repo.MarkFailed(ctx, job.ID, "queue unavailable"); markErr != nil {
			s.logger.Warn("failed to mark export job failed", zap.String("jobId", job.ID), zap.Error(markErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to schedule export")
	}

	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &actor.ID,
		Action:     models.AuditActionExportCreate,
		Resource:   "exports",
		ResourceID: &job.ID,
		IPAddress:  actor.IP,
		UserAgent:  actor.UserAgent,
	}); err != nil {
		s.logger.Warn("failed to record export audit log", zap.Error(err))
	}

	return job, nil
}

// Get returns export job metadata. Finished jobs carry a signed download
// URL.
func (s *ExportService) Get(ctx context.Context, id string) (*models.ExportJob, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch export job")
	}
	s.attachDownloadURL(job)
	return job, nil
}

// ListByUser returns the caller's recent export jobs.
func (s *ExportService) ListByUser(ctx context.Context, userID string, limit int) ([]models.ExportJob, error) {
	jobsList, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list export jobs")
	}
	for i := range jobsList {
		s.attachDownloadURL(&jobsList[i])
	}
	return jobsList, nil
}

// Download validates a signed token and opens the export file. The caller
// owns closing the file.
func (s *ExportService) Download(ctx context.Context, token string) (*os.File, *models.ExportJob, error) {
	exportID, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid download token")
	}

	job, err := s.repo.FindByID(ctx, exportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch export job")
	}
	if job.Status != models.ExportStatusFinished || job.ResultPath == nil || *job.ResultPath != relPath {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "export file not available")
	}

	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export file missing")
	}
	return file, job, nil
}

// process is the queue handler that generates one export file.
func (s *ExportService) process(ctx context.Context, job jobs.Job) error {
	start := time.Now()

	record, err := s.repo.FindByID(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("load export job %s: %w", job.ID, err)
	}
	if record.Status == models.ExportStatusFinished {
		return nil
	}

	if err := s.repo.MarkProcessing(ctx, record.ID); err != nil {
		return fmt.Errorf("mark export processing: %w", err)
	}

	relPath, genErr := s.generate(ctx, record)
	if genErr != nil {
		s.logger.Error("export generation failed", zap.String("jobId", record.ID), zap.Error(genErr))
		if err := s.repo.MarkFailed(ctx, record.ID, genErr.Error()); err != nil {
			s.logger.Warn("failed to mark export failed", zap.String("jobId", record.ID), zap.Error(err))
		}
		return genErr
	}

	if err := s.repo.MarkFinished(ctx, record.ID, relPath); err != nil {
		return fmt.Errorf("mark export finished: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ObserveExport(record.Params.Format, time.Since(start))
	}
	s.logger.Info("export finished",
		zap.String("jobId", record.ID),
		zap.String("format", string(record.Params.Format)),
		zap.Duration("took", time.Since(start)))
	return nil
}

func (s *ExportService) generate(ctx context.Context, record *models.ExportJob) (string, error) {
	event, err := s.events.FindByID(ctx, record.Params.EventID)
	if err != nil {
		return "", fmt.Errorf("load event %s: %w", record.Params.EventID, err)
	}

	regs, err := s.registrations.ListAllForEvent(ctx, record.Params.EventID, record.Params.PaymentStatus)
	if err != nil {
		return "", fmt.Errorf("load registrations: %w", err)
	}

	dataset := registrationDataset(regs)

	var data []byte
	var filename string
	switch record.Params.Format {
	case models.ExportFormatCSV:
		data, err = s.csv.Render(dataset)
		filename = fmt.Sprintf("exports/%s.csv", record.ID)
	case models.ExportFormatPDF:
		title := fmt.Sprintf("Registrations - %s", event.Title)
		data, err = s.pdf.Render(dataset, title)
		filename = fmt.Sprintf("exports/%s.pdf", record.ID)
	default:
		return "", fmt.Errorf("unsupported export format %q", record.Params.Format)
	}
	if err != nil {
		return "", fmt.Errorf("render %s: %w", record.Params.Format, err)
	}

	relPath, err := s.storage.Save(filename, data)
	if err != nil {
		return "", fmt.Errorf("store export file: %w", err)
	}
	return relPath, nil
}

func (s *ExportService) attachDownloadURL(job *models.ExportJob) {
	if job.Status != models.ExportStatusFinished || job.ResultPath == nil || s.signer == nil {
		return
	}
	token, _, err := s.signer.Generate(job.ID, *job.ResultPath)
	if err != nil {
		s.logger.Warn("failed to sign download url", zap.String("jobId", job.ID), zap.Error(err))
		return
	}
	url := "/api/v1/exports/download?token=" + token
	job.DownloadURL = &url
}

func registrationDataset(regs []models.Registration) export.Dataset {
	headers := []string{"Name", "Email", "Phone", "Tickets", "Amount", "Payment Status", "Payment Ref", "Registered At"}
	rows := make([]map[string]string, 0, len(regs))
	for _, reg := range regs {
		rows = append(rows, map[string]string{
			"Name":           reg.Name,
			"Email":          reg.Email,
			"Phone":          reg.Phone,
			"Tickets":        strconv.Itoa(reg.Tickets),
			"Amount":         strconv.FormatFloat(reg.Amount, 'f', 2, 64),
			"Payment Status": string(reg.PaymentStatus),
			"Payment Ref":    reg.PaymentRef,
			"Registered At":  reg.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
