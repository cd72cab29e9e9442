package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/summer-school-api/internal/models"
	"github.com/noah-isme/summer-school-api/internal/repository"
	appErrors "github.com/noah-isme/summer-school-api/pkg/errors"
	"github.com/noah-isme/summer-school-api/pkg/export"
	"github.com/noah-isme/summer-school-api/pkg/storage"
)

type settlementRepository interface {
	Settle(ctx context.Context, params repository.SettlementParams) (*repository.SettlementResult, error)
	ListByEmail(ctx context.Context, email string) ([]models.Payment, error)
}

type paymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// PaymentIntentRequest asks the gateway for a card authorization.
type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// PaymentIntentResponse returns the gateway's opaque client secret.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// SettleRequest carries the gateway callback into the settlement sequence.
type SettleRequest struct {
	ClassID         string    `json:"class_id" validate:"required"`
	ClassName       string    `json:"class_name" validate:"required"`
	InstructorEmail string    `json:"instructor_email" validate:"required,email"`
	Email           string    `json:"email" validate:"required,email"`
	Amount          float64   `json:"amount" validate:"gte=0"`
	TransactionID   string    `json:"transaction_id" validate:"required"`
	Status          string    `json:"status"`
	Date            time.Time `json:"date"`
}

// SettleResponse reports the settlement outcome.
type SettleResponse struct {
	AlreadySettled bool   `json:"already_settled"`
	AvailableSeats int    `json:"available_seats"`
	Enrolled       int    `json:"enrolled"`
	TransactionID  string `json:"transaction_id"`
}

// PaymentService owns intent creation, the settlement sequence, and the
// ledger history views.
type PaymentService struct {
	repo      settlementRepository
	gateway   paymentGateway
	cache     *CacheService
	metrics   *MetricsService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	archive   *storage.LocalStorage
	currency  string
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs PaymentService.
func NewPaymentService(repo settlementRepository, gateway paymentGateway, cache *CacheService, metrics *MetricsService, archive *storage.LocalStorage, currency string, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if currency == "" {
		currency = "usd"
	}
	return &PaymentService{
		repo:      repo,
		gateway:   gateway,
		cache:     cache,
		metrics:   metrics,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		archive:   archive,
		currency:  currency,
		validator: validate,
		logger:    logger,
	}
}

// CreateIntent asks the gateway for a card authorization over the class
// price and returns the client secret the frontend confirms against.
func (s *PaymentService) CreateIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}

	amount := int64(math.Round(req.Price * 100))
	secret, err := s.gateway.CreateIntent(ctx, amount, s.currency)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create payment authorization")
	}
	return &PaymentIntentResponse{ClientSecret: secret}, nil
}

// Settle runs the settlement sequence. A selection that was already settled
// is treated as success: the seats and counters are left untouched and the
// response says so, which makes retried gateway callbacks harmless.
func (s *PaymentService) Settle(ctx context.Context, req SettleRequest) (*SettleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settlement payload")
	}

	result, err := s.repo.Settle(ctx, repository.SettlementParams{
		ClassID:         req.ClassID,
		ClassName:       req.ClassName,
		InstructorEmail: req.InstructorEmail,
		StudentEmail:    req.Email,
		Amount:          req.Amount,
		TransactionID:   req.TransactionID,
		Status:          req.Status,
		PaidAt:          req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSettlementClassNotFound):
			return nil, appErrors.Clone(appErrors.ErrClassNotFound, "")
		case errors.Is(err, repository.ErrSettlementEnrollmentNotFound):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "selected class not found")
		}
		s.metrics.ObserveSettlement("failed")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to settle payment")
	}

	if result.AlreadySettled {
		s.metrics.ObserveSettlement("duplicate")
		s.logger.Info("settlement replay ignored",
			zap.String("transaction_id", req.TransactionID),
			zap.String("class_id", req.ClassID),
		)
	} else {
		s.metrics.ObserveSettlement("settled")
		s.cache.InvalidateClasses(ctx)
		s.cache.InvalidateInstructors(ctx)
	}

	return &SettleResponse{
		AlreadySettled: result.AlreadySettled,
		AvailableSeats: result.AvailableSeats,
		Enrolled:       result.Enrolled,
		TransactionID:  req.TransactionID,
	}, nil
}

// History returns the purchaser's ledger entries, newest first.
func (s *PaymentService) History(ctx context.Context, email string) ([]models.Payment, error) {
	payments, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list payments")
	}
	return payments, nil
}

// Statement renders the purchaser's ledger as a downloadable document.
func (s *PaymentService) Statement(ctx context.Context, email, format string) ([]byte, string, error) {
	payments, err := s.History(ctx, email)
	if err != nil {
		return nil, "", err
	}

	statement := export.Statement{Email: email, Rows: make([]export.StatementRow, 0, len(payments))}
	for _, p := range payments {
		statement.Rows = append(statement.Rows, export.StatementRow{
			ClassName:     p.ClassName,
			TransactionID: p.TransactionID,
			Amount:        fmt.Sprintf("%.2f", p.Amount),
			Status:        p.Status,
			PaidAt:        p.PaidAt.UTC().Format(time.RFC3339),
		})
	}

	var (
		body        []byte
		contentType string
		ext         string
	)
	switch format {
	case "pdf":
		body, err = s.pdf.Render(statement)
		contentType, ext = "application/pdf", "pdf"
	case "", "csv":
		body, err = s.csv.Render(statement)
		contentType, ext = "text/csv", "csv"
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unknown statement format")
	}
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render statement")
	}

	s.archiveStatement(email, ext, body)
	return body, contentType, nil
}

// archiveStatement keeps a dated copy of every generated statement on disk.
// Archival is best effort and never fails the download.
func (s *PaymentService) archiveStatement(email, ext string, body []byte) {
	if s.archive == nil {
		return
	}
	name := fmt.Sprintf("%s/statement-%s.%s", email, time.Now().UTC().Format("20060102-150405"), ext)
	if _, err := s.archive.Save(name, body); err != nil {
		s.logger.Warn("failed to archive statement", zap.String("email", email), zap.Error(err))
	}
}
