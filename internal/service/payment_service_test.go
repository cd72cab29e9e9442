package service

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/summer-school-api/internal/models"
	"github.com/noah-isme/summer-school-api/internal/repository"
	appErrors "github.com/noah-isme/summer-school-api/pkg/errors"
)

type fakeSettlementRepo struct {
	result  *repository.SettlementResult
	err     error
	params  []repository.SettlementParams
	history []models.Payment
}

func (f *fakeSettlementRepo) Settle(_ context.Context, params repository.SettlementParams) (*repository.SettlementResult, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeSettlementRepo) ListByEmail(context.Context, string) ([]models.Payment, error) {
	return f.history, nil
}

type fakeGateway struct {
	secret string
	err    error
	amount int64
}

func (f *fakeGateway) CreateIntent(_ context.Context, amount int64, _ string) (string, error) {
	f.amount = amount
	if f.err != nil {
		return "", f.err
	}
	return f.secret, nil
}

func settleRequest() SettleRequest {
	return SettleRequest{
		ClassID:         "c1",
		ClassName:       "Pottery",
		InstructorEmail: "ada@example.com",
		Email:           "kim@example.com",
		Amount:          42,
		TransactionID:   "pi_123",
		Status:          "succeeded",
		Date:            time.Now().UTC(),
	}
}

func TestPaymentServiceCreateIntentConvertsToCents(t *testing.T) {
	gateway := &fakeGateway{secret: "cs_test"}
	svc := NewPaymentService(&fakeSettlementRepo{}, gateway, nil, nil, nil, "usd", nil, nil)

	resp, err := svc.CreateIntent(context.Background(), PaymentIntentRequest{Price: 42.50})
	require.NoError(t, err)
	assert.Equal(t, "cs_test", resp.ClientSecret)
	assert.Equal(t, int64(4250), gateway.amount)
}

func TestPaymentServiceCreateIntentRejectsZeroPrice(t *testing.T) {
	svc := NewPaymentService(&fakeSettlementRepo{}, &fakeGateway{}, nil, nil, nil, "usd", nil, nil)

	_, err := svc.CreateIntent(context.Background(), PaymentIntentRequest{})
	assert.Error(t, err)
}

func TestPaymentServiceSettle(t *testing.T) {
	repo := &fakeSettlementRepo{result: &repository.SettlementResult{AvailableSeats: 4, Enrolled: 8}}
	svc := NewPaymentService(repo, &fakeGateway{}, nil, nil, nil, "usd", nil, nil)

	resp, err := svc.Settle(context.Background(), settleRequest())
	require.NoError(t, err)
	assert.False(t, resp.AlreadySettled)
	assert.Equal(t, 4, resp.AvailableSeats)
	assert.Equal(t, 8, resp.Enrolled)
	assert.Equal(t, "pi_123", resp.TransactionID)
	require.Len(t, repo.params, 1)
	assert.Equal(t, "kim@example.com", repo.params[0].StudentEmail)
}

func TestPaymentServiceSettleReplayIsSuccess(t *testing.T) {
	repo := &fakeSettlementRepo{result: &repository.SettlementResult{AlreadySettled: true, AvailableSeats: 4, Enrolled: 8}}
	svc := NewPaymentService(repo, &fakeGateway{}, nil, nil, nil, "usd", nil, nil)

	resp, err := svc.Settle(context.Background(), settleRequest())
	require.NoError(t, err)
	assert.True(t, resp.AlreadySettled)
	assert.Equal(t, 8, resp.Enrolled)
}

func TestPaymentServiceSettleClassMissing(t *testing.T) {
	repo := &fakeSettlementRepo{err: repository.ErrSettlementClassNotFound}
	svc := NewPaymentService(repo, &fakeGateway{}, nil, nil, nil, "usd", nil, nil)

	_, err := svc.Settle(context.Background(), settleRequest())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrClassNotFound.Code, appErr.Code)
	assert.Equal(t, 404, appErr.Status)
}

func TestPaymentServiceSettleSelectionMissing(t *testing.T) {
	repo := &fakeSettlementRepo{err: repository.ErrSettlementEnrollmentNotFound}
	svc := NewPaymentService(repo, &fakeGateway{}, nil, nil, nil, "usd", nil, nil)

	_, err := svc.Settle(context.Background(), settleRequest())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "selected class not found", appErr.Message)
}

func TestPaymentServiceStatementCSV(t *testing.T) {
	repo := &fakeSettlementRepo{history: []models.Payment{
		{ClassName: "Pottery", TransactionID: "pi_123", Amount: 42, Status: "succeeded", PaidAt: time.Now()},
	}}
	svc := NewPaymentService(repo, &fakeGateway{}, nil, nil, nil, "usd", nil, nil)

	body, contentType, err := svc.Statement(context.Background(), "kim@example.com", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Pottery", records[1][0])
}

func TestPaymentServiceStatementUnknownFormat(t *testing.T) {
	svc := NewPaymentService(&fakeSettlementRepo{}, &fakeGateway{}, nil, nil, nil, "usd", nil, nil)

	_, _, err := svc.Statement(context.Background(), "kim@example.com", "xlsx")
	assert.Error(t, err)
}
