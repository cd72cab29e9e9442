package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/summer-school-api/internal/middleware"
	"github.com/noah-isme/summer-school-api/internal/models"
	"github.com/noah-isme/summer-school-api/internal/repository"
	"github.com/noah-isme/summer-school-api/internal/service"
)

type settlementRepoMock struct {
	result  *repository.SettlementResult
	err     error
	params  []repository.SettlementParams
	history []models.Payment
}

func (m *settlementRepoMock) Settle(_ context.Context, params repository.SettlementParams) (*repository.SettlementResult, error) {
	m.params = append(m.params, params)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *settlementRepoMock) ListByEmail(context.Context, string) ([]models.Payment, error) {
	return m.history, nil
}

type gatewayMock struct {
	secret string
	amount int64
}

func (m *gatewayMock) CreateIntent(_ context.Context, amount int64, _ string) (string, error) {
	m.amount = amount
	return m.secret, nil
}

func newPaymentTestContext(t *testing.T, repo *settlementRepoMock, gateway *gatewayMock) (*PaymentHandler, *httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := NewPaymentHandler(service.NewPaymentService(repo, gateway, nil, nil, nil, "usd", nil, nil))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return handler, w, c
}

func TestPaymentHandlerCreateIntent(t *testing.T) {
	gateway := &gatewayMock{secret: "cs_test"}
	handler, w, c := newPaymentTestContext(t, &settlementRepoMock{}, gateway)

	body, _ := json.Marshal(service.PaymentIntentRequest{Price: 42.5})
	req, _ := http.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.CreateIntent(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"clientSecret":"cs_test"}`, w.Body.String())
	assert.Equal(t, int64(4250), gateway.amount)
}

func TestPaymentHandlerSettleUsesClaimIdentity(t *testing.T) {
	repo := &settlementRepoMock{result: &repository.SettlementResult{AvailableSeats: 4, Enrolled: 8}}
	handler, w, c := newPaymentTestContext(t, repo, &gatewayMock{})

	body, _ := json.Marshal(service.SettleRequest{
		ClassID:         "c1",
		ClassName:       "Pottery",
		InstructorEmail: "ada@example.com",
		Email:           "someone-else@example.com",
		Amount:          42,
		TransactionID:   "pi_123",
	})
	req, _ := http.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.TokenClaims{Email: "kim@example.com"})

	handler.Settle(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, repo.params, 1)
	assert.Equal(t, "kim@example.com", repo.params[0].StudentEmail)

	var resp service.SettleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.AvailableSeats)
	assert.Equal(t, "pi_123", resp.TransactionID)
}

func TestPaymentHandlerSettleClassMissing(t *testing.T) {
	repo := &settlementRepoMock{err: repository.ErrSettlementClassNotFound}
	handler, w, c := newPaymentTestContext(t, repo, &gatewayMock{})

	body, _ := json.Marshal(service.SettleRequest{
		ClassID:         "c1",
		ClassName:       "Pottery",
		InstructorEmail: "ada@example.com",
		Email:           "kim@example.com",
		Amount:          42,
		TransactionID:   "pi_123",
	})
	req, _ := http.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.TokenClaims{Email: "kim@example.com"})

	handler.Settle(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	var respBody map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
	assert.Equal(t, true, respBody["error"])
}

func TestPaymentHandlerExportCSV(t *testing.T) {
	repo := &settlementRepoMock{history: []models.Payment{{ClassName: "Pottery", TransactionID: "pi_123", Amount: 42, Status: "succeeded"}}}
	handler, w, c := newPaymentTestContext(t, repo, &gatewayMock{})

	req, _ := http.NewRequest(http.MethodGet, "/sortedPaidClasses/kim@example.com/export?format=csv", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "email", Value: "kim@example.com"}}

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "Pottery")
}
