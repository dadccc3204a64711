package stock_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleetstock/internal/api/stock"
	"fleetstock/internal/domain"
	apperror "fleetstock/internal/errors"
	"fleetstock/internal/pkg/logger"
	"fleetstock/internal/pkg/middleware"
)

// MockStockService é uma implementação mock da interface StockService
type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) AdjustStock(ctx context.Context, req domain.StockAdjustmentRequest) (domain.StockAdjustmentResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.StockAdjustmentResult), args.Error(1)
}

func (m *MockStockService) StockHistory(ctx context.Context, filter domain.StockHistoryFilter) (domain.StockHistory, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.StockHistory), args.Error(1)
}

type envelope struct {
	Success  bool                   `json:"success"`
	Data     json.RawMessage        `json:"data"`
	Code     int                    `json:"code"`
	Category string                 `json:"category"`
	Message  string                 `json:"message"`
	Details  map[string]interface{} `json:"details"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func adjustRequest(partID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/parts/"+partID+"/adjust-stock", strings.NewReader(body))
	req.SetPathValue("partId", partID)
	ctx := context.WithValue(req.Context(), middleware.UserClaimsKey, middleware.UserClaims{UserID: "mech-7", Role: domain.RoleUser})
	return req.WithContext(ctx)
}

func TestAdjustStockHandler_Created(t *testing.T) {
	svc := new(MockStockService)
	h := stock.NewHandler(svc, logger.NewNop())
	partID := uuid.New().String()

	svc.On("AdjustStock", mock.Anything, mock.MatchedBy(func(req domain.StockAdjustmentRequest) bool {
		return req.PartID == partID && req.CreatedBy == "mech-7" && req.Quantity == 5 && req.Type == "PURCHASE"
	})).Return(domain.StockAdjustmentResult{
		Part:       domain.Part{ID: partID, Quantity: 15},
		Movement:   domain.StockMovement{ID: "m1", PartID: partID, Quantity: 5, PreviousStock: 10, NewStock: 15},
		Adjustment: domain.AppliedAdjustment{Quantity: 5, Type: domain.MovementPurchase, Reason: "purchase", PreviousStock: 10, NewStock: 15},
	}, nil)

	rec := httptest.NewRecorder()
	h.AdjustStockHandler(rec, adjustRequest(partID, `{"quantity":5,"reason":"purchase","type":"PURCHASE","cost":2}`))

	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)

	var data struct {
		Part       domain.Part              `json:"part"`
		Adjustment domain.AppliedAdjustment `json:"adjustment"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 15, data.Part.Quantity)
	assert.Equal(t, 10, data.Adjustment.PreviousStock)
	assert.Equal(t, 15, data.Adjustment.NewStock)
	svc.AssertExpectations(t)
}

func TestAdjustStockHandler_NegativeStockDetails(t *testing.T) {
	svc := new(MockStockService)
	h := stock.NewHandler(svc, logger.NewNop())
	partID := uuid.New().String()

	svc.On("AdjustStock", mock.Anything, mock.Anything).
		Return(domain.StockAdjustmentResult{}, apperror.NewNegativeStockError(10, -15, -5))

	rec := httptest.NewRecorder()
	h.AdjustStockHandler(rec, adjustRequest(partID, `{"quantity":-15,"reason":"damage"}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, 422, env.Code)
	assert.Equal(t, "NEGATIVE_STOCK", env.Category)
	assert.Equal(t, map[string]interface{}{
		"currentStock":        float64(10),
		"requestedAdjustment": float64(-15),
		"wouldResult":         float64(-5),
	}, env.Details)
}

func TestAdjustStockHandler_ValidationError(t *testing.T) {
	svc := new(MockStockService)
	h := stock.NewHandler(svc, logger.NewNop())

	svc.On("AdjustStock", mock.Anything, mock.Anything).
		Return(domain.StockAdjustmentResult{}, apperror.NewValidationError("A quantidade do ajuste não pode ser zero."))

	rec := httptest.NewRecorder()
	h.AdjustStockHandler(rec, adjustRequest(uuid.New().String(), `{"quantity":0,"reason":"x"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", env.Category)
	assert.Contains(t, env.Message, "não pode ser zero")
	assert.Nil(t, env.Details)
}

func TestAdjustStockHandler_MalformedJSON(t *testing.T) {
	svc := new(MockStockService)
	h := stock.NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.AdjustStockHandler(rec, adjustRequest(uuid.New().String(), `{"quantity":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything)
}

func TestAdjustStockHandler_UnknownFieldRejected(t *testing.T) {
	svc := new(MockStockService)
	h := stock.NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.AdjustStockHandler(rec, adjustRequest(uuid.New().String(), `{"quantity":1,"reasn":"x"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, `"reasn"`)
	svc.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything)
}

func TestAdjustStockHandler_TrailingDataRejected(t *testing.T) {
	svc := new(MockStockService)
	h := stock.NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.AdjustStockHandler(rec, adjustRequest(uuid.New().String(), `{"quantity":1,"reason":"x"} {"quantity":99}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Message, "dados extras")
	svc.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything)
}

func TestAdjustStockHandler_TransactionErrorIsGeneric(t *testing.T) {
	svc := new(MockStockService)
	h := stock.NewHandler(svc, logger.NewNop())

	svc.On("AdjustStock", mock.Anything, mock.Anything).
		Return(domain.StockAdjustmentResult{}, apperror.NewTransactionError("Falha ao registrar movimento", errors.New("pq: value too long")))

	rec := httptest.NewRecorder()
	h.AdjustStockHandler(rec, adjustRequest(uuid.New().String(), `{"quantity":1,"reason":"x"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "TRANSACTION_ERROR", env.Category)
	assert.Equal(t, apperror.GenericServerMessage, env.Message)
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestAdjustStockHandler_NoClaims(t *testing.T) {
	svc := new(MockStockService)
	h := stock.NewHandler(svc, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/v1/parts/x/adjust-stock", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.AdjustStockHandler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func historyRequest(partID, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v1/parts/"+partID+"/stock-history?"+query, nil)
	req.SetPathValue("partId", partID)
	return req
}

func TestStockHistoryHandler_ParsesFilters(t *testing.T) {
	svc := new(MockStockService)
	h := stock.NewHandler(svc, logger.NewNop())
	partID := uuid.New().String()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	endOfDay := time.Date(2026, 3, 31, 23, 59, 59, 999999999, time.UTC)

	svc.On("StockHistory", mock.Anything, mock.MatchedBy(func(f domain.StockHistoryFilter) bool {
		return f.PartID == partID && f.Page == 2 && f.Limit == 10 &&
			f.Type == domain.MovementConsumption &&
			f.StartDate != nil && f.StartDate.Equal(start) &&
			f.EndDate != nil && f.EndDate.Equal(endOfDay)
	})).Return(domain.StockHistory{
		Part:       domain.Part{ID: partID},
		Movements:  []domain.StockMovement{},
		Pagination: domain.Pagination{Page: 2, Limit: 10, Total: 11, TotalPages: 2},
	}, nil)

	rec := httptest.NewRecorder()
	h.StockHistoryHandler(rec, historyRequest(partID, "page=2&limit=10&type=consumption&startDate=2026-03-01T00:00:00Z&endDate=2026-03-31"))

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)

	var data domain.StockHistory
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.Pagination.TotalPages)
	svc.AssertExpectations(t)
}

func TestStockHistoryHandler_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"invalid type", "type=gift"},
		{"invalid page", "page=abc"},
		{"zero limit", "limit=0"},
		{"invalid start", "startDate=ontem"},
		{"invalid end", "endDate=31/03/2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockStockService)
			h := stock.NewHandler(svc, logger.NewNop())

			rec := httptest.NewRecorder()
			h.StockHistoryHandler(rec, historyRequest(uuid.New().String(), tt.query))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION_ERROR", decode(t, rec).Category)
			svc.AssertNotCalled(t, "StockHistory", mock.Anything, mock.Anything)
		})
	}
}

func TestStockHistoryHandler_NotFound(t *testing.T) {
	svc := new(MockStockService)
	h := stock.NewHandler(svc, logger.NewNop())

	svc.On("StockHistory", mock.Anything, mock.Anything).
		Return(domain.StockHistory{}, apperror.NewNotFoundError("Peça não existe."))

	rec := httptest.NewRecorder()
	h.StockHistoryHandler(rec, historyRequest(uuid.New().String(), ""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, rec).Category)
}
