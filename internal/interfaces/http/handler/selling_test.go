package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	appselling "github.com/cecypo/powerpack-backend/internal/application/selling"
	"github.com/cecypo/powerpack-backend/internal/domain/selling"
	"github.com/cecypo/powerpack-backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockInvoiceRepository implements selling.InvoiceRepository for testing
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByName(ctx context.Context, name string) (*selling.SalesInvoice, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*selling.SalesInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindOverdue(ctx context.Context, customer, company string, today time.Time) ([]selling.SalesInvoice, error) {
	args := m.Called(ctx, customer, company, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]selling.SalesInvoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, inv *selling.SalesInvoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) LastSaleRate(ctx context.Context, itemCode, customer string) (selling.RateHistory, error) {
	args := m.Called(ctx, itemCode, customer)
	return args.Get(0).(selling.RateHistory), args.Error(1)
}

func (m *MockInvoiceRepository) LastPurchaseRate(ctx context.Context, itemCode string) (selling.RateHistory, error) {
	args := m.Called(ctx, itemCode)
	return args.Get(0).(selling.RateHistory), args.Error(1)
}

// stubFeatureGate answers flag lookups from a fixed map
type stubFeatureGate struct {
	enabled map[string]bool
}

func (g stubFeatureGate) IsEnabled(_ context.Context, flag string) bool {
	return g.enabled[flag]
}

func setupSellingRouter(repo *MockInvoiceRepository, gate stubFeatureGate) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	service := appselling.NewInvoiceService(repo, gate, zap.NewNop())
	h := NewSellingHandler(service, zap.NewNop())

	api := engine.Group("/api/v1")
	h.RegisterRoutes(api)
	return engine
}

func TestSellingHandler_CancelInvoice(t *testing.T) {
	t.Run("cancels a submitted invoice", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		inv := &selling.SalesInvoice{Name: "SINV-0001", Status: selling.InvoiceStatusSubmitted}
		repo.On("FindByName", mock.Anything, "SINV-0001").Return(inv, nil)
		repo.On("Save", mock.Anything, inv).Return(nil)

		engine := setupSellingRouter(repo, stubFeatureGate{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/selling/invoices/SINV-0001/cancel", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, selling.InvoiceStatusCancelled, inv.Status)
	})

	t.Run("blocks fiscalized invoice when guard is on", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		inv := &selling.SalesInvoice{
			Name:             "SINV-0002",
			Status:           selling.InvoiceStatusSubmitted,
			ETRInvoiceNumber: "010203",
		}
		repo.On("FindByName", mock.Anything, "SINV-0002").Return(inv, nil)

		gate := stubFeatureGate{enabled: map[string]bool{
			"prevent_etr_invoice_cancellation": true,
		}}

		engine := setupSellingRouter(repo, gate)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/selling/invoices/SINV-0002/cancel", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Error   struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "ERR_BUSINESS_RULE", resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "010203")
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		assert.Equal(t, selling.InvoiceStatusSubmitted, inv.Status)
	})

	t.Run("unknown invoice yields 404", func(t *testing.T) {
		repo := new(MockInvoiceRepository)
		repo.On("FindByName", mock.Anything, "SINV-9999").Return(nil, shared.ErrNotFound)

		engine := setupSellingRouter(repo, stubFeatureGate{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/selling/invoices/SINV-9999/cancel", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
