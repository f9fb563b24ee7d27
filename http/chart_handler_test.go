package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"loan-ledger/repository"
	"loan-ledger/service"
)

func TestBalanceChartHandler_OK(t *testing.T) {

	repo := repository.NewCalculationRepositoryMemory()
	ledger := service.NewLedgerService(repo, nil)
	handler := NewChartHandler(ledger, service.NewChartService())

	body := []byte(`{
		"principal": 1000.00,
		"interest_rate": 12.00,
		"interest_mode": "monthly",
		"start_date": "2024-01-01",
		"evaluation_date": "2024-03-01",
		"payments": [
			{"date": "2024-02-01", "amount": "500.00"}
		]
	}`)

	req := httptest.NewRequest(
		http.MethodPost,
		"/loan/chart",
		bytes.NewBuffer(body),
	)

	w := httptest.NewRecorder()
	handler.BalanceChart(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected html response, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "2024-02-01") {
		t.Errorf("expected chart to include the payment date")
	}

	// el gráfico no debe guardar el cálculo
	if repo.Len() != 0 {
		t.Errorf("chart rendering should not persist calculations")
	}
}

func TestBalanceChartHandler_BadRequest(t *testing.T) {

	repo := repository.NewCalculationRepositoryMemory()
	ledger := service.NewLedgerService(repo, nil)
	handler := NewChartHandler(ledger, service.NewChartService())

	req := httptest.NewRequest(
		http.MethodPost,
		"/loan/chart",
		bytes.NewBuffer([]byte(`{invalid-json}`)),
	)

	w := httptest.NewRecorder()
	handler.BalanceChart(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
