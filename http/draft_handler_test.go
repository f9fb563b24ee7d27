package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"loan-ledger/domain"
	"loan-ledger/repository"
	"loan-ledger/service"
)

func TestAddPaymentHandler_OK(t *testing.T) {

	drafts := service.NewDraftService(repository.NewMockCache())
	handler := NewDraftHandler(drafts)

	body := []byte(`{
		"session_id": "s1",
		"date": "2024-03-01",
		"amount": "150.00"
	}`)

	req := httptest.NewRequest(
		http.MethodPost,
		"/loan/payments/add",
		bytes.NewBuffer(body),
	)

	w := httptest.NewRecorder()
	handler.AddPayment(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var draft domain.CalculationDraft
	if err := json.NewDecoder(w.Body).Decode(&draft); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(draft.Payments) != 1 {
		t.Errorf("expected 1 payment in draft, got %d", len(draft.Payments))
	}
}

func TestAddPaymentHandler_MissingFields(t *testing.T) {

	drafts := service.NewDraftService(repository.NewMockCache())
	handler := NewDraftHandler(drafts)

	body := []byte(`{"session_id": "s1", "date": "2024-03-01"}`)

	req := httptest.NewRequest(
		http.MethodPost,
		"/loan/payments/add",
		bytes.NewBuffer(body),
	)

	w := httptest.NewRecorder()
	handler.AddPayment(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRemovePaymentHandler_OK(t *testing.T) {

	cache := repository.NewMockCache()
	drafts := service.NewDraftService(cache)
	handler := NewDraftHandler(drafts)

	if _, err := drafts.AddPayment(domain.AddPaymentRequest{
		SessionID: "s1",
		Date:      "2024-03-01",
		Amount:    "150.00",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := []byte(`{"session_id": "s1", "index": 0}`)

	req := httptest.NewRequest(
		http.MethodPost,
		"/loan/payments/remove",
		bytes.NewBuffer(body),
	)

	w := httptest.NewRecorder()
	handler.RemovePayment(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var draft domain.CalculationDraft
	if err := json.NewDecoder(w.Body).Decode(&draft); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(draft.Payments) != 0 {
		t.Errorf("expected empty draft, got %d payments", len(draft.Payments))
	}
}

func TestResetHandler(t *testing.T) {

	drafts := service.NewDraftService(repository.NewMockCache())
	handler := NewDraftHandler(drafts)

	body := []byte(`{"session_id": "s1"}`)

	req := httptest.NewRequest(
		http.MethodPost,
		"/loan/reset",
		bytes.NewBuffer(body),
	)

	w := httptest.NewRecorder()
	handler.Reset(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
}

func TestDraftHandlers_MethodNotAllowed(t *testing.T) {

	drafts := service.NewDraftService(repository.NewMockCache())
	handler := NewDraftHandler(drafts)

	endpoints := []func(http.ResponseWriter, *http.Request){
		handler.AddPayment,
		handler.RemovePayment,
		handler.Reset,
	}
	for i, endpoint := range endpoints {
		req := httptest.NewRequest(http.MethodGet, "/loan/payments", nil)
		w := httptest.NewRecorder()

		endpoint(w, req)

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("endpoint %d: expected 405, got %d", i, w.Code)
		}
	}
}
