package http

import (
	"encoding/json"
	"net/http"

	"loan-ledger/domain"
	"loan-ledger/service"
)

// ChartHandler devuelve el gráfico de saldo como página HTML. Usa Preview:
// pedir un gráfico no guarda el cálculo ni limpia el borrador.
type ChartHandler struct {
	ledger *service.LedgerService
	charts *service.ChartService
}

func NewChartHandler(ledger *service.LedgerService, charts *service.ChartService) *ChartHandler {
	return &ChartHandler{ledger: ledger, charts: charts}
}

func (h *ChartHandler) BalanceChart(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.CalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.ledger.Preview(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	line := h.charts.BuildBalanceChart(result)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(w); err != nil {
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
	}
}
