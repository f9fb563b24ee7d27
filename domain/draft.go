package domain

// DraftTerms guarda el formulario del préstamo tal como lo escribió el
// usuario, sin validar todavía.
type DraftTerms struct {
	Principal    string `json:"principal"`
	InterestRate string `json:"interest_rate"`
	InterestMode string `json:"interest_mode"`
	StartDate    string `json:"start_date"`
}

// CalculationDraft es el estado en progreso de una sesión: el formulario
// y la lista de pagos acumulados antes de calcular.
type CalculationDraft struct {
	Terms    *DraftTerms  `json:"terms,omitempty"`
	Payments []RawPayment `json:"payments"`
}

type AddPaymentRequest struct {
	SessionID string      `json:"session_id"`
	Date      string      `json:"date"`
	Amount    string      `json:"amount"`
	Terms     *DraftTerms `json:"terms,omitempty"`
}

type RemovePaymentRequest struct {
	SessionID string      `json:"session_id"`
	Index     int         `json:"index"`
	Terms     *DraftTerms `json:"terms,omitempty"`
}

type ResetRequest struct {
	SessionID string `json:"session_id"`
}
