package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccrualMode indica cómo se interpreta la tasa de interés simple.
type AccrualMode string

const (
	ModeDaily   AccrualMode = "daily"
	ModeMonthly AccrualMode = "monthly"
	ModeYearly  AccrualMode = "yearly"
)

// ParseAccrualMode valida el modo recibido del cliente.
func ParseAccrualMode(s string) (AccrualMode, error) {
	switch AccrualMode(s) {
	case ModeDaily, ModeMonthly, ModeYearly:
		return AccrualMode(s), nil
	}
	return "", fmt.Errorf("modo de interés inválido: %q", s)
}

// LoanTerms son los términos validados del préstamo. Inmutables durante
// un cálculo.
type LoanTerms struct {
	Principal    decimal.Decimal `json:"principal"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Mode         AccrualMode     `json:"interest_mode"`
	StartDate    time.Time       `json:"start_date"`
}

// RawPayment es una entrada de pago sin validar, tal como llega del cliente.
type RawPayment struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

// PaymentEvent es un pago ya parseado. Amount siempre es positivo.
type PaymentEvent struct {
	Date   time.Time
	Amount decimal.Decimal
}

// CalculationRequest es el cuerpo de /loan/calculate. Si viene session_id
// y no hay pagos inline, se usan los pagos del borrador de esa sesión.
type CalculationRequest struct {
	SessionID      string          `json:"session_id,omitempty"`
	Principal      decimal.Decimal `json:"principal"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	InterestMode   string          `json:"interest_mode"`
	StartDate      string          `json:"start_date"`
	EvaluationDate string          `json:"evaluation_date,omitempty"`
	Payments       []RawPayment    `json:"payments,omitempty"`
}

// LedgerRow registra un pago aplicado: los días transcurridos desde el
// evento anterior, el interés devengado en ese período y el saldo resultante.
type LedgerRow struct {
	Date          time.Time       `json:"date"`
	Days          int             `json:"days"`
	Interest      decimal.Decimal `json:"interest"`
	Payment       decimal.Decimal `json:"payment"`
	PrincipalPaid decimal.Decimal `json:"principal_paid"`
	Overpayment   decimal.Decimal `json:"overpayment"`
	NewBalance    decimal.Decimal `json:"new_balance"`
}

// Summary son los totales acumulados a la fecha de evaluación. TotalPaid
// cuenta solo los montos aplicados al saldo; los excedentes van en
// TotalOverpayment.
type Summary struct {
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalInterest    decimal.Decimal `json:"total_interest"`
	TotalOverpayment decimal.Decimal `json:"total_overpayment"`
	FinalInterest    decimal.Decimal `json:"final_interest"`
	FinalDays        int             `json:"final_days"`
	FinalBalance     decimal.Decimal `json:"final_balance"`
	EvaluationDate   time.Time       `json:"evaluation_date"`
}

// CalculationResult es lo que consume el presentador: los términos
// originales, el libro de pagos ordenado y el resumen final.
type CalculationResult struct {
	Terms   LoanTerms   `json:"terms"`
	Ledger  []LedgerRow `json:"ledger"`
	Summary Summary     `json:"summary"`
}

// Rounded devuelve una copia con dos decimales para presentación.
// Los valores internos del cálculo nunca se redondean.
func (r CalculationResult) Rounded() CalculationResult {
	out := r
	out.Terms.Principal = r.Terms.Principal.Round(2)
	out.Terms.InterestRate = r.Terms.InterestRate.Round(2)
	out.Ledger = make([]LedgerRow, len(r.Ledger))
	for i, row := range r.Ledger {
		row.Interest = row.Interest.Round(2)
		row.Payment = row.Payment.Round(2)
		row.PrincipalPaid = row.PrincipalPaid.Round(2)
		row.Overpayment = row.Overpayment.Round(2)
		row.NewBalance = row.NewBalance.Round(2)
		out.Ledger[i] = row
	}
	out.Summary.TotalPaid = r.Summary.TotalPaid.Round(2)
	out.Summary.TotalInterest = r.Summary.TotalInterest.Round(2)
	out.Summary.TotalOverpayment = r.Summary.TotalOverpayment.Round(2)
	out.Summary.FinalInterest = r.Summary.FinalInterest.Round(2)
	out.Summary.FinalBalance = r.Summary.FinalBalance.Round(2)
	return out
}
