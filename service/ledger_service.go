package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"loan-ledger/domain"
	"loan-ledger/repository"
)

type LedgerService struct {
	repo   repository.CalculationRepository
	drafts *DraftService
}

// NewLedgerService creates a new LedgerService. drafts may be nil when the
// caller always sends payments inline.
func NewLedgerService(repo repository.CalculationRepository,
	drafts *DraftService,
) *LedgerService {
	return &LedgerService{repo: repo, drafts: drafts}
}

// Preview valida la solicitud y corre el motor de devengamiento sin
// efectos: no guarda el resultado ni toca el borrador de la sesión.
func (s *LedgerService) Preview(
	req domain.CalculationRequest,
) (domain.CalculationResult, error) {

	req = s.mergeDraft(req)

	terms, evaluationDate, err := s.validate(req)
	if err != nil {
		return domain.CalculationResult{}, err
	}

	return ComputeLedger(terms, req.Payments, evaluationDate)
}

// Calculate corre el cálculo completo: valida, computa, guarda el resultado
// y limpia el borrador de la sesión, igual que el flujo de "calculate" del
// formulario original.
func (s *LedgerService) Calculate(
	req domain.CalculationRequest,
) (domain.CalculationResult, error) {

	result, err := s.Preview(req)
	if err != nil {
		return domain.CalculationResult{}, err
	}

	// Guardar el resultado (no crítico si falla)
	if err := s.repo.Save(result.Terms, result); err != nil {
		log.Printf("Warning: failed to save calculation: %v", err)
	}

	if req.SessionID != "" && s.drafts != nil {
		if err := s.drafts.Reset(req.SessionID); err != nil {
			log.Printf("Warning: failed to clear draft %q: %v", req.SessionID, err)
		}
	}

	return result, nil
}

// mergeDraft completa la solicitud con el borrador de la sesión: pagos si no
// vinieron inline, y campos del formulario que falten.
func (s *LedgerService) mergeDraft(req domain.CalculationRequest) domain.CalculationRequest {
	if req.SessionID == "" || s.drafts == nil {
		return req
	}
	draft, err := s.drafts.Get(req.SessionID)
	if err != nil {
		return req
	}
	if len(req.Payments) == 0 {
		req.Payments = draft.Payments
	}
	if draft.Terms != nil {
		if req.Principal.IsZero() && draft.Terms.Principal != "" {
			req.Principal, _ = parseDecimal(draft.Terms.Principal)
		}
		if req.InterestRate.IsZero() && draft.Terms.InterestRate != "" {
			req.InterestRate, _ = parseDecimal(draft.Terms.InterestRate)
		}
		if req.InterestMode == "" {
			req.InterestMode = draft.Terms.InterestMode
		}
		if req.StartDate == "" {
			req.StartDate = draft.Terms.StartDate
		}
	}
	return req
}

// validate aplica los chequeos de rango y formato del proveedor de entrada.
// El motor nunca ve términos inválidos.
func (s *LedgerService) validate(
	req domain.CalculationRequest,
) (domain.LoanTerms, time.Time, error) {

	// Validar entrada
	if req.Principal.LessThan(MinPrincipal) {
		return domain.LoanTerms{}, time.Time{}, errors.New("monto principal inválido")
	}
	if req.Principal.GreaterThan(MaxPrincipal) {
		return domain.LoanTerms{}, time.Time{}, fmt.Errorf("monto excede el máximo permitido de $%s", MaxPrincipal)
	}
	if req.InterestRate.IsNegative() {
		return domain.LoanTerms{}, time.Time{}, errors.New("tasa de interés inválida")
	}
	if req.InterestRate.GreaterThan(MaxInterestRate) {
		return domain.LoanTerms{}, time.Time{}, fmt.Errorf("tasa de interés excede el máximo permitido de %s%%", MaxInterestRate)
	}

	mode, err := domain.ParseAccrualMode(req.InterestMode)
	if err != nil {
		return domain.LoanTerms{}, time.Time{}, err
	}

	startDate, err := time.Parse(DateLayout, req.StartDate)
	if err != nil {
		return domain.LoanTerms{}, time.Time{}, errors.New("fecha de inicio inválida")
	}

	evaluationDate := today()
	if req.EvaluationDate != "" {
		evaluationDate, err = time.Parse(DateLayout, req.EvaluationDate)
		if err != nil {
			return domain.LoanTerms{}, time.Time{}, errors.New("fecha de evaluación inválida")
		}
	}

	terms := domain.LoanTerms{
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		Mode:         mode,
		StartDate:    startDate,
	}
	return terms, evaluationDate, nil
}

// today devuelve la fecha de hoy en UTC, sin componente de hora.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
