package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"loan-ledger/domain"
	"loan-ledger/repository"
)

const draftKeyPrefix = "draft:"

// DraftService mantiene el estado en progreso de cada sesión: el formulario
// del préstamo y la lista de pagos antes de calcular. Reemplaza la sesión
// del servidor original por un borrador explícito con clave de sesión.
type DraftService struct {
	cache repository.CacheRepository
}

func NewDraftService(cache repository.CacheRepository) *DraftService {
	return &DraftService{cache: cache}
}

// Get devuelve el borrador de la sesión, o uno vacío si no existe.
func (s *DraftService) Get(sessionID string) (domain.CalculationDraft, error) {
	if sessionID == "" {
		return domain.CalculationDraft{}, errors.New("session_id requerido")
	}
	raw, ok := s.cache.Get(draftKeyPrefix + sessionID)
	if !ok {
		return domain.CalculationDraft{Payments: []domain.RawPayment{}}, nil
	}
	var draft domain.CalculationDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return domain.CalculationDraft{}, fmt.Errorf("borrador corrupto: %w", err)
	}
	if draft.Payments == nil {
		draft.Payments = []domain.RawPayment{}
	}
	return draft, nil
}

// AddPayment valida y agrega un pago al borrador. A diferencia del motor,
// acá una entrada malformada sí es un error visible para el usuario.
func (s *DraftService) AddPayment(req domain.AddPaymentRequest) (domain.CalculationDraft, error) {
	if req.Date == "" || req.Amount == "" {
		return domain.CalculationDraft{}, errors.New("debe completar fecha y monto")
	}
	if _, err := time.Parse(DateLayout, req.Date); err != nil {
		return domain.CalculationDraft{}, errors.New("datos de pago inválidos")
	}
	amount, err := parseDecimal(req.Amount)
	if err != nil || amount.Sign() <= 0 {
		return domain.CalculationDraft{}, errors.New("datos de pago inválidos")
	}

	draft, err := s.Get(req.SessionID)
	if err != nil {
		return domain.CalculationDraft{}, err
	}
	if len(draft.Payments) >= MaxPaymentsPerDraft {
		return domain.CalculationDraft{}, fmt.Errorf("máximo de %d pagos por sesión", MaxPaymentsPerDraft)
	}

	draft.Payments = append(draft.Payments, domain.RawPayment{
		Date:   req.Date,
		Amount: req.Amount,
	})
	if req.Terms != nil {
		draft.Terms = req.Terms
	}

	if err := s.put(req.SessionID, draft); err != nil {
		return domain.CalculationDraft{}, err
	}
	return draft, nil
}

// SaveTerms guarda el formulario del préstamo en el borrador sin tocar
// los pagos.
func (s *DraftService) SaveTerms(sessionID string, terms domain.DraftTerms) (domain.CalculationDraft, error) {
	draft, err := s.Get(sessionID)
	if err != nil {
		return domain.CalculationDraft{}, err
	}

	draft.Terms = &terms

	if err := s.put(sessionID, draft); err != nil {
		return domain.CalculationDraft{}, err
	}
	return draft, nil
}

// RemovePayment elimina el pago en la posición index. Igual que al agregar,
// puede venir el formulario para mantener el borrador al día.
func (s *DraftService) RemovePayment(req domain.RemovePaymentRequest) (domain.CalculationDraft, error) {
	draft, err := s.Get(req.SessionID)
	if err != nil {
		return domain.CalculationDraft{}, err
	}
	if req.Index < 0 || req.Index >= len(draft.Payments) {
		return domain.CalculationDraft{}, errors.New("índice de pago inválido")
	}

	draft.Payments = append(draft.Payments[:req.Index], draft.Payments[req.Index+1:]...)
	if req.Terms != nil {
		draft.Terms = req.Terms
	}

	if err := s.put(req.SessionID, draft); err != nil {
		return domain.CalculationDraft{}, err
	}
	return draft, nil
}

// Reset descarta el borrador completo de la sesión.
func (s *DraftService) Reset(sessionID string) error {
	if sessionID == "" {
		return errors.New("session_id requerido")
	}
	return s.cache.Delete(draftKeyPrefix + sessionID)
}

func (s *DraftService) put(sessionID string, draft domain.CalculationDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.cache.Set(draftKeyPrefix+sessionID, string(raw))
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}
