package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"loan-ledger/domain"
)

var hundred = decimal.NewFromInt(100)

// periodDivisors traduce cada modo a los días que cubre una tasa completa.
// Agregar un modo nuevo es una línea acá más su constante en domain.
var periodDivisors = map[domain.AccrualMode]decimal.Decimal{
	domain.ModeDaily:   decimal.NewFromInt(1),
	domain.ModeMonthly: decimal.NewFromInt(30),
	domain.ModeYearly:  decimal.NewFromInt(365),
}

// accrueInterest devenga interés simple sobre el saldo durante days días.
// Un saldo no positivo no devenga nada.
func accrueInterest(balance, rate decimal.Decimal, days int, divisor decimal.Decimal) decimal.Decimal {
	if balance.Sign() <= 0 {
		return decimal.Zero
	}
	return balance.
		Mul(rate).
		Div(hundred).
		Mul(decimal.NewFromInt(int64(days))).
		Div(divisor)
}

// ComputeLedger es el núcleo del sistema: ordena los pagos, devenga interés
// entre eventos, aplica cada pago y devuelve el libro más el resumen a la
// fecha de evaluación. Es una función pura, sin reloj ni estado compartido.
//
// Políticas fijas:
//   - entradas que no parsean (fecha o monto) se descartan en silencio;
//   - pagos con fecha anterior al cursor se saltan por completo, sin
//     recortar los días a cero;
//   - pagos del mismo día conservan el orden en que se ingresaron.
func ComputeLedger(terms domain.LoanTerms, raw []domain.RawPayment, evaluationDate time.Time) (domain.CalculationResult, error) {
	divisor, ok := periodDivisors[terms.Mode]
	if !ok {
		return domain.CalculationResult{}, fmt.Errorf("modo de interés no soportado: %q", terms.Mode)
	}

	events := parsePayments(raw)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	balance := terms.Principal
	cursor := terms.StartDate
	totalInterest := decimal.Zero
	totalPaid := decimal.Zero
	totalOverpayment := decimal.Zero
	ledger := make([]domain.LedgerRow, 0, len(events))

	for _, ev := range events {
		days := daysBetween(cursor, ev.Date)
		if days < 0 {
			continue
		}

		interest := accrueInterest(balance, terms.InterestRate, days, divisor)
		totalInterest = totalInterest.Add(interest)
		balance = balance.Add(interest)

		row := domain.LedgerRow{
			Date:        ev.Date,
			Days:        days,
			Interest:    interest,
			Payment:     ev.Amount,
			Overpayment: decimal.Zero,
		}
		if ev.Amount.GreaterThan(balance) {
			row.Overpayment = ev.Amount.Sub(balance)
			row.PrincipalPaid = balance
			totalOverpayment = totalOverpayment.Add(row.Overpayment)
			totalPaid = totalPaid.Add(balance)
			balance = decimal.Zero
		} else {
			balance = balance.Sub(ev.Amount)
			row.PrincipalPaid = ev.Amount
			totalPaid = totalPaid.Add(ev.Amount)
		}
		row.NewBalance = balance
		ledger = append(ledger, row)
		cursor = ev.Date
	}

	// Interés de cola: desde el último evento hasta la fecha de evaluación.
	finalDays := daysBetween(cursor, evaluationDate)
	if finalDays < 0 {
		finalDays = 0
	}
	finalInterest := accrueInterest(balance, terms.InterestRate, finalDays, divisor)
	totalInterest = totalInterest.Add(finalInterest)
	balance = balance.Add(finalInterest)

	return domain.CalculationResult{
		Terms:  terms,
		Ledger: ledger,
		Summary: domain.Summary{
			TotalPaid:        totalPaid,
			TotalInterest:    totalInterest,
			TotalOverpayment: totalOverpayment,
			FinalInterest:    finalInterest,
			FinalDays:        finalDays,
			FinalBalance:     balance,
			EvaluationDate:   evaluationDate,
		},
	}, nil
}

// parsePayments filtra las entradas crudas. Fecha inválida, monto no
// numérico o monto no positivo descartan la entrada sin error.
func parsePayments(raw []domain.RawPayment) []domain.PaymentEvent {
	events := make([]domain.PaymentEvent, 0, len(raw))
	for _, p := range raw {
		date, err := time.Parse(DateLayout, p.Date)
		if err != nil {
			continue
		}
		amount, err := decimal.NewFromString(p.Amount)
		if err != nil || amount.Sign() <= 0 {
			continue
		}
		events = append(events, domain.PaymentEvent{Date: date, Amount: amount})
	}
	return events
}

func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
