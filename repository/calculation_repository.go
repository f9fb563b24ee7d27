package repository

import "loan-ledger/domain"

type CalculationRepository interface {
	Save(terms domain.LoanTerms, result domain.CalculationResult) error
}
