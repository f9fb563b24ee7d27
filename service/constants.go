package service

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DateLayout = "2006-01-02" // fechas de calendario, sin hora

	DraftTTL            = 30 * time.Minute // vida de un borrador en Redis
	MaxPaymentsPerDraft = 200              // máximo de pagos por sesión
)

var (
	MinPrincipal    = decimal.NewFromFloat(0.01)
	MaxPrincipal    = decimal.NewFromInt(1_000_000_000) // mil millones
	MaxInterestRate = decimal.NewFromInt(1000)          // 1000%
)
