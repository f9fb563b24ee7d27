package service

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"loan-ledger/domain"
)

// ChartService arma gráficos de presentación a partir de un resultado.
// La conversión decimal→float ocurre solo acá, en el borde de presentación.
type ChartService struct{}

func NewChartService() *ChartService {
	return &ChartService{}
}

// BuildBalanceChart grafica la evolución del saldo: el principal al inicio,
// el saldo después de cada pago y el saldo final a la fecha de evaluación.
func (s *ChartService) BuildBalanceChart(result domain.CalculationResult) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Evolución del saldo",
			Subtitle: "Saldo pendiente después de cada pago",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)

	dates := make([]string, 0, len(result.Ledger)+2)
	balances := make([]opts.LineData, 0, len(result.Ledger)+2)

	dates = append(dates, result.Terms.StartDate.Format(DateLayout))
	balances = append(balances, opts.LineData{Value: result.Terms.Principal.InexactFloat64()})

	for _, row := range result.Ledger {
		dates = append(dates, row.Date.Format(DateLayout))
		balances = append(balances, opts.LineData{Value: row.NewBalance.InexactFloat64()})
	}

	dates = append(dates, result.Summary.EvaluationDate.Format(DateLayout))
	balances = append(balances, opts.LineData{Value: result.Summary.FinalBalance.InexactFloat64()})

	line.SetXAxis(dates).AddSeries("Saldo", balances)
	return line
}
