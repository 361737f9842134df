package domain

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// Report is the profitability summary for one vehicle. Percentage fields are
// nil when the denominator is zero: "not meaningful", never coerced to 0.
type Report struct {
	TotalCostBase       decimal.Decimal
	SaleAmountBase      decimal.Decimal
	Profit              decimal.Decimal
	ProfitMarginPercent *decimal.Decimal
	ROIPercent          *decimal.Decimal
	ProfitVsTarget      *decimal.Decimal
}

// ComputeReport produces the profitability report from a cost ledger and an
// optional sale record. Pure function; an unsold vehicle reports sale 0.
func ComputeReport(ledger *CostLedger, sale *SaleRecord, targetProfit *decimal.Decimal) Report {
	totalCost := ledger.TotalBase()

	saleAmount := decimal.Zero
	if sale != nil {
		saleAmount = sale.AmountBase(ledger.BaseCurrency)
	}

	profit := saleAmount.Sub(totalCost)

	report := Report{
		TotalCostBase:  totalCost,
		SaleAmountBase: saleAmount,
		Profit:         profit,
	}

	if !saleAmount.IsZero() {
		margin := profit.Div(saleAmount).Mul(oneHundred)
		report.ProfitMarginPercent = &margin
	}

	if !totalCost.IsZero() {
		roi := profit.Div(totalCost).Mul(oneHundred)
		report.ROIPercent = &roi
	}

	if targetProfit != nil {
		vsTarget := profit.Sub(*targetProfit)
		report.ProfitVsTarget = &vsTarget
	}

	return report
}
