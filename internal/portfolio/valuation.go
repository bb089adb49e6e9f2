package portfolio

import (
	"cmp"
	"context"
	"slices"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// UnclassifiedSector groups holdings without a known sector.
const UnclassifiedSector = "Unclassified"

var hundred = decimal.NewFromInt(100)

// HoldingValue is one holding priced at its current price.
type HoldingValue struct {
	Holding
	CostTotal       decimal.Decimal `json:"cost_total"`
	MarketValue     decimal.Decimal `json:"market_value"`
	GainLoss        decimal.Decimal `json:"gain_loss"`
	GainLossPercent decimal.Decimal `json:"gain_loss_percent"`
	// Weight is the percentage of the portfolio market value.
	Weight         decimal.Decimal `json:"weight"`
	MarketValueFmt string          `json:"market_value_display"`
	GainLossFmt    string          `json:"gain_loss_display"`
}

// SectorWeight is the market value held in one sector.
type SectorWeight struct {
	Sector string          `json:"sector"`
	Value  decimal.Decimal `json:"value"`
	Weight decimal.Decimal `json:"weight"`
}

type Valuation struct {
	Portfolio            Portfolio       `json:"portfolio"`
	Holdings             []HoldingValue  `json:"holdings"`
	TotalCost            decimal.Decimal `json:"total_cost"`
	TotalValue           decimal.Decimal `json:"total_value"`
	TotalGainLoss        decimal.Decimal `json:"total_gain_loss"`
	TotalGainLossPercent decimal.Decimal `json:"total_gain_loss_percent"`
	Sectors              []SectorWeight  `json:"sectors"`
	TotalValueFmt        string          `json:"total_value_display"`
	TotalGainLossFmt     string          `json:"total_gain_loss_display"`
}

// Valuation values a portfolio at the prices last applied to its holdings.
// Call Refresh first for current prices.
func (s *Service) Valuation(ctx context.Context, portfolioID string) (Valuation, error) {
	p, err := s.repo.GetPortfolio(ctx, portfolioID)
	if err != nil {
		return Valuation{}, err
	}
	holdings, err := s.repo.ListHoldings(ctx, portfolioID)
	if err != nil {
		return Valuation{}, err
	}
	return value(p, holdings), nil
}

func value(p Portfolio, holdings []Holding) Valuation {
	v := Valuation{Portfolio: p, Holdings: make([]HoldingValue, 0, len(holdings)), Sectors: []SectorWeight{}}
	sectors := map[string]decimal.Decimal{}

	for _, h := range holdings {
		hv := HoldingValue{
			Holding:     h,
			CostTotal:   h.CostBasis.Mul(h.Shares),
			MarketValue: h.CurrentPrice.Mul(h.Shares),
		}
		hv.GainLoss = hv.MarketValue.Sub(hv.CostTotal)
		hv.GainLossPercent = percent(hv.GainLoss, hv.CostTotal)
		hv.MarketValueFmt = formatMoney(hv.MarketValue, p.Currency)
		hv.GainLossFmt = formatSigned(hv.GainLoss, p.Currency)

		v.TotalCost = v.TotalCost.Add(hv.CostTotal)
		v.TotalValue = v.TotalValue.Add(hv.MarketValue)

		sector := h.Sector
		if sector == "" {
			sector = UnclassifiedSector
		}
		sectors[sector] = sectors[sector].Add(hv.MarketValue)
		v.Holdings = append(v.Holdings, hv)
	}

	for i := range v.Holdings {
		v.Holdings[i].Weight = percent(v.Holdings[i].MarketValue, v.TotalValue)
	}
	for sector, val := range sectors {
		v.Sectors = append(v.Sectors, SectorWeight{Sector: sector, Value: val, Weight: percent(val, v.TotalValue)})
	}
	slices.SortFunc(v.Sectors, func(a, b SectorWeight) int {
		return cmp.Or(b.Value.Cmp(a.Value), cmp.Compare(a.Sector, b.Sector))
	})

	v.TotalGainLoss = v.TotalValue.Sub(v.TotalCost)
	v.TotalGainLossPercent = percent(v.TotalGainLoss, v.TotalCost)
	v.TotalValueFmt = formatMoney(v.TotalValue, p.Currency)
	v.TotalGainLossFmt = formatSigned(v.TotalGainLoss, p.Currency)
	return v
}

// percent returns part/whole*100 rounded to two places, or zero when whole is zero.
func percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

// formatMoney renders amount in the minor units of currency, e.g. "$1,234.50".
func formatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}

func formatSigned(amount decimal.Decimal, currency string) string {
	if amount.IsPositive() {
		return "+" + formatMoney(amount, currency)
	}
	return formatMoney(amount, currency)
}
