package gormstore

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"portfolioquotes/internal/portfolio"
	"portfolioquotes/internal/quote"
)

// PortfolioModel is the portfolios table row.
type PortfolioModel struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(200);not null"`
	Currency  string    `gorm:"column:currency;type:varchar(3);not null"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (PortfolioModel) TableName() string {
	return "portfolios"
}

func (m *PortfolioModel) ToDomain() portfolio.Portfolio {
	return portfolio.Portfolio{
		ID:        m.ID,
		Name:      m.Name,
		Currency:  m.Currency,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromPortfolioDomain(p portfolio.Portfolio) *PortfolioModel {
	return &PortfolioModel{
		ID:        p.ID,
		Name:      p.Name,
		Currency:  p.Currency,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// HoldingModel is the holdings table row. Amounts are stored as decimal
// strings to keep their exact value across drivers.
type HoldingModel struct {
	ID             string    `gorm:"column:id;type:varchar(36);primaryKey"`
	PortfolioID    string    `gorm:"column:portfolio_id;type:varchar(36);not null;index"`
	Symbol         string    `gorm:"column:symbol;type:varchar(20);not null"`
	Shares         string    `gorm:"column:shares;type:varchar(40);not null"`
	CostBasis      string    `gorm:"column:cost_basis;type:varchar(40);not null"`
	CurrentPrice   string    `gorm:"column:current_price;type:varchar(40)"`
	PriceSource    string    `gorm:"column:price_source;type:varchar(20)"`
	PriceUpdatedAt time.Time `gorm:"column:price_updated_at"`
	Name           string    `gorm:"column:name;type:varchar(200)"`
	Sector         string    `gorm:"column:sector;type:varchar(100)"`
	Industry       string    `gorm:"column:industry;type:varchar(200)"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (HoldingModel) TableName() string {
	return "holdings"
}

// ToDomain fails on amounts that are not decimals. An empty current price
// reads as zero.
func (m *HoldingModel) ToDomain() (portfolio.Holding, error) {
	shares, err := decimal.NewFromString(m.Shares)
	if err != nil {
		return portfolio.Holding{}, fmt.Errorf("holding %s shares %q: %w", m.ID, m.Shares, err)
	}
	cost, err := decimal.NewFromString(m.CostBasis)
	if err != nil {
		return portfolio.Holding{}, fmt.Errorf("holding %s cost basis %q: %w", m.ID, m.CostBasis, err)
	}
	price := decimal.Zero
	if m.CurrentPrice != "" {
		if price, err = decimal.NewFromString(m.CurrentPrice); err != nil {
			return portfolio.Holding{}, fmt.Errorf("holding %s current price %q: %w", m.ID, m.CurrentPrice, err)
		}
	}
	return portfolio.Holding{
		ID:             m.ID,
		PortfolioID:    m.PortfolioID,
		Symbol:         m.Symbol,
		Shares:         shares,
		CostBasis:      cost,
		CurrentPrice:   price,
		PriceSource:    quote.ParseSource(m.PriceSource),
		PriceUpdatedAt: m.PriceUpdatedAt,
		Name:           m.Name,
		Sector:         m.Sector,
		Industry:       m.Industry,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}

func FromHoldingDomain(h portfolio.Holding) *HoldingModel {
	return &HoldingModel{
		ID:             h.ID,
		PortfolioID:    h.PortfolioID,
		Symbol:         h.Symbol,
		Shares:         h.Shares.String(),
		CostBasis:      h.CostBasis.String(),
		CurrentPrice:   h.CurrentPrice.String(),
		PriceSource:    h.PriceSource.String(),
		PriceUpdatedAt: h.PriceUpdatedAt,
		Name:           h.Name,
		Sector:         h.Sector,
		Industry:       h.Industry,
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      h.UpdatedAt,
	}
}
