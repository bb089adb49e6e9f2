// Package portfolio manages named portfolios of stock holdings and values
// them with quotes from the quote service.
package portfolio

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"portfolioquotes/internal/quote"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// DefaultCurrency is used when a portfolio is created without one.
const DefaultCurrency = "USD"

type Portfolio struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Holding is a position in one symbol. CostBasis is per share; CurrentPrice
// is the last price applied by AddHolding or Refresh.
type Holding struct {
	ID             string          `json:"id"`
	PortfolioID    string          `json:"portfolio_id"`
	Symbol         string          `json:"symbol"`
	Shares         decimal.Decimal `json:"shares"`
	CostBasis      decimal.Decimal `json:"cost_basis"`
	CurrentPrice   decimal.Decimal `json:"current_price"`
	PriceSource    quote.Source    `json:"price_source"`
	PriceUpdatedAt time.Time       `json:"price_updated_at"`
	Name           string          `json:"name,omitempty"`
	Sector         string          `json:"sector,omitempty"`
	Industry       string          `json:"industry,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Repository persists portfolios and their holdings. Lookups of missing
// records return errors wrapping ErrNotFound.
//
//go:generate mockgen -package=portfolio_test -destination=mock_repository_test.go -source=portfolio.go Repository
type Repository interface {
	CreatePortfolio(ctx context.Context, p Portfolio) error
	GetPortfolio(ctx context.Context, id string) (Portfolio, error)
	ListPortfolios(ctx context.Context) ([]Portfolio, error)
	// DeletePortfolio removes the portfolio and all of its holdings.
	DeletePortfolio(ctx context.Context, id string) error

	// SaveHolding inserts or replaces a holding by ID.
	SaveHolding(ctx context.Context, h Holding) error
	DeleteHolding(ctx context.Context, portfolioID, holdingID string) error
	// ListHoldings returns the holdings of a portfolio ordered by symbol.
	ListHoldings(ctx context.Context, portfolioID string) ([]Holding, error)
}
