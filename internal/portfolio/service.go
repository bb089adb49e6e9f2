package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"portfolioquotes/internal/logging"
	"portfolioquotes/internal/quote"
)

// Quotes is the part of the quote service the portfolio service needs.
type Quotes interface {
	GetQuote(ctx context.Context, symbol string) quote.Result
	FetchQuotes(ctx context.Context, symbols []string) []quote.Result
	GetCompanyInfo(ctx context.Context, symbol string) (quote.CompanyInfo, quote.Source, error)
}

type Service struct {
	repo   Repository
	quotes Quotes
	now    func() time.Time
	newID  func() string
	log    *zap.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs overrides uuid.NewString.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = logging.OrNop(l) }
}

func NewService(repo Repository, quotes Quotes, opts ...Option) *Service {
	s := &Service{repo: repo, quotes: quotes, now: time.Now, newID: uuid.NewString, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePortfolio creates an empty portfolio. currency defaults to USD and
// must be an ISO 4217 code.
func (s *Service) CreatePortfolio(ctx context.Context, name, currency string) (Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Portfolio{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	if money.GetCurrency(currency) == nil {
		return Portfolio{}, fmt.Errorf("%w: unknown currency %q", ErrInvalidInput, currency)
	}

	now := s.now()
	p := Portfolio{ID: s.newID(), Name: name, Currency: currency, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.CreatePortfolio(ctx, p); err != nil {
		return Portfolio{}, fmt.Errorf("create portfolio: %w", err)
	}
	s.log.Info("portfolio created", zap.String("portfolio_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (s *Service) ListPortfolios(ctx context.Context) ([]Portfolio, error) {
	return s.repo.ListPortfolios(ctx)
}

func (s *Service) GetPortfolio(ctx context.Context, id string) (Portfolio, error) {
	return s.repo.GetPortfolio(ctx, id)
}

// DeletePortfolio removes a portfolio together with its holdings.
func (s *Service) DeletePortfolio(ctx context.Context, id string) error {
	return s.repo.DeletePortfolio(ctx, id)
}

// AddHolding buys shares of symbol at costBasis per share. Adding a symbol
// already held merges into that holding at the weighted average cost.
// The symbol must resolve to a quote; its price is snapshotted on the holding.
func (s *Service) AddHolding(ctx context.Context, portfolioID, symbol string, shares, costBasis decimal.Decimal) (Holding, error) {
	symbol = quote.NormalizeSymbol(symbol)
	switch {
	case symbol == "":
		return Holding{}, fmt.Errorf("%w: symbol is required", ErrInvalidInput)
	case !shares.IsPositive():
		return Holding{}, fmt.Errorf("%w: shares must be positive", ErrInvalidInput)
	case costBasis.IsNegative():
		return Holding{}, fmt.Errorf("%w: cost basis must not be negative", ErrInvalidInput)
	}

	holdings, err := s.repo.ListHoldings(ctx, portfolioID)
	if err != nil {
		return Holding{}, err
	}

	res := s.quotes.GetQuote(ctx, symbol)
	if !res.Found() {
		return Holding{}, fmt.Errorf("quote %s: %w", symbol, res.Cause)
	}

	now := s.now()
	h := Holding{ID: s.newID(), PortfolioID: portfolioID, Symbol: symbol, Shares: shares, CostBasis: costBasis, CreatedAt: now}
	for _, existing := range holdings {
		if existing.Symbol != symbol {
			continue
		}
		total := existing.Shares.Add(shares)
		h = existing
		h.CostBasis = existing.CostBasis.Mul(existing.Shares).Add(costBasis.Mul(shares)).Div(total)
		h.Shares = total
		break
	}
	h.applyQuote(res, now)
	if h.Sector == "" {
		s.applyCompany(ctx, &h)
	}

	if err := s.repo.SaveHolding(ctx, h); err != nil {
		return Holding{}, fmt.Errorf("save holding %s: %w", symbol, err)
	}
	return h, nil
}

func (s *Service) RemoveHolding(ctx context.Context, portfolioID, holdingID string) error {
	return s.repo.DeleteHolding(ctx, portfolioID, holdingID)
}

func (s *Service) ListHoldings(ctx context.Context, portfolioID string) ([]Holding, error) {
	return s.repo.ListHoldings(ctx, portfolioID)
}

// RefreshReport lists the symbols of one Refresh by outcome.
type RefreshReport struct {
	Updated []string `json:"updated"`
	Missing []string `json:"missing"`
	Failed  []string `json:"failed"`
}

// Refresh applies current quotes to every holding of a portfolio. Symbols
// without a quote keep their previous price and are reported as missing;
// holdings that fail to save are reported as failed. Neither is an error.
func (s *Service) Refresh(ctx context.Context, portfolioID string) (RefreshReport, error) {
	holdings, err := s.repo.ListHoldings(ctx, portfolioID)
	if err != nil {
		return RefreshReport{}, err
	}

	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		symbols = append(symbols, h.Symbol)
	}
	bySymbol := make(map[string]quote.Result, len(holdings))
	for _, res := range s.quotes.FetchQuotes(ctx, symbols) {
		bySymbol[res.Symbol] = res
	}

	report := RefreshReport{Updated: []string{}, Missing: []string{}, Failed: []string{}}
	now := s.now()
	for _, h := range holdings {
		res := bySymbol[h.Symbol]
		if !res.Found() {
			report.Missing = append(report.Missing, h.Symbol)
			continue
		}
		h.applyQuote(res, now)
		if h.Sector == "" {
			s.applyCompany(ctx, &h)
		}
		if err := s.repo.SaveHolding(ctx, h); err != nil {
			s.log.Warn("saving refreshed holding failed",
				zap.String("portfolio_id", portfolioID), zap.String("symbol", h.Symbol), zap.Error(err))
			report.Failed = append(report.Failed, h.Symbol)
			continue
		}
		report.Updated = append(report.Updated, h.Symbol)
	}

	s.log.Info("portfolio refreshed", zap.String("portfolio_id", portfolioID),
		zap.Int("updated", len(report.Updated)), zap.Int("missing", len(report.Missing)), zap.Int("failed", len(report.Failed)))
	return report, nil
}

func (h *Holding) applyQuote(res quote.Result, now time.Time) {
	h.CurrentPrice = res.Quote.Price
	h.PriceSource = res.Source
	h.PriceUpdatedAt = res.Quote.LastUpdated
	h.UpdatedAt = now
}

// applyCompany fills the classification of h; lookup failures leave it unset
// for the next refresh.
func (s *Service) applyCompany(ctx context.Context, h *Holding) {
	info, _, err := s.quotes.GetCompanyInfo(ctx, h.Symbol)
	if err != nil {
		if !errors.Is(err, quote.ErrUnknownSymbol) {
			s.log.Warn("company info lookup failed", zap.String("symbol", h.Symbol), zap.Error(err))
		}
		return
	}
	if h.Name == "" {
		h.Name = info.Name
	}
	h.Sector, h.Industry = info.Sector, info.Industry
}
