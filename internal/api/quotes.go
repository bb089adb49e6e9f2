package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"portfolioquotes/internal/config"
	"portfolioquotes/internal/quote"
)

// QuoteService is the quote API served over HTTP. *service.Service implements it.
type QuoteService interface {
	GetQuote(ctx context.Context, symbol string) quote.Result
	FetchQuotes(ctx context.Context, symbols []string) []quote.Result
	GetCompanyInfo(ctx context.Context, symbol string) (quote.CompanyInfo, quote.Source, error)
	SearchSymbols(ctx context.Context, query string) []quote.Match
	ValidateSymbol(ctx context.Context, symbol string) bool
	Invalidate(ctx context.Context, symbol string) error
	InvalidateAll(ctx context.Context) error
}

type QuoteHandler struct {
	svc        QuoteService
	maxSymbols int
	timeout    time.Duration
	batchDelay time.Duration
}

// NewQuoteHandler serves svc. Batch requests get timeout plus one batch
// delay per extra symbol.
func NewQuoteHandler(svc QuoteService, maxSymbols int, timeout, batchDelay time.Duration) *QuoteHandler {
	return &QuoteHandler{svc: svc, maxSymbols: maxSymbols, timeout: timeout, batchDelay: batchDelay}
}

func (h *QuoteHandler) RegisterRoutes(r *gin.RouterGroup) {
	q := r.Group("/quotes")
	{
		q.GET("", h.GetQuotes)
		q.POST("", h.PostQuotes)
		q.GET("/:symbol", h.GetQuote)
	}
	r.GET("/companies/:symbol", h.GetCompany)
	r.GET("/search", h.Search)
	r.GET("/symbols/:symbol/validate", h.Validate)

	cache := r.Group("/cache")
	{
		cache.DELETE("", h.InvalidateAll)
		cache.DELETE("/:symbol", h.Invalidate)
	}
}

func (h *QuoteHandler) context(c *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), d)
}

// GetQuote answers 404 with the lookup result when the symbol is not found.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	ctx, cancel := h.context(c, h.timeout)
	defer cancel()

	res := h.svc.GetQuote(ctx, c.Param("symbol"))
	if !res.Found() {
		c.JSON(http.StatusNotFound, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

type quotesResponse struct {
	Quotes  []quote.Quote `json:"quotes"`
	Missing []string      `json:"missing"`
}

func (h *QuoteHandler) GetQuotes(c *gin.Context) {
	raw := c.Query("symbols")
	if strings.TrimSpace(raw) == "" {
		badRequest(c, "missing symbols query param")
		return
	}
	h.writeQuotes(c, config.SplitCSV(raw))
}

type postQuotesReq struct {
	Symbols []string `json:"symbols" binding:"required"`
}

func (h *QuoteHandler) PostQuotes(c *gin.Context) {
	var req postQuotesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	h.writeQuotes(c, req.Symbols)
}

func (h *QuoteHandler) writeQuotes(c *gin.Context, symbols []string) {
	symbols = quote.NormalizeSymbols(symbols)
	if len(symbols) == 0 {
		badRequest(c, "symbols cannot be empty")
		return
	}
	if h.maxSymbols > 0 && len(symbols) > h.maxSymbols {
		badRequest(c, "too many symbols")
		return
	}

	ctx, cancel := h.context(c, h.timeout+time.Duration(len(symbols)-1)*h.batchDelay)
	defer cancel()

	resp := quotesResponse{Quotes: []quote.Quote{}, Missing: []string{}}
	for _, res := range h.svc.FetchQuotes(ctx, symbols) {
		if res.Found() {
			resp.Quotes = append(resp.Quotes, *res.Quote)
		} else {
			resp.Missing = append(resp.Missing, res.Symbol)
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuoteHandler) GetCompany(c *gin.Context) {
	ctx, cancel := h.context(c, h.timeout)
	defer cancel()

	info, src, err := h.svc.GetCompanyInfo(ctx, c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": info, "source": src})
}

func (h *QuoteHandler) Search(c *gin.Context) {
	ctx, cancel := h.context(c, h.timeout)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{"matches": h.svc.SearchSymbols(ctx, c.Query("q"))})
}

func (h *QuoteHandler) Validate(c *gin.Context) {
	ctx, cancel := h.context(c, h.timeout)
	defer cancel()

	symbol := quote.NormalizeSymbol(c.Param("symbol"))
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "valid": h.svc.ValidateSymbol(ctx, symbol)})
}

func (h *QuoteHandler) Invalidate(c *gin.Context) {
	if err := h.svc.Invalidate(c.Request.Context(), c.Param("symbol")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *QuoteHandler) InvalidateAll(c *gin.Context) {
	if err := h.svc.InvalidateAll(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
