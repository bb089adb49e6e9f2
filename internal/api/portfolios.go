package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"portfolioquotes/internal/portfolio"
)

type PortfolioHandler struct {
	svc        *portfolio.Service
	timeout    time.Duration
	batchDelay time.Duration
}

// NewPortfolioHandler serves svc. Refresh fetches one quote per holding
// spaced by batchDelay, so its write deadline is pushed out to timeout plus
// one delay per extra holding.
func NewPortfolioHandler(svc *portfolio.Service, timeout, batchDelay time.Duration) *PortfolioHandler {
	return &PortfolioHandler{svc: svc, timeout: timeout, batchDelay: batchDelay}
}

func (h *PortfolioHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/portfolios")
	{
		g.POST("", h.Create)
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.DELETE("/:id", h.Delete)
		g.GET("/:id/valuation", h.Valuation)
		g.POST("/:id/holdings", h.AddHolding)
		g.DELETE("/:id/holdings/:holdingID", h.RemoveHolding)
		g.POST("/:id/refresh", h.Refresh)
	}
}

type createPortfolioReq struct {
	Name     string `json:"name" binding:"required"`
	Currency string `json:"currency"`
}

func (h *PortfolioHandler) Create(c *gin.Context) {
	var req createPortfolioReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := h.svc.CreatePortfolio(c.Request.Context(), req.Name, req.Currency)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PortfolioHandler) List(c *gin.Context) {
	list, err := h.svc.ListPortfolios(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"portfolios": list})
}

func (h *PortfolioHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.svc.GetPortfolio(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	holdings, err := h.svc.ListHoldings(ctx, p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"portfolio": p, "holdings": holdings})
}

func (h *PortfolioHandler) Delete(c *gin.Context) {
	if err := h.svc.DeletePortfolio(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PortfolioHandler) Valuation(c *gin.Context) {
	v, err := h.svc.Valuation(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

type addHoldingReq struct {
	Symbol    string          `json:"symbol" binding:"required"`
	Shares    decimal.Decimal `json:"shares"`
	CostBasis decimal.Decimal `json:"cost_basis"`
}

func (h *PortfolioHandler) AddHolding(c *gin.Context) {
	var req addHoldingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	holding, err := h.svc.AddHolding(c.Request.Context(), c.Param("id"), req.Symbol, req.Shares, req.CostBasis)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, holding)
}

func (h *PortfolioHandler) RemoveHolding(c *gin.Context) {
	if err := h.svc.RemoveHolding(c.Request.Context(), c.Param("id"), c.Param("holdingID")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PortfolioHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	holdings, err := h.svc.ListHoldings(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if n := len(holdings); n > 1 && h.batchDelay > 0 {
		budget := h.timeout + time.Duration(n-1)*h.batchDelay
		// ResponseRecorder and other writers without deadlines return ErrNotSupported.
		_ = http.NewResponseController(c.Writer).SetWriteDeadline(time.Now().Add(budget))
	}

	report, err := h.svc.Refresh(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
