package httpapi

import (
	"context"
	"net/http"
	"strings"

	"ChartPulse/internal/logger"
	"ChartPulse/internal/model"
	"ChartPulse/internal/recorder"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// DashboardSource builds the dashboard for a symbol.
type DashboardSource interface {
	Collect(ctx context.Context, symbol string) (*model.Dashboard, error)
}

// Trader executes simulated trades.
type Trader interface {
	Buy(ctx context.Context, symbol, date string, qty decimal.Decimal) (*model.Position, error)
	Sell(ctx context.Context, date string) (*model.TradeResult, error)
	State() model.PaperState
}

// TradeLister reads the trade history, newest first.
type TradeLister interface {
	ListTrades(limit int) ([]recorder.TradeEvent, error)
}

// Handler serves the dashboard API.
type Handler struct {
	dash          DashboardSource
	trader        Trader
	trades        TradeLister
	defaultSymbol string
	// BreakerState, when set, is reported by /healthz.
	BreakerState func() string
	log          *logger.Logger
}

func NewHandler(log *logger.Logger, dash DashboardSource, trader Trader, trades TradeLister, defaultSymbol string) *Handler {
	return &Handler{
		dash:          dash,
		trader:        trader,
		trades:        trades,
		defaultSymbol: strings.ToUpper(defaultSymbol),
		log:           log.With(logger.String("component", "api")),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/chart", h.Chart)
	g.GET("/summary", h.Summary)
	g.GET("/position", h.Position)
	g.GET("/trades", h.Trades)
	g.POST("/trades/buy", h.Buy)
	g.POST("/trades/sell", h.Sell)
}

func (h *Handler) symbol(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return h.defaultSymbol
	}
	return s
}

func (h *Handler) Health(c echo.Context) error {
	body := map[string]string{"status": "ok", "symbol": h.defaultSymbol}
	if h.BreakerState != nil {
		body["breaker"] = h.BreakerState()
	}
	return c.JSON(http.StatusOK, body)
}

func (h *Handler) serveDashboard(c echo.Context, view func(*model.Dashboard) interface{}) error {
	req := &SymbolRequest{}
	if verr := ReadAndValidateRequest(c, req); verr != nil {
		return BadRequestResponse(c, verr)
	}
	symbol := h.symbol(req.Symbol)
	d, err := h.dash.Collect(c.Request().Context(), symbol)
	if err != nil {
		h.log.Error("collect failed", logger.String("symbol", symbol), logger.Error(err))
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, view(d))
}

// Chart returns the bars and every aligned indicator series.
func (h *Handler) Chart(c echo.Context) error {
	return h.serveDashboard(c, func(d *model.Dashboard) interface{} { return d })
}

// Summary returns only the summary cards and outlook.
func (h *Handler) Summary(c echo.Context) error {
	return h.serveDashboard(c, func(d *model.Dashboard) interface{} {
		return &SummaryResponse{Summary: d.Summary, Outlook: d.Outlook}
	})
}

func (h *Handler) Position(c echo.Context) error {
	st := h.trader.State()
	return SuccessResponse(c, &PositionResponse{
		Position:    st.Open,
		RealizedPnL: st.RealizedPnL,
		TradeCount:  st.TradeCount,
	})
}

func (h *Handler) Buy(c echo.Context) error {
	req := &BuyRequest{}
	if verr := ReadAndValidateRequest(c, req); verr != nil {
		return BadRequestResponse(c, verr)
	}
	pos, err := h.trader.Buy(c.Request().Context(), h.symbol(req.Symbol), req.Date, decimal.NewFromFloat(req.Qty))
	if err != nil {
		h.log.Warn("buy rejected", logger.Error(err))
		return AppErrorResponse(c, err)
	}
	return CreatedResponse(c, pos)
}

func (h *Handler) Sell(c echo.Context) error {
	req := &SellRequest{}
	if verr := ReadAndValidateRequest(c, req); verr != nil {
		return BadRequestResponse(c, verr)
	}
	res, err := h.trader.Sell(c.Request().Context(), req.Date)
	if err != nil {
		h.log.Warn("sell rejected", logger.Error(err))
		return AppErrorResponse(c, err)
	}
	return SuccessResponse(c, res)
}

func (h *Handler) Trades(c echo.Context) error {
	req := &TradesRequest{}
	if verr := ReadAndValidateRequest(c, req); verr != nil {
		return BadRequestResponse(c, verr)
	}
	events, err := h.trades.ListTrades(req.Limit)
	if err != nil {
		h.log.Error("list trades failed", logger.Error(err))
		return AppErrorResponse(c, err)
	}
	rows := toTradeRows(events)
	return ListResponse(c, rows, len(rows))
}
