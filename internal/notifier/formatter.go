package notifier

import (
	"fmt"
	"html"
	"strings"

	"ChartPulse/internal/model"
)

func fmtOpt(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

// FormatDashboard formats the summary cards and outlook into a Telegram message.
func FormatDashboard(d *model.Dashboard) string {
	s := d.Summary
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s", html.EscapeString(s.Symbol), s.AsOf))
	if d.Provider != "" {
		b.WriteString(fmt.Sprintf(" (%s)", d.Provider))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Close: %.2f (%+.2f, %+.2f%%)\n", s.LastClose, s.Change, s.ChangePct))
	b.WriteString(fmt.Sprintf("Range: %.2f - %.2f\n", s.PeriodLow, s.PeriodHigh))
	b.WriteString(fmt.Sprintf("SMA: %s\n", fmtOpt(s.SMA)))
	b.WriteString(fmt.Sprintf("RSI: %s\n", fmtOpt(s.RSI)))
	b.WriteString(fmt.Sprintf("MACD: %.2f\n", s.MACD))
	b.WriteString(fmt.Sprintf("Projection: %.2f (%+.2f/day)\n", s.Projection, s.Slope))

	if o := d.Outlook; o != nil {
		b.WriteString("\n📈 <b>Outlook</b>\n")
		for _, f := range o.Factors {
			b.WriteString(fmt.Sprintf("  %s (%s): %+.1f ×%.2f = %+.3f\n",
				f.Name, html.EscapeString(f.Commentary), f.RawScore, f.Weight, f.Weighted))
		}
		b.WriteString(fmt.Sprintf("  Score %+.3f → <b>%s</b>\n", o.TotalScore, o.Label))
		if o.WarningMsg != "" {
			b.WriteString(fmt.Sprintf("\n⚠️ %s\n", html.EscapeString(o.WarningMsg)))
		}
	}
	return b.String()
}

// FormatPosition formats the open simulated position.
func FormatPosition(pos *model.Position) string {
	if pos == nil {
		return "📦 No open position."
	}
	return fmt.Sprintf("🟢 <b>Bought %s</b>\nQty: %s @ %s on %s",
		html.EscapeString(pos.Symbol), pos.Quantity.String(), pos.Price.StringFixed(2), pos.Date)
}

// FormatTrade formats a closed round trip.
func FormatTrade(res *model.TradeResult) string {
	icon := "✅"
	if res.Profit.IsNegative() {
		icon = "🔻"
	}
	return fmt.Sprintf("%s <b>Sold %s</b>\nQty: %s\nBuy: %s on %s\nSell: %s on %s\nProfit: %s",
		icon, html.EscapeString(res.Symbol), res.Quantity.String(),
		res.BuyPrice.StringFixed(2), res.BuyDate,
		res.SellPrice.StringFixed(2), res.SellDate,
		res.Profit.StringFixed(2))
}

// FormatError formats a failure reply. Error text often carries upstream
// HTML bodies, so both parts are escaped.
func FormatError(subject string, err error) string {
	if subject == "" {
		return "❌ " + html.EscapeString(err.Error())
	}
	return fmt.Sprintf("❌ %s: %s", html.EscapeString(subject), html.EscapeString(err.Error()))
}

// FormatHelp lists the supported bot commands.
func FormatHelp() string {
	return strings.Join([]string{
		"🤖 <b>ChartPulse commands</b>",
		"/quote [SYMBOL] - summary cards and outlook",
		"/position - open simulated position",
		"/buy SYMBOL QTY - buy at the latest close",
		"/sell - sell the open position at the latest close",
		"/help - this message",
	}, "\n")
}
