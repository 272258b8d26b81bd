package notifier

import (
	"fmt"
	"strings"

	"StockSandbox/internal/model"
)

// FormatSummary renders the summary cards of a series.
func FormatSummary(res *model.SeriesResult, sig model.TrendSignal) string {
	var b strings.Builder
	st := res.Stats

	b.WriteString(fmt.Sprintf("📊 %s | %s | %s\n\n", res.Symbol, res.Window.Label(), res.GeneratedAt.Format(model.DateLayout)))

	arrow := "▲"
	sign := "+"
	if st.ChangeAbsolute < 0 {
		arrow = "▼"
		sign = ""
	}
	b.WriteString(fmt.Sprintf("Price: $%.2f\n", st.LastPrice))
	b.WriteString(fmt.Sprintf("Change: %s %s%.2f (%.2f%%)\n", arrow, sign, st.ChangeAbsolute, st.ChangePercent))
	b.WriteString(fmt.Sprintf("Volume: %s (last day)\n", FormatVolume(st.LastVolume)))
	b.WriteString(fmt.Sprintf("Range: $%.2f - $%.2f\n", st.MinPrice, st.MaxPrice))
	b.WriteString(fmt.Sprintf("SMA10: %s | SMA30: %s\n", formatOptional(st.SMA10), formatOptional(st.SMA30)))
	b.WriteString(fmt.Sprintf("Trend: %s / %s (%s)\n", sig.Direction, sig.Alignment, sig.Commentary))

	return b.String()
}

// FormatPoints renders one line per point with its rolling averages.
func FormatPoints(res *model.SeriesResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-10s %10s %10s %10s %10s\n", "DATE", "PRICE", "VOLUME", "SMA10", "SMA30"))
	for i, p := range res.Points {
		var avg model.RollingAverage
		if i < len(res.Rolling) {
			avg = res.Rolling[i]
		}
		b.WriteString(fmt.Sprintf("%-10s %10.2f %10s %10s %10s\n",
			p.Date.Format(model.DateLayout), p.Price, FormatVolume(p.Volume),
			formatOptionalBare(avg.SMA10), formatOptionalBare(avg.SMA30)))
	}
	return b.String()
}

// FormatVolume renders a volume in millions, e.g. "5.43M".
func FormatVolume(v int64) string {
	return fmt.Sprintf("%.2fM", float64(v)/1_000_000)
}

// FormatSymbols lists the example tickers.
func FormatSymbols() string {
	var b strings.Builder
	b.WriteString("Examples:\n")
	for _, s := range model.ExampleSymbols {
		b.WriteString(fmt.Sprintf("• %s (%s)\n", s.Name, s.Symbol))
	}
	return b.String()
}

// FormatHelp describes the chat commands.
func FormatHelp() string {
	periods := make([]string, len(model.Windows))
	for i, w := range model.Windows {
		periods[i] = string(w)
	}
	return "Commands:\n" +
		"• /quote SYMBOL [period]\n" +
		"• /symbols\n" +
		"Periods: " + strings.Join(periods, ", ")
}

func formatOptional(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *v)
}

func formatOptionalBare(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
