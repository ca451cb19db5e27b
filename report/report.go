// Package report renders the HTML summary page: the per-symbol position and
// dividend tables plus a chart of the portfolio valuation series.
package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/stocksum"
	"github.com/shopspring/decimal"
)

//go:embed template.html
var pageHTML string

var page = template.Must(template.New("report").Parse(pageHTML))

// Data holds everything the report template needs. Build it with NewData.
type Data struct {
	GeneratedAt  string
	HomeCurrency string
	Positions    []PositionRow
	Dividends    []DividendRow
	Chart        *Chart
}

// PositionRow is one entries-summary line, preformatted for display.
type PositionRow struct {
	Symbol      string
	Count       string
	ActualPrice string
	Currency    string
	CostBasis   string
	ActualBasis string
}

// DividendRow is one dividend-summary line, preformatted for display.
type DividendRow struct {
	Symbol         string
	Value          string
	Currency       string
	ConvertedValue string
}

// Chart is the inline SVG time series of portfolio value and profit.
type Chart struct {
	Width        int
	Height       int
	ValuePoints  string
	ProfitPoints string
	FirstDate    string
	LastDate     string
	MaxLabel     string
	MinLabel     string
}

// NewData assembles the report from the two summaries and the snapshot
// series. Rows are sorted by symbol so the page is stable across runs.
func NewData(generatedAt stocksum.Date, homeCurrency string,
	positions map[string]stocksum.EntrySummary,
	dividends map[string]stocksum.DividendSummary,
	series []stocksum.Snapshot) Data {

	d := Data{
		GeneratedAt:  generatedAt.String(),
		HomeCurrency: homeCurrency,
	}
	for _, symbol := range sortedKeys(positions) {
		p := positions[symbol]
		d.Positions = append(d.Positions, PositionRow{
			Symbol:      p.Symbol,
			Count:       p.Count.String(),
			ActualPrice: FormatMoney(p.ActualPrice, p.Currency),
			Currency:    p.Currency,
			CostBasis:   FormatMoney(p.CostBasis, homeCurrency),
			ActualBasis: FormatMoney(p.ActualBasis, homeCurrency),
		})
	}
	for _, symbol := range sortedKeys(dividends) {
		v := dividends[symbol]
		d.Dividends = append(d.Dividends, DividendRow{
			Symbol:         v.Symbol,
			Value:          v.Value.String(),
			Currency:       v.Currency,
			ConvertedValue: FormatMoney(v.ConvertedValue, homeCurrency),
		})
	}
	d.Chart = newChart(series, homeCurrency)
	return d
}

// Render writes the HTML page.
func Render(w io.Writer, d Data) error {
	if err := page.Execute(w, d); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

// FormatMoney formats an amount with its currency symbol and grouping, using
// the currency's own minor-unit fraction.
func FormatMoney(amount decimal.Decimal, code string) string {
	cur := money.New(0, code).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

const (
	chartWidth  = 800
	chartHeight = 280
	chartPad    = 10
)

// newChart scales the snapshot series into SVG polyline coordinates. It
// returns nil when the series is too short to draw a line.
func newChart(series []stocksum.Snapshot, homeCurrency string) *Chart {
	if len(series) < 2 {
		return nil
	}

	min := series[0].Value
	max := series[0].Value
	for _, s := range series {
		for _, v := range []decimal.Decimal{s.Value, s.Profit} {
			if v.LessThan(min) {
				min = v
			}
			if v.GreaterThan(max) {
				max = v
			}
		}
	}
	span := max.Sub(min)
	if span.IsZero() {
		span = decimal.NewFromInt(1)
	}

	point := func(i int, v decimal.Decimal) string {
		x := float64(chartPad) + float64(i)*float64(chartWidth-2*chartPad)/float64(len(series)-1)
		// SVG y grows downwards.
		ratio, _ := v.Sub(min).Div(span).Float64()
		y := float64(chartHeight-chartPad) - ratio*float64(chartHeight-2*chartPad)
		return fmt.Sprintf("%.1f,%.1f", x, y)
	}

	var values, profits []string
	for i, s := range series {
		values = append(values, point(i, s.Value))
		profits = append(profits, point(i, s.Profit))
	}

	return &Chart{
		Width:        chartWidth,
		Height:       chartHeight,
		ValuePoints:  strings.Join(values, " "),
		ProfitPoints: strings.Join(profits, " "),
		FirstDate:    series[0].Date.String(),
		LastDate:     series[len(series)-1].Date.String(),
		MaxLabel:     FormatMoney(max, homeCurrency),
		MinLabel:     FormatMoney(min, homeCurrency),
	}
}
