package report

import (
	"strings"
	"testing"

	"github.com/etnz/stocksum"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(dec("178.72"), "USD"); got != "$178.72" {
		t.Errorf("FormatMoney(178.72, USD) = %q, want $178.72", got)
	}
	if got := FormatMoney(dec("0"), "EUR"); got != "€0.00" {
		t.Errorf("FormatMoney(0, EUR) = %q, want €0.00", got)
	}
	// local conventions vary per currency; assert the parts, not the layout
	got := FormatMoney(dec("-100"), "CZK")
	if !strings.Contains(got, "100") || !strings.Contains(got, "Kč") || !strings.HasPrefix(got, "-") {
		t.Errorf("FormatMoney(-100, CZK) = %q, want a negative amount in Kc", got)
	}
}

func TestNewData(t *testing.T) {
	positions := map[string]stocksum.EntrySummary{
		"B": {Symbol: "B", Count: dec("5"), CostBasis: dec("575"), ActualBasis: dec("1250"), ActualPrice: dec("10"), Currency: "EUR"},
		"A": {Symbol: "A", Count: dec("5"), CostBasis: dec("-100"), ActualBasis: dec("2500"), ActualPrice: dec("20"), Currency: "EUR"},
	}
	dividends := map[string]stocksum.DividendSummary{
		"A": {Symbol: "A", Value: dec("6"), ConvertedValue: dec("150"), Currency: "EUR"},
	}
	series := []stocksum.Snapshot{
		{Date: stocksum.MustParseDate("01/08/2023"), Value: dec("3550"), Profit: dec("3200")},
		{Date: stocksum.MustParseDate("01/09/2023"), Value: dec("3750"), Profit: dec("3482")},
	}

	d := NewData(stocksum.MustParseDate("02/09/2023"), "CZK", positions, dividends, series)

	if len(d.Positions) != 2 || d.Positions[0].Symbol != "A" || d.Positions[1].Symbol != "B" {
		t.Fatalf("positions not sorted by symbol: %+v", d.Positions)
	}
	if d.Positions[0].ActualBasis != FormatMoney(dec("2500"), "CZK") {
		t.Errorf("A actual basis = %q", d.Positions[0].ActualBasis)
	}
	if len(d.Dividends) != 1 || d.Dividends[0].ConvertedValue != FormatMoney(dec("150"), "CZK") {
		t.Errorf("dividend rows = %+v", d.Dividends)
	}
	if d.Chart == nil {
		t.Fatal("two snapshots are enough for a chart")
	}
	if d.Chart.FirstDate != "01/08/2023" || d.Chart.LastDate != "01/09/2023" {
		t.Errorf("chart range = %s..%s", d.Chart.FirstDate, d.Chart.LastDate)
	}
}

func TestNewDataShortSeries(t *testing.T) {
	d := NewData(stocksum.Today(), "CZK", nil, nil, []stocksum.Snapshot{
		{Date: stocksum.Today(), Value: dec("100"), Profit: dec("10")},
	})
	if d.Chart != nil {
		t.Error("a single snapshot must not produce a chart")
	}
}

func TestRender(t *testing.T) {
	positions := map[string]stocksum.EntrySummary{
		"A": {Symbol: "A", Count: dec("5"), CostBasis: dec("-100"), ActualBasis: dec("2500"), ActualPrice: dec("20"), Currency: "EUR"},
	}
	series := []stocksum.Snapshot{
		{Date: stocksum.MustParseDate("01/08/2023"), Value: dec("3550"), Profit: dec("3200")},
		{Date: stocksum.MustParseDate("01/09/2023"), Value: dec("3750"), Profit: dec("3482")},
	}
	d := NewData(stocksum.MustParseDate("02/09/2023"), "CZK", positions, nil, series)

	var sb strings.Builder
	if err := Render(&sb, d); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{"<html", "A", "polyline", "02/09/2023"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered page is missing %q", want)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	var sb strings.Builder
	if err := Render(&sb, NewData(stocksum.Today(), "CZK", nil, nil, nil)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "No entries recorded yet") {
		t.Error("empty report must show the empty-state text")
	}
}
