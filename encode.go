package stocksum

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Ledger rows are whitespace-delimited with '|' as the quote character, so
// symbols or paths containing spaces survive a round-trip. A quoted field
// doubles embedded '|' characters.

// quoteField quotes a single field if it contains a delimiter or quote character.
func quoteField(f string) string {
	if !strings.ContainsAny(f, " |\r\n") {
		return f
	}
	return "|" + strings.ReplaceAll(f, "|", "||") + "|"
}

// encodeRecord encodes fields into one ledger row.
func encodeRecord(fields ...string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quoteField(f)
	}
	return strings.Join(quoted, " ")
}

// splitRecord splits one ledger row into its fields, honoring '|' quoting.
func splitRecord(line string) []string {
	var fields []string
	var b strings.Builder
	inQuote := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '|':
			if inQuote && i+1 < len(line) && line[i+1] == '|' {
				// doubled quote character inside a quoted field
				b.WriteByte('|')
				i++
			} else {
				inQuote = !inQuote
			}
		case c == ' ' && !inQuote:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	fields = append(fields, b.String())
	return fields
}

// parseAmount parses a numeric ledger field, naming the field on failure.
func parseAmount(field, name string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(field)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s %q is not a number", ErrMalformedRecord, name, field)
	}
	return v, nil
}

func encodeEntry(e Entry) string {
	return encodeRecord(e.Date.String(), e.Symbol, e.Count.String(), e.UnitPrice.String(), e.Cost.String())
}

func decodeEntry(line string) (Entry, error) {
	fields := splitRecord(line)
	if len(fields) < 5 {
		return Entry{}, fmt.Errorf("%w: entry row %q has %d fields, want 5", ErrMalformedRecord, line, len(fields))
	}
	date, err := ParseDate(fields[0])
	if err != nil {
		return Entry{}, fmt.Errorf("%w: entry date %q", ErrMalformedRecord, fields[0])
	}
	count, err := parseAmount(fields[2], "count")
	if err != nil {
		return Entry{}, err
	}
	price, err := parseAmount(fields[3], "price")
	if err != nil {
		return Entry{}, err
	}
	cost, err := parseAmount(fields[4], "cost")
	if err != nil {
		return Entry{}, err
	}
	return Entry{Date: date, Symbol: fields[1], Count: count, UnitPrice: price, Cost: cost}, nil
}

func encodeDividend(d Dividend) string {
	return encodeRecord(d.Date.String(), d.Symbol, d.Amount.String(), d.ConvertedAmount.String())
}

func decodeDividend(line string) (Dividend, error) {
	fields := splitRecord(line)
	if len(fields) < 4 {
		return Dividend{}, fmt.Errorf("%w: dividend row %q has %d fields, want 4", ErrMalformedRecord, line, len(fields))
	}
	date, err := ParseDate(fields[0])
	if err != nil {
		return Dividend{}, fmt.Errorf("%w: dividend date %q", ErrMalformedRecord, fields[0])
	}
	amount, err := parseAmount(fields[2], "amount")
	if err != nil {
		return Dividend{}, err
	}
	converted, err := parseAmount(fields[3], "converted amount")
	if err != nil {
		return Dividend{}, err
	}
	return Dividend{Date: date, Symbol: fields[1], Amount: amount, ConvertedAmount: converted}, nil
}

func encodeSnapshot(s Snapshot) string {
	return encodeRecord(s.Date.Series(), s.Value.String(), s.Profit.String())
}

func decodeSnapshot(line string) (Snapshot, error) {
	fields := splitRecord(line)
	if len(fields) < 3 {
		return Snapshot{}, fmt.Errorf("%w: snapshot row %q has %d fields, want 3", ErrMalformedRecord, line, len(fields))
	}
	date, err := parseSeriesDate(fields[0])
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: snapshot date %q", ErrMalformedRecord, fields[0])
	}
	value, err := parseAmount(fields[1], "value")
	if err != nil {
		return Snapshot{}, err
	}
	profit, err := parseAmount(fields[2], "profit")
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Date: date, Value: value, Profit: profit}, nil
}
