package stocksum

import "errors"

// The error taxonomy of the tool. Every failure mode maps to exactly one of
// these sentinels; callers match with errors.Is. None of them is retried or
// downgraded internally: the command layer reports the wrapped message and
// exits non-zero.
var (
	// ErrInvalidDateFormat reports a user-supplied date that is not strict DD/MM/YYYY.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrMalformedRecord reports a ledger row with missing or non-numeric fields.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrDataUnavailable reports a network or provider failure, including timeouts.
	ErrDataUnavailable = errors.New("market data unavailable")

	// ErrInvalidQuote reports a quote that failed sanity checks (price ≤ 0, or a
	// symbol the provider returned without being asked for it).
	ErrInvalidQuote = errors.New("invalid quote")

	// ErrInvalidRateTable reports an exchange-rate response that failed sanity
	// checks (wrong base, rate ≤ 0, or a base self-rate other than 1).
	ErrInvalidRateTable = errors.New("invalid rate table")

	// ErrMissingQuote reports a ledger symbol the provider did not return a
	// quote for. A summary is complete or it is not produced at all.
	ErrMissingQuote = errors.New("missing quote")

	// ErrStorage reports an I/O failure reading or writing a ledger file.
	ErrStorage = errors.New("storage error")
)
