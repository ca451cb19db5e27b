// Package stocksum tracks a personal stock portfolio in flat files.
//
// Three append-only ledgers hold buy entries, dividend receipts and a
// portfolio valuation series. The aggregation engine folds the ledgers plus
// live quotes and exchange rates into per-symbol summaries and snapshots;
// converted amounts are frozen at write time with the exchange rate of the
// transaction date and never recomputed.
//
// The package owns the data model and the computation only. The rapid
// subpackage talks to the market-data provider, the cloud subpackage mirrors
// the ledger files to a remote store, and the cmd subpackage ties it all
// together into a CLI.
package stocksum
