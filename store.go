package stocksum

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// Header rows written to freshly initialized ledger files.
const (
	entriesHeader   = "DATE STOCK COUNT PRICE COST"
	dividendsHeader = "DATE STOCK AMOUNT CONVERTED_AMOUNT"
	snapshotsHeader = "DATE TOTAL_PRICE PROFIT"
)

// Store owns the on-disk representation of the three ledgers. All access is
// append-only: rows are never edited or deleted by the program, corrections
// happen through external editing.
type Store struct {
	dir string
}

// NewStore returns a Store keeping its ledger files under dir.
func NewStore(dir string) *Store { return &Store{dir: dir} }

// EntriesPath returns the path of the entries ledger.
func (s *Store) EntriesPath() string { return filepath.Join(s.dir, "entries") }

// DividendsPath returns the path of the dividends ledger.
func (s *Store) DividendsPath() string { return filepath.Join(s.dir, "dividends") }

// SnapshotsPath returns the path of the portfolio snapshot series.
func (s *Store) SnapshotsPath() string { return filepath.Join(s.dir, "portfolio") }

// Paths returns the paths of all three ledger files, in a stable order.
// This is what the sync collaborator mirrors.
func (s *Store) Paths() []string {
	return []string{s.EntriesPath(), s.DividendsPath(), s.SnapshotsPath()}
}

// Init creates the data directory and writes a header-only template for every
// ledger file that does not exist yet. With rewrite set, existing files are
// reset to the empty template too. It is idempotent and safe to call at the
// start of every command.
func (s *Store) Init(rewrite bool) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating data directory %q: %v", ErrStorage, s.dir, err)
	}
	headers := map[string]string{
		s.EntriesPath():   entriesHeader,
		s.DividendsPath(): dividendsHeader,
		s.SnapshotsPath(): snapshotsHeader,
	}
	for path, header := range headers {
		if !rewrite {
			if _, err := os.Stat(path); err == nil {
				continue
			}
		}
		if err := os.WriteFile(path, []byte(header+"\n"), 0o644); err != nil {
			return fmt.Errorf("%w: initializing %q: %v", ErrStorage, path, err)
		}
	}
	return nil
}

// AppendEntry appends one row to the entries ledger.
func (s *Store) AppendEntry(e Entry) error {
	return s.appendRow(s.EntriesPath(), encodeEntry(e))
}

// AppendDividend appends one row to the dividends ledger.
func (s *Store) AppendDividend(d Dividend) error {
	return s.appendRow(s.DividendsPath(), encodeDividend(d))
}

// AppendSnapshot appends one row to the portfolio snapshot series.
func (s *Store) AppendSnapshot(snap Snapshot) error {
	return s.appendRow(s.SnapshotsPath(), encodeSnapshot(snap))
}

func (s *Store) appendRow(path, row string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening %q: %v", ErrStorage, path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(row + "\n"); err != nil {
		return fmt.Errorf("%w: appending to %q: %v", ErrStorage, path, err)
	}
	return nil
}

// ReadEntries parses the whole entries ledger, in file order.
func (s *Store) ReadEntries() ([]Entry, error) {
	var entries []Entry
	err := s.readRows(s.EntriesPath(), func(line string) error {
		e, err := decodeEntry(line)
		if err != nil {
			return err
		}
		entries = append(entries, e)
		return nil
	})
	return entries, err
}

// ReadDividends parses the whole dividends ledger, in file order.
func (s *Store) ReadDividends() ([]Dividend, error) {
	var dividends []Dividend
	err := s.readRows(s.DividendsPath(), func(line string) error {
		d, err := decodeDividend(line)
		if err != nil {
			return err
		}
		dividends = append(dividends, d)
		return nil
	})
	return dividends, err
}

// ReadSnapshots parses the whole portfolio snapshot series, in file order.
func (s *Store) ReadSnapshots() ([]Snapshot, error) {
	var snapshots []Snapshot
	err := s.readRows(s.SnapshotsPath(), func(line string) error {
		snap, err := decodeSnapshot(line)
		if err != nil {
			return err
		}
		snapshots = append(snapshots, snap)
		return nil
	})
	return snapshots, err
}

// readRows scans a ledger file line by line, skipping the header row and
// blank lines.
func (s *Store) readRows(path string, row func(line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: opening %q: %v", ErrStorage, path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	header := true
	for scanner.Scan() {
		line := scanner.Text()
		if header {
			header = false
			continue
		}
		if line == "" {
			continue
		}
		if err := row(line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: reading %q: %v", ErrStorage, path, err)
	}
	return nil
}
