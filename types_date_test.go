package stocksum

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "25/12/2023", want: NewDate(2023, time.December, 25)},
		{in: "01/01/2024", want: NewDate(2024, time.January, 1)},
		{in: "29/02/2024", want: NewDate(2024, time.February, 29)}, // leap day
		{in: "1/2/2023", wantErr: true},                            // not zero-padded
		{in: "2023-02-01", wantErr: true},                          // ISO, wrong format
		{in: "31/02/2023", wantErr: true},                          // day out of range
		{in: "25/12/23", wantErr: true},                            // short year
		{in: "", wantErr: true},
		{in: "garbage", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) = %v, want error", tc.in, got)
				}
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDateFormat", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDateRoundTrip(t *testing.T) {
	d := MustParseDate("05/04/2023")
	if got := d.String(); got != "05/04/2023" {
		t.Errorf("String() = %q, want %q", got, "05/04/2023")
	}
	if got := d.Series(); got != "05/04/23" {
		t.Errorf("Series() = %q, want %q", got, "05/04/23")
	}
	back, err := parseSeriesDate(d.Series())
	if err != nil {
		t.Fatalf("parseSeriesDate(%q) error: %v", d.Series(), err)
	}
	if back != d {
		t.Errorf("series round-trip = %v, want %v", back, d)
	}
}

func TestDateZeroMeansLatest(t *testing.T) {
	var zero Date
	if !zero.IsZero() {
		t.Error("zero Date should report IsZero")
	}
	if MustParseDate("01/01/2020").IsZero() {
		t.Error("real date should not report IsZero")
	}
}
