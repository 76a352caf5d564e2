package types

import (
	"testing"
	"time"
)

func TestParseBillingPeriod(t *testing.T) {
	tests := []struct {
		interval string
		want     BillingPeriod
		wantOK   bool
	}{
		{"day", BILLING_PERIOD_DAILY, true},
		{"daily", BILLING_PERIOD_DAILY, true},
		{"week", BILLING_PERIOD_WEEKLY, true},
		{"month", BILLING_PERIOD_MONTHLY, true},
		{"Month", BILLING_PERIOD_MONTHLY, true},
		{"year", BILLING_PERIOD_ANNUAL, true},
		{"annual", BILLING_PERIOD_ANNUAL, true},
		{"quarter", BILLING_PERIOD_MONTHLY, false},
		{"", BILLING_PERIOD_MONTHLY, false},
	}

	for _, tt := range tests {
		t.Run(tt.interval, func(t *testing.T) {
			got, ok := ParseBillingPeriod(tt.interval)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseBillingPeriod(%q) = (%v, %v), want (%v, %v)",
					tt.interval, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestBillingPeriodValidate(t *testing.T) {
	for _, period := range []BillingPeriod{
		BILLING_PERIOD_DAILY,
		BILLING_PERIOD_WEEKLY,
		BILLING_PERIOD_MONTHLY,
		BILLING_PERIOD_ANNUAL,
	} {
		if err := period.Validate(); err != nil {
			t.Errorf("Validate(%s) returned error: %v", period, err)
		}
	}

	if err := BillingPeriod("QUARTERLY").Validate(); err == nil {
		t.Error("expected error for unknown billing period, got nil")
	}
}

func TestBillingPeriodWindowContains(t *testing.T) {
	window := BillingPeriodWindow{
		Start: time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{"start is inclusive", window.Start, true},
		{"end is exclusive", window.End, false},
		{"inside", time.Date(2024, time.December, 1, 12, 0, 0, 0, time.UTC), true},
		{"just before end", window.End.Add(-time.Nanosecond), true},
		{"before start", window.Start.Add(-time.Nanosecond), false},
		{"after end", window.End.Add(24 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := window.Contains(tt.ts); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.ts, got, tt.want)
			}
		})
	}
}

func TestBillingPeriodWindowValidate(t *testing.T) {
	start := time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC)

	valid := BillingPeriodWindow{Start: start, End: start.AddDate(0, 1, 0)}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error for valid window: %v", err)
	}

	empty := BillingPeriodWindow{Start: start, End: start}
	if err := empty.Validate(); err == nil {
		t.Error("expected error for empty window, got nil")
	}

	inverted := BillingPeriodWindow{Start: start, End: start.AddDate(0, -1, 0)}
	if err := inverted.Validate(); err == nil {
		t.Error("expected error for inverted window, got nil")
	}
}
