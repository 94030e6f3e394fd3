package derive

import "testing"

func TestClassifySavings(t *testing.T) {
	cases := []struct {
		name     string
		income   int64
		expenses int64
		wantPct  float64
		wantBand SavingsBand
	}{
		{"excellent_at_exactly_20", 100000, 80000, 20, SavingsBandExcellent},
		{"good_start_at_exactly_10", 100000, 90000, 10, SavingsBandGoodStart},
		{"attention_at_exactly_0", 100000, 100000, 0, SavingsBandAttention},
		{"alert_when_overspending", 100000, 110000, -10, SavingsBandAlert},
		{"excellent_above_20", 100000, 50000, 50, SavingsBandExcellent},
		{"good_start_between_10_and_20", 100000, 85000, 15, SavingsBandGoodStart},
		{"attention_between_0_and_10", 100000, 95000, 5, SavingsBandAttention},
		{"zero_income_no_division", 0, 50000, 0, SavingsBandAttention},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifySavings(tc.income, tc.expenses)

			if got.Available != tc.income-tc.expenses {
				t.Errorf("expected available %d, got %d", tc.income-tc.expenses, got.Available)
			}
			if got.SavingsPercentage != tc.wantPct {
				t.Errorf("expected percentage %f, got %f", tc.wantPct, got.SavingsPercentage)
			}
			if got.Band != tc.wantBand {
				t.Errorf("expected band %s, got %s", tc.wantBand, got.Band)
			}
			if got.Recommendation == "" {
				t.Error("expected a recommendation label")
			}
		})
	}
}
