package derive

// SavingsBand is the qualitative recommendation band for a savings rate.
type SavingsBand string

const (
	SavingsBandExcellent SavingsBand = "excellent"
	SavingsBandGoodStart SavingsBand = "good_start"
	SavingsBandAttention SavingsBand = "attention"
	SavingsBandAlert     SavingsBand = "alert"
)

// SavingsClassification is the derived savings-rate summary for a period.
type SavingsClassification struct {
	Income            int64       `json:"income"`
	Expenses          int64       `json:"expenses"`
	Available         int64       `json:"available"`
	SavingsPercentage float64     `json:"savings_percentage"`
	Band              SavingsBand `json:"band"`
	Recommendation    string      `json:"recommendation"`
}

// recommendations maps each band to its user-facing guidance text.
var recommendations = map[SavingsBand]string{
	SavingsBandExcellent: "Excelente! Você está poupando 20% ou mais da sua renda.",
	SavingsBandGoodStart: "Bom começo! Tente aumentar sua taxa de poupança para 20%.",
	SavingsBandAttention: "Atenção: sua poupança está baixa. Revise seus gastos.",
	SavingsBandAlert:     "Alerta: você está gastando mais do que ganha.",
}

// ClassifySavings computes the savings rate for the period and maps it to a
// recommendation band. Amounts are centavos. The band cutoffs are evaluated
// top-down with inclusive boundaries: >=20 excellent, >=10 good start,
// >=0 attention, otherwise alert.
func ClassifySavings(income, expenses int64) SavingsClassification {
	available := income - expenses

	var pct float64
	if income > 0 {
		pct = float64(available) / float64(income) * 100
	}

	var band SavingsBand
	switch {
	case pct >= 20:
		band = SavingsBandExcellent
	case pct >= 10:
		band = SavingsBandGoodStart
	case pct >= 0:
		band = SavingsBandAttention
	default:
		band = SavingsBandAlert
	}

	return SavingsClassification{
		Income:            income,
		Expenses:          expenses,
		Available:         available,
		SavingsPercentage: pct,
		Band:              band,
		Recommendation:    recommendations[band],
	}
}
