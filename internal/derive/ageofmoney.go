package derive

import (
	"math"
	"sort"
	"time"

	"bolso/internal/models"
)

// moneyLot is an income transaction still holding unspent centavos.
type moneyLot struct {
	date      time.Time
	remaining int64
}

// AgeOfMoney computes the average number of days between money entering an
// account and an equivalent amount of it being spent, across the full
// transaction history, approximating FIFO consumption of incoming funds.
//
// Income transactions form a queue of lots ordered by date; each expense, in
// date order, consumes the oldest remaining lots, recording the day delta
// between expense and lot weighted by the centavos consumed. The result is
// the weighted average rounded to whole days, never negative. Insufficient
// history (no income or no expenses) yields 0.
func AgeOfMoney(transactions []models.Transaction) int {
	var lots []moneyLot
	var expenses []models.Transaction

	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionTypeIncome:
			if amt := abs64(tx.Amount); amt > 0 {
				lots = append(lots, moneyLot{date: tx.Date, remaining: amt})
			}
		case models.TransactionTypeExpense:
			if abs64(tx.Amount) > 0 {
				expenses = append(expenses, tx)
			}
		}
	}
	if len(lots) == 0 || len(expenses) == 0 {
		return 0
	}

	sort.SliceStable(lots, func(i, j int) bool { return lots[i].date.Before(lots[j].date) })
	sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].Date.Before(expenses[j].Date) })

	var weightedDays, consumed int64
	head := 0
	for _, exp := range expenses {
		outstanding := abs64(exp.Amount)
		for outstanding > 0 && head < len(lots) {
			lot := &lots[head]
			take := lot.remaining
			if take > outstanding {
				take = outstanding
			}

			days := int64(exp.Date.Sub(lot.date).Hours() / 24)
			weightedDays += take * days
			consumed += take

			lot.remaining -= take
			outstanding -= take
			if lot.remaining == 0 {
				head++
			}
		}
		// An expense beyond all lots spends money the ledger never saw
		// entering; it contributes nothing to the metric.
	}
	if consumed == 0 {
		return 0
	}

	avg := int(math.Round(float64(weightedDays) / float64(consumed)))
	if avg < 0 {
		return 0
	}
	return avg
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
