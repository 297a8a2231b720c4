package filter

import "whale-alert-bot/internal/types"

// Thresholds are inclusive lower bounds a transaction must meet.
type Thresholds struct {
	MinAmountUSD float64
	MinWinRate   float64
}

// Passes reports whether tx meets both thresholds.
func Passes(tx types.Transaction, th Thresholds) bool {
	return tx.AmountUSD >= th.MinAmountUSD && tx.WinRate >= th.MinWinRate
}

// Apply returns the passing transactions in their original order.
func Apply(txs []types.Transaction, th Thresholds) []types.Transaction {
	var passed []types.Transaction
	for _, tx := range txs {
		if Passes(tx, th) {
			passed = append(passed, tx)
		}
	}
	return passed
}
