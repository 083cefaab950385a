// Package ledger holds the stock reduction rule: the pure function that maps
// an item's current stock and a movement to the next stock and status. It is
// the only place stock arithmetic lives; persistence is the caller's problem.
package ledger

import "stockflow/pkg/metadata"

// Reduce applies a single movement to currentStock and derives the resulting
// item status.
//
// IN and ADJUST add quantity, OUT subtracts it, TRANSFER leaves the total
// unchanged (only the location association moves). ADJUST is deliberately
// additive, matching the recorded correction workflow, not a set-to-value.
func Reduce(currentStock int, movementType metadata.MovementType, quantity int, minStockThreshold int) (int, metadata.ItemStatus) {
	newStock := currentStock

	switch movementType {
	case metadata.MovementIn, metadata.MovementAdjust:
		newStock = currentStock + quantity
	case metadata.MovementOut:
		newStock = currentStock - quantity
	case metadata.MovementTransfer:
		// no stock effect
	}

	return newStock, DeriveStatus(newStock, minStockThreshold)
}

// DeriveStatus maps a stock level to an item status. UNAVAILABLE wins over
// LOW regardless of threshold; MAINTENANCE is never derived here, it is only
// set manually on the item itself.
func DeriveStatus(stock int, minStockThreshold int) metadata.ItemStatus {
	switch {
	case stock <= 0:
		return metadata.StatusUnavailable
	case stock <= minStockThreshold:
		return metadata.StatusLow
	default:
		return metadata.StatusOK
	}
}
