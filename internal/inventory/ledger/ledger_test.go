package ledger

import (
	"testing"

	"stockflow/pkg/metadata"
)

func TestReduce(t *testing.T) {
	tests := []struct {
		name         string
		currentStock int
		movementType metadata.MovementType
		quantity     int
		threshold    int
		wantStock    int
		wantStatus   metadata.ItemStatus
	}{
		{"in increases stock", 5, metadata.MovementIn, 3, 2, 8, metadata.StatusOK},
		{"out decreases stock", 5, metadata.MovementOut, 2, 2, 3, metadata.StatusOK},
		{"adjust is additive", 5, metadata.MovementAdjust, 4, 2, 9, metadata.StatusOK},
		{"transfer keeps stock", 5, metadata.MovementTransfer, 3, 2, 5, metadata.StatusOK},
		{"out to threshold goes low", 5, metadata.MovementOut, 4, 2, 1, metadata.StatusLow},
		{"out to zero goes unavailable", 1, metadata.MovementOut, 1, 2, 0, metadata.StatusUnavailable},
		{"stock equal to threshold is low", 4, metadata.MovementOut, 1, 3, 3, metadata.StatusLow},
		{"stock above threshold is ok", 5, metadata.MovementOut, 1, 3, 4, metadata.StatusOK},
		{"unavailable wins over low at zero", 1, metadata.MovementOut, 1, 10, 0, metadata.StatusUnavailable},
		{"in from zero recovers status", 0, metadata.MovementIn, 6, 2, 6, metadata.StatusOK},
		{"in below threshold stays low", 0, metadata.MovementIn, 2, 3, 2, metadata.StatusLow},
		{"transfer at zero stays unavailable", 0, metadata.MovementTransfer, 2, 3, 0, metadata.StatusUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotStock, gotStatus := Reduce(tt.currentStock, tt.movementType, tt.quantity, tt.threshold)
			if gotStock != tt.wantStock {
				t.Errorf("Reduce() stock = %d, want %d", gotStock, tt.wantStock)
			}
			if gotStatus != tt.wantStatus {
				t.Errorf("Reduce() status = %s, want %s", gotStatus, tt.wantStatus)
			}
		})
	}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		threshold int
		expected  metadata.ItemStatus
	}{
		{"zero stock", 0, 2, metadata.StatusUnavailable},
		{"negative stock", -1, 2, metadata.StatusUnavailable},
		{"zero stock with zero threshold", 0, 0, metadata.StatusUnavailable},
		{"at threshold", 2, 2, metadata.StatusLow},
		{"below threshold", 1, 2, metadata.StatusLow},
		{"above threshold", 3, 2, metadata.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.stock, tt.threshold); got != tt.expected {
				t.Errorf("DeriveStatus(%d, %d) = %s, want %s", tt.stock, tt.threshold, got, tt.expected)
			}
		})
	}
}
