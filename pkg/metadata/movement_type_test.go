package metadata

import (
	"testing"
)

func TestNewMovementType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    MovementType
		wantErr bool
	}{
		{"valid IN", "IN", MovementIn, false},
		{"valid lowercase out", "out", MovementOut, false},
		{"valid transfer with spaces", "  TRANSFER ", MovementTransfer, false},
		{"valid adjust", "ADJUST", MovementAdjust, false},
		{"invalid empty", "", "", true},
		{"invalid unknown", "RETURN", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewMovementType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMovementType() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("NewMovementType() = %v, want %v", got, tt.want)
			}
		})
	}
}
