package metadata

import (
	"testing"
)

func TestNewItemStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ItemStatus
		wantErr bool
	}{
		{"valid OK", "OK", StatusOK, false},
		{"valid lowercase low", "low", StatusLow, false},
		{"valid maintenance", "MAINTENANCE", StatusMaintenance, false},
		{"valid unavailable with spaces", " unavailable ", StatusUnavailable, false},
		{"invalid empty", "", "", true},
		{"invalid unknown", "BROKEN", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewItemStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewItemStatus() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("NewItemStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}
