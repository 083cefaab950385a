package metadata

import (
	"fmt"
	"strings"
)

type MovementType string

const (
	MovementIn       MovementType = "IN"
	MovementOut      MovementType = "OUT"
	MovementTransfer MovementType = "TRANSFER"
	MovementAdjust   MovementType = "ADJUST"
)

func NewMovementType(value string) (MovementType, error) {
	movementType := MovementType(strings.ToUpper(strings.TrimSpace(value)))
	if !movementType.isValid() {
		return "", fmt.Errorf("invalid movement type: %s", value)
	}
	return movementType, nil
}

func (m MovementType) isValid() bool {
	switch m {
	case MovementIn, MovementOut, MovementTransfer, MovementAdjust:
		return true
	default:
		return false
	}
}

func (m MovementType) String() string {
	return string(m)
}
