package metadata

import (
	"fmt"
	"strings"
)

type ItemStatus string

const (
	StatusOK          ItemStatus = "OK"
	StatusLow         ItemStatus = "LOW"
	StatusMaintenance ItemStatus = "MAINTENANCE"
	StatusUnavailable ItemStatus = "UNAVAILABLE"
)

func NewItemStatus(value string) (ItemStatus, error) {
	status := ItemStatus(strings.ToUpper(strings.TrimSpace(value)))
	if !status.isValid() {
		return "", fmt.Errorf("invalid item status: %s", value)
	}
	return status, nil
}

func (s ItemStatus) isValid() bool {
	switch s {
	case StatusOK, StatusLow, StatusMaintenance, StatusUnavailable:
		return true
	default:
		return false
	}
}

func (s ItemStatus) String() string {
	return string(s)
}
