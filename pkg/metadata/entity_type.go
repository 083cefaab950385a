package metadata

import (
	"fmt"
	"strings"
)

// EntityType identifies which kind of record a comment is attached to.
type EntityType string

const (
	EntityItem     EntityType = "ITEM"
	EntityMovement EntityType = "MOVEMENT"
	EntityLocation EntityType = "LOCATION"
)

func NewEntityType(value string) (EntityType, error) {
	entityType := EntityType(strings.ToUpper(strings.TrimSpace(value)))
	if !entityType.isValid() {
		return "", fmt.Errorf("invalid entity type: %s", value)
	}
	return entityType, nil
}

func (e EntityType) isValid() bool {
	switch e {
	case EntityItem, EntityMovement, EntityLocation:
		return true
	default:
		return false
	}
}

func (e EntityType) String() string {
	return string(e)
}
