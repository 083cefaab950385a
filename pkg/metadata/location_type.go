package metadata

import (
	"fmt"
	"strings"
)

type LocationType string

const (
	LocationWarehouse LocationType = "WAREHOUSE"
	LocationZone      LocationType = "ZONE"
	LocationRack      LocationType = "RACK"
	LocationEvent     LocationType = "EVENT"
	LocationClient    LocationType = "CLIENT"
	LocationRoom      LocationType = "ROOM"
)

func NewLocationType(value string) (LocationType, error) {
	locationType := LocationType(strings.ToUpper(strings.TrimSpace(value)))
	if !locationType.isValid() {
		return "", fmt.Errorf("invalid location type: %s", value)
	}
	return locationType, nil
}

func (l LocationType) isValid() bool {
	switch l {
	case LocationWarehouse, LocationZone, LocationRack, LocationEvent, LocationClient, LocationRoom:
		return true
	default:
		return false
	}
}

// IsInternal reports whether the location is part of the company's own
// storage tree, as opposed to a client venue or external event.
func (l LocationType) IsInternal() bool {
	switch l {
	case LocationWarehouse, LocationZone, LocationRack, LocationRoom:
		return true
	default:
		return false
	}
}

func (l LocationType) String() string {
	return string(l)
}
