package models

import (
	"time"

	"stockflow/pkg/metadata"
)

// Movement is an immutable ledger entry. Once recorded it is never updated
// or deleted; item stock is a running reduction over these rows.
type Movement struct {
	ID            int                   `json:"id"`
	ItemID        int                   `json:"item_id"`
	ItemName      string                `json:"item_name,omitempty"`
	Type          metadata.MovementType `json:"type"`
	Quantity      int                   `json:"quantity"`
	FromLocation  *Location             `json:"from_location,omitempty"`
	ToLocation    *Location             `json:"to_location,omitempty"`
	Note          *string               `json:"note,omitempty"`
	CreatedBy     *int                  `json:"created_by,omitempty"`
	CreatedByName string                `json:"created_by_name,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

type FlatMovementRecord struct {
	ID               int       `db:"movement_id"`
	ItemID           int       `db:"item_id"`
	ItemName         string    `db:"item_name"`
	Type             string    `db:"movement_type"`
	Quantity         int       `db:"quantity"`
	FromLocationID   *int      `db:"from_location_id"`
	FromLocationName *string   `db:"from_location_name"`
	ToLocationID     *int      `db:"to_location_id"`
	ToLocationName   *string   `db:"to_location_name"`
	Note             *string   `db:"note"`
	CreatedBy        *int      `db:"created_by"`
	CreatedByName    *string   `db:"created_by_name"`
	CreatedAt        time.Time `db:"created_at"`
}

func (fm *FlatMovementRecord) TransformToMovement() Movement {
	movement := Movement{
		ID:        fm.ID,
		ItemID:    fm.ItemID,
		ItemName:  fm.ItemName,
		Type:      metadata.MovementType(fm.Type),
		Quantity:  fm.Quantity,
		Note:      fm.Note,
		CreatedBy: fm.CreatedBy,
		CreatedAt: fm.CreatedAt,
	}
	if fm.CreatedByName != nil {
		movement.CreatedByName = *fm.CreatedByName
	}
	if fm.FromLocationID != nil {
		movement.FromLocation = &Location{ID: *fm.FromLocationID}
		if fm.FromLocationName != nil {
			movement.FromLocation.Name = *fm.FromLocationName
		}
	}
	if fm.ToLocationID != nil {
		movement.ToLocation = &Location{ID: *fm.ToLocationID}
		if fm.ToLocationName != nil {
			movement.ToLocation.Name = *fm.ToLocationName
		}
	}
	return movement
}

func (m *Movement) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   m.ID,
		ResourceType: "movement",
	}
}
