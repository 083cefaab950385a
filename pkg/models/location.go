package models

import "stockflow/pkg/metadata"

type Location struct {
	ID          int                   `json:"id" db:"id"`
	Name        string                `json:"name" db:"name"`
	Type        metadata.LocationType `json:"type" db:"type"`
	ParentID    *int                  `json:"parent_id,omitempty" db:"parent_id"`
	Address     *string               `json:"address,omitempty" db:"address"`
	ContactInfo *string               `json:"contact_info,omitempty" db:"contact_info"`
}

func (l *Location) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   l.ID,
		ResourceType: "location",
	}
}

type LocationRequest struct {
	Name        string  `json:"name" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	ParentID    *int    `json:"parent_id"`
	Address     *string `json:"address"`
	ContactInfo *string `json:"contact_info"`
}
