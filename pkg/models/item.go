package models

import (
	"github.com/lib/pq"

	"stockflow/pkg/metadata"
)

// Item is a piece of rental equipment tracked by quantity. CurrentStock and
// Status are derived from the movement ledger and never settable directly.
type Item struct {
	ID                int                 `json:"id" db:"id"`
	Name              string              `json:"name" db:"name"`
	Brand             string              `json:"brand" db:"brand"`
	Model             string              `json:"model" db:"model"`
	Category          string              `json:"category" db:"category"`
	MinStockThreshold int                 `json:"min_stock_threshold" db:"min_stock_threshold"`
	Tags              pq.StringArray      `json:"tags" db:"tags"`
	ImageURL          string              `json:"image_url" db:"image_url"`
	Description       string              `json:"description" db:"description"`
	CurrentStock      int                 `json:"current_stock" db:"current_stock"`
	Status            metadata.ItemStatus `json:"status" db:"status"`
}

func (i *Item) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   i.ID,
		ResourceType: "item",
	}
}
