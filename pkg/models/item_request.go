package models

type ItemRequest struct {
	Name              string   `json:"name" binding:"required"`
	Brand             string   `json:"brand" binding:"required"`
	Model             string   `json:"model" binding:"required"`
	Category          string   `json:"category" binding:"required"`
	MinStockThreshold int      `json:"min_stock_threshold" binding:"gte=0"`
	Tags              []string `json:"tags"`
	ImageURL          string   `json:"image_url" binding:"omitempty,url"`
	Description       string   `json:"description"`
}

// PatchItemRequest carries a partial item update. Derived stock is not
// updatable here; status is accepted only for the manual MAINTENANCE flow.
type PatchItemRequest struct {
	ID                int       `uri:"id" json:"-" binding:"required"`
	Name              *string   `json:"name"`
	Brand             *string   `json:"brand"`
	Model             *string   `json:"model"`
	Category          *string   `json:"category"`
	MinStockThreshold *int      `json:"min_stock_threshold" binding:"omitempty,gte=0"`
	Tags              *[]string `json:"tags"`
	ImageURL          *string   `json:"image_url" binding:"omitempty,url"`
	Description       *string   `json:"description"`
	Status            *string   `json:"status"`
}
