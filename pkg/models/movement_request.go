package models

type MovementRequest struct {
	ItemID         int     `json:"item_id" binding:"required"`
	Type           string  `json:"type" binding:"required"`
	Quantity       int     `json:"quantity" binding:"required,gt=0"`
	FromLocationID *int    `json:"from_location_id"`
	ToLocationID   *int    `json:"to_location_id"`
	Note           *string `json:"note"`

	// Populated from the JWT, never from the payload.
	CreatedBy *int `json:"-"`
}
