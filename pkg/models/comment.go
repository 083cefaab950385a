package models

import (
	"time"

	"stockflow/pkg/metadata"
)

type Comment struct {
	ID         int                 `json:"id" db:"id"`
	EntityType metadata.EntityType `json:"entity_type" db:"entity_type"`
	EntityID   int                 `json:"entity_id" db:"entity_id"`
	Text       string              `json:"text" db:"text"`
	AuthorName string              `json:"author_name" db:"author_name"`
	CreatedBy  *int                `json:"created_by,omitempty" db:"created_by"`
	CreatedAt  time.Time           `json:"created_at" db:"created_at"`
}

type CommentRequest struct {
	EntityType string `json:"entity_type" binding:"required"`
	EntityID   int    `json:"entity_id" binding:"required"`
	Text       string `json:"text" binding:"required"`

	// Populated from the JWT, never from the payload.
	CreatedBy  *int   `json:"-"`
	AuthorName string `json:"-"`
}
