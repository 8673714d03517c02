package models

import "time"

// ReviewRequest is the payload for POST /api/v1/reviews.
type ReviewRequest struct {
	ItemID   string   `json:"item_id" validate:"required"`
	ItemType ItemType `json:"item_type" validate:"required"`
	Rating   int      `json:"rating" validate:"required,min=1,max=5"`
	Comment  string   `json:"comment,omitempty"`
}

// Review is a published review.
type Review struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	ItemType  ItemType  `json:"item_type"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
