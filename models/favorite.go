package models

import "time"

// ItemType identifies which vertical a favorited listing belongs to.
type ItemType string

const (
	ItemTypeBnb     ItemType = "bnb"
	ItemTypeVehicle ItemType = "vehicle"
	ItemTypeTour    ItemType = "tour"
)

// ValidItemType reports whether t is one of the known verticals.
func ValidItemType(t ItemType) bool {
	switch t {
	case ItemTypeBnb, ItemTypeVehicle, ItemTypeTour:
		return true
	}
	return false
}

// FavoriteKey is the set key for wishlist membership. No duplicates: a
// listing is favorited at most once per (item, type) pair.
type FavoriteKey struct {
	ItemID   string   `json:"item_id"`
	ItemType ItemType `json:"item_type"`
}

// Favorite is a wishlist entry.
type Favorite struct {
	ItemID    string    `json:"item_id"`
	ItemType  ItemType  `json:"item_type"`
	CreatedAt time.Time `json:"created_at"`
}

// Key returns the set key for this favorite.
func (f Favorite) Key() FavoriteKey {
	return FavoriteKey{ItemID: f.ItemID, ItemType: f.ItemType}
}
